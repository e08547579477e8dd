package detector

import (
	"context"
	"time"

	"gocv.io/x/gocv"
)

// Detector defines the interface for hand landmark providers.
type Detector interface {
	// Detect analyzes an image and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected. Implementations must
	// return promptly once ctx is done.
	Detect(ctx context.Context, frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 1).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// ScriptPath overrides the lookup of mediapipe_service.py.
	ScriptPath string

	// IdleTimeout shuts the subprocess down after this long without requests.
	IdleTimeout time.Duration
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:      1,
		MinConfidence: 0.5,
		IdleTimeout:   30 * time.Second,
	}
}
