package detector

import (
	"context"
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu      sync.Mutex
	hands   []HandLandmarks
	err     error
	release <-chan struct{}
	started chan struct{}
	calls   int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{started: make(chan struct{}, 16)}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Block makes Detect wait until release is closed or the context ends.
func (m *MockDetector) Block(release <-chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.release = release
}

// Started receives a value each time Detect is entered.
func (m *MockDetector) Started() <-chan struct{} {
	return m.started
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(ctx context.Context, frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	m.calls++
	hands, err, release := m.hands, m.err, m.release
	m.mu.Unlock()

	select {
	case m.started <- struct{}{}:
	default:
	}

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, err
	}
	return hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// OpenPalmLandmarks returns a preset right hand held open with all fingers extended.
// Palm width 0.15 against palm length 0.5 places it in the Rectangular band.
func OpenPalmLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.8, Z: 0.0}

	// Thumb extended to the side
	landmarks.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}

	landmarks.Points[IndexMCP] = Point3D{X: 0.575, Y: 0.68, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.59, Y: 0.57, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.60, Y: 0.48, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.61, Y: 0.40, Z: 0.0}

	// Middle finger: wrist to MCP 0.12, chain 0.38
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.68, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.54, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.42, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.30, Z: 0.0}

	landmarks.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.43, Y: 0.56, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.42, Y: 0.46, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.41, Y: 0.36, Z: 0.0}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.425, Y: 0.68, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.38, Y: 0.60, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.36, Y: 0.52, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.35, Y: 0.45, Z: 0.0}

	return landmarks
}

// SquarePalmLandmarks returns a preset whose width to length ratio is 0.75.
// Palm length is 0.5 (wrist to middle MCP 0.2 plus a 0.3 middle finger) and
// palm width is 0.375.
func SquarePalmLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.9,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.9}

	landmarks.Points[ThumbCMC] = Point3D{X: 0.62, Y: 0.85}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.70, Y: 0.80}
	landmarks.Points[ThumbIP] = Point3D{X: 0.76, Y: 0.75}
	landmarks.Points[ThumbTip] = Point3D{X: 0.80, Y: 0.70}

	landmarks.Points[IndexMCP] = Point3D{X: 0.6875, Y: 0.7}
	landmarks.Points[IndexPIP] = Point3D{X: 0.6875, Y: 0.6}
	landmarks.Points[IndexDIP] = Point3D{X: 0.6875, Y: 0.52}
	landmarks.Points[IndexTip] = Point3D{X: 0.6875, Y: 0.44}

	landmarks.Points[MiddleMCP] = Point3D{X: 0.5, Y: 0.7}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.5, Y: 0.6}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.5, Y: 0.5}
	landmarks.Points[MiddleTip] = Point3D{X: 0.5, Y: 0.4}

	landmarks.Points[RingMCP] = Point3D{X: 0.40, Y: 0.7}
	landmarks.Points[RingPIP] = Point3D{X: 0.40, Y: 0.6}
	landmarks.Points[RingDIP] = Point3D{X: 0.40, Y: 0.51}
	landmarks.Points[RingTip] = Point3D{X: 0.40, Y: 0.42}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.3125, Y: 0.7}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.3125, Y: 0.62}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.3125, Y: 0.56}
	landmarks.Points[PinkyTip] = Point3D{X: 0.3125, Y: 0.50}

	return landmarks
}
