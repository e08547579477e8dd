// Package detector provides the hand landmark provider used to locate a palm in an image.
package detector

import (
	"errors"
	"fmt"
	"math"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Finger chains, base joint first.
var (
	ThumbChain  = [4]int{ThumbCMC, ThumbMCP, ThumbIP, ThumbTip}
	IndexChain  = [4]int{IndexMCP, IndexPIP, IndexDIP, IndexTip}
	MiddleChain = [4]int{MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip}
	RingChain   = [4]int{RingMCP, RingPIP, RingDIP, RingTip}
	PinkyChain  = [4]int{PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip}
)

// ErrInvalidLandmarks is returned when a landmark set cannot describe a hand.
var ErrInvalidLandmarks = errors.New("invalid landmarks")

// Point3D is a landmark position. X and Y are normalized to the image, Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Distance2D is the Euclidean distance between two points, ignoring depth.
func Distance2D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// ChainLength sums the 2D segment lengths along a finger chain.
func (h *HandLandmarks) ChainLength(chain [4]int) float64 {
	var total float64
	for i := 1; i < len(chain); i++ {
		total += Distance2D(h.Points[chain[i-1]], h.Points[chain[i]])
	}
	return total
}

// Validate reports whether every point is finite and inside the unit square.
func (h *HandLandmarks) Validate() error {
	for i, p := range h.Points {
		if !inUnitRange(p.X) || !inUnitRange(p.Y) {
			return fmt.Errorf("%w: point %d out of range (%g, %g)", ErrInvalidLandmarks, i, p.X, p.Y)
		}
		if math.IsNaN(p.Z) || math.IsInf(p.Z, 0) {
			return fmt.Errorf("%w: point %d has non-finite depth", ErrInvalidLandmarks, i)
		}
	}
	return nil
}

// FromPoints builds a validated landmark set from a raw point list.
func FromPoints(points []Point3D, handedness string) (HandLandmarks, error) {
	if len(points) != NumLandmarks {
		return HandLandmarks{}, fmt.Errorf("%w: expected %d points, got %d", ErrInvalidLandmarks, NumLandmarks, len(points))
	}

	hand := HandLandmarks{Handedness: handedness, Score: 1}
	copy(hand.Points[:], points)
	if err := hand.Validate(); err != nil {
		return HandLandmarks{}, err
	}
	return hand, nil
}

func inUnitRange(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
