package palm

import (
	"errors"
	"fmt"
	"math"

	"github.com/ayusman/hastarekha/internal/detector"
)

// ErrInvalidLandmarks is returned when landmarks cannot yield a measurable palm.
var ErrInvalidLandmarks = detector.ErrInvalidLandmarks

// Shape ratio bands. Values on a boundary fall into the middle band.
const (
	squareAbove      = 0.7
	rectangularBelow = 0.5
)

// Spacing bands, as multiples of palm width.
const (
	wideGap      = 0.45
	closeGap     = 0.25
	unevenSpread = 0.6
)

// ClassifyShape maps a palm width to length ratio onto a shape. It is total:
// NaN and out-of-band values resolve to Elliptical.
func ClassifyShape(ratio float64) Shape {
	switch {
	case ratio > squareAbove:
		return ShapeSquare
	case ratio < rectangularBelow:
		return ShapeRectangular
	default:
		return ShapeElliptical
	}
}

// ClassifySpacing compares the gaps between adjacent fingertips, excluding
// the thumb, against palm width.
func ClassifySpacing(hand detector.HandLandmarks, palmWidth float64) Spacing {
	if palmWidth <= 0 {
		return SpacingEven
	}

	gaps := []float64{
		detector.Distance2D(hand.Points[detector.IndexTip], hand.Points[detector.MiddleTip]),
		detector.Distance2D(hand.Points[detector.MiddleTip], hand.Points[detector.RingTip]),
		detector.Distance2D(hand.Points[detector.RingTip], hand.Points[detector.PinkyTip]),
	}

	lo, hi, sum := gaps[0], gaps[0], 0.0
	for _, g := range gaps {
		lo = math.Min(lo, g)
		hi = math.Max(hi, g)
		sum += g
	}
	mean := sum / float64(len(gaps))

	switch {
	case mean > 0 && (hi-lo)/mean > unevenSpread:
		return SpacingUneven
	case mean/palmWidth > wideGap:
		return SpacingWide
	case mean/palmWidth < closeGap:
		return SpacingClose
	default:
		return SpacingEven
	}
}

// Extract measures a detected hand and asks est for its line qualities.
func Extract(hand detector.HandLandmarks, est LineEstimator) (Features, error) {
	if err := hand.Validate(); err != nil {
		return Features{}, err
	}

	pts := hand.Points
	width := detector.Distance2D(pts[detector.IndexMCP], pts[detector.PinkyMCP])
	fingers := FingerLengths{
		Thumb:  hand.ChainLength(detector.ThumbChain),
		Index:  hand.ChainLength(detector.IndexChain),
		Middle: hand.ChainLength(detector.MiddleChain),
		Ring:   hand.ChainLength(detector.RingChain),
		Pinky:  hand.ChainLength(detector.PinkyChain),
	}
	length := detector.Distance2D(pts[detector.Wrist], pts[detector.MiddleMCP]) + fingers.Middle
	if length <= 0 {
		return Features{}, fmt.Errorf("%w: zero palm length", ErrInvalidLandmarks)
	}

	landmarks := make([]detector.Point3D, detector.NumLandmarks)
	copy(landmarks, pts[:])

	return Features{
		Landmarks:     landmarks,
		Handedness:    hand.Handedness,
		PalmWidth:     width,
		PalmLength:    length,
		FingerLengths: fingers,
		Shape:         ClassifyShape(width / length),
		Spacing:       ClassifySpacing(hand, width),
		Lines:         est.Estimate(hand),
		PalmLines:     TraceLines(hand),
	}, nil
}

// ExtractPoints builds features from a raw point list, substituting
// MockFeatures when the list cannot describe a hand. The returned error
// explains why the substitute was used and is nil otherwise.
func ExtractPoints(points []detector.Point3D, handedness string, est LineEstimator) (Features, error) {
	hand, err := detector.FromPoints(points, handedness)
	if err == nil {
		var f Features
		if f, err = Extract(hand, est); err == nil {
			return f, nil
		}
	}
	if !errors.Is(err, ErrInvalidLandmarks) {
		err = fmt.Errorf("%w: %v", ErrInvalidLandmarks, err)
	}
	return MockFeatures(), err
}

// TraceLines places the life, head and heart lines between palm landmarks.
func TraceLines(hand detector.HandLandmarks) PalmLines {
	p := func(i int) Point { return Point{X: hand.Points[i].X, Y: hand.Points[i].Y} }
	mix := func(a Point, wa float64, b Point, wb float64) Point {
		return Point{X: a.X*wa + b.X*wb, Y: a.Y*wa + b.Y*wb}
	}
	mid := func(a, b Point) Point { return mix(a, 0.5, b, 0.5) }

	wrist, thumb := p(detector.Wrist), p(detector.ThumbCMC)
	index, middle := p(detector.IndexMCP), p(detector.MiddleMCP)
	ring, pinky := p(detector.RingMCP), p(detector.PinkyMCP)

	// Heart line sits a little below the knuckles, pulled toward the wrist.
	lower := func(pt Point) Point { return Point{X: pt.X, Y: pt.Y*0.85 + wrist.Y*0.15} }

	return PalmLines{
		Life: []Point{
			wrist,
			mix(wrist, 0.7, thumb, 0.3),
			mix(wrist, 0.5, thumb, 0.5),
			mix(wrist, 0.3, thumb, 0.7),
			thumb,
		},
		Head: []Point{
			mix(pinky, 0.9, wrist, 0.1),
			mid(pinky, ring),
			mid(ring, middle),
			mid(middle, index),
			mix(index, 0.8, middle, 0.2),
		},
		Heart: []Point{
			{X: pinky.X*1.05 - ring.X*0.05, Y: pinky.Y*0.9 + ring.Y*0.1},
			{X: pinky.X, Y: pinky.Y*0.9 + wrist.Y*0.1},
			lower(mid(pinky, ring)),
			lower(ring),
			lower(mid(ring, middle)),
		},
	}
}
