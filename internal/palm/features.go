// Package palm turns hand landmarks into the palm features used for readings.
package palm

import (
	"github.com/ayusman/hastarekha/internal/detector"
)

// Shape is the palm outline class derived from the width to length ratio.
type Shape string

const (
	ShapeSquare      Shape = "Square"
	ShapeRectangular Shape = "Rectangular"
	ShapeElliptical  Shape = "Elliptical"
)

// Spacing describes how far apart the fingertips sit relative to palm width.
type Spacing string

const (
	SpacingEven   Spacing = "Even"
	SpacingWide   Spacing = "Wide"
	SpacingClose  Spacing = "Close"
	SpacingUneven Spacing = "Uneven"
)

// Depth of a palm line. Medium only appears in the simulated record.
type Depth string

const (
	DepthDeep    Depth = "Deep"
	DepthMedium  Depth = "Medium"
	DepthShallow Depth = "Shallow"
)

// Length of a palm line.
type Length string

const (
	LengthShort  Length = "Short"
	LengthMedium Length = "Medium"
	LengthLong   Length = "Long"
)

// Curve of the life and heart lines.
type Curve string

const (
	CurveCurved   Curve = "Curved"
	CurveStraight Curve = "Straight"
	CurveWavy     Curve = "Wavy"
)

// Slope of the head line.
type Slope string

const (
	SlopeAscending  Slope = "Ascending"
	SlopeHorizontal Slope = "Horizontal"
	SlopeDescending Slope = "Descending"
)

// LifeLine qualities.
type LifeLine struct {
	Depth  Depth  `json:"depth"`
	Length Length `json:"length"`
	Curve  Curve  `json:"curve"`
}

// HeadLine qualities.
type HeadLine struct {
	Depth  Depth  `json:"depth"`
	Length Length `json:"length"`
	Slope  Slope  `json:"slope"`
}

// HeartLine qualities.
type HeartLine struct {
	Depth  Depth  `json:"depth"`
	Length Length `json:"length"`
	Curve  Curve  `json:"curve"`
	Forks  int    `json:"forks"`
}

// LineQualities groups the three principal lines.
type LineQualities struct {
	Life  LifeLine  `json:"lifeLine"`
	Head  HeadLine  `json:"headLine"`
	Heart HeartLine `json:"heartLine"`
}

// FingerLengths holds the summed joint distances per finger.
type FingerLengths struct {
	Thumb  float64 `json:"thumb"`
	Index  float64 `json:"index"`
	Middle float64 `json:"middle"`
	Ring   float64 `json:"ring"`
	Pinky  float64 `json:"pinky"`
}

// Point is a 2D position in normalized image coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PalmLines are polylines approximating where each principal line runs.
type PalmLines struct {
	Life  []Point `json:"lifeLine"`
	Head  []Point `json:"headLine"`
	Heart []Point `json:"heartLine"`
}

// Features is everything measured or estimated about one palm.
type Features struct {
	Landmarks     []detector.Point3D `json:"landmarks"`
	Handedness    string             `json:"handedness"`
	PalmWidth     float64            `json:"palmWidth"`
	PalmLength    float64            `json:"palmLength"`
	FingerLengths FingerLengths      `json:"fingerLengths"`
	Shape         Shape              `json:"palmShape"`
	Spacing       Spacing            `json:"fingerSpacing"`
	Lines         LineQualities      `json:"lineQualities"`
	PalmLines     PalmLines          `json:"palmLines"`
	Simulated     bool               `json:"simulated"`
}

func (f Features) ratio(finger float64) float64 {
	if f.FingerLengths.Middle <= 0 {
		return 0
	}
	return finger / f.FingerLengths.Middle
}

// ThumbRatio is thumb length over middle finger length.
func (f Features) ThumbRatio() float64 { return f.ratio(f.FingerLengths.Thumb) }

// IndexRatio is index length over middle finger length.
func (f Features) IndexRatio() float64 { return f.ratio(f.FingerLengths.Index) }

// RingRatio is ring length over middle finger length.
func (f Features) RingRatio() float64 { return f.ratio(f.FingerLengths.Ring) }

// PinkyRatio is pinky length over middle finger length.
func (f Features) PinkyRatio() float64 { return f.ratio(f.FingerLengths.Pinky) }

// MockFeatures returns the fixed record used when detection cannot produce a palm.
func MockFeatures() Features {
	landmarks := make([]detector.Point3D, detector.NumLandmarks)
	for i := range landmarks {
		landmarks[i] = detector.Point3D{
			X: 0.3 + float64(i%4)*0.1,
			Y: 0.3 + float64(i/4)*0.1,
		}
	}

	return Features{
		Landmarks:  landmarks,
		Handedness: "Right",
		PalmWidth:  0.5,
		PalmLength: 0.8,
		FingerLengths: FingerLengths{
			Thumb:  0.15,
			Index:  0.2,
			Middle: 0.22,
			Ring:   0.2,
			Pinky:  0.15,
		},
		Shape:   ShapeElliptical,
		Spacing: SpacingEven,
		Lines: LineQualities{
			Life:  LifeLine{Depth: DepthDeep, Length: LengthLong, Curve: CurveCurved},
			Head:  HeadLine{Depth: DepthMedium, Length: LengthMedium, Slope: SlopeHorizontal},
			Heart: HeartLine{Depth: DepthDeep, Length: LengthLong, Curve: CurveWavy, Forks: 1},
		},
		PalmLines: PalmLines{
			Life:  []Point{{0.3, 0.5}, {0.33, 0.52}, {0.35, 0.55}, {0.38, 0.58}, {0.4, 0.6}},
			Head:  []Point{{0.3, 0.45}, {0.35, 0.45}, {0.4, 0.45}, {0.45, 0.45}, {0.5, 0.45}},
			Heart: []Point{{0.3, 0.4}, {0.35, 0.4}, {0.4, 0.4}, {0.45, 0.4}, {0.5, 0.4}},
		},
		Simulated: true,
	}
}
