package palm

import (
	"math/rand/v2"

	"github.com/ayusman/hastarekha/internal/detector"
)

// LineEstimator assigns line qualities to a detected hand.
type LineEstimator interface {
	Estimate(hand detector.HandLandmarks) LineQualities
}

// RNG is the source of randomness for RandomEstimator.
type RNG interface {
	IntN(n int) int
}

// RandomEstimator draws every attribute independently and uniformly from
// its candidate labels. Landmarks carry no information about crease depth,
// so this is the default.
type RandomEstimator struct {
	rng RNG
}

// NewRandomEstimator returns an estimator backed by rng, or by the
// package-level math/rand source when rng is nil.
func NewRandomEstimator(rng RNG) *RandomEstimator {
	if rng == nil {
		rng = globalRNG{}
	}
	return &RandomEstimator{rng: rng}
}

// NewSeededEstimator returns a reproducible RandomEstimator.
func NewSeededEstimator(seed uint64) *RandomEstimator {
	return &RandomEstimator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

var (
	depths  = []Depth{DepthDeep, DepthShallow}
	lengths = []Length{LengthShort, LengthMedium, LengthLong}
	curves  = []Curve{CurveCurved, CurveStraight, CurveWavy}
	slopes  = []Slope{SlopeAscending, SlopeHorizontal, SlopeDescending}
)

func pick[T any](rng RNG, options []T) T {
	return options[rng.IntN(len(options))]
}

func (e *RandomEstimator) Estimate(detector.HandLandmarks) LineQualities {
	return LineQualities{
		Life: LifeLine{
			Depth:  pick(e.rng, depths),
			Length: pick(e.rng, lengths),
			Curve:  pick(e.rng, curves),
		},
		Head: HeadLine{
			Depth:  pick(e.rng, depths),
			Length: pick(e.rng, lengths),
			Slope:  pick(e.rng, slopes),
		},
		Heart: HeartLine{
			Depth:  pick(e.rng, depths),
			Length: pick(e.rng, lengths),
			Curve:  pick(e.rng, curves),
			Forks:  e.rng.IntN(3),
		},
	}
}

// FixedEstimator always returns the same qualities.
type FixedEstimator struct {
	Lines LineQualities
}

func (e FixedEstimator) Estimate(detector.HandLandmarks) LineQualities {
	return e.Lines
}

type globalRNG struct{}

func (globalRNG) IntN(n int) int { return rand.IntN(n) }
