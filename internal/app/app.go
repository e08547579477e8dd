// Package app runs palm analyses: image intake, landmark detection, feature
// extraction and reading generation, with a per-client session guard.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/ayusman/hastarekha/internal/capture"
	"github.com/ayusman/hastarekha/internal/detector"
	"github.com/ayusman/hastarekha/internal/logger"
	"github.com/ayusman/hastarekha/internal/palm"
	"github.com/ayusman/hastarekha/internal/reading"
	"github.com/ayusman/hastarekha/internal/store"
)

// DefaultTimeout bounds a single landmark detection.
const DefaultTimeout = 2 * time.Second

var (
	// ErrDetectionUnavailable means the landmark provider could not run.
	ErrDetectionUnavailable = errors.New("landmark detection unavailable")
	// ErrNoHandFound means the provider returned no hand within the timeout.
	ErrNoHandFound = errors.New("no hand found")
	// ErrConcurrentRequest rejects an analysis while another is in flight.
	ErrConcurrentRequest = errors.New("analysis already in progress")
)

// Config holds configuration options for the analyzer.
type Config struct {
	// Detector provides landmarks. Nil selects MediaPipe, falling back to the mock.
	Detector detector.Detector
	// DetectorConfig is used when Detector is nil.
	DetectorConfig detector.Config
	// Estimator fills in line qualities. Nil selects a RandomEstimator.
	Estimator palm.LineEstimator
	// Store persists completed readings when set.
	Store         *store.Store
	Timeout       time.Duration
	MaxImageDim   int
	ThumbnailSize int
	Logger        *logrus.Logger
}

// Analyzer turns an uploaded palm image and user context into a reading.
// It is safe for concurrent use; exclusivity is enforced per Session.
type Analyzer struct {
	detector  detector.Detector
	estimator palm.LineEstimator
	store     *store.Store
	timeout   time.Duration
	maxDim    int
	thumbSize int
	log       *logrus.Logger
}

// New creates a new Analyzer with the given configuration.
func New(config Config) *Analyzer {
	a := &Analyzer{
		detector:  config.Detector,
		estimator: config.Estimator,
		store:     config.Store,
		timeout:   config.Timeout,
		maxDim:    config.MaxImageDim,
		thumbSize: config.ThumbnailSize,
		log:       config.Logger,
	}
	if a.log == nil {
		a.log = logger.Logger
	}
	if a.timeout <= 0 {
		a.timeout = DefaultTimeout
	}
	if a.maxDim <= 0 {
		a.maxDim = capture.DefaultMaxDim
	}
	if a.estimator == nil {
		a.estimator = palm.NewRandomEstimator(nil)
	}
	if a.detector == nil {
		dc := config.DetectorConfig
		if dc.MaxHands == 0 {
			dc = detector.DefaultConfig()
		}
		a.detector = NewDetector(dc, a.log)
	}
	return a
}

// NewDetector tries MediaPipe first and falls back to a mock detector that
// never finds a hand, so every analysis degrades to simulated features.
func NewDetector(config detector.Config, log *logrus.Logger) detector.Detector {
	mp, err := detector.NewMediaPipeDetector(config)
	if err == nil {
		log.Info("using MediaPipe hand detection")
		return mp
	}
	log.WithError(err).Warn("MediaPipe not available, using mock detector")
	return detector.NewMockDetector()
}

// Detector returns the landmark provider in use.
func (a *Analyzer) Detector() detector.Detector {
	return a.detector
}

// Store returns the history store, or nil when persistence is off.
func (a *Analyzer) Store() *store.Store {
	return a.store
}

// Close releases the landmark provider.
func (a *Analyzer) Close() error {
	if a.detector == nil {
		return nil
	}
	return a.detector.Close()
}

// run executes one analysis. The only error it returns is the caller's
// context error; every detection failure degrades to the mock features.
func (a *Analyzer) run(ctx context.Context, in Input, record func(string)) (*Result, error) {
	res := &Result{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Context:   in.Context,
		Source:    SourceDetected,
	}
	log := a.log.WithFields(logrus.Fields{
		"reading_id": res.ID,
		"focus":      in.Context.Focus,
	})

	record("Starting palm detection")
	features, thumb, err := a.features(ctx, in, record)
	if err != nil && ctx.Err() != nil {
		log.WithError(err).Info("analysis cancelled")
		return nil, ctx.Err()
	}
	if err != nil {
		log.WithError(err).Warn("using simulated palm features")
		record("Using simulated data to generate palm features")
		features = palm.MockFeatures()
		res.Source = SourceSimulated
		res.Fallback = err.Error()
	}
	res.Features = features
	res.Thumbnail = thumb

	record("Interpreting features based on traditional palmistry")
	res.Reading = reading.Generate(features, in.Context)
	record("Reading generated")

	log.WithFields(logrus.Fields{
		"source": res.Source,
		"shape":  features.Shape,
	}).Info("analysis complete")

	return res, nil
}

// features returns extracted features, or an error wrapping one of
// ErrDetectionUnavailable, ErrNoHandFound, palm.ErrInvalidLandmarks,
// capture.ErrDecode, or the caller's context error.
func (a *Analyzer) features(ctx context.Context, in Input, record func(string)) (palm.Features, []byte, error) {
	img, err := capture.LoadBytes(in.Image, in.ContentType, a.maxDim)
	if err != nil {
		record("Image loading failed")
		return palm.Features{}, nil, err
	}
	b := img.Bounds()
	record(fmt.Sprintf("Image loaded, resolution: %dx%d", b.Dx(), b.Dy()))

	var thumb []byte
	if a.thumbSize > 0 {
		if thumb, err = capture.ThumbnailBytes(img, a.thumbSize); err != nil {
			a.log.WithError(err).Warn("thumbnail failed")
		}
	}

	record("Image preprocessing: adjusting brightness and contrast")
	mat, err := capture.ToMat(capture.Enhance(img))
	if err != nil {
		record("Image processing failed")
		return palm.Features{}, thumb, fmt.Errorf("%w: %v", ErrDetectionUnavailable, err)
	}
	defer mat.Close()

	record("Starting hand landmark detection")
	hand, err := a.detect(ctx, &mat)
	if err != nil {
		switch {
		case ctx.Err() != nil:
		case errors.Is(err, ErrNoHandFound):
			record("No hand detected, using simulated data")
		default:
			record("Hand detection failed, using simulated data: " + err.Error())
		}
		return palm.Features{}, thumb, err
	}
	record("Successfully detected hand landmarks")

	record("Extracting palm shape and finger length features")
	f, err := palm.Extract(hand, a.estimator)
	if err != nil {
		record("Detected landmarks are invalid, using simulated data")
		return palm.Features{}, thumb, err
	}
	if f.PalmLength > 0 {
		record(fmt.Sprintf("Palm width to length ratio: %.2f", f.PalmWidth/f.PalmLength))
	}
	record(fmt.Sprintf("Palm line quality analysis completed: Life line(%s, %s), Head line(%s, %s), Heart line(%s, %s)",
		f.Lines.Life.Depth, f.Lines.Life.Length,
		f.Lines.Head.Depth, f.Lines.Head.Length,
		f.Lines.Heart.Depth, f.Lines.Heart.Length))
	record("Palm feature detection completed")

	return f, thumb, nil
}

// detect runs the provider under the detection timeout and reports absence
// as ErrNoHandFound.
func (a *Analyzer) detect(ctx context.Context, frame *gocv.Mat) (detector.HandLandmarks, error) {
	if a.detector == nil {
		return detector.HandLandmarks{}, ErrDetectionUnavailable
	}

	dctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	hands, err := a.detector.Detect(dctx, frame)
	switch {
	case ctx.Err() != nil:
		return detector.HandLandmarks{}, ctx.Err()
	case dctx.Err() != nil:
		return detector.HandLandmarks{}, fmt.Errorf("%w within %s", ErrNoHandFound, a.timeout)
	case err != nil:
		return detector.HandLandmarks{}, fmt.Errorf("%w: %v", ErrDetectionUnavailable, err)
	case len(hands) == 0:
		return detector.HandLandmarks{}, ErrNoHandFound
	}
	return hands[0], nil
}

// save writes a completed result to the store. Failures are logged only.
func (a *Analyzer) save(ctx context.Context, res *Result) {
	if a.store == nil {
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		a.log.WithError(err).Error("encode reading")
		return
	}
	rd := &store.Reading{
		ID:        res.ID,
		Age:       string(res.Context.Age),
		Gender:    string(res.Context.Gender),
		Focus:     string(res.Context.Focus),
		Shape:     string(res.Features.Shape),
		Source:    string(res.Source),
		Fallback:  res.Fallback,
		Payload:   payload,
		CreatedAt: res.CreatedAt,
	}
	if err := a.store.Readings().Create(ctx, rd, res.Thumbnail); err != nil {
		a.log.WithError(err).WithField("reading_id", res.ID).Error("save reading")
	}
}
