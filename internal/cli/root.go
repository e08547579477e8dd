// Package cli implements the hastarekha commands.
package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ayusman/hastarekha/internal/app"
	"github.com/ayusman/hastarekha/internal/config"
	"github.com/ayusman/hastarekha/internal/detector"
	"github.com/ayusman/hastarekha/internal/logger"
	"github.com/ayusman/hastarekha/internal/palm"
	"github.com/ayusman/hastarekha/internal/store"
)

const (
	formatJSON = "json"
	formatText = "text"
)

type rootOptions struct {
	dbPath   string
	logLevel string
	format   string

	cfg         config.Config
	newDetector func(detector.Config, *logrus.Logger) detector.Detector
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{newDetector: app.NewDetector})
}

func newRootCmd(o *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "hastarekha",
		Short: "Palm reading from hand landmarks",
		Long: "Reads a palm photo, measures the hand from its 21 landmarks and writes " +
			"readings for career, wealth, health, love, social life, wisdom and potential.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&o.dbPath, "db", "d", "", "Database path (default: $HASTAREKHA_DB or ~/.hastarekha/readings.db)")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $HASTAREKHA_LOG_LEVEL or info)")
	root.PersistentFlags().StringVarP(&o.format, "format", "f", formatJSON, "Output format: json or text")

	root.AddCommand(
		newServeCmd(o),
		newReadCmd(o),
		newHistoryCmd(o),
		newShowCmd(o),
		newRmCmd(o),
	)
	return root
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	switch o.format {
	case formatJSON, formatText:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", o.format, formatJSON, formatText)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	o.cfg = cfg

	// stdout carries command output
	logger.Logger.SetOutput(cmd.ErrOrStderr())
	logger.Configure(cfg.LogLevel)
	return nil
}

func (o *rootOptions) openStore() (*store.Store, error) {
	return store.New(o.cfg.DBPath)
}

func (o *rootOptions) analyzer(st *store.Store, est palm.LineEstimator) *app.Analyzer {
	dc := detector.DefaultConfig()
	dc.ScriptPath = o.cfg.MediaPipeScript

	return app.New(app.Config{
		Detector:      o.newDetector(dc, logger.Logger),
		Estimator:     est,
		Store:         st,
		Timeout:       o.cfg.DetectTimeout,
		MaxImageDim:   o.cfg.MaxImageDim,
		ThumbnailSize: o.cfg.ThumbnailSize,
		Logger:        logger.Logger,
	})
}
