package cli

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ayusman/hastarekha/internal/logger"
	"github.com/ayusman/hastarekha/internal/server"
)

func newServeCmd(o *rootOptions) *cobra.Command {
	var addr, webDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				o.cfg.Addr = addr
			}
			if webDir == "" {
				webDir = findWebDir(o.cfg.WebDir)
			}

			st, err := o.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			a := o.analyzer(st, nil)
			defer a.Close()

			srv := server.New(server.Config{
				StaticDir:      webDir,
				Analyzer:       a,
				Store:          st,
				MaxUploadBytes: o.cfg.MaxUploadBytes,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.WithField("addr", o.cfg.Addr).
				WithField("web_dir", webDir).
				WithField("db", st.Path()).
				Info("starting server")

			if err := srv.ListenAndServe(ctx, o.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: $HASTAREKHA_ADDR or :8080)")
	cmd.Flags().StringVar(&webDir, "web", "", "Static web directory")
	return cmd
}

// findWebDir searches for the web directory: the configured path, then
// "web", "../web", "../../web", and ~/.hastarekha/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(configured string) string {
	candidates := []string{configured, "web", "../web", "../../web"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".hastarekha", "web"))
	}

	for _, p := range candidates {
		if p == "" {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}
	return ""
}
