package cli

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpadapter "svw.info/rivercrossing/internal/adapters/http"
	"svw.info/rivercrossing/internal/config"
	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/logging"
	"svw.info/rivercrossing/internal/telemetry"
	"svw.info/rivercrossing/internal/usecase"
	"svw.info/rivercrossing/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API, the playback websocket and the browser UI",
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", ":8080", "listen address")
	f.String("log-level", "info", "debug|info|warn|error")
	f.String("log-format", "text", "text|json")
	f.Bool("metrics", true, "expose Prometheus metrics on /metrics")
	f.Float64("rate-limit", 20, "API requests per second per client, 0 disables")
	f.String("trace", "none", "trace exporter: none|stdout")
	addSearchFlags(f)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.OutOrStdout())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "river",
		ServiceVersion: version,
		TraceExporter:  cfg.TraceExporter,
		Metrics:        cfg.Metrics,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown", "err", err)
		}
	}()

	uc := newService(cfg, logger)
	if _, err := uc.RuleSet(ctx, domain.VariantID(cfg.Variant)); err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpadapter.RequestLogger(logger, newMux(cfg, uc, logger, tel.Handler)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.Addr, "variant", cfg.Variant, "strategy", cfg.Strategy, "metrics", cfg.Metrics)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newMux routes the API, the UI and, when metrics is non-nil, /metrics.
func newMux(cfg config.Config, uc *usecase.Service, logger *slog.Logger, metrics http.Handler) *http.ServeMux {
	h := httpadapter.New(uc)
	h.Logger = logger
	h.DefaultVariant = domain.VariantID(cfg.Variant)
	if s, err := domain.ParseStrategy(cfg.Strategy); err == nil {
		h.DefaultStrategy = s
	}
	h.PlayInterval = cfg.PlaybackInterval()
	h.PlaySpeed = cfg.PlaybackSpeed

	api := http.NewServeMux()
	h.Register(api)

	tmpl := web.Templates()
	mux := http.NewServeMux()
	mux.Handle("/api/", httpadapter.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Wrap(api))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		variants, err := uc.Variants(r.Context())
		if err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := map[string]any{
			"Variants": variants,
			"Default":  cfg.Variant,
			"Strategy": cfg.Strategy,
			"Speed":    cfg.PlaybackSpeed,
			"Version":  version,
		}
		if err := tmpl.ExecuteTemplate(w, "index.tmpl", data); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
	return mux
}
