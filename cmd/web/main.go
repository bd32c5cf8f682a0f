package main

import (
	"context"
	"encoding/gob"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/myrjola/polyglot/internal/config"
	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/logging"
	"github.com/myrjola/polyglot/internal/models"
	"github.com/myrjola/polyglot/internal/ports"
	"github.com/myrjola/polyglot/internal/pprofserver"
	"github.com/myrjola/polyglot/internal/qa"
	"github.com/myrjola/polyglot/internal/services"
	"golang.org/x/time/rate"
)

func init() {
	gob.Register(models.Transcript{})
}

type application struct {
	logger         *slog.Logger
	cfg            config.Config
	pipeline       *qa.Pipeline
	recognizer     ports.Recognizer
	synthesizer    ports.Synthesizer
	sessionManager *scs.SessionManager
	htmx           *htmx.HTMX
	limiter        *rate.Limiter
	templates      *template.Template
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	cfg, err := config.Load(lookupEnv)
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	if cfg.PprofAddr != "" {
		pprofserver.Launch(ctx, cfg.PprofAddr, logger)
	}

	var templates *template.Template
	if templates, err = parseTemplates(); err != nil {
		return errors.Wrap(err, "parse templates")
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = 12 * time.Hour //nolint:mnd // half a day
	sessionManager.Cookie.Name = "polyglot_session"

	svc := services.New(cfg, logger)
	app := application{
		logger:         logger,
		cfg:            cfg,
		pipeline:       svc.Pipeline,
		recognizer:     svc.Recognizer,
		synthesizer:    svc.Synthesizer,
		sessionManager: sessionManager,
		htmx:           htmx.New(),
		limiter:        newLimiter(cfg.QuestionsPerMinute),
		templates:      templates,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

// newLimiter allows questionsPerMinute questions per minute with bursts of the same size. Non-positive values
// disable throttling.
func newLimiter(questionsPerMinute int) *rate.Limiter {
	if questionsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(questionsPerMinute)), questionsPerMinute)
}

func main() {
	logger := logging.New(os.Stdout, slog.LevelDebug, true)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure loading .env", errors.SlogError(err))
		os.Exit(1) //nolint:gocritic // stop is a no-op at this point
	}
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1) //nolint:gocritic // stop is a no-op at this point
	}
}
