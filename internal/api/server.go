package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/insightdelivered/statement-parser/internal/extractor"
	"github.com/insightdelivered/statement-parser/internal/logging"
	"github.com/insightdelivered/statement-parser/internal/metrics"
)

// Options configures NewApp.
type Options struct {
	Extractor extractor.TextSource
	Logger    *slog.Logger
	// Gatherer serves /metrics when set. Metrics should record into the
	// same registry.
	Gatherer  prometheus.Gatherer
	Metrics   *metrics.Metrics
	BodyLimit int
	StaticDir string
}

// NewApp builds the fiber application with all routes and middleware.
func NewApp(opts Options) *fiber.App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:               "statement-parser",
		BodyLimit:             opts.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logging.Middleware(logger))
	app.Use(recover.New())
	app.Use(cors.New())

	h := &Handler{
		Extractor: opts.Extractor,
		Metrics:   opts.Metrics,
		Logger:    logger,
	}
	app.Post("/parse", h.HandleParse)
	app.Get("/health", HandleHealth)
	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	if opts.StaticDir != "" {
		app.Static("/", opts.StaticDir, fiber.Static{Index: "index.html"})
	}

	return app
}

// errorHandler renders errors that escape a handler, including recovered
// panics, as JSON.
func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(ErrorResponse{Error: fe.Message})
		}
		logger.Error("unhandled error", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: msgUnexpectedPrefix + err.Error()})
	}
}
