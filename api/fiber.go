package api

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sunthewhat/academic-cert-api/api/handler"
	"github.com/sunthewhat/academic-cert-api/api/routes"
	"github.com/sunthewhat/academic-cert-api/internal/metrics"
	"github.com/sunthewhat/academic-cert-api/type/shared"
)

// uploadLimit caps request bodies; spreadsheets of a few thousand rows fit well below it.
const uploadLimit = 32 << 20

func NewApp(config *shared.Config, ctrls routes.Controllers) *fiber.App {
	cfg := fiber.Config{
		AppName:      "academic-cert api",
		ErrorHandler: handler.HandleError,
		Prefork:      false,
		BodyLimit:    uploadLimit,
		Network:      fiber.NetworkTCP,
	}
	app := fiber.New(cfg)

	var origins []string
	for _, o := range config.Cors {
		if o != nil {
			origins = append(origins, *o)
		}
	}

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(origins, ","),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: fiber.HeaderContentDisposition,
	}))
	app.Use(metrics.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	routes.Init(app, ctrls, []byte(*config.JWTSecret))

	app.Use(handler.HandleNotFound)

	return app
}

func InitFiber(app *fiber.App, port string) {
	slog.Info("Starting server", "port", port)

	if err := app.Listen(port); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
