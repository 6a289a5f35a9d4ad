package handlers

import (
	"context"
	"io"
	"log/slog"

	"catalog/internal/logging"
	"catalog/internal/response"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// APIPrefix is where the REST resources are mounted.
const APIPrefix = "/api/v1"

// RouteRegistrar mounts its routes on a router.
type RouteRegistrar interface {
	RegisterRoutes(router fiber.Router)
}

// AppDeps is everything NewApp wires together.
type AppDeps struct {
	Products  *services.ProductService
	Users     *services.UserService
	Responses *response.Builder
	Logger    *slog.Logger
	Ping      func(ctx context.Context) error

	// AccessLog receives one line per request in LogFormat. Nil disables it.
	AccessLog io.Writer
	LogFormat string

	// Extra routes mounted at the root, such as the GraphQL endpoints.
	Extra []RouteRegistrar
}

// NewApp builds the Fiber application with middleware and all routes.
func NewApp(deps AppDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "catalog",
		ErrorHandler:          ErrorHandler(deps.Responses, deps.Logger),
		Immutable:             true,
		DisableStartupMessage: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if deps.AccessLog != nil {
		app.Use(logging.AccessLog(deps.AccessLog, deps.LogFormat))
	}
	app.Use(cors.New())

	// --- Health Check Endpoint ---
	health := NewHealthHandler(deps.Ping, deps.Responses)
	health.RegisterRoutes(app)

	// --- API Routes ---
	apiV1 := app.Group(APIPrefix)
	health.RegisterRoutes(apiV1)
	NewProductHandler(deps.Products, deps.Responses, APIPrefix).RegisterRoutes(apiV1)
	NewUserHandler(deps.Users, deps.Responses, APIPrefix).RegisterRoutes(apiV1)

	for _, r := range deps.Extra {
		r.RegisterRoutes(app)
	}

	return app
}
