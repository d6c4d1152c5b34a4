// Package app assembles repositories, services and handlers into a Fiber app.
package app

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"crafterscloset/internal/config"
	"crafterscloset/internal/handlers"
	"crafterscloset/internal/middleware"
	"crafterscloset/internal/repositories"
	"crafterscloset/internal/services"
)

// Repositories bundles one implementation of each storage interface.
type Repositories struct {
	Users    repositories.UserRepository
	Supplies repositories.SupplyRepository
	Items    repositories.ItemRepository
	Projects repositories.ProjectRepository
}

// NewGORMRepositories backs every repository with db.
func NewGORMRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:    repositories.NewGORMUserRepository(db),
		Supplies: repositories.NewGORMSupplyRepository(db),
		Items:    repositories.NewGORMItemRepository(db),
		Projects: repositories.NewGORMProjectRepository(db),
	}
}

// NewMemoryRepositories returns process-local repositories sharing one catalog.
func NewMemoryRepositories() Repositories {
	supplies := repositories.NewMemorySupplyRepository()
	return Repositories{
		Users:    repositories.NewMemoryUserRepository(),
		Supplies: supplies,
		Items:    repositories.NewMemoryItemRepository(supplies),
		Projects: repositories.NewMemoryProjectRepository(supplies),
	}
}

// Services exposes the wired services, mainly for tests and seeding.
type Services struct {
	Auth      *services.AuthService
	Supplies  *services.SupplyService
	Inventory *services.InventoryService
	Projects  *services.ProjectService
}

// NewServices wires the services on top of repos. publisher may be nil.
func NewServices(repos Repositories, cfg *config.Config, publisher services.EventPublisher) *Services {
	supplyService := services.NewSupplyService(repos.Supplies)
	return &Services{
		Auth:      services.NewAuthService(repos.Users, cfg.JWTSecret, cfg.TokenTTL),
		Supplies:  supplyService,
		Inventory: services.NewInventoryService(repos.Items, supplyService, publisher),
		Projects:  services.NewProjectService(repos.Projects, repos.Items, supplyService),
	}
}

// New builds the Fiber app with every route registered under /api/v1.
func New(svc *Services, requestLog bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "crafters-closet",
	})

	// --- Middleware ---
	app.Use(recover.New())
	if requestLog {
		app.Use(fiberlogger.New()) // Request logger
	}

	requireAuth := middleware.AuthRequired(svc.Auth)
	optionalAuth := middleware.OptionalAuth(svc.Auth)

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(svc.Auth).RegisterRoutes(apiV1)
	handlers.NewSupplyHandler(svc.Supplies).RegisterRoutes(apiV1, requireAuth)
	handlers.NewInventoryHandler(svc.Inventory).RegisterRoutes(apiV1, requireAuth)
	handlers.NewProjectHandler(svc.Projects).RegisterRoutes(apiV1, requireAuth, optionalAuth)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}
