package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"crafterscloset/internal/middleware"
	"crafterscloset/internal/models"
	"crafterscloset/internal/services"
)

// InventoryHandler serves the authenticated user's inventory.
type InventoryHandler struct {
	service  *services.InventoryService
	validate *validator.Validate
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the inventory routes; every one needs requireAuth.
func (h *InventoryHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	inventoryRoutes := router.Group("/inventory", requireAuth)
	inventoryRoutes.Get("/", h.HandleListInventory)
	inventoryRoutes.Post("/", h.HandleAddSupply)
	inventoryRoutes.Get("/chart", h.HandleInventoryChart)
	inventoryRoutes.Patch("/:id", h.HandleOverwriteQuantity)
}

// HandleListInventory lists the user's items, optionally filtered by
// supply_type, brand and color, or by a free-text search.
func (h *InventoryHandler) HandleListInventory(c *fiber.Ctx) error {
	filter := models.FilterCriteria{
		SupplyType: optionalQuery(c, "supply_type"),
		Brand:      optionalQuery(c, "brand"),
		Color:      optionalQuery(c, "color"),
		Search:     c.Query("search"),
	}
	rows, err := h.service.ListInventory(middleware.UserID(c), filter)
	if err != nil {
		return serviceError(c, "retrieve inventory", err)
	}
	return c.JSON(rows)
}

// HandleAddSupply records newly acquired supplies.
func (h *InventoryHandler) HandleAddSupply(c *fiber.Ctx) error {
	var in models.AddSupplyInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	item, sd, err := h.service.AddSupply(middleware.UserID(c), in)
	if err != nil {
		return serviceError(c, "add supply", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "Supply added.",
		"item":          item,
		"supply_detail": sd,
	})
}

// OverwriteRequest carries the corrected quantity as typed by the user.
type OverwriteRequest struct {
	Quantity models.QuantityText `json:"quantity" form:"quantity"`
}

// HandleOverwriteQuantity corrects the quantity of one item.
func (h *InventoryHandler) HandleOverwriteQuantity(c *fiber.Ctx) error {
	itemID, err := idParam(c, "id")
	if err != nil {
		return serviceError(c, "update item", err)
	}
	var req OverwriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	update, err := h.service.OverwriteQuantity(middleware.UserID(c), itemID, string(req.Quantity))
	if err != nil {
		return serviceError(c, "update item", err)
	}
	return c.JSON(update)
}

// HandleInventoryChart returns the per-type inventory breakdown.
func (h *InventoryHandler) HandleInventoryChart(c *fiber.Ctx) error {
	chart, err := h.service.InventoryChart(middleware.UserID(c))
	if err != nil {
		return serviceError(c, "build chart", err)
	}
	return c.JSON(chart)
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}
