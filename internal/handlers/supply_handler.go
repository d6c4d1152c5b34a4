package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"crafterscloset/internal/models"
	"crafterscloset/internal/services"
)

// SupplyHandler serves the shared supply catalog and its lookup helpers.
type SupplyHandler struct {
	service  *services.SupplyService
	validate *validator.Validate
}

// NewSupplyHandler creates a new SupplyHandler.
func NewSupplyHandler(service *services.SupplyService) *SupplyHandler {
	return &SupplyHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the catalog routes. Creating entries needs requireAuth.
func (h *SupplyHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	supplyRoutes := router.Group("/supplies")
	supplyRoutes.Get("/", h.HandleGetSupplies)
	supplyRoutes.Post("/", requireAuth, h.HandleGetOrCreateSupply)
	supplyRoutes.Get("/match", h.HandleMatchSupply)
	supplyRoutes.Get("/types", listHandler(h.service.SupplyTypes))
	supplyRoutes.Get("/brands", listHandler(h.service.Brands))
	supplyRoutes.Get("/colors", listHandler(h.service.Colors))
	supplyRoutes.Get("/units", listHandler(h.service.Units))
	supplyRoutes.Get("/brands-by-type", listHandler(h.service.BrandsByType))
	supplyRoutes.Get("/colors-by-type", listHandler(h.service.ColorsByType))
	supplyRoutes.Get("/units-by-type", listHandler(h.service.UnitsByType))
	supplyRoutes.Get("/colors-by-brand", listHandler(h.service.ColorsByBrand))

	router.Get("/typeahead/colors-by-brand", h.HandleColorsForBrand)
}

// HandleGetSupplies returns the whole catalog.
func (h *SupplyHandler) HandleGetSupplies(c *fiber.Ctx) error {
	supplies, err := h.service.GetAllSupplies()
	if err != nil {
		return serviceError(c, "retrieve supplies", err)
	}
	return c.JSON(supplies)
}

// HandleMatchSupply looks up an existing entry by type/brand/color/units.
func (h *SupplyHandler) HandleMatchSupply(c *fiber.Ctx) error {
	var match models.SupplyMatch
	if err := c.QueryParser(&match); err != nil {
		return badBody(c, err)
	}
	sd, err := h.service.FindMatchingSupply(match)
	if err != nil {
		return serviceError(c, "match supply", err)
	}
	return c.JSON(sd)
}

// HandleGetOrCreateSupply resolves a supply description to a catalog entry.
func (h *SupplyHandler) HandleGetOrCreateSupply(c *fiber.Ctx) error {
	var in models.SupplyInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}
	sd, err := h.service.GetOrCreateSupply(in)
	if err != nil {
		return serviceError(c, "save supply", err)
	}
	return c.JSON(sd)
}

// HandleColorsForBrand feeds the color autocomplete.
func (h *SupplyHandler) HandleColorsForBrand(c *fiber.Ctx) error {
	colors, err := h.service.ColorsForBrand(c.Query("brand"))
	if err != nil {
		return serviceError(c, "retrieve colors", err)
	}
	return c.JSON(colors)
}

func listHandler[T any](fetch func() (T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		values, err := fetch()
		if err != nil {
			return serviceError(c, "retrieve supplies", err)
		}
		return c.JSON(values)
	}
}
