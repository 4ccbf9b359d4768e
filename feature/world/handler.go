package world

import (
	"errors"

	"stack-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the in-memory world.
type Handler struct {
	world  *World
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(world *World, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{world: world, logger: logger}
}

// RegisterRoutes registers the world routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/world/generators")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleSpawn)
	group.Get("/:handle", h.HandleGet)
	group.Delete("/:handle", h.HandleDestroy)
}

// HandleList returns every generator.
// @Summary List Generators
// @Tags world
// @Produce json
// @Success 200 {array} world.View "Generators"
// @Router /world/generators [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	gens := h.world.Generators()
	views := make([]View, 0, len(gens))
	for _, g := range gens {
		views = append(views, g.View())
	}
	return c.JSON(views)
}

// HandleSpawn places a generator in the world.
// @Summary Spawn Generator
// @Description Place a generator and notify the reconciler.
// @Tags world
// @Accept json
// @Produce json
// @Param body body world.SpawnSpec true "Generator"
// @Success 201 {object} world.View "Spawned generator"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /world/generators [post]
func (h *Handler) HandleSpawn(c *fiber.Ctx) error {
	var spec SpawnSpec
	if err := c.BodyParser(&spec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	g, err := h.world.Spawn(spec)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrInvalidSpawn) {
			status = fiber.StatusBadRequest
		} else {
			logger.WithRayID(h.logger, c).Error("Spawn failed", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(g.View())
}

// HandleGet returns a single generator.
// @Summary Get Generator
// @Tags world
// @Produce json
// @Param handle path string true "Generator handle"
// @Success 200 {object} world.View "Generator"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /world/generators/{handle} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	g, ok := h.world.Get(c.Params("handle"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrNotFound.Error(),
		})
	}
	return c.JSON(g.View())
}

// HandleDestroy removes a generator. With ?silent=true the reconciler is
// not notified and the generator is left to the periodic sweep.
// @Summary Destroy Generator
// @Tags world
// @Param handle path string true "Generator handle"
// @Param silent query bool false "Skip the destroy notification"
// @Success 204
// @Failure 404 {object} map[string]string "Not Found"
// @Router /world/generators/{handle} [delete]
func (h *Handler) HandleDestroy(c *fiber.Ctx) error {
	if err := h.world.Destroy(c.Params("handle"), !c.QueryBool("silent")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
