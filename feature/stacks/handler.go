package stacks

import (
	"errors"
	"net/url"
	"strings"

	"stack-manager/core/logger"
	"stack-manager/core/reconcile"
	"stack-manager/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errInvalidBody = errors.New(`request body must be {"limit": <positive integer>}`)

// LimitRequest is the body of the override and default mutations.
type LimitRequest struct {
	// Limit accepts a number or a string such as "1,000".
	Limit any `json:"limit"`
}

// Handler handles HTTP requests for stack sizes.
type Handler struct {
	service     *Service
	actorHeader string
}

// NewHandler creates a new HTTP handler. actorHeader names the request
// header carrying the operator's display name.
func NewHandler(service *Service, actorHeader string) *Handler {
	return &Handler{service: service, actorHeader: actorHeader}
}

// RegisterRoutes registers the stack routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/stacks")
	group.Get("/", h.HandleList)
	group.Get("/status", h.HandleStatus)
	group.Post("/reconcile", h.HandleReconcile)
	group.Post("/reload", h.HandleReload)
	group.Put("/default", h.HandleSetDefault)
	group.Get("/overrides/:kind/*", h.HandleGetOverride)
	group.Put("/overrides/:kind/*", h.HandleSetOverride)
	group.Delete("/overrides/:kind/*", h.HandleDeleteOverride)
}

// HandleList returns the default limit and every override.
// @Summary List Stack Limits
// @Description Get the global default stack limit and all overrides.
// @Tags stacks
// @Produce json
// @Success 200 {object} stacks.Listing "Current limits"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /stacks [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	listing, err := h.service.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(listing)
}

// HandleStatus returns the tracked and queued counts and the active settings.
// @Summary Reconciler Status
// @Tags stacks
// @Produce json
// @Success 200 {object} reconcile.Status "Status"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /stacks/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	status, err := h.service.Status(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(status)
}

// HandleReconcile runs a full reconciliation.
// @Summary Reconcile All Generators
// @Description Remove destroyed generators and reapply the stack limit to every tracked generator.
// @Tags stacks
// @Produce json
// @Param X-Actor header string false "Operator display name"
// @Success 200 {object} reconcile.ReconcileReport "Reconcile report"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /stacks/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	report, err := h.service.FullReconcile(c.UserContext(), h.actor(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(report)
}

// HandleReload re-reads the settings store.
// @Summary Reload Settings
// @Description Re-read the persisted settings and reapply every tracked generator.
// @Tags stacks
// @Produce json
// @Param X-Actor header string false "Operator display name"
// @Success 200 {object} reconcile.ReconcileReport "Reconcile report"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /stacks/reload [post]
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	report, err := h.service.Reload(c.UserContext(), h.actor(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(report)
}

// HandleSetDefault changes the global default limit.
// @Summary Set Default Limit
// @Tags stacks
// @Accept json
// @Produce json
// @Param X-Actor header string false "Operator display name"
// @Param body body stacks.LimitRequest true "New limit"
// @Success 200 {object} reconcile.ReconcileReport "Reconcile report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /stacks/default [put]
func (h *Handler) HandleSetDefault(c *fiber.Ctx) error {
	limit, err := parseLimit(c)
	if err != nil {
		return h.fail(c, err)
	}
	report, err := h.service.SetDefault(c.UserContext(), h.actor(c), limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(report)
}

// HandleGetOverride returns the override stored under a key.
// @Summary Get Override
// @Tags stacks
// @Produce json
// @Param kind path string true "Key kind (id, name or prefab)"
// @Param key path string true "Network id, short name or prefab path"
// @Success 200 {object} reconcile.OverrideEntry "Override"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /stacks/overrides/{kind}/{key} [get]
func (h *Handler) HandleGetOverride(c *fiber.Ctx) error {
	key, err := parseKey(c)
	if err != nil {
		return h.fail(c, err)
	}
	limit, err := h.service.GetOverride(c.UserContext(), key)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(reconcile.OverrideEntry{Kind: key.Kind, Key: keyText(key), Limit: limit})
}

// HandleSetOverride stores an override and reapplies it immediately.
// @Summary Set Override
// @Tags stacks
// @Accept json
// @Produce json
// @Param X-Actor header string false "Operator display name"
// @Param kind path string true "Key kind (id, name or prefab)"
// @Param key path string true "Network id, short name or prefab path"
// @Param body body stacks.LimitRequest true "New limit"
// @Success 200 {object} stacks.OverrideResult "Override and reconcile report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /stacks/overrides/{kind}/{key} [put]
func (h *Handler) HandleSetOverride(c *fiber.Ctx) error {
	key, err := parseKey(c)
	if err != nil {
		return h.fail(c, err)
	}
	limit, err := parseLimit(c)
	if err != nil {
		return h.fail(c, err)
	}
	result, err := h.service.SetOverride(c.UserContext(), h.actor(c), key, limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

// HandleDeleteOverride removes an override.
// @Summary Delete Override
// @Tags stacks
// @Produce json
// @Param X-Actor header string false "Operator display name"
// @Param kind path string true "Key kind (id, name or prefab)"
// @Param key path string true "Network id, short name or prefab path"
// @Success 200 {object} stacks.OverrideResult "Removed override and reconcile report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /stacks/overrides/{kind}/{key} [delete]
func (h *Handler) HandleDeleteOverride(c *fiber.Ctx) error {
	key, err := parseKey(c)
	if err != nil {
		return h.fail(c, err)
	}
	result, err := h.service.DeleteOverride(c.UserContext(), h.actor(c), key)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

func (h *Handler) actor(c *fiber.Ctx) string {
	return strings.Clone(c.Get(h.actorHeader))
}

// fail maps err to a status code and writes the error body.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, errInvalidBody),
		errors.Is(err, reconcile.ErrInvalidLimit),
		errors.Is(err, reconcile.ErrInvalidKey),
		errors.Is(err, reconcile.ErrUnknownKind):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrAccessDenied):
		status = fiber.StatusForbidden
	case errors.Is(err, ErrOverrideNotFound):
		status = fiber.StatusNotFound
	}

	if status == fiber.StatusInternalServerError {
		l := logger.WithActor(logger.WithRayID(h.service.logger, c), h.actor(c))
		l.Error("Stack command failed", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func parseKey(c *fiber.Ctx) (reconcile.Key, error) {
	// Params alias the request buffer; keys outlive the request in the settings maps.
	value, err := url.PathUnescape(strings.Clone(c.Params("*")))
	if err != nil {
		return reconcile.Key{}, reconcile.ErrInvalidKey
	}
	return reconcile.ParseKey(strings.Clone(c.Params("kind")), value)
}

func parseLimit(c *fiber.Ctx) (int, error) {
	var req LimitRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, errInvalidBody
	}
	limit, ok := utils.ToInt(req.Limit)
	if !ok || limit <= 0 {
		return 0, reconcile.ErrInvalidLimit
	}
	return limit, nil
}
