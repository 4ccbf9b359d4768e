package world

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	world   *World
	handler *Handler
	enabled bool
}

// NewFeature creates the world feature. When enabled is false the world
// still feeds the reconciler but its routes are not registered.
func NewFeature(world *World, enabled bool, logger *zap.Logger) *Feature {
	return &Feature{world: world, handler: NewHandler(world, logger), enabled: enabled}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "world"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
