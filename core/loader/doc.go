// Package loader registers the service's features on the Fiber app.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager loads enabled features in registration order. The "stacks"
// feature exposes the operator commands; the "world" feature exposes the
// in-memory host used for local runs.
package loader
