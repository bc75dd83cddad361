// Package loader provides the plugin-like feature loading system of the report server.
//
// Each feature implements the Feature interface, which reports whether it is enabled
// and registers its routes.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager holds the registry of available features. Register adds one and
// LoadAll loads every enabled feature in registration order.
package loader
