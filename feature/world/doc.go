// Package world is an in-memory host for resource generators.
//
// A World holds Generator entities, each with one inventory of stacks, and
// reports spawns and destroys to a reconcile.Listener. It implements
// reconcile.Host so the startup scan can enumerate live generators.
// Destroying with notify disabled marks the generator dead without telling
// the listener, leaving it for the cleanup sweep.
//
// # HTTP Endpoints
//
//   - GET    /world/generators          : List generators.
//   - POST   /world/generators          : Spawn a generator.
//   - GET    /world/generators/:handle  : Get one generator.
//   - DELETE /world/generators/:handle  : Destroy (?silent=true skips the notification).
package world
