// Package stacks implements the stack-size management feature.
//
// It owns the persisted settings (global default, the id, name and prefab
// override tables, the allow and deny lists, batch and cleanup settings) and
// exposes the operator commands that change them. Every mutation is written
// to the settings database before it is handed to the reconcile loop, and the
// affected generators are reapplied in the same loop step.
//
// # Components
//
//   - Store: gorm-backed settings tables with version upgrade on load.
//   - Exporter: mirrors the settings as JSON into object storage.
//   - Document: the portable settings form used for YAML seed files and snapshots.
//   - Service: access-checked commands run against the reconcile loop.
//   - Handler: HTTP endpoints for the commands.
//
// # HTTP Endpoints
//
//   - GET    /stacks                          : Default limit and all overrides.
//   - GET    /stacks/status                   : Tracked and queued counts.
//   - POST   /stacks/reconcile                : Reapply every tracked generator.
//   - POST   /stacks/reload                   : Re-read the settings store.
//   - PUT    /stacks/default                  : Change the default limit.
//   - GET    /stacks/overrides/:kind/:key     : Read one override.
//   - PUT    /stacks/overrides/:kind/:key     : Set one override.
//   - DELETE /stacks/overrides/:kind/:key     : Remove one override.
//
// Mutating endpoints read the operator name from the configured actor header
// and answer 403 when the access lists reject it.
package stacks
