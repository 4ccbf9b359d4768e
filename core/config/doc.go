// Package config loads the process configuration.
//
// Values come from struct `default` tags, then an optional config.yaml, then
// a .env file and the environment (SECTION_KEY, e.g. RECONCILE_BATCH_SIZE).
// Viper does the merging; godotenv loads the .env file.
//
// # Configuration Structure
//
//   - Server: listen port, API key, actor header
//   - Database: settings store driver and connection
//   - Storage: optional MinIO bucket for settings snapshots
//   - Log: level and format
//   - Reconcile: tick period and the seed used for an empty settings store
//
// The stack limits themselves live in the settings store, not here; see
// feature/stacks.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
