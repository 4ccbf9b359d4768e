// Package server holds the HTTP command surface configuration.
//
// The Config struct defines the listen port, the API key protecting every
// route, and the header that carries the operator's display name. The display
// name is what the access filter checks before a mutating command runs.
package server
