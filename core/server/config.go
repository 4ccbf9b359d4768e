package server

// Config holds configuration for the HTTP command surface.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// ActorHeader is the request header carrying the invoking operator's display name.
	ActorHeader string `mapstructure:"actor_header" default:"X-Actor"`
	// WorldAPI exposes the in-memory world's spawn and destroy routes.
	WorldAPI bool `mapstructure:"world_api" default:"true"`
}

// DefaultActorHeader is used when ActorHeader is not configured.
const DefaultActorHeader = "X-Actor"

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}

// Actor returns the configured actor header name.
func (c Config) Actor() string {
	if c.ActorHeader == "" {
		return DefaultActorHeader
	}
	return c.ActorHeader
}
