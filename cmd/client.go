package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"stack-manager/core/config"
	"stack-manager/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
)

var (
	apiAddr  string
	apiActor string
)

// addClientFlags registers the flags of commands talking to a running server.
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&apiAddr, "addr", "", "Server address (default http://localhost:<server.port>)")
	cmd.Flags().StringVar(&apiActor, "actor", "", "Operator display name sent in the actor header")
}

// apiClient calls the stacks HTTP API of a running server.
type apiClient struct {
	base        string
	apiKey      string
	actorHeader string
	actor       string
	timeout     time.Duration
}

func newAPIClient() (*apiClient, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	base := apiAddr
	if base == "" {
		base = "http://localhost" + cfg.Server.Address()
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	return &apiClient{
		base:        strings.TrimSuffix(base, "/"),
		apiKey:      cfg.Server.ApiKey,
		actorHeader: cfg.Server.Actor(),
		actor:       apiActor,
		timeout:     30 * time.Second,
	}, nil
}

// do sends body as JSON and decodes a successful response into out.
func (c *apiClient) do(method, path string, body, out any) error {
	// Bytes releases the agent.
	agent := fiber.AcquireAgent()

	req := agent.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.base + path)
	if c.apiKey != "" {
		req.Header.Set(auth.HeaderName, c.apiKey)
	}
	if c.actor != "" {
		req.Header.Set(c.actorHeader, c.actor)
	}
	if body != nil {
		agent.JSON(body)
	}
	agent.Timeout(c.timeout)

	if err := agent.Parse(); err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	code, data, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request to %s failed: %w", c.base, errors.Join(errs...))
	}

	if code >= fiber.StatusBadRequest {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %d %s", method, path, code, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, code)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
