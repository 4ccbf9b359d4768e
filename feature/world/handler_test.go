package world_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"stack-manager/feature/world"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWorldApp(w *world.World) *fiber.App {
	app := fiber.New()
	world.NewHandler(w, zap.NewNop()).RegisterRoutes(app)
	return app
}

func TestHandler_SpawnGetDestroy(t *testing.T) {
	w := world.New(nil)
	rec := &recorder{}
	w.SetListener(rec)
	app := newWorldApp(w)

	body := `{"network_id": 42, "name": "generator.small", "amounts": [5000]}`
	req := httptest.NewRequest("POST", "/world/generators", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var view world.View
	data, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Equal(t, uint64(42), view.NetworkID)
	assert.Len(t, rec.spawned, 1)

	resp, err = app.Test(httptest.NewRequest("GET", "/world/generators/"+view.Handle, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/world/generators/"+view.Handle+"?silent=true", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Empty(t, rec.destroyed)

	resp, err = app.Test(httptest.NewRequest("GET", "/world/generators/"+view.Handle, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandler_SpawnInvalid(t *testing.T) {
	app := newWorldApp(world.New(nil))

	req := httptest.NewRequest("POST", "/world/generators", strings.NewReader(`{"amounts": [1]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandler_List(t *testing.T) {
	w := world.New(nil)
	_, _ = w.Spawn(world.SpawnSpec{Name: "a"})
	_, _ = w.Spawn(world.SpawnSpec{Name: "b"})
	app := newWorldApp(w)

	resp, err := app.Test(httptest.NewRequest("GET", "/world/generators", nil))
	require.NoError(t, err)

	var views []world.View
	data, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(data, &views))
	require.Len(t, views, 2)
	assert.Equal(t, "a", views[0].Name)
	assert.Equal(t, "b", views[1].Name)
}
