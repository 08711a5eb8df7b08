package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/known", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Note not found")
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("pq: connection refused host=10.0.0.5 dbname=notes")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/known", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body ErrResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "Note not found", body.Error)

	// Unexpected errors keep their detail out of the response body.
	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.NotContains(t, body.Error, "pq:")
}
