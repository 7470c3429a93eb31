package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_NormalisesStatusAndMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/bogus", func(c fiber.Ctx) error { return Error(c, 42, "", nil) })
	app.Get("/created", func(c fiber.Ctx) error { return Success(c, fiber.StatusCreated, "", map[string]int{"n": 1}) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/bogus", nil))
	require.NoError(t, err)
	var body SemanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, MessageInternalServerError, body.Message)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/created", nil))
	require.NoError(t, err)
	body = SemanticResponse{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusCreated, body.Status)
	assert.Equal(t, MessageCreated, body.Message)
}

func TestDefaultMessage(t *testing.T) {
	assert.Equal(t, MessageTooManyRequests, DefaultMessage(fiber.StatusTooManyRequests))
	assert.Equal(t, MessageError, DefaultMessage(fiber.StatusTeapot))
	assert.Equal(t, MessageInternalServerError, DefaultMessage(fiber.StatusBadGateway))
}
