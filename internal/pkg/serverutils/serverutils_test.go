package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Message string `json:"message" validate:"max=5"`
	Kind    string `json:"kind" validate:"required,oneof=a b"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     sampleRequest
		wantErr string
	}{
		{"valid", sampleRequest{Message: "hi", Kind: "a"}, ""},
		{"too long", sampleRequest{Message: "toolong", Kind: "a"}, "message must be at most 5 characters"},
		{"missing kind", sampleRequest{Message: "hi"}, "kind is required"},
		{"bad kind", sampleRequest{Kind: "c"}, "kind must be one of [a b]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var fe *fiber.Error
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, fiber.StatusBadRequest, fe.Code)
			assert.Contains(t, fe.Message, tt.wantErr)
		})
	}
}

func TestErrorHandler_Envelope(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/bad", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "nope") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db down") })

	tests := []struct {
		path    string
		code    int
		message string
	}{
		{"/bad", 400, "nope"},
		{"/boom", 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			var out BaseResponse
			require.NoError(t, json.Unmarshal(body, &out))
			assert.False(t, out.Success)
			assert.Equal(t, tt.message, out.Message)
		})
	}
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetRequestID(c)) })

	t.Run("generates when missing", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		_, perr := uuid.Parse(string(body))
		assert.NoError(t, perr)
		assert.Equal(t, string(body), resp.Header.Get(RequestIDHeader))
	})

	t.Run("reuses valid inbound id", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, id)
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, id, strings.TrimSpace(string(body)))
	})
}
