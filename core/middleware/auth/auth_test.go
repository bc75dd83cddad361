package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/results", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		path   string
		header string
		want   int
	}{
		{"No Key Configured", Config{}, "/results", "", fiber.StatusOK},
		{"Valid Header", Config{ApiKey: "secret"}, "/results", "secret", fiber.StatusOK},
		{"Valid Query", Config{ApiKey: "secret"}, "/results?api_key=secret", "", fiber.StatusOK},
		{"Wrong Key", Config{ApiKey: "secret"}, "/results", "nope", fiber.StatusUnauthorized},
		{"Missing Key", Config{ApiKey: "secret"}, "/results", "", fiber.StatusUnauthorized},
		{"Skipped Path", Config{ApiKey: "secret", Skip: []string{"/health"}}, "/health", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(HeaderName, tt.header)
			}
			resp, err := newApp(tt.cfg).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
