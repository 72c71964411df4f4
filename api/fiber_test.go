package api

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/academic-cert-api/api/routes"
	"github.com/sunthewhat/academic-cert-api/type/shared"
)

func testApp() *fiber.App {
	origin := "http://localhost:3000"
	port := ":0"
	secret := "0123456789abcdef0123"
	return NewApp(&shared.Config{
		Port:      &port,
		Cors:      []*string{&origin},
		JWTSecret: &secret,
	}, routes.Controllers{})
}

func TestNewApp_Routes(t *testing.T) {
	app := testApp()

	tests := []struct {
		name   string
		method string
		path   string
		status int
		body   string
	}{
		{"health", "GET", "/health", 200, "ok"},
		{"metrics", "GET", "/metrics", 200, "academic_cert_http_requests_total"},
		{"unknown route", "GET", "/nope", 404, "GET /nope not found"},
		{"certificate routes need a token", "GET", "/api/certificate", 401, "JWT validation failure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.body)
		})
	}
}

func TestNewApp_Cors(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest("OPTIONS", "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, 204, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
