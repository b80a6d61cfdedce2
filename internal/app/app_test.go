package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
app:
  server:
    http:
      address: "127.0.0.1:0"
instrument:
  enabled: false
hash:
  hmac:
    secret: "test"
mail:
  host: "127.0.0.1"
  port: %d
  from: "no-reply@example.com"
`

// closedPort returns a local port with nothing listening on it.
func closedPort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func startApp(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(testConfig, closedPort(t))), 0o600))
	t.Setenv("CONFIG_PATH", path)

	a := New()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	a.Serve(l)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.Stop(ctx)
	})

	return "http://" + l.Addr().String()
}

func do(t *testing.T, method, url, body string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := (&http.Client{Timeout: 5 * time.Second}).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestApp(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping app test in short mode")
	}

	base := startApp(t)

	t.Run("health", func(t *testing.T) {
		code, body := do(t, http.MethodGet, base+"/health", "")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, map[string]any{"status": "ok"}, body["data"])
	})

	t.Run("request with invalid email", func(t *testing.T) {
		code, body := do(t, http.MethodPost, base+"/api/v1/auth/otp/request", `{"email":"nope"}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, map[string]any{"Email": []any{"Invalid email format."}}, body["errors"])
	})

	t.Run("request with unreachable mail server", func(t *testing.T) {
		code, body := do(t, http.MethodPost, base+"/api/v1/auth/otp/request", `{"email":"user@example.com"}`)
		assert.Equal(t, http.StatusGatewayTimeout, code)
		assert.Equal(t, "An error occurred while processing the OTP request.", body["message"])
	})

	t.Run("validate unknown code", func(t *testing.T) {
		code, body := do(t, http.MethodPost, base+"/api/v1/auth/otp/validate", `{"email":"other@example.com","otp":"123456"}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, map[string]any{"Otp": []any{"invalid or expired code"}}, body["errors"])
	})
}
