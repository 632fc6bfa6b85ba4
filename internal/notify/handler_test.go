package notify

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebSocketHandler_DefaultOriginsAdmitBrowsers(t *testing.T) {
	// "*" is the configured fallback when ALLOWED_ORIGINS is unset; a
	// browser origin must pass with it.
	ws := NewWebSocketHandler(NewHub(), "*")

	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, ws.checkOrigin(req))
}

func TestWebSocketHandler_OriginList(t *testing.T) {
	ws := NewWebSocketHandler(NewHub(), "http://app.example.com, http://localhost:3000")

	req := httptest.NewRequest("GET", "/ws", nil)

	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, ws.checkOrigin(req))

	req.Header.Set("Origin", "http://app.example.com")
	assert.True(t, ws.checkOrigin(req))

	req.Header.Set("Origin", "http://evil.example.com")
	assert.False(t, ws.checkOrigin(req))

	// Non-browser clients send no Origin header and always pass.
	req.Header.Del("Origin")
	assert.True(t, ws.checkOrigin(req))
}
