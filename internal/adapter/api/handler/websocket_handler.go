package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cidadealerta/internal/infrastructure/firebase"
	"cidadealerta/internal/infrastructure/ratelimit"
	ws "cidadealerta/internal/infrastructure/websocket"
	"cidadealerta/pkg/errors"
	"cidadealerta/pkg/logger"
	"cidadealerta/pkg/response"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Restrict to known origins in production.
	},
}

// TokenVerifier is the slice of the auth client the feed handler needs.
// Satisfied by infrastructure/firebase.AuthClient.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, idToken string) (*firebase.Identity, error)
}

type WebSocketHandler struct {
	hub      *ws.Hub
	verifier TokenVerifier
	limiter  *ratelimit.Limiter
}

func NewWebSocketHandler(hub *ws.Hub, verifier TokenVerifier) *WebSocketHandler {
	return &WebSocketHandler{
		hub:      hub,
		verifier: verifier,
		// A handful of reconnects per minute per user is plenty for a feed.
		limiter: ratelimit.NewLimiter(5, 5, time.Minute),
	}
}

// HandleIssueFeed upgrades the connection and subscribes it to the shared
// issue feed. The ID token comes from the query string because browsers
// cannot set headers on WebSocket upgrades.
func (h *WebSocketHandler) HandleIssueFeed(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		authHeader := c.Request().Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}
	}
	if token == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	identity, err := h.verifier.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
	}

	if allowed, wait := h.limiter.Allow(identity.UID); !allowed {
		return response.Error(c, errors.TooManyRequests(
			"Too many connection attempts, retry in "+wait.Round(time.Second).String(), nil))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written its own error response.
		logger.Error("Issue feed upgrade failed for %s: %v", identity.UID, err)
		return nil
	}

	client := &ws.Client{
		ID:     uuid.New().String(),
		UserID: identity.UID,
		Conn:   conn,
		Send:   make(chan []byte, 16),
	}

	h.hub.Register <- client

	go client.ReadPump(h.hub)
	go client.WritePump()

	return nil
}

// CleanupRateLimiters periodically drops idle per-user buckets.
func (h *WebSocketHandler) CleanupRateLimiters() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			h.limiter.Cleanup()
		}
	}()
}
