package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relatify/relatify_go_server/internal/pkg/jwt"
	"github.com/relatify/relatify_go_server/internal/pkg/response"
	"github.com/relatify/relatify_go_server/internal/pkg/ws"
)

const testWSSecret = "test-secret-key-for-ws"

func setupWSServer(t *testing.T) (*httptest.Server, *ws.Hub) {
	t.Helper()

	hub := ws.NewHub()
	handler := NewWebSocketHandler(hub, testWSSecret)

	router := gin.New()
	router.GET("/ws", handler.Handle)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, hub
}

func TestWebSocketHandler_MissingToken(t *testing.T) {
	server, _ := setupWSServer(t)

	resp, err := http.Get(server.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebSocketHandler_InvalidToken(t *testing.T) {
	server, _ := setupWSServer(t)

	resp, err := http.Get(server.URL + "/ws?token=not-a-token")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body response.Response
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, response.CodeAuthFailed, body.Code)
}

func TestWebSocketHandler_ConnectAndPush(t *testing.T) {
	server, hub := setupWSServer(t)

	token, err := jwt.GenerateToken(77, testWSSecret, 1)
	require.NoError(t, err)

	wsURL := strings.Replace(server.URL, "http://", "ws://", 1) + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// 注册是同步的，连接建立后用户立即在线
	assert.True(t, hub.IsOnline(77))

	msg := &ws.Message{
		Type: ws.TypeBadgeEarned,
		Data: map[string]interface{}{"badge_type": "first_explanation"},
	}
	require.NoError(t, hub.SendToUser(77, msg))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var received ws.Message
	require.NoError(t, conn.ReadJSON(&received))
	assert.Equal(t, ws.TypeBadgeEarned, received.Type)
}
