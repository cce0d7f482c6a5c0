package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/checkai-srv/checkai/archive"
	"github.com/checkai-srv/checkai/eventbus"
	"github.com/checkai-srv/checkai/session"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	bus := eventbus.New(16)
	mgr := session.New(bus, archive.NewMemoryStore(), zap.NewNop())
	h := New(mgr, bus, zap.NewNop())
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	return srv, wsURL
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestCreateGameCommand(t *testing.T) {
	_, url := newTestServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "create_game", "request_id": "r1"}))

	var resp response
	require.NoError(t, conn.SetReadDeadline(timeIn(2)))
	require.NoError(t, conn.ReadJSON(&resp))

	assert.Equal(t, "response", resp.Type)
	assert.True(t, resp.Success)
	assert.Equal(t, "r1", resp.RequestID)
}

func TestUnknownActionReturnsError(t *testing.T) {
	_, url := newTestServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "not_a_real_action"}))

	var resp response
	require.NoError(t, conn.SetReadDeadline(timeIn(2)))
	require.NoError(t, conn.ReadJSON(&resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestSubmitMoveOverWebSocket(t *testing.T) {
	_, url := newTestServer(t)
	conn := dial(t, url)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": "create_game"}))
	var created response
	require.NoError(t, conn.SetReadDeadline(timeIn(2)))
	require.NoError(t, conn.ReadJSON(&created))
	gameID := created.Data.(map[string]any)["game_id"].(string)

	require.NoError(t, conn.WriteJSON(map[string]string{
		"action": "submit_move", "game_id": gameID, "from": "e2", "to": "e4",
	}))
	var moveResp response
	require.NoError(t, conn.SetReadDeadline(timeIn(2)))
	require.NoError(t, conn.ReadJSON(&moveResp))
	assert.True(t, moveResp.Success)
}

func timeIn(seconds int) (t time.Time) {
	return time.Now().Add(time.Duration(seconds) * time.Second)
}
