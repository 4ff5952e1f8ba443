package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub, user uint, group string) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(user, group, ws)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	// registration happens in the handler goroutine after the
	// handshake returns on our side
	deadline := time.Now().Add(2 * time.Second)
	for len(hub.snapshot(group)) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("connection never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	return client
}

func readEnvelope(t *testing.T, client *websocket.Conn) map[string]any {
	t.Helper()

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var data map[string]any
	require.NoError(t, client.ReadJSON(&data))
	return data
}

func TestHubPublishTargetsUser(t *testing.T) {
	hub := NewHub()
	owner := dialHub(t, hub, 1, "jobs")
	other := dialHub(t, hub, 2, "jobs")

	hub.Publish(1, "jobs", map[string]any{"action": "update_job", "job_id": float64(7)})

	got := readEnvelope(t, owner)
	assert.Equal(t, "update_job", got["action"])

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	var leak map[string]any
	assert.Error(t, other.ReadJSON(&leak), "other user must not receive the envelope")
}

func TestHubBroadcastReachesGroup(t *testing.T) {
	hub := NewHub()
	first := dialHub(t, hub, 1, "client")
	second := dialHub(t, hub, 2, "client")

	hub.Broadcast("client", map[string]any{"event": "system_status", "status": "maintenance"})

	assert.Equal(t, "system_status", readEnvelope(t, first)["event"])
	assert.Equal(t, "system_status", readEnvelope(t, second)["event"])
}

func TestHubGroupsAreIsolated(t *testing.T) {
	hub := NewHub()
	jobs := dialHub(t, hub, 1, "jobs")

	hub.Broadcast("admin", map[string]any{"action": "on_submitted"})

	jobs.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	var leak map[string]any
	assert.Error(t, jobs.ReadJSON(&leak))
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	dialHub(t, hub, 1, "jobs")

	conns := hub.snapshot("jobs")
	require.Len(t, conns, 1)

	hub.Unregister(conns[0])
	assert.Empty(t, hub.snapshot("jobs"))

	// publishing to a gone connection is a silent no-op
	hub.Publish(1, "jobs", map[string]any{"action": "update_job"})
}

func TestHubSendAfterUnregisterIsNoOp(t *testing.T) {
	hub := NewHub()
	dialHub(t, hub, 1, "jobs")

	// a fan-out worker can hold a snapshot taken before the client
	// disconnected; its late Send must not panic the process
	stale := hub.snapshot("jobs")
	require.Len(t, stale, 1)

	hub.Unregister(stale[0])
	assert.NotPanics(t, func() {
		stale[0].Send(map[string]any{"action": "update_job"})
	})

	// unregistering twice is equally harmless
	assert.NotPanics(t, func() { hub.Unregister(stale[0]) })
}
