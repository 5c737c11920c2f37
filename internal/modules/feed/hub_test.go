package feed

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"altoev/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	before := hub.ClientCount()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	// registration happens on the server goroutine after the handshake
	require.Eventually(t, func() bool {
		return hub.ClientCount() > before
	}, 2*time.Second, 5*time.Millisecond)
	return conn
}

func TestHub_PublishReachesClient(t *testing.T) {
	hub := NewHub()
	conn := dialTestHub(t, hub)

	rec := &domain.Reservation{ID: 1, ReservationID: "100", Status: domain.StatusBooked}
	hub.Publish("created", rec)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))

	assert.Equal(t, "created", got.Type)
	require.NotNil(t, got.Reservation)
	assert.Equal(t, "100", got.Reservation.ReservationID)
}

func TestHub_ClientCount(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.ClientCount())

	dialTestHub(t, hub)
	dialTestHub(t, hub)

	assert.Equal(t, 2, hub.ClientCount())
}

func TestHub_ConcurrentPublishers(t *testing.T) {
	hub := NewHub()
	conn := dialTestHub(t, hub)

	const publishers = 8
	const perPublisher = 5

	var wg sync.WaitGroup
	for p := 0; p < publishers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perPublisher; i++ {
				hub.Publish("updated", &domain.Reservation{ReservationID: "100"})
			}
		}()
	}
	wg.Wait()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for i := 0; i < publishers*perPublisher; i++ {
		var got Event
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, "updated", got.Type)
	}
}

func TestHub_PublishWithNoClients(t *testing.T) {
	hub := NewHub()

	assert.NotPanics(t, func() {
		hub.Publish("created", &domain.Reservation{ReservationID: "100"})
	})
}
