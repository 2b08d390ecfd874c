package httpx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Esangam/Esangam-UI/internal/domain/model"
	"github.com/Esangam/Esangam-UI/internal/notify"
)

const (
	socketWriteWait  = 5 * time.Second
	socketPongWait   = 60 * time.Second
	socketPingPeriod = (socketPongWait * 9) / 10
	socketReadLimit  = 512
)

// CheckOrigin is left nil so gorilla enforces a same-origin handshake.
var upgrader = websocket.Upgrader{ //nolint:gochecknoglobals // stateless upgrader shared by all connections
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// notificationSnapshot is the payload pushed to the browser after every queue change.
type notificationSnapshot struct {
	State    string                      `json:"state"`
	Messages []model.NotificationMessage `json:"messages"`
}

// socketCommand is what the browser sends back over the socket.
type socketCommand struct {
	Dismiss int64 `json:"dismiss,omitempty"`
}

func snapshotOf(ch *notify.Channel) notificationSnapshot {
	msgs := ch.Messages()
	if msgs == nil {
		msgs = []model.NotificationMessage{}
	}
	return notificationSnapshot{State: ch.State().String(), Messages: msgs}
}

// Notifications returns the pending notification queue as JSON or as the toast fragment.
// GET /notifications.
func (h *UIHandlers) Notifications(w http.ResponseWriter, r *http.Request) {
	bs, ok := GetBrowserSessionFromContext(r.Context())
	if !ok {
		WriteJSON(w, http.StatusOK, notificationSnapshot{State: notify.StateClosed.String(), Messages: []model.NotificationMessage{}})
		return
	}
	snap := snapshotOf(bs.Channel)
	if WantsJSON(r) {
		WriteJSON(w, http.StatusOK, snap)
		return
	}
	if err := h.T.RenderNamed(w, "notifications", snap); err != nil {
		h.logAndRenderTemplateError(w, r, err, "notifications fragment")
	}
}

// DismissNotification removes one message from the queue. Unknown ids are a no-op.
// POST /notifications/{id}/dismiss.
func (h *UIHandlers) DismissNotification(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_id", Err: err})
		return
	}
	bs, ok := GetBrowserSessionFromContext(r.Context())
	if ok {
		bs.Channel.Dismiss(id)
	}
	if IsHTMX(r) {
		// The toast removes itself; nothing to swap.
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NotificationsSocket pushes the queue to the browser over a websocket.
// Connecting counts as mounting the notification view: a stream that closed on a
// transport error is reopened once. While connected the browser session is not swept
// as idle. The socket closes when the channel is torn down.
// GET /notifications/ws.
func (h *UIHandlers) NotificationsSocket(w http.ResponseWriter, r *http.Request) {
	bs, ok := GetBrowserSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "browser session unavailable", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger().DebugContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	detach := bs.Attach()
	defer detach()

	ch := bs.Channel
	ch.Reopen()
	changes, unsubscribe := ch.Subscribe()
	defer unsubscribe()

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		conn.SetReadLimit(socketReadLimit)
		_ = conn.SetReadDeadline(time.Now().Add(socketPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(socketPongWait))
		})
		for {
			var cmd socketCommand
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}
			if cmd.Dismiss != 0 {
				ch.Dismiss(cmd.Dismiss)
			}
		}
	}()

	ping := time.NewTicker(socketPingPeriod)
	defer ping.Stop()

	write := func(v any) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
		return conn.WriteJSON(v) == nil
	}

	if !write(snapshotOf(ch)) {
		return
	}
	for {
		select {
		case _, open := <-changes:
			if !open {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"),
					time.Now().Add(socketWriteWait))
				return
			}
			if !write(snapshotOf(ch)) {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(socketWriteWait)); err != nil {
				return
			}
		case <-readDone:
			return
		}
	}
}
