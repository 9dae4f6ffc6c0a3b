package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tubescribe/tubescribe/batch"
)

// EventSnapshot is sent once when a websocket connects and carries the current list.
const EventSnapshot batch.EventType = "snapshot"

const writeWait = 10 * time.Second

func (a *App) events(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	events, unsubscribe := a.store.Subscribe()
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := a.write(conn, batch.Event{Type: EventSnapshot, Results: a.store.Results()}); err != nil {
		return
	}

	for {
		select {
		case <-closed:
			return
		case <-a.ctx.Done():
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait),
			)
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := a.write(conn, e); err != nil {
				a.logger.WithError(err).Debug("websocket write failed")
				return
			}
		}
	}
}

func (a *App) write(conn *websocket.Conn, e batch.Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(e)
}
