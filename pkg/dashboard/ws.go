package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/zeebo/errs/v2"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// session is one websocket client. The read pump only queues selections; a
// single writer goroutine projects them one at a time, so a burst of
// selections collapses into the most recent one.
type session struct {
	server  *Server
	conn    *websocket.Conn
	log     *zap.Logger
	pending *mailbox[request]
}

// request is a queued selection or the reason it could not be decoded.
type request struct {
	region string
	err    error
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.log.Debug("Websocket upgrade failed", zap.Error(err))
		return
	}

	sess := &session{
		server: s,
		conn:   conn,
		log: s.log.With(
			zap.String("session", uuid.NewString()),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		),
		pending: newMailbox[request](),
	}
	sess.run(r.Context())
}

func (sess *session) run(ctx context.Context) {
	m := sess.server.metrics
	m.sessions.Inc()
	defer m.sessions.Dec()

	sess.log.Debug("Websocket session opened")
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		sess.writePump(ctx)
	}()

	received := sess.readPump()
	cancel()
	<-done
	_ = sess.conn.Close()

	sess.log.Debug("Websocket session closed",
		zap.Duration("duration", time.Since(start)),
		zap.Int("received", received),
	)
}

// readPump queues every selection until the connection fails and returns the
// number of messages read.
func (sess *session) readPump() (received int) {
	sess.conn.SetReadLimit(maxMessageSize)
	_ = sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.log.Warn("Unexpected websocket close", zap.Error(err))
			}
			return received
		}
		received++

		var msg SelectMessage
		req := request{}
		if err := json.Unmarshal(data, &msg); err != nil {
			req.err = errs.Errorf("malformed message: %v", err)
		}
		req.region = msg.Region
		if sess.pending.put(req) {
			sess.server.metrics.dropped.Inc()
		}
	}
}

// writePump projects queued selections and keeps the connection alive
// until ctx is canceled.
func (sess *session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = sess.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			// Unblocks the read pump when the server is shutting down.
			_ = sess.conn.Close()
			return

		case <-sess.pending.ready():
			req, ok := sess.pending.take()
			if !ok {
				continue
			}
			if err := sess.write(sess.respond(req)); err != nil {
				sess.log.Debug("Websocket write failed", zap.Error(err))
				_ = sess.conn.Close()
				return
			}

		case <-ticker.C:
			_ = sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sess.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = sess.conn.Close()
				return
			}
		}
	}
}

func (sess *session) respond(req request) Message {
	if req.err != nil {
		return Message{Type: messageError, Error: req.err.Error()}
	}
	sel, err := sess.server.selections.Parse(req.region)
	if err != nil {
		return Message{Type: messageError, Error: err.Error()}
	}
	payload := newViewPayload(sess.server.project(sel))
	sess.log.Debug("Selection projected",
		zap.String("selection", string(sel)),
		zap.Int("rows", len(payload.Rows)),
	)
	return Message{Type: messageView, View: &payload}
}

func (sess *session) write(msg Message) error {
	_ = sess.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := sess.conn.WriteJSON(msg); err != nil {
		return errs.Wrap(err)
	}
	return nil
}
