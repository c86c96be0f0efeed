package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/kryptos/pkg/errors"
	"github.com/matzehuels/kryptos/pkg/workbench"
)

// liveWriteTimeout bounds a single reply on a live connection.
const liveWriteTimeout = 5 * time.Second

// handleLive upgrades to a WebSocket for interactive editing. Every text
// message is a JSON workbench request and is answered with the body
// POST /api/scytale would return, or an error body. A bad message does not
// close the connection.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		s.logger.Debug("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.opts.MaxBodyBytes)

	ctx := r.Context()
	stop := context.AfterFunc(ctx, func() {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = conn.Close()
	})
	defer stop()

	logger := s.logger.With("remote", r.RemoteAddr)
	logger.Debug("live session opened")
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("live session read failed", "err", err)
			}
			logger.Debug("live session closed")
			return
		}

		reply := s.liveReply(ctx, data)
		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			logger.Debug("live session write failed", "err", err)
			return
		}
	}
}

func (s *Server) liveReply(ctx context.Context, data []byte) any {
	var req workbench.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return errorBodyFor(errors.Wrap(errors.ErrCodeInvalidJSON, err, "invalid JSON"))
	}
	res, err := s.runner.Run(ctx, req)
	if err != nil {
		return errorBodyFor(err)
	}
	return newScytaleResponse(res)
}
