package http

import (
	"net/http"

	"bigbang-quiz-service/internal/domain"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type outboundMessage struct {
	Type    string            `json:"type"`
	Payload domain.LevelBoard `json:"payload"`
}

// serveRankingFeed upgrades the request and streams leaderboard snapshots:
// one on connect, then one after every ranking mutation. The read loop only
// watches for the peer closing; no inbound messages are expected.
func (a *API) serveRankingFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel, err := a.ranking.Subscribe(r.Context())
	if err != nil {
		a.logger.Error("ranking subscribe failed", "error", err)
		return
	}
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case board, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage{Type: "ranking", Payload: board}); err != nil {
				a.logger.Debug("ws write error", "error", err)
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
