package httpapi

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/hamed0406/pinglight/internal/domain"
)

const streamWriteTimeout = 5 * time.Second

var streamUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(r.Host), strings.TrimSpace(u.Host))
	},
}

// handleStream pushes the current signal and then every new one.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := streamUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	updates, cancel := s.Signals.Subscribe()
	defer cancel()

	if sig, ok := s.Signals.Latest(r.Context()); ok {
		if err := writeSignal(conn, sig); err != nil {
			return
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case sig, ok := <-updates:
			if !ok {
				return
			}
			if err := writeSignal(conn, sig); err != nil {
				s.Logger.Debug("stream_write_error", zap.Error(err))
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func writeSignal(conn *websocket.Conn, sig domain.Signal) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(sig)
}
