package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"naca/calculator"
	"naca/model"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	calc     *calculator.Calculator
}

func NewServer(addr string, upgrader websocket.Upgrader, calc *calculator.Calculator) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		calc:     calc,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	hub := NewHub(s.calc, conn)
	go hub.handleRequest()
	defer hub.close()

	log.WithField("remote", r.RemoteAddr).Info("client connected")
	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("read failed")
			}
			log.WithField("remote", r.RemoteAddr).Info("client disconnected")
			return
		}
		hub.enqueue(msg)
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

// Serve listens until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown failed")
		}
	}()

	log.WithField("addr", s.addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
