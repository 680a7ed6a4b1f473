package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/roach88/steam/internal/steam"
)

// Server accepts websocket clients on /ws.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	resolver *steam.Resolver
	log      logrus.FieldLogger
}

// NewServer returns a server listening on addr.
func NewServer(addr string, r *steam.Resolver, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		resolver: r,
		log:      log,
	}
}

// Handler returns the HTTP handler serving /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("upgrade")
		return
	}
	defer conn.Close()

	log := s.log.WithField("remote", conn.RemoteAddr().String())
	log.Debug("client connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	hub := NewHub(s.resolver, log)
	hub.conn = conn
	done := make(chan struct{})
	go hub.handleRequest(ctx)
	go func() {
		hub.handleResponse()
		close(done)
	}()

	for {
		var msg Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Debug("read")
			}
			break
		}
		select {
		case hub.msg <- msg:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(hub.msg)
	<-done
	log.Debug("client disconnected")
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.addr).Info("websocket server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
