package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/roach88/steam/internal/cycle"
	"github.com/roach88/steam/internal/steam"
)

// Hub serves one websocket connection. Requests are handled in arrival
// order and replies are written by a single goroutine.
type Hub struct {
	resolver *steam.Resolver
	conn     *websocket.Conn
	log      logrus.FieldLogger

	// request
	msg chan Msg
	// response
	reply chan Msg
}

// NewHub returns a hub that resolves requests with r.
func NewHub(r *steam.Resolver, log logrus.FieldLogger) *Hub {
	return &Hub{
		resolver: r,
		log:      log,
		msg:      make(chan Msg, 10),
		reply:    make(chan Msg, 10),
	}
}

func (h *Hub) handleRequest(ctx context.Context) {
	defer close(h.reply)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-h.msg:
			if !ok {
				return
			}
			select {
			case h.reply <- h.Handle(msg):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (h *Hub) handleResponse() {
	for reply := range h.reply {
		if err := h.conn.WriteJSON(&reply); err != nil {
			h.log.WithError(err).Warn("write reply")
		}
	}
}

// Handle answers one request.
func (h *Hub) Handle(msg Msg) Msg {
	log := h.log.WithField("type", msg.Type)
	switch msg.Type {
	case TypeResolve:
		s := steam.NewState("")
		if err := json.Unmarshal([]byte(msg.Content), s); err != nil {
			return errorMsg(CodeBadRequest, fmt.Errorf("decode state: %w", err))
		}
		if err := h.resolver.Resolve(s); err != nil {
			log.WithError(err).Debug("resolve failed")
			return errorMsg(string(steam.CodeOf(err)), err)
		}
		return jsonMsg(TypeResolved, s)

	case TypeRankine:
		c := cycle.New("Rankine Cycle")
		if err := json.Unmarshal([]byte(msg.Content), &c); err != nil {
			return errorMsg(CodeBadRequest, fmt.Errorf("decode cycle: %w", err))
		}
		res, err := c.Calc(h.resolver)
		if err != nil {
			log.WithError(err).Debug("cycle failed")
			code := string(steam.CodeOf(err))
			if code == "" {
				code = CodeBadRequest
			}
			return errorMsg(code, err)
		}
		return jsonMsg(TypeRankine, res)

	default:
		return errorMsg(CodeUnknownType, fmt.Errorf("no such type %q", msg.Type))
	}
}

func jsonMsg(typ string, v any) Msg {
	data, err := json.Marshal(v)
	if err != nil {
		return errorMsg(CodeInternal, err)
	}
	return Msg{Type: typ, Content: string(data)}
}

func errorMsg(code string, err error) Msg {
	data, _ := json.Marshal(ErrorContent{Code: code, Message: err.Error()})
	return Msg{Type: TypeError, Content: string(data)}
}
