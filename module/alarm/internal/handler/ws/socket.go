package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Musoye/GeoSmart/module/alarm/domain"
	"github.com/Musoye/GeoSmart/module/alarm/internal/auth"
	"github.com/Musoye/GeoSmart/module/alarm/internal/push"
)

const (
	// Time allowed to write a message to the client.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the client.
	pongWait = 60 * time.Second

	// Send pings to client with this period. Must be less than pongWait.
	pingPeriod = 15 * time.Second

	// Maximum message size allowed from client.
	maxMessageSize = 512

	// Buffered events per connection before sends start dropping.
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type tokenVerifier interface {
	Verify(token string) (string, error)
}

// clientFrame is what clients send over the socket. The only recognized type
// is "register", which binds the connection to the token's user.
type clientFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

type SocketHandler struct {
	registry *push.Registry
	tokens   tokenVerifier
}

func NewSocketHandler(registry *push.Registry, tokens tokenVerifier) *SocketHandler {
	return &SocketHandler{registry: registry, tokens: tokens}
}

func (h *SocketHandler) Register(r *gin.RouterGroup) {
	r.GET("/ws", h.Serve)
}

func (h *SocketHandler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}

	s := &session{
		id:     uuid.NewString(),
		conn:   conn,
		events: make(chan *domain.ZoneEvent, sendBuffer),
		done:   make(chan struct{}),
	}
	log.Printf("client connected: %s", s.id)

	go s.writeLoop()
	s.readLoop(h.registry, h.tokens)
}

type session struct {
	id     string
	conn   *websocket.Conn
	events chan *domain.ZoneEvent

	done      chan struct{}
	closeOnce sync.Once
}

var _ push.Conn = (*session)(nil)

func (s *session) ID() string { return s.id }

// Send hands the event to the write loop without blocking the caller.
func (s *session) Send(ev *domain.ZoneEvent) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	default:
		return false
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

func (s *session) readLoop(registry *push.Registry, tokens tokenVerifier) {
	defer func() {
		registry.UnregisterByConn(s.id)
		s.close()
		log.Printf("client disconnected: %s", s.id)
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error { s.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("read from %s: %v", s.id, err)
			}
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			log.Printf("invalid frame from %s: %v", s.id, err)
			continue
		}

		if frame.Type != "register" {
			continue
		}

		userID, err := tokens.Verify(frame.Token)
		if err != nil {
			// Keep the connection open; the client may retry with a
			// fresh token.
			switch {
			case errors.Is(err, auth.ErrTokenMalformed):
				log.Printf("register from %s: malformed token", s.id)
			case errors.Is(err, auth.ErrTokenExpired):
				log.Printf("register from %s: expired token", s.id)
			default:
				log.Printf("register from %s: invalid token", s.id)
			}
			continue
		}

		registry.Register(userID, s)
		log.Printf("user %s registered connection %s", userID, s.id)
	}
}

func (s *session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.close()
	}()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case ev := <-s.events:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}
}
