package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"relay-chat/internal/domain"
	"relay-chat/internal/events"
	"relay-chat/internal/redis"
	"relay-chat/internal/services"
	"relay-chat/internal/transport/httpdto"
	"relay-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Inbound frame types
const (
	FrameAddUser        = "user.addUser"
	FrameDisconnectUser = "user.disconnectUser"
	FrameSendMessage    = "chat.sendMessage"
)

type inboundFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Gateway translates inbound websocket frames into presence and relay calls
// and pushes the resulting notifications back onto the broker.
type Gateway struct {
	presence *services.PresenceService
	relay    *services.RelayService
	notifier events.Notifier
	hub      *Hub
	limiter  *redis.RateLimiter
	log      *logger.Logger
}

// NewGateway wires the gateway. limiter may be nil, which disables the
// per-sender message limit.
func NewGateway(presence *services.PresenceService, relay *services.RelayService, notifier events.Notifier, hub *Hub, limiter *redis.RateLimiter, log *logger.Logger) *Gateway {
	return &Gateway{presence: presence, relay: relay, notifier: notifier, hub: hub, limiter: limiter, log: log}
}

func (g *Gateway) Connect(c *gin.Context) {
	nickName := strings.TrimSpace(c.Query("nickName"))
	if nickName == "" {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("nickName is required", "INVALID_REQUEST"))
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(conn, nickName)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g.hub.Register(client)
	g.hub.Subscribe(client, events.PublicDestination)
	g.hub.Subscribe(client, events.UserQueue(nickName))
	go client.WriteLoop(ctx)

	g.readLoop(ctx, client)

	g.hub.Unregister(client)

	// A vanished connection degrades to an explicit disconnect so the user
	// does not stay ONLINE behind a dead socket.
	g.disconnectUser(context.Background(), client, domain.User{NickName: nickName})
}

func (g *Gateway) readLoop(ctx context.Context, client *Client) {
	conn := client.Conn
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			g.sendError(client, "malformed frame")
			continue
		}
		g.dispatch(ctx, client, frame)
	}
}

func (g *Gateway) dispatch(ctx context.Context, client *Client, frame inboundFrame) {
	switch frame.Type {
	case FrameAddUser:
		var u domain.User
		if err := json.Unmarshal(frame.Payload, &u); err != nil {
			g.sendError(client, "malformed user payload")
			return
		}
		g.addUser(ctx, client, u)
	case FrameDisconnectUser:
		var u domain.User
		if err := json.Unmarshal(frame.Payload, &u); err != nil {
			g.sendError(client, "malformed user payload")
			return
		}
		g.disconnectUser(ctx, client, u)
	case FrameSendMessage:
		var m domain.ChatMessage
		if err := json.Unmarshal(frame.Payload, &m); err != nil {
			g.sendError(client, "malformed message payload")
			return
		}
		g.sendMessage(ctx, client, m)
	default:
		g.sendError(client, "unknown frame type: "+frame.Type)
	}
}

// addUser registers presence and echoes the connected user on the public
// destination.
func (g *Gateway) addUser(ctx context.Context, client *Client, u domain.User) {
	connected, err := g.presence.Connect(ctx, u)
	if err != nil {
		g.log.Errorf("connect user %q: %v", u.NickName, err)
		g.sendError(client, "connect failed")
		return
	}
	if err := g.notifier.Notify(ctx, events.PublicDestination, connected); err != nil {
		g.log.Errorf("broadcast user %q online: %v", u.NickName, err)
	}
}

// disconnectUser transitions the user OFFLINE and echoes the change. The
// underlying transition is idempotent, so duplicate disconnects are safe.
func (g *Gateway) disconnectUser(ctx context.Context, client *Client, u domain.User) {
	if err := g.presence.Disconnect(ctx, u); err != nil {
		g.log.Errorf("disconnect user %q: %v", u.NickName, err)
		if client != nil {
			g.sendError(client, "disconnect failed")
		}
		return
	}
	u.Status = domain.StatusOffline
	if err := g.notifier.Notify(ctx, events.PublicDestination, u); err != nil {
		g.log.Errorf("broadcast user %q offline: %v", u.NickName, err)
	}
}

// sendMessage relays the message and pushes the derived notification onto
// the recipient's queue. The message is persisted before the publish is
// attempted, so a publish failure never loses it.
func (g *Gateway) sendMessage(ctx context.Context, client *Client, m domain.ChatMessage) {
	if g.limiter != nil {
		result, err := g.limiter.AllowMessage(ctx, m.SenderID)
		switch {
		case err != nil:
			// A limiter outage must not block delivery.
			g.log.Warnf("message rate limit check for %q: %v", m.SenderID, err)
		case !result.Allowed:
			g.sendError(client, "message rate limit exceeded")
			return
		}
	}

	notification, err := g.relay.Deliver(ctx, m)
	if err != nil {
		g.log.Errorf("deliver message from %q to %q: %v", m.SenderID, m.RecipientID, err)
		g.sendError(client, "deliver failed")
		return
	}
	if err := g.notifier.Notify(ctx, events.UserQueue(notification.RecipientID), notification); err != nil {
		g.log.Errorf("notify recipient %q: %v", notification.RecipientID, err)
	}
}

func (g *Gateway) sendError(client *Client, msg string) {
	data, err := json.Marshal(errorFrame{Type: "error", Error: msg})
	if err != nil {
		return
	}
	client.SendMessage(data)
}
