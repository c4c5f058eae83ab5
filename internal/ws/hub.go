package ws

import (
	"context"
	"net/http"
	"sync"

	"log/slog"

	"github.com/google/uuid"

	"padlink/internal/audit"
	"padlink/pkg/metrics"
)

// Hub is the connection registry plus the event dispatch for the relay.
// Each connection is served by its own goroutine; the Directory is the only
// state shared across them.
type Hub struct {
	log   *slog.Logger
	dir   *Directory
	bus   *RedisBus       // nil in single-instance mode
	audit audit.Publisher

	mu    sync.Mutex
	conns map[string]*Conn // live connections by ID
}

// NewHub sets up the hub with an optional cross-instance bus and audit sink
func NewHub(logger *slog.Logger, bus *RedisBus, sink audit.Publisher) *Hub {
	if sink == nil {
		sink = audit.Nop{}
	}
	return &Hub{
		log:   logger,
		dir:   NewDirectory(),
		bus:   bus,
		audit: sink,
		conns: map[string]*Conn{},
	}
}

// Run forwards bus frames from other instances into local rooms. Returns
// when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	if h.bus != nil {
		go h.bus.Subscribe(ctx, func(msg BusMessage) {
			h.deliver(msg.RoomID, msg.Payload, nil)
		})
	}
	<-ctx.Done()
}

// ServeWS handles a new /ws connection for its whole lifetime.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := Accept(w, r)
	if err != nil {
		h.log.Error("ws.accept", "err", err)
		return
	}

	c := NewConn(uuid.NewString(), conn)
	h.add(c)
	go c.WriteLoop(ctx)

	for {
		raw, ok := c.Read(ctx)
		if !ok {
			break
		}
		h.handleFrame(ctx, c, raw)
	}

	h.drop(c)
	_ = c.Close()
}

// add registers a freshly accepted connection.
func (h *Hub) add(c *Conn) {
	h.mu.Lock()
	h.conns[c.ID()] = c
	h.mu.Unlock()

	metrics.ConnectionsActive.Inc()
	h.log.Info("ws.connect", "conn", c.ID())
	h.audit.Publish(audit.Event{Type: audit.TypeConnect, ConnID: c.ID()})
}

// drop tears a connection out of the registry and every room. Idempotent:
// a second call for the same connection is a no-op.
func (h *Hub) drop(c *Conn) {
	h.mu.Lock()
	_, live := h.conns[c.ID()]
	delete(h.conns, c.ID())
	h.mu.Unlock()
	if !live {
		return
	}

	h.dir.RemoveEverywhere(c)
	metrics.ConnectionsActive.Dec()
	h.log.Info("ws.disconnect", "conn", c.ID())
	h.audit.Publish(audit.Event{Type: audit.TypeDisconnect, ConnID: c.ID()})
}

// handleFrame dispatches one inbound frame. Malformed frames are logged and
// ignored; nothing here ever surfaces an error to the sender.
func (h *Hub) handleFrame(ctx context.Context, c *Conn, raw []byte) {
	env, err := decodeEnvelope(raw)
	if err != nil {
		h.log.Debug("ws.frame.rejected", "conn", c.ID(), "err", err)
		return
	}

	switch env.Event {
	case EventJoinRoom:
		h.joinRoom(ctx, c, env.RoomID)
	case EventSendCommand:
		h.relay(ctx, c, env.RoomID, env.Action)
	}
}

// joinRoom adds c to the room and tells the other members a controller
// arrived. The joiner itself gets no notification.
func (h *Hub) joinRoom(ctx context.Context, c *Conn, roomID string) {
	h.dir.Join(c, roomID)
	h.log.Info("room.join", "conn", c.ID(), "room", roomID)
	metrics.JoinsTotal.Inc()
	h.audit.Publish(audit.Event{Type: audit.TypeJoin, ConnID: c.ID(), RoomID: roomID})

	frame := controllerJoinedFrame()
	h.deliver(roomID, frame, c)
	if h.bus != nil {
		if err := h.bus.Publish(ctx, roomID, frame); err != nil {
			h.log.Warn("bus.publish", "room", roomID, "err", err)
		}
	}
}

// relay fans an action out to every other member of the room. An unknown or
// empty room means zero recipients, not an error.
func (h *Hub) relay(ctx context.Context, c *Conn, roomID, action string) {
	metrics.CommandsRelayedTotal.Inc()
	h.audit.Publish(audit.Event{Type: audit.TypeCommand, ConnID: c.ID(), RoomID: roomID, Action: action})

	frame := receiveCommandFrame(action)
	h.deliver(roomID, frame, c)
	if h.bus != nil {
		if err := h.bus.Publish(ctx, roomID, frame); err != nil {
			h.log.Warn("bus.publish", "room", roomID, "err", err)
		}
	}
}

// deliver sends a frame to every member of a room except skip. Members with
// a full send buffer are dropped from this broadcast, not disconnected.
func (h *Hub) deliver(roomID string, frame []byte, skip *Conn) {
	for _, m := range h.dir.MembersOf(roomID) {
		if m == skip {
			continue
		}
		if !m.send(frame) {
			metrics.DeliveriesDroppedTotal.Inc()
			h.log.Debug("relay.drop", "conn", m.ID(), "room", roomID)
		}
	}
}
