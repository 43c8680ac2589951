package ipc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

// Handler processes one envelope from the host. A nil reply sends nothing.
type Handler func(env Envelope) (*Envelope, error)

// Connection is one host adapter session. Envelopes are handled in arrival
// order on the goroutine running ReadLoop; Send may be called from a handler.
type Connection struct {
	rw       io.ReadWriteCloser
	handlers map[string]Handler
	Player   string

	writeMu   sync.Mutex
	closeOnce sync.Once
}

func NewConnection(rw io.ReadWriteCloser, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{rw: rw, handlers: handlers}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

// Send frames one command or reply to the host.
func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return c.write(env)
}

func (c *Connection) write(env Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return WriteEnvelope(c.rw, env)
}

func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() { err = c.rw.Close() })
	return err
}

// ReadLoop serves the session until the host hangs up, a write fails or
// ctx is cancelled. A clean hang-up returns nil. The connection is closed
// on return.
func (c *Connection) ReadLoop(ctx context.Context) error {
	defer c.Close()

	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()

	for {
		env, err := ReadEnvelope(c.rw)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				slog.Info("session ended", "player", c.Player)
				return nil
			}
			slog.Info("session read failed", "player", c.Player, "error", err)
			return err
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			// The host waits for a reply to every snapshot.
			slog.Error("handler error", "type", env.Type, "player", c.Player, "error", err)
			resp, err = Reply(TypeError, ErrorMessage{Type: env.Type, Error: err.Error()})
			if err != nil {
				return err
			}
		}
		if resp == nil {
			continue
		}
		if err := c.write(*resp); err != nil {
			slog.Error("failed to send reply", "type", resp.Type, "error", err)
			return err
		}
		slog.Debug("sent reply", "type", resp.Type, "player", c.Player)
	}
}
