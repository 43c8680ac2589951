package agent

import (
	"log/slog"

	"github.com/gdg-garage/uwapi-eve-david/engine"
	"github.com/gdg-garage/uwapi-eve-david/ipc"
	"github.com/gdg-garage/uwapi-eve-david/model"
)

// Agent owns the decision-making for a single player session.
type Agent struct {
	Conn   *ipc.Connection
	Player string
	Engine *engine.Engine

	catalog []model.Prototype
	terrain *model.Map
}

func New(conn *ipc.Connection, eng *engine.Engine) *Agent {
	return &Agent{Conn: conn, Engine: eng}
}

// HandleHello starts a session. A hello on a live connection means the
// host reconnected to a match, so all engine state is dropped.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := env.Decode(&hello); err != nil {
		return nil, err
	}

	a.Player = hello.Player
	a.Conn.Player = hello.Player
	a.catalog = hello.Prototypes
	a.terrain = hello.Map
	a.Engine.Reset()

	tiles := 0
	if hello.Map != nil {
		tiles = len(hello.Map.Tiles)
	}
	slog.Info("player identified", "player", a.Player, "prototypes", len(a.catalog), "tiles", tiles)

	return ipc.Reply(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
}

// HandleSnapshot runs one engine tick. Commands go out on the connection
// before the ack.
func (a *Agent) HandleSnapshot(env ipc.Envelope) (*ipc.Envelope, error) {
	var snap model.Snapshot
	if err := env.Decode(&snap); err != nil {
		return nil, err
	}
	if len(snap.Prototypes) == 0 {
		snap.Prototypes = a.catalog
	}
	if snap.Map == nil {
		snap.Map = a.terrain
	}

	report := a.Engine.Tick(&snap, &hostCommander{conn: a.Conn, snap: &snap})
	if report.Orders > 0 || report.Placements > 0 {
		slog.Info("tick decisions",
			"player", a.Player,
			"tick", snap.Tick,
			"step", report.Step,
			"orders", report.Orders,
			"placements", report.Placements,
		)
	}

	return ipc.Reply(ipc.TypeAck, ipc.AckMessage{Status: "ok", Step: report.Step})
}
