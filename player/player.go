// Package player paces a walker on the wall clock and reports every board
// change to listeners.
package player

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"goban-replay/sgf"
	"goban-replay/types"
	"goban-replay/walker"
)

// Event describes one node that was replayed, or skipped when Err is set.
type Event struct {
	Info  sgf.GameInfo
	Node  sgf.Node
	Board types.BoardState
	Err   error
}

// Player ticks a walker whenever the delay for its current state has passed.
type Player struct {
	walker *walker.Walker
	opts   Options
	log    *zap.SugaredLogger

	lastTick time.Time

	updateCallback func(types.BoardState)
	nodeCallback   func(Event)
	endCallback    func(sgf.GameInfo)

	mu sync.Mutex
}

// New creates a player for w.
func New(w *walker.Walker, opts Options, log *zap.SugaredLogger) *Player {
	return &Player{
		walker: w,
		opts:   opts,
		log:    log,
	}
}

// OnUpdate registers a callback receiving the board after every tick.
func (p *Player) OnUpdate(callback func(types.BoardState)) {
	p.updateCallback = callback
}

// OnNode registers a callback for every node replayed or skipped.
func (p *Player) OnNode(callback func(Event)) {
	p.nodeCallback = callback
}

// OnRecordEnd registers a callback for when a record has been played out.
func (p *Player) OnRecordEnd(callback func(info sgf.GameInfo)) {
	p.endCallback = callback
}

// Update ticks the walker if it is due at now. A walker in StateNew is due
// immediately; StateOngoing waits MoveDelay and StateEnded waits EndDelay
// after the previous tick. It reports whether a tick happened. With the Abort policy a
// failing node stops here and its error is returned; with Skip it is logged
// and the cursor moves past it.
func (p *Player) Update(now time.Time) (bool, error) {
	p.mu.Lock()

	before := p.walker.State()
	if now.Sub(p.lastTick) < p.delay(before) {
		p.mu.Unlock()
		return false, nil
	}

	node := p.walker.Node()
	state, err := p.walker.Tick()
	if err != nil {
		if p.opts.Policy == Abort {
			p.mu.Unlock()
			return false, err
		}
		p.log.Warnw("skipping node", "node", sgf.FormatNode(node), "error", err)
		state = p.walker.Advance()
	}
	p.lastTick = now

	board := p.walker.Board().Snapshot()
	applied := before == walker.StateOngoing
	var info sgf.GameInfo
	if applied {
		info = sgf.Info(node.Record())
	}
	finished := applied && state == walker.StateEnded
	if finished {
		p.log.Infow("record finished", "black", info.PlayerBlack, "white", info.PlayerWhite, "moves", board.MoveNumber)
	}
	p.mu.Unlock()

	// Notify callbacks (outside lock)
	if p.updateCallback != nil {
		p.updateCallback(board)
	}
	if applied && p.nodeCallback != nil {
		p.nodeCallback(Event{Info: info, Node: node, Board: board, Err: err})
	}
	if finished && p.endCallback != nil {
		p.endCallback(info)
	}
	return true, nil
}

// Run calls Update every interval until ctx is done or a node fails under
// the Abort policy.
func (p *Player) Run(ctx context.Context, interval time.Duration) error {
	if _, err := p.Update(time.Now()); err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if _, err := p.Update(now); err != nil {
				return err
			}
		}
	}
}

func (p *Player) delay(state walker.State) time.Duration {
	switch state {
	case walker.StateOngoing:
		return p.opts.MoveDelay
	case walker.StateEnded:
		return p.opts.EndDelay
	}
	return 0
}
