package calc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type opReq struct {
	cmd   Command
	reply chan opResult
}

type opResult struct {
	state SessionState
	err   error
}

type createReq struct {
	reply chan SessionState
}

type stateReq struct {
	id    string
	reply chan opResult
}

type subscribeReq struct {
	ch chan SessionState
}

// Engine owns all calculator sessions. A single goroutine (Run) holds the
// session map; every other method talks to it over channels, so sessions
// never need locking.
type Engine struct {
	opCh        chan opReq
	createCh    chan createReq
	stateReqCh  chan stateReq
	subscribeCh chan subscribeReq
	unsubCh     chan chan SessionState

	log *zap.Logger
}

type Config struct {
	Logger *zap.Logger
}

func New(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Engine{
		opCh:        make(chan opReq, 128),
		createCh:    make(chan createReq, 32),
		stateReqCh:  make(chan stateReq, 32),
		subscribeCh: make(chan subscribeReq, 32),
		unsubCh:     make(chan chan SessionState, 32),
		log:         cfg.Logger,
	}
}

// CreateSession registers a new session with a zero total and returns its
// initial snapshot.
func (e *Engine) CreateSession(ctx context.Context) (SessionState, error) {
	req := createReq{reply: make(chan SessionState, 1)}
	select {
	case e.createCh <- req:
	case <-ctx.Done():
		return SessionState{}, ctx.Err()
	}

	select {
	case st := <-req.reply:
		return st, nil
	case <-ctx.Done():
		return SessionState{}, ctx.Err()
	}
}

// Apply runs a command against its session and returns the resulting
// snapshot. Commands for unknown sessions fail.
func (e *Engine) Apply(ctx context.Context, cmd Command) (SessionState, error) {
	req := opReq{cmd: cmd, reply: make(chan opResult, 1)}
	select {
	case e.opCh <- req:
	case <-ctx.Done():
		return SessionState{}, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res.state, res.err
	case <-ctx.Done():
		return SessionState{}, ctx.Err()
	}
}

// GetState returns the current snapshot of a session.
func (e *Engine) GetState(ctx context.Context, id string) (SessionState, error) {
	req := stateReq{id: id, reply: make(chan opResult, 1)}
	select {
	case e.stateReqCh <- req:
	case <-ctx.Done():
		return SessionState{}, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res.state, res.err
	case <-ctx.Done():
		return SessionState{}, ctx.Err()
	}
}

// Subscribe returns a channel of session snapshots, fed on every mutation.
// The returned func unsubscribes; the channel is closed when Run exits or
// after unsubscription.
func (e *Engine) Subscribe(ctx context.Context) (<-chan SessionState, func()) {
	ch := make(chan SessionState, 32)

	select {
	case e.subscribeCh <- subscribeReq{ch: ch}:
	case <-ctx.Done():
		close(ch)
		return ch, func() {}
	}

	unsub := func() {
		select {
		case e.unsubCh <- ch:
		default:
		}
	}
	return ch, unsub
}

// Run processes engine requests until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	// Actor-owned state
	type session struct {
		calc    Calculator
		ops     int
		lastCmd string
	}
	sessions := map[string]*session{}
	subs := map[chan SessionState]struct{}{}

	snapshot := func(id string, s *session, ts time.Time) SessionState {
		return SessionState{
			ID:          id,
			Result:      s.calc.Result(),
			Ops:         s.ops,
			TS:          ts,
			LastCommand: s.lastCmd,
		}
	}

	publish := func(st SessionState) {
		for ch := range subs {
			select {
			case ch <- st:
			default:
				// slow subscriber -> drop update
			}
		}
	}

	apply := func(cmd Command) (SessionState, error) {
		s, ok := sessions[cmd.SessionID()]
		if !ok {
			return SessionState{}, errors.Errorf("unknown session %q", cmd.SessionID())
		}

		switch c := cmd.(type) {
		case AddCommand:
			s.calc.Add(c.Value)
		case MultiplyCommand:
			s.calc.Multiply(c.Value)
		case ResetCommand:
			s.calc.Reset()
		default:
			return SessionState{}, errors.Errorf("unsupported command type %q", cmd.Type())
		}

		s.ops++
		s.lastCmd = string(cmd.Type())
		return snapshot(cmd.SessionID(), s, time.Now()), nil
	}

	for {
		select {
		case <-ctx.Done():
			for ch := range subs {
				close(ch)
			}
			return ctx.Err()

		case req := <-e.createCh:
			id := uuid.New().String()
			sessions[id] = &session{}
			st := snapshot(id, sessions[id], time.Now())
			e.log.Debug("session created", zap.String("id", id))
			req.reply <- st
			publish(st)

		case req := <-e.opCh:
			st, err := apply(req.cmd)
			if err != nil {
				e.log.Debug("command rejected",
					zap.String("type", string(req.cmd.Type())),
					zap.Error(err))
			}
			req.reply <- opResult{state: st, err: err}
			if err == nil {
				publish(st)
			}

		case req := <-e.stateReqCh:
			s, ok := sessions[req.id]
			if !ok {
				req.reply <- opResult{err: errors.Errorf("unknown session %q", req.id)}
				break
			}
			req.reply <- opResult{state: snapshot(req.id, s, time.Now())}

		case req := <-e.subscribeCh:
			subs[req.ch] = struct{}{}
			now := time.Now()
			for id, s := range sessions {
				select {
				case req.ch <- snapshot(id, s, now):
				default:
					// subscriber buffer full -> drop snapshot
				}
			}

		case ch := <-e.unsubCh:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}
		}
	}
}
