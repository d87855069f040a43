package scene

import (
	"context"
	"fmt"

	"fortio.org/log"
	"golang.org/x/sync/errgroup"
)

// DefaultQueueDepth is the per-worker command buffer used by NewPool callers
// that have no preference.
const DefaultQueueDepth = 4

// update is one state report from a worker.
type update struct {
	index int
	steps int // commands processed so far
	state State
}

// Pool animates bodies concurrently with one goroutine per body. Each worker
// owns its body's State; the coordinator only sees snapshots.
//
// All Pool methods must be called from a single coordinating goroutine.
type Pool struct {
	cancel  context.CancelFunc
	group   *errgroup.Group
	cmds    []chan float64
	updates chan update

	pending []float64 // dt waiting for a full command channel to drain
	sent    []int
	steps   []int
	latest  []State
	stopped bool
}

// NewPool starts one worker per body of sys, seeded with its current states.
// queue bounds each worker's pending commands.
func NewPool(ctx context.Context, sys *System, queue int) *Pool {
	queue = max(queue, 1)
	n := len(sys.Bodies)
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)

	p := &Pool{
		cancel:  cancel,
		group:   g,
		cmds:    make([]chan float64, n),
		updates: make(chan update, n*queue),
		pending: make([]float64, n),
		sent:    make([]int, n),
		steps:   make([]int, n),
		latest:  make([]State, n),
	}
	copy(p.latest, sys.States)

	for i := range n {
		b := sys.Bodies[i]
		cmds := make(chan float64, queue)
		p.cmds[i] = cmds
		start := sys.States[i]
		g.Go(func() error {
			return runWorker(ctx, i, b.Orbit.Speed, b.RotationSpeed, start, cmds, p.updates)
		})
	}
	log.Infof("worker pool: %d workers started", n)
	return p
}

func runWorker(ctx context.Context, index int, orbitSpeed, rotationSpeed float64, st State, cmds <-chan float64, out chan<- update) error {
	steps := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case dt, ok := <-cmds:
			if !ok {
				return nil
			}
			st = st.Advance(orbitSpeed, rotationSpeed, dt)
			steps++
			select {
			case out <- update{index: index, steps: steps, state: st}:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// Advance asks every worker to step by dt without blocking. When a worker's
// queue is full the time is held back and added to its next command, so no
// simulated time is lost.
func (p *Pool) Advance(dt float64) {
	if p.stopped {
		return
	}
	for i := range p.cmds {
		p.pending[i] += dt
		p.flush(i)
	}
}

// Flush retries held-back time without adding more.
func (p *Pool) Flush() {
	if p.stopped {
		return
	}
	for i := range p.cmds {
		p.flush(i)
	}
}

func (p *Pool) flush(i int) {
	if p.pending[i] == 0 {
		return
	}
	select {
	case p.cmds[i] <- p.pending[i]:
		p.pending[i] = 0
		p.sent[i]++
	default:
	}
}

// Drain collects every state report available right now and returns the
// latest known state of each body. Bodies whose workers have not reported
// keep their previous state.
func (p *Pool) Drain() []State {
	for {
		select {
		case u := <-p.updates:
			if u.steps > p.steps[u.index] {
				p.steps[u.index] = u.steps
				p.latest[u.index] = u.state
			}
		default:
			return p.latest
		}
	}
}

// Settled reports whether every command sent has been reported back and no
// time is held back.
func (p *Pool) Settled() bool {
	for i := range p.cmds {
		if p.pending[i] != 0 || p.steps[i] != p.sent[i] {
			return false
		}
	}
	return true
}

// Stop cancels the workers, closes their queues and waits for them to exit.
// It is safe to call more than once.
func (p *Pool) Stop() error {
	if p.stopped {
		return nil
	}
	p.stopped = true
	p.cancel()
	for _, c := range p.cmds {
		close(c)
	}
	if err := p.group.Wait(); err != nil {
		return fmt.Errorf("stop workers: %w", err)
	}
	log.Infof("worker pool: %d workers stopped", len(p.cmds))
	return nil
}
