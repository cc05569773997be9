package transport

import (
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Pool manages a fixed-size set of Transport connections to a single Unix
// socket path, adapted from the teacher's ConnPool. The teacher kept its
// ConnPool as an "alternative approach" to the multiplexed transport, for
// callers that want exclusive use of a connection rather than shared
// multiplexing; that tradeoff carries over unchanged — a caller that
// checks out a Transport from a Pool should treat it as its own until
// Put, even though Transport itself supports concurrent Call.
type Pool struct {
	mu       sync.Mutex
	conns    chan *Transport
	path     string
	log      *zap.SugaredLogger
	maxConns int
	curConns int
}

// NewPool creates a connection pool with the given max size. Connections
// are created lazily — the pool starts empty and grows on demand, exactly
// as the teacher's NewConnPool does.
func NewPool(path string, maxConns int, log *zap.SugaredLogger) *Pool {
	return &Pool{
		conns:    make(chan *Transport, maxConns),
		path:     path,
		log:      log,
		maxConns: maxConns,
	}
}

// Get retrieves a Transport from the pool, creating one if under capacity
// or blocking until one is returned if at capacity.
func (p *Pool) Get() (*Transport, error) {
	select {
	case t := <-p.conns:
		return t, nil
	default:
		p.mu.Lock()
		if p.curConns < p.maxConns {
			p.curConns++
			p.mu.Unlock()
			t, err := Dial(p.path, p.log)
			if err != nil {
				p.mu.Lock()
				p.curConns--
				p.mu.Unlock()
				return nil, err
			}
			return t, nil
		}
		p.mu.Unlock()
		return <-p.conns, nil
	}
}

// Put returns a Transport to the pool for reuse.
func (p *Pool) Put(t *Transport) {
	p.conns <- t
}

// Close closes every idle Transport currently sitting in the pool.
// Transports checked out via Get and not yet Put are not affected.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	close(p.conns)
	var err error
	for t := range p.conns {
		err = multierr.Append(err, t.Close())
		p.curConns--
	}
	return err
}
