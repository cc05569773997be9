package workerpool

import (
	"sync"

	"cipc/dispatch"
	"cipc/message"
	"go.uber.org/zap"
)

// request pairs a parsed message with the channel its dispatch result
// should be delivered to.
type request struct {
	msg    message.Message
	result chan<- dispatchResult
}

type dispatchResult struct {
	resp message.Message
	err  error
}

// Pool runs a fixed number of worker goroutines, each draining its own
// request channel and dispatching against a shared *dispatch.Table.
// Routing a request to a worker is Balancer.Pick(object_id) — callers
// that want cache affinity pass a ConsistentHash, callers that don't
// care pass a RoundRobin.
type Pool struct {
	table    *dispatch.Table
	balancer Balancer
	queues   []chan request
	log      *zap.SugaredLogger
	wg       sync.WaitGroup
}

// New starts workerCount worker goroutines dispatching against table,
// routed by balancer.
func New(table *dispatch.Table, balancer Balancer, workerCount int, log *zap.SugaredLogger) *Pool {
	p := &Pool{
		table:    table,
		balancer: balancer,
		queues:   make([]chan request, workerCount),
		log:      log,
	}
	for i := range p.queues {
		p.queues[i] = make(chan request, 64)
		p.wg.Add(1)
		go p.worker(p.queues[i])
	}
	return p
}

func (p *Pool) worker(queue <-chan request) {
	defer p.wg.Done()
	for req := range queue {
		resp, err := p.table.Dispatch(req.msg)
		req.result <- dispatchResult{resp: resp, err: err}
	}
}

// Dispatch routes req to the worker the Balancer picks for its object_id
// and blocks for that worker's result.
func (p *Pool) Dispatch(req message.Message) (message.Message, error) {
	worker := p.balancer.Pick(req.ObjectID()) % len(p.queues)
	result := make(chan dispatchResult, 1)
	p.queues[worker] <- request{msg: req, result: result}
	r := <-result
	return r.resp, r.err
}

// Close stops every worker goroutine once its queue drains and waits for
// them to exit.
func (p *Pool) Close() {
	for _, q := range p.queues {
		close(q)
	}
	p.wg.Wait()
}
