package workerpool

import "sync/atomic"

// RoundRobin distributes calls evenly across workers in order, ignoring
// object_id entirely. Best for stateless objects where affinity doesn't
// matter and even load matters more.
type RoundRobin struct {
	workerCount int64
	counter     int64
}

// NewRoundRobin creates a round-robin balancer over workerCount workers.
func NewRoundRobin(workerCount int) *RoundRobin {
	return &RoundRobin{workerCount: int64(workerCount)}
}

func (b *RoundRobin) Pick(objectID uint64) int {
	n := atomic.AddInt64(&b.counter, 1)
	return int(n % b.workerCount)
}

func (b *RoundRobin) Name() string { return "RoundRobin" }
