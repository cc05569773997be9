package workerpool

import (
	"encoding/binary"
	"hash/crc32"
	"sort"
)

// ConsistentHash maps each object_id onto a hash ring shared by all
// workers, the way the teacher's ConsistentHashBalancer maps a cache key
// onto a ring of remote instances. The same object_id always lands on the
// same worker (until workerCount changes), giving every call against one
// CIPC object a stable home goroutine — useful for an object whose
// handler keeps in-process state that isn't safe to touch concurrently
// from two goroutines at once.
type ConsistentHash struct {
	replicas int
	ring     []uint32
	workers  map[uint32]int
}

// NewConsistentHash builds a ring over workerCount workers with 100
// virtual nodes each — the same replica count the teacher used, chosen
// there (and here) so a handful of real nodes still spread evenly across
// the ring instead of clustering.
func NewConsistentHash(workerCount int) *ConsistentHash {
	b := &ConsistentHash{replicas: 100, workers: make(map[uint32]int)}
	for worker := 0; worker < workerCount; worker++ {
		b.addWorker(worker)
	}
	return b
}

func (b *ConsistentHash) addWorker(worker int) {
	for i := 0; i < b.replicas; i++ {
		var key [8]byte
		binary.LittleEndian.PutUint32(key[0:4], uint32(worker))
		binary.LittleEndian.PutUint32(key[4:8], uint32(i))
		hash := crc32.ChecksumIEEE(key[:])
		b.ring = append(b.ring, hash)
		b.workers[hash] = worker
	}
	sort.Slice(b.ring, func(i, j int) bool { return b.ring[i] < b.ring[j] })
}

func (b *ConsistentHash) Pick(objectID uint64) int {
	var key [8]byte
	binary.LittleEndian.PutUint64(key[:], objectID)
	hash := crc32.ChecksumIEEE(key[:])

	idx := sort.Search(len(b.ring), func(i int) bool { return b.ring[i] >= hash })
	if idx == len(b.ring) {
		idx = 0
	}
	return b.workers[b.ring[idx]]
}

func (b *ConsistentHash) Name() string { return "ConsistentHash" }
