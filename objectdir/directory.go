// Package objectdir provides an etcd-backed directory mapping a CIPC
// object_id to the Unix socket path of the process that currently owns
// it. CIPC is intra-host (spec.md §1), so there is no remote address to
// resolve the way the teacher's registry.EtcdRegistry resolves
// "ServiceName" to a TCP address — what a multi-process host still needs
// is a way for one process to find which of several sibling processes
// owns a given object_id, which is exactly the teacher's registry shape
// with the key narrowed from a service name to a numeric object id and
// the value narrowed from a TCP address to a socket path.
package objectdir

import (
	"context"
	"fmt"
	"strconv"

	clientv3 "go.etcd.io/etcd/client/v3"
)

const keyPrefix = "/cipc/objects/"

// Directory is the interface dispatch and transport collaborators depend
// on; EtcdDirectory is the only production implementation, kept behind an
// interface the way registry.Registry is in the teacher, so tests can
// substitute an in-memory fake without standing up etcd.
type Directory interface {
	// Register advertises that this process owns objectID, reachable at
	// socketPath, for ttl seconds. The lease is kept alive in the
	// background for as long as the returned cancel isn't called.
	Register(ctx context.Context, objectID uint64, socketPath string, ttl int64) (cancel func(), err error)
	// Lookup returns the socket path currently registered for objectID.
	Lookup(ctx context.Context, objectID uint64) (string, error)
	// Deregister removes the advertisement for objectID, if any.
	Deregister(ctx context.Context, objectID uint64) error
}

// EtcdDirectory implements Directory on top of etcd v3, adapted from the
// teacher's registry.EtcdRegistry: a TTL lease per registration, renewed
// by KeepAlive, so a crashed owner's entry expires on its own instead of
// lingering as a ghost pointing at a dead process.
type EtcdDirectory struct {
	client *clientv3.Client
}

// NewEtcdDirectory connects to the given etcd endpoints.
func NewEtcdDirectory(endpoints []string) (*EtcdDirectory, error) {
	c, err := clientv3.New(clientv3.Config{Endpoints: endpoints})
	if err != nil {
		return nil, err
	}
	return &EtcdDirectory{client: c}, nil
}

func objectKey(objectID uint64) string {
	return keyPrefix + strconv.FormatUint(objectID, 10)
}

func (d *EtcdDirectory) Register(ctx context.Context, objectID uint64, socketPath string, ttl int64) (func(), error) {
	lease, err := d.client.Grant(ctx, ttl)
	if err != nil {
		return nil, err
	}
	if _, err := d.client.Put(ctx, objectKey(objectID), socketPath, clientv3.WithLease(lease.ID)); err != nil {
		return nil, err
	}

	keepAliveCtx, cancel := context.WithCancel(context.Background())
	ch, err := d.client.KeepAlive(keepAliveCtx, lease.ID)
	if err != nil {
		cancel()
		return nil, err
	}
	go func() {
		for range ch {
		}
	}()
	return cancel, nil
}

func (d *EtcdDirectory) Lookup(ctx context.Context, objectID uint64) (string, error) {
	resp, err := d.client.Get(ctx, objectKey(objectID))
	if err != nil {
		return "", err
	}
	if len(resp.Kvs) == 0 {
		return "", fmt.Errorf("objectdir: no owner registered for object %d", objectID)
	}
	return string(resp.Kvs[0].Value), nil
}

func (d *EtcdDirectory) Deregister(ctx context.Context, objectID uint64) error {
	_, err := d.client.Delete(ctx, objectKey(objectID))
	return err
}
