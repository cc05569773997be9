package transport

import (
	"errors"
	"net"
	"os"
)

// Listen opens a Unix domain socket at path, removing a stale socket file
// left behind by a previous, uncleanly terminated process — net.Listen
// otherwise fails with "address already in use" on a leftover socket
// file even though nothing is listening on it.
func Listen(path string) (net.Listener, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return net.Listen("unix", path)
}
