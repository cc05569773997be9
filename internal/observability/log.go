// Package observability provides the one structured logger CIPC's
// collaborator packages (transport, dispatch, workerpool, middleware) share.
// The teacher logs through the standard log package directly at each call
// site; go.uber.org/zap already rides along transitively through
// go.etcd.io/etcd/client/v3, so this module promotes it to a direct
// dependency and gives every collaborator package structured, leveled
// logging instead.
package observability

import "go.uber.org/zap"

// New builds a development logger (human-readable console output, debug
// level enabled) — the same tradeoff the teacher's log.Printf calls made:
// readable during development, not tuned for production log shipping.
func New() *zap.SugaredLogger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		// zap.NewDevelopment only fails on a broken encoder config; the
		// default one cannot fail, so this is unreachable in practice.
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

// Nop returns a logger that discards everything, for tests and callers
// that don't want CIPC's collaborator packages writing to stderr.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
