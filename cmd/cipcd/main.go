// Command cipcd is a demo CIPC endpoint: it registers one object exposing
// Echo and Add, serves it over a Unix domain socket behind the middleware
// chain and worker pool, and can also act as a client that dials an
// existing endpoint and issues one call. There is no equivalent binary in
// the teacher — BX-D-mini-RPC's client/server wiring lives only in its
// tests — so this main package is grounded on that wiring (Register,
// Serve, middleware.Use, Dial, Call) reassembled into something runnable.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"cipc/codec"
	"cipc/dispatch"
	"cipc/internal/observability"
	"cipc/message"
	"cipc/middleware"
	"cipc/objectdir"
	"cipc/transport"
	"cipc/workerpool"
)

const demoObjectID uint64 = 1

const (
	methodEcho uint32 = 1
	methodAdd  uint32 = 2
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "cipcd: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: cipcd <serve|call> [flags]")
	}

	switch args[0] {
	case "serve":
		return runServe(args[1:])
	case "call":
		return runCall(args[1:])
	default:
		return fmt.Errorf("unknown subcommand %q (want serve or call)", args[0])
	}
}

func runServe(args []string) error {
	flagSet := pflag.NewFlagSet("cipcd serve", pflag.ContinueOnError)
	configPath := flagSet.String("config", "", "path to cipcd.yaml (optional, defaults are used if absent)")
	socketOverride := flagSet.String("socket", "", "override the configured socket path")
	noEtcd := flagSet.Bool("no-directory", false, "skip registering the demo object in the etcd object directory")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *socketOverride != "" {
		cfg.Socket = *socketOverride
	}

	log := observability.New()
	defer log.Sync()

	table := dispatch.NewTable(log)
	registerDemoObject(table)

	balancer := workerpool.NewRoundRobin(cfg.Workers)
	pool := workerpool.New(table, balancer, cfg.Workers, log)
	defer pool.Close()

	handler := middleware.Chain(
		middleware.Logging(log),
		middleware.RateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst),
		middleware.Timeout(cfg.callTimeout()),
	)(func(ctx context.Context, req message.Message) (message.Message, error) {
		return pool.Dispatch(req)
	})

	ln, err := transport.Listen(cfg.Socket)
	if err != nil {
		return fmt.Errorf("cipcd: listen on %s: %w", cfg.Socket, err)
	}
	defer ln.Close()
	log.Infow("cipcd: listening", "socket", cfg.Socket)

	if !*noEtcd {
		dir, err := objectdir.NewEtcdDirectory(cfg.Etcd.Endpoints)
		if err != nil {
			log.Warnw("cipcd: could not connect to object directory, continuing without it", "error", err)
		} else {
			cancel, err := dir.Register(context.Background(), demoObjectID, cfg.Socket, cfg.Etcd.TTL)
			if err != nil {
				log.Warnw("cipcd: could not register demo object", "error", err)
			} else {
				defer cancel()
			}
		}
	}

	return serve(ln, handler, log)
}

// serve runs cipcd's accept loop: the same one-reader-per-connection,
// one-goroutine-per-request, shared-write-mutex shape as dispatch.Serve,
// but calling through the middleware chain (which dispatch.Serve, bound
// directly to a *dispatch.Table, has no hook for) instead of the table
// directly.
func serve(ln net.Listener, handler middleware.HandlerFunc, log *zap.SugaredLogger) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return nil
		}
		go serveConn(conn, handler, log)
	}
}

func serveConn(conn net.Conn, handler middleware.HandlerFunc, log *zap.SugaredLogger) {
	defer conn.Close()
	var writeMu sync.Mutex
	for {
		req, err := transport.ReadFrame(conn)
		if err != nil {
			return
		}
		if req.Type() != message.TypeRequest {
			continue
		}
		go func(req message.Message) {
			resp, err := handler(context.Background(), req)
			if err != nil {
				log.Warnw("cipcd: dropping call that could not be dispatched", "error", err)
				return
			}
			writeMu.Lock()
			defer writeMu.Unlock()
			if err := transport.WriteFrame(conn, resp); err != nil {
				log.Warnw("cipcd: failed to write response frame", "error", err)
			}
		}(req)
	}
}

// registerDemoObject wires up the one object every cipcd instance exposes:
// Echo returns its single uint32 argument unchanged, Add sums two.
func registerDemoObject(table *dispatch.Table) {
	table.Register(demoObjectID, methodEcho, func(objectID uint64, args []byte) (codec.Value, error) {
		v, n := codec.Uint32.Deserialize(args)
		if n == 0 {
			return nil, fmt.Errorf("cipcd: echo: short argument buffer")
		}
		return codec.ArgU32(v), nil
	})

	table.Register(demoObjectID, methodAdd, func(objectID uint64, args []byte) (codec.Value, error) {
		a, n := codec.Uint32.Deserialize(args)
		if n == 0 {
			return nil, fmt.Errorf("cipcd: add: short argument buffer (first operand)")
		}
		b, n2 := codec.Uint32.Deserialize(args[n:])
		if n2 == 0 {
			return nil, fmt.Errorf("cipcd: add: short argument buffer (second operand)")
		}
		return codec.ArgU32(a + b), nil
	})
}

func runCall(args []string) error {
	flagSet := pflag.NewFlagSet("cipcd call", pflag.ContinueOnError)
	socket := flagSet.String("socket", "/tmp/cipcd.sock", "socket path of the cipcd instance to call")
	method := flagSet.String("method", "echo", "method to invoke: echo or add")
	a := flagSet.Uint32("a", 0, "first argument")
	b := flagSet.Uint32("b", 0, "second argument, used only by add")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	log := observability.New()
	defer log.Sync()

	t, err := transport.Dial(*socket, log)
	if err != nil {
		return fmt.Errorf("cipcd: dial %s: %w", *socket, err)
	}
	defer t.Close()

	var resp message.Message
	switch *method {
	case "echo":
		resp, err = t.Call(methodEcho, demoObjectID, codec.ArgU32(*a))
	case "add":
		resp, err = t.Call(methodAdd, demoObjectID, codec.ArgU32(*a), codec.ArgU32(*b))
	default:
		return fmt.Errorf("unknown method %q (want echo or add)", *method)
	}
	if err != nil {
		return err
	}

	result, _ := codec.Uint32.Deserialize(resp.ReturnValue())
	fmt.Println(result)
	return nil
}
