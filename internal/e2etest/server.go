package e2etest

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/myrjola/polyglot/internal/errors"
	"github.com/myrjola/polyglot/internal/logging"
)

// LogAddrKey is the key used to log the address the server is listening on.
const LogAddrKey = "addr"

const startupTimeout = 10 * time.Second

// RunFunc has the signature of the chat server's run function.
type RunFunc func(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error

// Server is a chat server started by [StartServer].
type Server struct {
	url    string
	client *Client
}

// addrWatcher passes records on to the wrapped handler and reports the first value logged with [LogAddrKey].
type addrWatcher struct {
	slog.Handler
	found chan<- string
}

func (h addrWatcher) Handle(ctx context.Context, r slog.Record) error {
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != LogAddrKey {
			return true
		}
		select {
		case h.found <- a.Value.String():
		default:
		}
		return false
	})
	return h.Handler.Handle(ctx, r) //nolint:wrapcheck // pass-through handler
}

func (h addrWatcher) WithAttrs(attrs []slog.Attr) slog.Handler {
	return addrWatcher{Handler: h.Handler.WithAttrs(attrs), found: h.found}
}

func (h addrWatcher) WithGroup(name string) slog.Handler {
	return addrWatcher{Handler: h.Handler.WithGroup(name), found: h.found}
}

// StartServer runs the chat server in the background and returns once its health endpoint answers.
//
// Server logs go to logSink, usually [io.Discard]. run must log its listening address with [LogAddrKey] and stop
// when ctx is cancelled. lookupEnv replaces [os.LookupEnv] for the server configuration.
func StartServer(ctx context.Context, logSink io.Writer, lookupEnv func(string) (string, bool), run RunFunc) (
	*Server, error,
) {
	ctx, cancel := context.WithCancelCause(ctx)

	addrCh := make(chan string, 1)
	text := slog.NewTextHandler(logSink, &slog.HandlerOptions{Level: slog.LevelDebug}) //nolint:exhaustruct // test log
	logger := slog.New(logging.NewContextHandler(addrWatcher{Handler: text, found: addrCh}))

	go func() {
		if err := run(ctx, logger, lookupEnv); err != nil {
			cancel(err)
		}
	}()

	var addr string
	select {
	case <-ctx.Done():
		return nil, errors.Wrap(context.Cause(ctx), "server stopped before it was ready")
	case <-time.After(startupTimeout):
		cancel(errors.New("startup timed out"))
		return nil, errors.New("server did not log its address", slog.Duration("timeout", startupTimeout))
	case addr = <-addrCh:
	}

	serverURL := "http://" + addr
	client, err := NewClient(serverURL)
	if err != nil {
		return nil, errors.Wrap(err, "new client")
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return nil, errors.Wrap(err, "wait for ready")
	}
	return &Server{url: serverURL, client: client}, nil
}

// Client returns a client that shares one session with the server.
func (s *Server) Client() *Client {
	return s.client
}

func (s *Server) URL() string {
	return s.url
}
