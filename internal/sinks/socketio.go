package sinks

import (
	"net/url"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/specialistvlad/consolekit/internal/logger"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	DefaultNamespace      = "/"
	DefaultEvent          = "log"
	DefaultConnectTimeout = 5 * time.Second
	DefaultFlushTimeout   = 2 * time.Second

	flushPollInterval = 10 * time.Millisecond
)

// SocketIO forwards records as socket.io events. The first record blocks until
// the handshake completes; a failed handshake disables the sink.
type SocketIO struct {
	mu             sync.Mutex
	base           string
	path           string
	namespace      string
	event          string
	connectTimeout time.Duration
	flushTimeout   time.Duration
	client         *socket.Socket
	err            error
	closed         bool
}

// SocketIOOption configures a SocketIO sink.
type SocketIOOption func(*SocketIO)

// WithConnectTimeout bounds the wait for the handshake.
func WithConnectTimeout(d time.Duration) SocketIOOption {
	return func(s *SocketIO) { s.connectTimeout = d }
}

// WithFlushTimeout bounds how long Close waits for queued records to leave.
func WithFlushTimeout(d time.Duration) SocketIOOption {
	return func(s *SocketIO) { s.flushTimeout = d }
}

// NewSocketIO validates rawURL and returns an unconnected sink. Empty
// namespace and event fall back to "/" and "log".
func NewSocketIO(rawURL, namespace, event string, opts ...SocketIOOption) (*SocketIO, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "socket.io log sink: parse url %q", rawURL)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Newf("socket.io log sink: url %q needs a scheme and a host", rawURL)
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if event == "" {
		event = DefaultEvent
	}
	s := &SocketIO{
		base:           u.Scheme + "://" + u.Host,
		path:           u.Path,
		namespace:      namespace,
		event:          event,
		connectTimeout: DefaultConnectTimeout,
		flushTimeout:   DefaultFlushTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Event is the name records are emitted under.
func (s *SocketIO) Event() string { return s.event }

// Namespace is the socket.io namespace records are emitted to.
func (s *SocketIO) Namespace() string { return s.namespace }

// Handle emits rec once connected. It returns false when the sink is closed
// or the server could not be reached.
func (s *SocketIO) Handle(rec logger.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	if err := s.connect(); err != nil {
		return false
	}
	return s.client.Emit(s.event, payload(rec)) == nil
}

// Close waits up to the flush timeout for emitted records to reach the
// transport, then disconnects. Later records are rejected.
func (s *SocketIO) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.client == nil {
		return nil
	}
	var err error
	if !s.flush() {
		err = errors.Newf("socket.io log sink: records still queued after %s", s.flushTimeout)
	}
	s.client.Disconnect()
	s.client = nil
	return err
}

// Err returns the connection failure that disabled the sink, if any.
func (s *SocketIO) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *SocketIO) connect() error {
	if s.client != nil {
		return nil
	}
	if s.err != nil {
		return s.err
	}
	opts := socket.DefaultOptions()
	if s.path != "" && s.path != "/" {
		opts.SetPath(s.path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))
	opts.SetTimeout(s.connectTimeout)
	opts.SetReconnection(false)

	manager := socket.NewManager(s.base, opts)
	client := manager.Socket(s.namespace, opts)

	result := make(chan error, 1)
	report := func(err error) {
		select {
		case result <- err:
		default:
		}
	}
	client.Once(types.EventName("connect"), func(...any) { report(nil) })
	client.Once(types.EventName("connect_error"), func(args ...any) {
		err := errors.New("connect_error")
		if len(args) > 0 {
			if e, ok := args[0].(error); ok {
				err = e
			}
		}
		report(err)
	})
	client.Connect()

	timer := time.NewTimer(s.connectTimeout)
	defer timer.Stop()
	select {
	case err := <-result:
		if err != nil {
			s.err = errors.Wrapf(err, "socket.io log sink: connect to %s", s.base)
		}
	case <-timer.C:
		s.err = errors.Newf("socket.io log sink: no handshake from %s within %s", s.base, s.connectTimeout)
	}
	if s.err != nil {
		client.Disconnect()
		return s.err
	}
	s.client = client
	return nil
}

// flush polls until nothing is buffered in the socket or the engine and the
// transport has finished its last write.
func (s *SocketIO) flush() bool {
	deadline := time.Now().Add(s.flushTimeout)
	for !s.drained() {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(flushPollInterval)
	}
	return true
}

func (s *SocketIO) drained() bool {
	if s.client.SendBuffer().Len() > 0 {
		return false
	}
	engine := s.client.Io().Engine()
	if engine == nil {
		return true
	}
	if engine.WriteBuffer().Len() > 0 {
		return false
	}
	transport := engine.Transport()
	return transport == nil || transport.Writable()
}

func payload(rec logger.Record) map[string]any {
	return map[string]any{
		"timestamp":  rec.Timestamp.Format(TimestampLayout),
		"channel":    rec.Channel,
		"level":      rec.Level,
		"level_name": rec.LevelName,
		"message":    rec.Message,
		"context":    rec.Context,
		"line":       string(Format(rec)),
	}
}
