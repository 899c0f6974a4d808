package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"
)

// LogSink writes every event as one structured log line.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("component", "events")}
}

func (s *LogSink) Send(ctx context.Context, e Event) error {
	s.logger.InfoContext(ctx, "event", "event", e.Name, "payload", e.Payload)
	return nil
}

// NATSSink publishes each event as JSON on "<prefix>.<event name>".
type NATSSink struct {
	conn   *nats.Conn
	prefix string
}

func NewNATSSink(url, prefix string) (*NATSSink, error) {
	conn, err := nats.Connect(url, nats.Name("ai-voice"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSSink{conn: conn, prefix: strings.TrimSuffix(prefix, ".")}, nil
}

// Subject returns the subject an event is published on.
func (s *NATSSink) Subject(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "." + name
}

func (s *NATSSink) Send(_ context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.conn.Publish(s.Subject(e.Name), data)
}

func (s *NATSSink) Close() error {
	if err := s.conn.Drain(); err != nil {
		s.conn.Close()
		return err
	}
	return nil
}

// MultiSink fans an event out to several sinks and reports the first error.
type MultiSink []Sink

func (m MultiSink) Send(ctx context.Context, e Event) error {
	var first error
	for _, s := range m {
		if err := s.Send(ctx, e); err != nil && first == nil {
			first = err
		}
	}
	return first
}
