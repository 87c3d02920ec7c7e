package signal

import (
	"context"
	"fmt"
	"time"

	libnats "github.com/nats-io/nats.go"
)

// NATS publishes signals as core NATS messages.
type NATS struct {
	conn    *libnats.Conn
	subject string
	now     func() time.Time
}

// ConnectNATS dials url and returns a publisher for subject.
func ConnectNATS(url, subject string) (*NATS, error) {
	nc, err := libnats.Connect(url,
		libnats.Name("hearth"),
		libnats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return NewNATS(nc, subject), nil
}

func NewNATS(nc *libnats.Conn, subject string) *NATS {
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATS{conn: nc, subject: subject, now: time.Now}
}

func (n *NATS) Revalidate(_ context.Context, path string) error {
	data, err := encode(path, n.now())
	if err != nil {
		return err
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		return fmt.Errorf("failed to publish revalidate signal: %w", err)
	}
	return nil
}

func (n *NATS) HealthCheck(context.Context) error {
	_, err := n.conn.RTT()
	return err
}

func (n *NATS) Close() error {
	return n.conn.Drain()
}
