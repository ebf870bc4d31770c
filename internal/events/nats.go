// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	natspkg "github.com/nats-io/nats.go"

	"github.com/MKhiriev/go-console-client/internal/logger"
)

// Publisher sends raw messages to a subject.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSClient is a thin wrapper around a NATS connection.
type NATSClient struct {
	nc *natspkg.Conn
}

// NewNATSClient connects to the NATS server at url.
func NewNATSClient(url string) (*NATSClient, error) {
	nc, err := natspkg.Connect(url,
		natspkg.Name("go-console-client"),
		natspkg.Timeout(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("error connecting nats: %w", err)
	}
	return &NATSClient{nc: nc}, nil
}

// Publish implements [Publisher].
func (c *NATSClient) Publish(subject string, data []byte) error {
	return c.nc.Publish(subject, data)
}

// IsConnected reports whether the connection is currently up.
func (c *NATSClient) IsConnected() bool {
	return c.nc != nil && c.nc.Status() == natspkg.CONNECTED
}

// Close flushes pending messages and closes the connection.
func (c *NATSClient) Close() {
	_ = c.nc.Drain()
}

// Forwarder re-publishes bus events as JSON to NATS subjects of the form
// "<prefix>.auth.<event>", e.g. "console.auth.version-outdated".
type Forwarder struct {
	bus    *Bus
	pub    Publisher
	prefix string
	logger *logger.Logger
}

// NewForwarder creates a forwarder; call Start to attach it to the bus.
func NewForwarder(bus *Bus, pub Publisher, prefix string, logger *logger.Logger) *Forwarder {
	return &Forwarder{bus: bus, pub: pub, prefix: prefix, logger: logger}
}

// Start subscribes to all auth topics and returns a function detaching the
// forwarder again.
func (f *Forwarder) Start() (stop func()) {
	unsubs := []func(){
		f.bus.Subscribe(TopicVersionOutdated, f.forward(TopicVersionOutdated)),
		f.bus.Subscribe(TopicProfileUpdated, f.forward(TopicProfileUpdated)),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Subject maps a bus topic ("auth:profile-updated") to its NATS subject.
func (f *Forwarder) Subject(topic string) string {
	subject := strings.ReplaceAll(topic, ":", ".")
	if f.prefix == "" {
		return subject
	}
	return f.prefix + "." + subject
}

func (f *Forwarder) forward(topic string) Handler {
	subject := f.Subject(topic)
	return func(_ context.Context, payload any) {
		data, err := json.Marshal(payload)
		if err != nil {
			f.logger.Err(err).Str("subject", subject).Msg("error encoding event")
			return
		}
		if err = f.pub.Publish(subject, data); err != nil {
			f.logger.Err(err).Str("subject", subject).Msg("error forwarding event to nats")
			return
		}
		f.logger.Debug().Str("subject", subject).Msg("event forwarded")
	}
}
