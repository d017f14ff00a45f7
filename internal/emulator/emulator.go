// Package emulator assembles the embedded backend substitute behind the
// two handles consumers use: collection access and auth access. One
// Client per execution context; clients over different adapters share
// nothing but the identity marker convention.
package emulator

import (
	"github.com/sunucargo/platform/internal/auth"
	"github.com/sunucargo/platform/internal/backend"
	"github.com/sunucargo/platform/internal/config"
	"github.com/sunucargo/platform/internal/store"
	"github.com/sunucargo/platform/pkg/logger"
)

// Client is the in-process substitute for the remote backend client.
type Client struct {
	store  *store.Store
	auth   *auth.Service
	marker backend.Marker
	close  func() error
}

// New builds a Client for the adapter selected by cfg: "sqlite" for a
// long-lived context with durable client storage, "memory" for a
// short-lived stateless one.
func New(cfg *config.Config) (*Client, error) {
	b, marker, err := backend.New(cfg.Backend, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if s, ok := b.(*backend.SQLite); ok {
		s.SetLogger(logger.Get().With().Str("component", "backend").Logger())
	}

	st := store.New(b, store.Options{})
	svc := auth.NewService(st, marker, auth.NewNotifier(), auth.Options{
		Secret:   cfg.JWTSecret,
		TokenTTL: cfg.TokenTTL,
	})

	c := &Client{store: st, auth: svc, marker: marker, close: func() error { return nil }}
	if s, ok := b.(*backend.SQLite); ok {
		c.close = s.Close
	}
	return c, nil
}

// Collection starts a query over the named collection.
func (c *Client) Collection(name string) *store.Query {
	return c.store.Collection(name)
}

// Auth exposes the credential and session subsystem.
func (c *Client) Auth() *auth.Service {
	return c.auth
}

// Marker exposes the identity slot for callers that only need to know
// who is signed in.
func (c *Client) Marker() backend.Marker {
	return c.marker
}

// Close releases the durable adapter, if any.
func (c *Client) Close() error {
	return c.close()
}
