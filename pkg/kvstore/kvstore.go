// Package kvstore persists theme choices in a NATS JetStream KV bucket.
//
// A Store satisfies theme.Store, so every tab and every server instance
// sharing the bucket sees the same choice. Watch reports writes made by
// anyone, which is how other instances pick up a change.
//
// Usage:
//
//	js, _ := jetstream.New(nc)
//	store, err := kvstore.Open(ctx, js, "theme_prefs")
//	if err != nil {
//		return err
//	}
//	ctrl := theme.Initialize(theme.Options{Store: store})
//	go store.Watch(ctx, func(key, value string) { ctrl.Reload() })
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// DefaultTimeout bounds every KV round trip.
const DefaultTimeout = 2 * time.Second

// ErrNotConnected is returned when the store has no bucket.
var ErrNotConnected = errors.New("not connected to NATS")

// Store is a theme.Store backed by a JetStream KV bucket.
type Store struct {
	kv      jetstream.KeyValue
	timeout time.Duration
	log     *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithTimeout sets the per-operation timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger used for read failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New wraps an existing bucket.
func New(kv jetstream.KeyValue, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		timeout: DefaultTimeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "kvstore")
	return s
}

// Open gets or creates the bucket and wraps it.
func Open(ctx context.Context, js jetstream.JetStream, bucket string, opts ...Option) (*Store, error) {
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "Theme preferences",
		TTL:         0, // No TTL - persist forever
	})
	if err != nil {
		return nil, fmt.Errorf("creating KV bucket %s: %w", bucket, err)
	}
	return New(kv, opts...), nil
}

// Bucket returns the bucket name.
func (s *Store) Bucket() string {
	if s.kv == nil {
		return ""
	}
	return s.kv.Bucket()
}

// Get returns the value for key. Missing keys and read failures both
// report false; failures other than not-found are logged.
func (s *Store) Get(key string) (string, bool) {
	if s.kv == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	entry, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, jetstream.ErrKeyNotFound) {
			s.log.Warn("get failed", "key", key, "error", err)
		}
		return "", false
	}
	return string(entry.Value()), true
}

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	if s.kv == nil {
		return ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.kv.Put(ctx, key, []byte(value)); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	if s.kv == nil {
		return ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Watch calls fn for every write to the bucket after the call, until ctx is
// done. Deletes are reported with an empty value. It blocks.
func (s *Store) Watch(ctx context.Context, fn func(key, value string)) error {
	if s.kv == nil {
		return ErrNotConnected
	}
	watcher, err := s.kv.WatchAll(ctx, jetstream.UpdatesOnly())
	if err != nil {
		return fmt.Errorf("watching %s: %w", s.kv.Bucket(), err)
	}
	defer watcher.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case entry, ok := <-watcher.Updates():
			if !ok {
				return nil
			}
			if entry == nil {
				continue
			}
			value := string(entry.Value())
			if op := entry.Operation(); op == jetstream.KeyValueDelete || op == jetstream.KeyValuePurge {
				value = ""
			}
			fn(entry.Key(), value)
		}
	}
}
