// Package redisbuf is a demo transport that ships a graphwire
// (header, buffers) pair between two processes over Redis: the header
// goes into a hash field, the buffers into a list keyed off the same
// name, preserving the order and boundaries the zero-copy buffer
// contract (spec.md §6) requires a transport to respect. It is an
// integration harness around the engine, not part of it — nothing in
// codec or engine imports this package.
package redisbuf

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	redis "github.com/redis/go-redis/v9"

	"github.com/graphwire/graphwire/codec"
)

const (
	fieldHeader = "header"
	fieldCount  = "buffer_count"

	defaultKeyPrefix = "graphwire::"
)

// ErrNotFound indicates Pull was called against a key Push never wrote
// (or that has since been deleted/expired).
var ErrNotFound = errors.New("redisbuf: key not found")

// Option configures Transport behavior.
type Option func(*config)

type config struct {
	keyPrefix string
}

// WithKeyPrefix overrides the prefix applied to every Redis key this
// transport touches.
func WithKeyPrefix(prefix string) Option {
	return func(cfg *config) { cfg.keyPrefix = prefix }
}

// Transport ships graphwire header/buffer pairs over an existing Redis
// client, mirroring the dependency-injection shape of the teacher's
// Redis cache backend (a redis.UniversalClient passed in, never
// constructed internally unless the caller asks for that convenience).
type Transport struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewTransport wraps an existing redis client.
func NewTransport(client redis.UniversalClient, opts ...Option) (*Transport, error) {
	if client == nil {
		return nil, errors.New("redisbuf: client is nil")
	}
	cfg := config{keyPrefix: defaultKeyPrefix}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Transport{client: client, keyPrefix: cfg.keyPrefix}, nil
}

// NewTransportWithOptions constructs a Redis client from go-redis
// options and wraps it, for callers that don't already have a shared
// client.
func NewTransportWithOptions(options *redis.Options, opts ...Option) (*Transport, error) {
	if options == nil {
		return nil, errors.New("redisbuf: redis options are required")
	}
	return NewTransport(redis.NewClient(options), opts...)
}

// Push msgpack-encodes header and writes it to a hash field, then
// RPushes each buffer (coerced to []byte) onto a companion list, so a
// Pull on the other side can reconstruct both in original order.
func (t *Transport) Push(ctx context.Context, key string, header codec.WireHeader, buffers []any) error {
	encoded, err := codec.EncodeWireHeader(header)
	if err != nil {
		return errors.Wrap(err, "redisbuf: encode header")
	}

	hashKey := t.hashKey(key)
	fields := map[string]any{
		fieldHeader: encoded,
		fieldCount:  len(buffers),
	}
	if err := t.client.HSet(ctx, hashKey, fields).Err(); err != nil {
		return errors.Wrap(err, "redisbuf: write header")
	}

	if len(buffers) > 0 {
		listKey := t.listKey(key)
		if err := t.client.Del(ctx, listKey).Err(); err != nil {
			return errors.Wrap(err, "redisbuf: clear stale buffer list")
		}
		raw := make([]any, len(buffers))
		for i, b := range buffers {
			buf, err := coerceBuffer(b)
			if err != nil {
				return err
			}
			raw[i] = buf
		}
		if err := t.client.RPush(ctx, listKey, raw...).Err(); err != nil {
			return errors.Wrap(err, "redisbuf: write buffers")
		}
	}

	return nil
}

// Pull reverses Push, returning the decoded header and the buffer
// list in the order Push wrote them.
func (t *Transport) Pull(ctx context.Context, key string) (codec.WireHeader, []any, error) {
	hashKey := t.hashKey(key)
	result, err := t.client.HGetAll(ctx, hashKey).Result()
	if err != nil {
		return codec.WireHeader{}, nil, errors.Wrap(err, "redisbuf: read header")
	}
	if len(result) == 0 {
		return codec.WireHeader{}, nil, ErrNotFound
	}

	header, err := codec.DecodeWireHeader([]byte(result[fieldHeader]))
	if err != nil {
		return codec.WireHeader{}, nil, errors.Wrap(err, "redisbuf: decode header")
	}

	if header.BufferCount == 0 {
		return header, nil, nil
	}

	listKey := t.listKey(key)
	raw, err := t.client.LRange(ctx, listKey, 0, -1).Result()
	if err != nil {
		return codec.WireHeader{}, nil, errors.Wrap(err, "redisbuf: read buffers")
	}
	buffers := make([]any, len(raw))
	for i, s := range raw {
		buffers[i] = []byte(s)
	}

	return header, buffers, nil
}

// Delete removes both the header hash and the buffer list for key.
func (t *Transport) Delete(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.hashKey(key), t.listKey(key)).Err()
}

func (t *Transport) hashKey(key string) string {
	return t.keyPrefix + sanitize(key)
}

func (t *Transport) listKey(key string) string {
	return t.keyPrefix + sanitize(key) + "::buffers"
}

func sanitize(key string) string {
	if strings.Contains(key, " ") {
		return strings.ReplaceAll(key, " ", "_")
	}
	return key
}

func coerceBuffer(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case interface{ Bytes() []byte }:
		return b.Bytes(), nil
	default:
		return nil, errors.Newf("redisbuf: unsupported buffer type %T", v)
	}
}
