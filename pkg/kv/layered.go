package kv

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kryptos/pkg/errors"
	"github.com/matzehuels/kryptos/pkg/observability"
)

// Sources reported to [observability.StoreHooks].
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// LayeredOptions configures [NewLayered].
type LayeredOptions struct {
	// Dev enables the remote: lookups sync remote values into the local
	// store and fall back to the remote on a local miss.
	Dev bool

	// SyncTTL is the TTL for values copied from the remote. Zero means
	// [TTLSynced].
	SyncTTL time.Duration

	// Logger receives sync and fallback diagnostics. Nil means log.Default().
	Logger *log.Logger
}

// Layered combines an optional local [Store] with an optional [Remote].
// Keys are validated with [errors.ValidateKey] before any backend is touched.
type Layered struct {
	local  Store
	remote Remote
	opts   LayeredOptions
}

// NewLayered creates a layered store. Either local or remote may be nil.
func NewLayered(local Store, remote Remote, opts LayeredOptions) *Layered {
	if opts.SyncTTL == 0 {
		opts.SyncTTL = TTLSynced
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Layered{local: local, remote: remote, opts: opts}
}

// Get looks key up following the layered policy described in the package
// documentation.
func (l *Layered) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := errors.ValidateKey(key); err != nil {
		return nil, false, err
	}
	logger := l.opts.Logger.With("key", key)
	hooks := observability.Store()

	// The remote is contacted at most once per lookup.
	var (
		fetched     bool
		remoteData  []byte
		remoteFound bool
	)
	fetch := func() ([]byte, bool) {
		if !fetched {
			remoteData, remoteFound = l.fetchRemote(ctx, key, logger)
			fetched = true
		}
		return remoteData, remoteFound
	}

	if l.opts.Dev && l.local != nil {
		logger.Debug("dev mode: syncing from remote to local")
		if data, ok := fetch(); ok {
			if err := l.local.Set(ctx, key, data, l.opts.SyncTTL); err != nil {
				logger.Warn("failed to write synced value to local store", "err", err)
			} else {
				hooks.OnStoreSet(ctx, SourceLocal, len(data))
				logger.Debug("synced to local store")
			}
		}
	}

	if l.local != nil {
		data, ok, err := l.local.Get(ctx, key)
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "read local store")
		}
		if ok {
			hooks.OnStoreHit(ctx, SourceLocal)
			logger.Debug("retrieved from local store")
			return data, true, nil
		}
		hooks.OnStoreMiss(ctx, SourceLocal)
		if !l.opts.Dev {
			logger.Debug("not found locally and remote fallback is disabled outside dev mode")
			return nil, false, nil
		}
		logger.Debug("not found locally, trying remote fallback")
		return l.remoteResult(ctx, fetch)
	}

	if l.opts.Dev {
		logger.Debug("no local store, trying remote")
		return l.remoteResult(ctx, fetch)
	}
	logger.Debug("no local store and remote is disabled outside dev mode")
	return nil, false, nil
}

func (l *Layered) remoteResult(ctx context.Context, fetch func() ([]byte, bool)) ([]byte, bool, error) {
	data, ok := fetch()
	if ok {
		observability.Store().OnStoreHit(ctx, SourceRemote)
	} else {
		observability.Store().OnStoreMiss(ctx, SourceRemote)
	}
	return data, ok, nil
}

// fetchRemote collapses remote failures into misses.
func (l *Layered) fetchRemote(ctx context.Context, key string, logger *log.Logger) ([]byte, bool) {
	if l.remote == nil {
		return nil, false
	}
	data, ok, err := l.remote.Get(ctx, key)
	if err != nil {
		logger.Warn("remote fetch failed", "err", err)
		return nil, false
	}
	return data, ok
}

// Set writes to the local store.
func (l *Layered) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := errors.ValidateKey(key); err != nil {
		return err
	}
	if l.local == nil {
		return ErrReadOnly
	}
	if err := l.local.Set(ctx, key, data, ttl); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write local store")
	}
	observability.Store().OnStoreSet(ctx, SourceLocal, len(data))
	return nil
}

// Delete removes key from the local store. The remote is never modified.
func (l *Layered) Delete(ctx context.Context, key string) error {
	if err := errors.ValidateKey(key); err != nil {
		return err
	}
	if l.local == nil {
		return ErrReadOnly
	}
	return l.local.Delete(ctx, key)
}

// Local returns the local store, or nil.
func (l *Layered) Local() Store {
	return l.local
}

// Close closes the local store.
func (l *Layered) Close() error {
	if l.local != nil {
		return l.local.Close()
	}
	return nil
}

// Ensure Layered implements Store.
var _ Store = (*Layered)(nil)
