package location

import (
	"context"
	"errors"
	"time"

	"github.com/om-bhaiya/messle/internal/models"
	"go.uber.org/zap"
)

// ErrUnavailable is returned when the platform denies or lacks the
// geolocation capability, or the attempt timed out and no cached reading
// exists. Callers treat it as degraded capability, never a hard failure.
var ErrUnavailable = errors.New("location unavailable")

// Provider obtains the caller's current coordinates. Implementations should
// honor ctx cancellation but are not required to; the Resolver enforces the
// timeout budget either way.
type Provider interface {
	CurrentLocation(ctx context.Context) (models.Location, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (models.Location, error)

func (f ProviderFunc) CurrentLocation(ctx context.Context) (models.Location, error) {
	return f(ctx)
}

// Static is a Provider pinned to fixed coordinates, e.g. supplied on the
// command line.
type Static struct {
	Loc models.Location
}

func (s Static) CurrentLocation(context.Context) (models.Location, error) {
	return s.Loc, nil
}

const defaultTimeout = 5 * time.Second

// Resolver wraps a Provider with the fixed timeout budget and a
// session-scoped cache fallback. A nil provider means the capability is
// absent entirely.
type Resolver struct {
	provider Provider
	cache    SessionCache
	timeout  time.Duration
	log      *zap.Logger
}

func NewResolver(provider Provider, cache SessionCache, timeout time.Duration, log *zap.Logger) *Resolver {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{provider: provider, cache: cache, timeout: timeout, log: log}
}

// Resolve attempts a live reading within the timeout budget, caches it on
// success, and falls back to the session cache on failure. When both fail
// it returns ErrUnavailable; ranking then proceeds without a location.
func (r *Resolver) Resolve(ctx context.Context) (*models.Location, error) {
	if r.provider != nil {
		loc, err := r.current(ctx)
		if err == nil {
			if r.cache != nil {
				if cerr := r.cache.Put(ctx, loc); cerr != nil {
					r.log.Warn("failed to cache location", zap.Error(cerr))
				}
			}
			return &loc, nil
		}
		r.log.Warn("location provider failed", zap.Error(err))
	}

	if r.cache != nil {
		cached, err := r.cache.Get(ctx)
		if err != nil {
			r.log.Warn("session location cache read failed", zap.Error(err))
		} else if cached != nil {
			r.log.Debug("using cached session location")
			return cached, nil
		}
	}

	return nil, ErrUnavailable
}

// current runs the provider call under the timeout budget in its own
// goroutine, so a provider that never resolves cannot stall the caller.
func (r *Resolver) current(ctx context.Context) (models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type reading struct {
		loc models.Location
		err error
	}
	ch := make(chan reading, 1)
	go func() {
		loc, err := r.provider.CurrentLocation(ctx)
		ch <- reading{loc: loc, err: err}
	}()

	select {
	case res := <-ch:
		return res.loc, res.err
	case <-ctx.Done():
		return models.Location{}, ctx.Err()
	}
}
