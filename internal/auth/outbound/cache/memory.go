// Package cache stores one time passwords keyed by identity, either in
// process (Memory) or in redis (Redis).
package cache

import (
	"context"

	"github.com/jellydator/ttlcache/v3"
	"go.opentelemetry.io/otel/codes"

	"github.com/shandysiswandi/otpgate/internal/auth/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
)

// Memory is a process local store. Every entry expires at the ExpiresAt of
// its own code and nothing else removes a live code except Delete or Consume.
// Entries are also checked against their expiry on every read.
type Memory struct {
	cache *ttlcache.Cache[string, entity.OtpCode]
	locks *keyLock
	clock clock.Clocker
	ins   instrument.Instrumentation
}

// NewMemory builds an unbounded Memory store.
func NewMemory(clk clock.Clocker, ins instrument.Instrumentation) *Memory {
	return &Memory{
		cache: ttlcache.New[string, entity.OtpCode](ttlcache.WithDisableTouchOnHit[string, entity.OtpCode]()),
		locks: newKeyLock(),
		clock: clk,
		ins:   ins,
	}
}

func (m *Memory) live(identity string) (entity.OtpCode, bool) {
	item := m.cache.Get(identity)
	if item == nil {
		return entity.OtpCode{}, false
	}
	cur := item.Value()
	return cur, cur.IsLive(m.clock.Now())
}

// Save stores code unless the identity already holds a live code, and returns
// the code that is live afterwards. An already expired code is not written.
func (m *Memory) Save(ctx context.Context, code entity.OtpCode) (entity.OtpCode, error) {
	ctx, span := m.ins.Tracer("auth.outbound.cache").Start(ctx, "Memory.Save")
	defer span.End()

	unlock := m.locks.lock(code.Identity)
	defer unlock()

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return entity.OtpCode{}, err
	}

	m.cache.DeleteExpired()

	if cur, ok := m.live(code.Identity); ok {
		return cur, nil
	}

	ttl := code.ExpiresAt.Sub(m.clock.Now())
	if ttl <= 0 {
		m.cache.Delete(code.Identity)
		return code, nil
	}

	m.cache.Set(code.Identity, code, ttl)

	return code, nil
}

// Fetch returns the live code for identity, or nil.
func (m *Memory) Fetch(ctx context.Context, identity string) (*entity.OtpCode, error) {
	_, span := m.ins.Tracer("auth.outbound.cache").Start(ctx, "Memory.Fetch")
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	cur, ok := m.live(identity)
	if !ok {
		return nil, nil
	}

	return &cur, nil
}

// Consume removes the code of identity when candidate matches it and it is
// still live, and reports whether it did. Of concurrent callers with the same
// code only one gets true.
func (m *Memory) Consume(ctx context.Context, identity, candidate string) (bool, error) {
	_, span := m.ins.Tracer("auth.outbound.cache").Start(ctx, "Memory.Consume")
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	unlock := m.locks.lock(identity)
	defer unlock()

	item := m.cache.Get(identity)
	if item == nil {
		return false, nil
	}

	if !item.Value().IsCodeValid(candidate, m.clock.Now()) {
		return false, nil
	}

	m.cache.Delete(identity)

	return true, nil
}

// Delete removes the code for identity. Deleting a missing identity is not an error.
func (m *Memory) Delete(ctx context.Context, identity string) error {
	_, span := m.ins.Tracer("auth.outbound.cache").Start(ctx, "Memory.Delete")
	defer span.End()

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	unlock := m.locks.lock(identity)
	defer unlock()

	m.cache.Delete(identity)

	return nil
}
