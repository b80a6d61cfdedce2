package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shandysiswandi/otpgate/internal/auth/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/hash"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
)

// ErrSaveContention is returned when the key of an identity keeps changing
// under Save.
var ErrSaveContention = errors.New("cache: otp save contention")

const saveAttempts = 3

// replaceStale overwrites KEYS[1] with ARGV[2] for ARGV[3] milliseconds only
// while it still holds ARGV[1].
var replaceStale = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
end
return false
`)

// deleteIfEqual removes KEYS[1] only while it still holds ARGV[1].
var deleteIfEqual = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisRecord struct {
	Code      string    `json:"code"`
	Identity  string    `json:"identity"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Redis stores codes in redis under prefix + HMAC(identity), so addresses are
// not visible in the keyspace. Inserts use SET NX with the remaining lifetime
// of the code, which makes Save atomic per identity across processes.
type Redis struct {
	client *redis.Client
	prefix string
	hasher hash.Hasher
	clock  clock.Clocker
	ins    instrument.Instrumentation
}

func NewRedis(client *redis.Client, prefix string, hasher hash.Hasher, clk clock.Clocker, ins instrument.Instrumentation) *Redis {
	return &Redis{client: client, prefix: prefix, hasher: hasher, clock: clk, ins: ins}
}

func (r *Redis) key(identity string) string {
	return r.prefix + r.hasher.Hash(identity)
}

func (r *Redis) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return r.ins.Tracer("auth.outbound.cache").Start(ctx, name)
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// Save stores code unless the identity already holds a live code, and returns
// the code that is live afterwards. An already expired code is not written.
func (r *Redis) Save(ctx context.Context, code entity.OtpCode) (entity.OtpCode, error) {
	ctx, span := r.startSpan(ctx, "Redis.Save")
	defer span.End()

	payload, err := json.Marshal(redisRecord(code))
	if err != nil {
		return entity.OtpCode{}, fail(span, err)
	}

	key := r.key(code.Identity)

	for range saveAttempts {
		ttl := code.ExpiresAt.Sub(r.clock.Now())
		if ttl <= 0 {
			return code, nil
		}

		ok, err := r.client.SetNX(ctx, key, payload, ttl).Result()
		if err != nil {
			return entity.OtpCode{}, fail(span, err)
		}
		if ok {
			return code, nil
		}

		raw, cur, err := r.get(ctx, code.Identity)
		if err != nil {
			return entity.OtpCode{}, fail(span, err)
		}
		if cur != nil && cur.IsLive(r.clock.Now()) {
			return *cur, nil
		}
		if raw == nil {
			continue
		}

		// the key outlived its code, for example under clock skew between
		// instances; swap it unless another writer got there first
		_, err = replaceStale.Run(ctx, r.client, []string{key}, raw, payload, max(ttl.Milliseconds(), 1)).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return entity.OtpCode{}, fail(span, err)
		}
		return code, nil
	}

	return entity.OtpCode{}, fail(span, ErrSaveContention)
}

// Fetch returns the live code for identity, or nil.
func (r *Redis) Fetch(ctx context.Context, identity string) (*entity.OtpCode, error) {
	ctx, span := r.startSpan(ctx, "Redis.Fetch")
	defer span.End()

	cur, err := r.fetch(ctx, identity)
	if err != nil {
		return nil, fail(span, err)
	}
	return cur, nil
}

func (r *Redis) fetch(ctx context.Context, identity string) (*entity.OtpCode, error) {
	_, cur, err := r.get(ctx, identity)
	if err != nil || cur == nil || !cur.IsLive(r.clock.Now()) {
		return nil, err
	}
	return cur, nil
}

// get returns the raw value stored for identity and its decoded code, live
// or not. Both are nil when the key is absent.
func (r *Redis) get(ctx context.Context, identity string) ([]byte, *entity.OtpCode, error) {
	raw, err := r.client.Get(ctx, r.key(identity)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var rec redisRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, nil, err
	}

	code := entity.OtpCode(rec)
	return raw, &code, nil
}

// Consume removes the code of identity when candidate matches it and it is
// still live, and reports whether it did. The delete only succeeds while the
// key still holds the value that was checked, so of concurrent callers with
// the same code only one gets true.
func (r *Redis) Consume(ctx context.Context, identity, candidate string) (bool, error) {
	ctx, span := r.startSpan(ctx, "Redis.Consume")
	defer span.End()

	raw, cur, err := r.get(ctx, identity)
	if err != nil {
		return false, fail(span, err)
	}
	if cur == nil || !cur.IsCodeValid(candidate, r.clock.Now()) {
		return false, nil
	}

	n, err := deleteIfEqual.Run(ctx, r.client, []string{r.key(identity)}, raw).Int64()
	if err != nil {
		return false, fail(span, err)
	}
	return n == 1, nil
}

// Delete removes the code for identity. Deleting a missing identity is not an error.
func (r *Redis) Delete(ctx context.Context, identity string) error {
	ctx, span := r.startSpan(ctx, "Redis.Delete")
	defer span.End()

	if err := r.client.Del(ctx, r.key(identity)).Err(); err != nil {
		return fail(span, err)
	}
	return nil
}
