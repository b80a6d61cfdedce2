package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/otpgate/internal/auth/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

var (
	errStore = errors.New("store unavailable")
	errMail  = errors.New("smtp refused")
	baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
)

// fakeStore keeps the first live code per identity, like the real stores.
type fakeStore struct {
	mu      sync.Mutex
	clock   clock.Clocker
	codes   map[string]entity.OtpCode
	saves    int
	deletes  int
	consumes int

	saveErr    error
	fetchErr   error
	deleteErr  error
	consumeErr error
}

func newFakeStore(clk clock.Clocker) *fakeStore {
	return &fakeStore{clock: clk, codes: make(map[string]entity.OtpCode)}
}

func (f *fakeStore) Save(_ context.Context, code entity.OtpCode) (entity.OtpCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.saves++
	if f.saveErr != nil {
		return entity.OtpCode{}, f.saveErr
	}
	if cur, ok := f.codes[code.Identity]; ok && cur.IsLive(f.clock.Now()) {
		return cur, nil
	}
	f.codes[code.Identity] = code
	return code, nil
}

func (f *fakeStore) Fetch(_ context.Context, identity string) (*entity.OtpCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	cur, ok := f.codes[identity]
	if !ok {
		return nil, nil
	}
	return &cur, nil
}

func (f *fakeStore) Consume(_ context.Context, identity, candidate string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.consumes++
	if f.consumeErr != nil {
		return false, f.consumeErr
	}
	cur, ok := f.codes[identity]
	if !ok || !cur.IsCodeValid(candidate, f.clock.Now()) {
		return false, nil
	}
	delete(f.codes, identity)
	return true, nil
}

func (f *fakeStore) Delete(_ context.Context, identity string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.codes, identity)
	return nil
}

type sentOtp struct {
	address string
	code    string
}

type fakeSender struct {
	sent []sentOtp
	err  error
}

func (f *fakeSender) SendOtp(_ context.Context, address, code string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentOtp{address: address, code: code})
	return nil
}

// sequenceGenerator returns the given codes in order, then repeats the last.
type sequenceGenerator struct {
	codes []string
	err   error
	calls int
}

func (g *sequenceGenerator) Generate() (string, error) {
	if g.err != nil {
		return "", g.err
	}
	i := min(g.calls, len(g.codes)-1)
	g.calls++
	return g.codes[i], nil
}

type fixture struct {
	uc     *Usecase
	store  *fakeStore
	sender *fakeSender
	gen    *sequenceGenerator
	clock  *clock.Fixed
}

func newFixture(t *testing.T, yaml string) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	clk := clock.NewFixed(baseTime)
	f := &fixture{
		store:  newFakeStore(clk),
		sender: &fakeSender{},
		gen:    &sequenceGenerator{codes: []string{"123456", "654321"}},
		clock:  clk,
	}
	f.uc = New(Dependency{
		RepoStore:  f.store,
		RepoSender: f.sender,
		Generator:  f.gen,
		Validator:  v,
		Config:     cfg,
		Clock:      clk,
		Instrument: instrument.NewNoop(),
	})

	return f
}
