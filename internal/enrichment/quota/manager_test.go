package quota

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dErrors "enricher/pkg/domain-errors"
	"enricher/pkg/platform/sentinel"
	"enricher/pkg/requestcontext"
)

// =============================================================================
// Quota Manager Test Suite
// =============================================================================

type ManagerSuite struct {
	suite.Suite
	logs    *bytes.Buffer
	manager *Manager
	ctx     context.Context
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.logs = &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(s.logs, nil))
	s.manager = New(WithLogger(logger), WithLimits(map[string]int{"clearbit": 2, "hunter": 50}))
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC))
}

// =============================================================================
// Allowed / Record
// =============================================================================

func (s *ManagerSuite) TestAllowed() {
	s.Run("unknown provider is never allowed", func() {
		s.False(s.manager.Allowed(s.ctx, "nobody"))
	})

	s.Run("fresh provider is allowed", func() {
		s.True(s.manager.Allowed(s.ctx, "clearbit"))
	})

	s.Run("exhausted provider is not allowed", func() {
		s.manager.Record(s.ctx, "clearbit")
		s.manager.Record(s.ctx, "clearbit")
		s.False(s.manager.Allowed(s.ctx, "clearbit"))
	})

	s.Run("zero allowance is never allowed", func() {
		s.Require().NoError(s.manager.Register("disabled", 0))
		s.False(s.manager.Allowed(s.ctx, "disabled"))
	})
}

func (s *ManagerSuite) TestRecord() {
	s.Run("unknown provider is a no-op", func() {
		s.NotPanics(func() { s.manager.Record(s.ctx, "nobody") })
		s.Len(s.manager.Snapshot(s.ctx), 2)
	})

	s.Run("usage never exceeds the limit", func() {
		for range 5 {
			s.manager.Record(s.ctx, "clearbit")
		}
		state, err := s.manager.Get(s.ctx, "clearbit")
		s.Require().NoError(err)
		s.Equal(2, state.Used)
		s.True(state.IsExhausted())
		s.Zero(state.Remaining())
	})

	s.Run("reaching the limit emits an audit line", func() {
		s.Contains(s.logs.String(), `"event":"provider_quota_exhausted"`)
		s.Contains(s.logs.String(), `"log_type":"audit"`)
	})
}

// =============================================================================
// Reserve / Commit / Release
// =============================================================================

func (s *ManagerSuite) TestReserve() {
	s.Run("pending reservations count against the budget", func() {
		r1, ok := s.manager.Reserve(s.ctx, "clearbit")
		s.Require().True(ok)
		r2, ok := s.manager.Reserve(s.ctx, "clearbit")
		s.Require().True(ok)

		_, ok = s.manager.Reserve(s.ctx, "clearbit")
		s.False(ok, "third reservation exceeds monthly=2")
		s.False(s.manager.Allowed(s.ctx, "clearbit"))

		r1.Commit(s.ctx)
		r2.Release()

		state, _ := s.manager.Get(s.ctx, "clearbit")
		s.Equal(1, state.Used)
		s.Zero(state.Pending)
		s.True(s.manager.Allowed(s.ctx, "clearbit"))
	})

	s.Run("commit and release are idempotent", func() {
		r, ok := s.manager.Reserve(s.ctx, "hunter")
		s.Require().True(ok)
		r.Commit(s.ctx)
		r.Commit(s.ctx)
		r.Release()

		state, _ := s.manager.Get(s.ctx, "hunter")
		s.Equal(1, state.Used)
		s.Zero(state.Pending)
	})

	s.Run("unknown provider cannot reserve", func() {
		r, ok := s.manager.Reserve(s.ctx, "nobody")
		s.False(ok)
		s.Nil(r)
		s.NotPanics(func() { r.Commit(s.ctx); r.Release() })
	})
}

// =============================================================================
// Period Reset
// =============================================================================

func (s *ManagerSuite) TestMonthlyReset() {
	s.manager.Record(s.ctx, "clearbit")
	s.manager.Record(s.ctx, "clearbit")

	state, _ := s.manager.Get(s.ctx, "clearbit")
	s.Equal(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), state.PeriodStart)
	s.Equal(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), state.ResetAt)

	s.Run("still exhausted just before the reset instant", func() {
		ctx := requestcontext.WithTime(context.Background(), state.ResetAt.Add(-time.Nanosecond))
		s.False(s.manager.Allowed(ctx, "clearbit"))
	})

	s.Run("first access at the reset instant clears usage", func() {
		ctx := requestcontext.WithTime(context.Background(), state.ResetAt)
		s.True(s.manager.Allowed(ctx, "clearbit"))

		next, err := s.manager.Get(ctx, "clearbit")
		s.Require().NoError(err)
		s.Zero(next.Used)
		s.Equal(time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC), next.ResetAt)
		s.Contains(s.logs.String(), "provider_quota_period_rolled")
	})
}

func (s *ManagerSuite) TestReset() {
	s.manager.Record(s.ctx, "hunter")

	s.Require().NoError(s.manager.Reset(s.ctx, "hunter"))
	state, _ := s.manager.Get(s.ctx, "hunter")
	s.Zero(state.Used)

	err := s.manager.Reset(s.ctx, "nobody")
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

// =============================================================================
// Registration and Snapshot
// =============================================================================

func (s *ManagerSuite) TestRegister() {
	s.Run("rejects invalid input", func() {
		s.Error(s.manager.Register("", 10))
		s.Error(s.manager.Register("x", -1))
	})

	s.Run("lowering the limit clamps usage", func() {
		s.manager.Record(s.ctx, "hunter")
		s.manager.Record(s.ctx, "hunter")
		s.Require().NoError(s.manager.Register("hunter", 1))

		state, _ := s.manager.Get(s.ctx, "hunter")
		s.Equal(1, state.MonthlyLimit)
		s.Equal(1, state.Used)
	})
}

func (s *ManagerSuite) TestSnapshotIsSortedCopy() {
	snap := s.manager.Snapshot(s.ctx)
	s.Require().Len(snap, 2)
	s.Equal("clearbit", snap[0].Provider)
	s.Equal("hunter", snap[1].Provider)

	snap[0].Used = 99
	state, _ := s.manager.Get(s.ctx, "clearbit")
	s.Zero(state.Used)
}

func (s *ManagerSuite) TestGetUnknown() {
	_, err := s.manager.Get(s.ctx, "nobody")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// =============================================================================
// Concurrency
// =============================================================================

func TestReserveNeverOvershoots(t *testing.T) {
	m := New(WithLimits(map[string]int{"surfe": 50}))
	ctx := context.Background()

	var granted atomic.Int32
	var wg sync.WaitGroup
	for i := range 200 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, ok := m.Reserve(ctx, "surfe")
			if !ok {
				return
			}
			granted.Add(1)
			// alternate outcomes so released slots get reused
			if i%4 == 0 {
				r.Release()
				granted.Add(-1)
				return
			}
			r.Commit(ctx)
		}(i)
	}
	wg.Wait()

	state, err := m.Get(ctx, "surfe")
	require.NoError(t, err)
	assert.LessOrEqual(t, state.Used, 50)
	assert.Equal(t, int(granted.Load()), state.Used)
	assert.Zero(t, state.Pending)
}

func TestFiftyFirstCallIsRefused(t *testing.T) {
	m := New(WithLimits(map[string]int{"clearbit": 50}))
	ctx := context.Background()

	for i := range 50 {
		r, ok := m.Reserve(ctx, "clearbit")
		require.True(t, ok, "call %d should be allowed", i+1)
		r.Commit(ctx)
	}

	_, ok := m.Reserve(ctx, "clearbit")
	assert.False(t, ok)
	assert.False(t, m.Allowed(ctx, "clearbit"))
}
