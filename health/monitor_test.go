package health

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy() Policy {
	return Policy{
		Interval:    time.Millisecond,
		Timeout:     50 * time.Millisecond,
		StartPeriod: time.Millisecond,
		Retries:     3,
	}
}

// scriptedProbe returns results in order and cancels once it runs out.
type scriptedProbe struct {
	mu      sync.Mutex
	results []error
	calls   int
	cancel  context.CancelFunc
}

func (s *scriptedProbe) probe(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := ctx.Deadline(); !ok {
		return fmt.Errorf("probe context has no deadline")
	}
	if s.calls >= len(s.results) {
		s.cancel()
		return nil
	}
	err := s.results[s.calls]
	s.calls++
	return err
}

func TestMonitor(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	fail := fmt.Errorf("connection refused")

	tests := []struct {
		name            string
		results         []error
		wantCalls       int
		wantUnhealthy   bool
		wantTransitions []Status
	}{
		{
			name:            "unhealthy after exactly three failures",
			results:         []error{fail, fail, fail, nil},
			wantCalls:       3,
			wantUnhealthy:   true,
			wantTransitions: []Status{StatusUnhealthy},
		},
		{
			name:            "success resets the failure count",
			results:         []error{fail, fail, nil, fail, fail, nil},
			wantCalls:       6,
			wantTransitions: []Status{StatusHealthy},
		},
		{
			name:            "healthy then unhealthy",
			results:         []error{nil, nil, fail, fail, fail},
			wantCalls:       5,
			wantUnhealthy:   true,
			wantTransitions: []Status{StatusHealthy, StatusUnhealthy},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sp := &scriptedProbe{results: tt.results, cancel: cancel}
			var transitions []Status

			err := Monitor(ctx, fastPolicy(), sp.probe, func(s Status) {
				transitions = append(transitions, s)
			})

			assert.Equal(tt.wantCalls, sp.calls)
			assert.Equal(tt.wantTransitions, transitions)
			if tt.wantUnhealthy {
				require.ErrorIs(err, ErrUnhealthy)
				assert.ErrorContains(err, "connection refused")
			} else {
				assert.ErrorIs(err, context.Canceled)
			}
		})
	}
}

func TestMonitor_StartPeriod(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	p := fastPolicy()
	p.StartPeriod = time.Hour

	called := false
	err := Monitor(ctx, p, func(context.Context) error {
		called = true
		return nil
	}, nil)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, called, "probe must not run during the start period")
}

func TestMonitor_InvalidPolicy(t *testing.T) {
	err := Monitor(context.Background(), Policy{}, func(context.Context) error { return nil }, nil)
	assert.ErrorContains(t, err, "must be positive")
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "starting", StatusStarting.String())
	assert.Equal(t, "healthy", StatusHealthy.String())
	assert.Equal(t, "unhealthy", StatusUnhealthy.String())
	assert.Equal(t, "unknown", Status(42).String())
}
