package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/folio/internal/logger"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/services"
)

type fakeChecker struct {
	mu      sync.Mutex
	checked []string
	sweeps  int
	fail    bool
}

func (f *fakeChecker) Check(_ context.Context, domain string) (*services.DomainCheck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checked = append(f.checked, domain)
	if f.fail {
		return nil, errors.New("provider down")
	}
	return &services.DomainCheck{Domain: domain, Status: models.DomainValid}, nil
}

func (f *fakeChecker) EnqueueStale(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweeps++
	return 1, nil
}

func (f *fakeChecker) snapshot() ([]string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.checked...), f.sweeps
}

func TestDomainWorkerPool_ProcessesAndAcks(t *testing.T) {
	for _, fail := range []bool{false, true} {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer rdb.Close()

		ctx, cancel := context.WithCancel(context.Background())
		checker := &fakeChecker{fail: fail}
		pool := &DomainWorkerPool{Redis: rdb, Domains: checker, NumWorkers: 2, Logger: logger.Discard()}

		done := make(chan error, 1)
		go func() { done <- pool.Run(ctx) }()

		for _, d := range []string{"janedoe.com", "", "bob.dev"} {
			require.NoError(t, rdb.XAdd(ctx, &redis.XAddArgs{
				Stream: services.DomainVerifyStream,
				Values: map[string]any{"domain": d, "ts_unix": "0"},
			}).Err())
		}

		require.Eventually(t, func() bool {
			got, _ := checker.snapshot()
			return len(got) == 2
		}, 5*time.Second, 20*time.Millisecond)

		got, _ := checker.snapshot()
		assert.ElementsMatch(t, []string{"janedoe.com", "bob.dev"}, got)

		require.Eventually(t, func() bool {
			p, err := rdb.XPending(ctx, services.DomainVerifyStream, "domain-workers").Result()
			return err == nil && p.Count == 0
		}, 5*time.Second, 20*time.Millisecond, "failed jobs are acknowledged too (fail=%v)", fail)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Fatal("pool did not stop")
		}
	}
}

func TestDomainWorkerPool_MissingDeps(t *testing.T) {
	assert.Error(t, (&DomainWorkerPool{}).Run(context.Background()))
	assert.Error(t, (&Scheduler{}).Run(context.Background()))
}

func TestScheduler_SweepsOnInterval(t *testing.T) {
	checker := &fakeChecker{}
	s := &Scheduler{Domains: checker, Interval: 20 * time.Millisecond, Logger: logger.Discard()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		_, n := checker.snapshot()
		return n >= 3
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
