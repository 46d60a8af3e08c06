package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type expirerFunc func(ctx context.Context) (int, error)

func (f expirerFunc) Execute(ctx context.Context) (int, error) { return f(ctx) }

func quietLogger() (*logrus.Logger, *test.Hook) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log, test.NewLocal(log)
}

func TestSweeperRunsUntilCancelled(t *testing.T) {
	log, _ := quietLogger()
	var calls atomic.Int32

	sweeper := NewSweeper(expirerFunc(func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 1, nil
	}), 5*time.Millisecond, log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeperDisabled(t *testing.T) {
	log, _ := quietLogger()
	called := false

	NewSweeper(expirerFunc(func(ctx context.Context) (int, error) {
		called = true
		return 0, nil
	}), 0, log).Run(context.Background())

	assert.False(t, called)
}

func TestSweepLogsFailure(t *testing.T) {
	log, hook := quietLogger()

	NewSweeper(expirerFunc(func(ctx context.Context) (int, error) {
		return 2, errors.New("delete failed")
	}), time.Minute, log).sweep(context.Background())

	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, logrus.ErrorLevel, entry.Level)
		assert.Equal(t, 2, entry.Data["removed"])
	}
}
