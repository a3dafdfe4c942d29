package utils

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Permanent: error que no se reintenta
type Permanent struct{ Err error }

func (p Permanent) Error() string { return p.Err.Error() }
func (p Permanent) Unwrap() error { return p.Err }

type Backoff struct {
	base       time.Duration
	jitter     time.Duration
	maxRetries int
	sleep      func(context.Context, time.Duration) error
}

func NewBackoff(base time.Duration, maxRetries int) Backoff {
	return Backoff{base: base, jitter: base + base/2, maxRetries: maxRetries, sleep: sleepCtx}
}

// para tests
func (b Backoff) WithSleep(fn func(context.Context, time.Duration) error) Backoff {
	b.sleep = fn
	return b
}

func (b Backoff) Do(ctx context.Context, fn func(i int) error) error {
	var err error
	for i := 0; i <= b.maxRetries; i++ {
		err = fn(i)
		if err == nil {
			return nil
		}
		var perm Permanent
		if errors.As(err, &perm) {
			return perm.Err
		}
		if i == b.maxRetries {
			break
		}
		// backoff exponencial + jitter
		t := time.Duration(1<<i) * b.base
		if b.jitter > 0 {
			t += time.Duration(rand.Int63n(int64(b.jitter)))
		}
		if serr := b.sleep(ctx, t); serr != nil {
			return serr
		}
	}
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
