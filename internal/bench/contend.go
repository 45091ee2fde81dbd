package bench

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/fibdev/internal/errors"
	"github.com/agbru/fibdev/internal/fibdev"
)

// ContendResult is the outcome of a contention run.
type ContendResult struct {
	Contenders int
	Acquired   int
	Busy       int
}

// Contend starts contenders goroutines that each call dev.Open once, all
// released at the same instant. Winning handles are held until every
// contender has returned, then released. With no other holder, exactly one
// contender acquires the session and the rest get ErrBusy.
func Contend(ctx context.Context, dev *fibdev.Device, contenders int) (ContendResult, error) {
	res := ContendResult{Contenders: contenders}
	if contenders <= 0 {
		return res, nil
	}

	var (
		acquired, busy atomic.Int64
		mu             sync.Mutex
		handles        []*fibdev.Handle
		start          = make(chan struct{})
	)

	g, ctx := errgroup.WithContext(ctx)
	for range contenders {
		g.Go(func() error {
			select {
			case <-start:
			case <-ctx.Done():
				return ctx.Err()
			}
			h, err := dev.Open()
			switch {
			case err == nil:
				acquired.Add(1)
				mu.Lock()
				handles = append(handles, h)
				mu.Unlock()
				return nil
			case errors.Is(err, apperrors.ErrBusy):
				busy.Add(1)
				return nil
			}
			return err
		})
	}
	close(start)
	err := g.Wait()

	for _, h := range handles {
		h.Release()
	}
	res.Acquired = int(acquired.Load())
	res.Busy = int(busy.Load())
	return res, err
}
