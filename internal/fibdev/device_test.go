package fibdev

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"

	apperrors "github.com/agbru/fibdev/internal/errors"
	"github.com/agbru/fibdev/internal/fibdev/mocks"
	"github.com/agbru/fibdev/internal/fibonacci"
	"github.com/agbru/fibdev/internal/logging"
)

var _ io.Seeker = (*Handle)(nil)

func mustOpen(t *testing.T, d *Device) *Handle {
	t.Helper()
	h, err := d.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return h
}

func writeTerm(t *testing.T, h *Handle, n int) string {
	t.Helper()
	buf := make([]byte, n)
	if _, err := h.Write(buf, n); err != nil {
		t.Fatalf("Write at %d: %v", h.Position(), err)
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}

func TestOpenIsExclusive(t *testing.T) {
	t.Parallel()

	d := New()
	h := mustOpen(t, d)
	if !d.Busy() {
		t.Error("Busy() = false while a handle is open")
	}

	h2, err := d.Open()
	if !errors.Is(err, apperrors.ErrBusy) {
		t.Fatalf("second Open: got %v, want ErrBusy", err)
	}
	if h2 != nil {
		t.Error("second Open returned a handle")
	}
	if apperrors.ExitCodeFor(err) != apperrors.ExitErrorBusy {
		t.Errorf("ExitCodeFor(busy) = %d", apperrors.ExitCodeFor(err))
	}

	h.Release()
	if d.Busy() {
		t.Error("Busy() = true after Release")
	}
	h3 := mustOpen(t, d)
	if h3.ID() == h.ID() {
		t.Error("handles should carry distinct identifiers")
	}
	if h3.Position() != 0 {
		t.Errorf("new handle position = %d, want 0", h3.Position())
	}
	h3.Release()
}

func TestOpenConcurrentSingleWinner(t *testing.T) {
	t.Parallel()

	const workers = 32
	d := New()

	var (
		mu      sync.Mutex
		winners []*Handle
		busy    int
		wg      sync.WaitGroup
		start   = make(chan struct{})
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			h, err := d.Open()
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, h)
			case errors.Is(err, apperrors.ErrBusy):
				busy++
			default:
				t.Errorf("unexpected Open error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if len(winners) != 1 || busy != workers-1 {
		t.Fatalf("winners = %d, busy = %d; want 1 and %d", len(winners), busy, workers-1)
	}
	winners[0].Release()
}

func TestWriteDeliversTerm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pos  int64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{2, "1"},
		{10, "55"},
		{50, "12586269025"},
		{92, "7540113804746346429"},
	}

	d := New()
	h := mustOpen(t, d)
	defer h.Release()

	for _, tt := range tests {
		if _, err := h.Seek(tt.pos, SeekAbsolute); err != nil {
			t.Fatalf("Seek: %v", err)
		}
		if got := writeTerm(t, h, 32); got != tt.want {
			t.Errorf("term at %d = %q, want %q", tt.pos, got, tt.want)
		}
	}
}

func TestWriteRoundTripsEveryPosition(t *testing.T) {
	t.Parallel()

	d := New()
	h := mustOpen(t, d)
	defer h.Release()

	buf := make([]byte, 32)
	for pos := int64(0); pos <= Bound; pos++ {
		h.Seek(pos, SeekAbsolute)
		clear(buf)
		if _, err := h.Write(buf, len(buf)); err != nil {
			t.Fatalf("Write at %d: %v", pos, err)
		}
		got, err := DecodeTerm(buf)
		if err != nil {
			t.Fatalf("DecodeTerm at %d: %v", pos, err)
		}
		if want := fibonacci.Linear(pos); got != want {
			t.Errorf("term at %d = %d, want %d", pos, got, want)
		}
	}
}

func TestWriteDoesNotMovePosition(t *testing.T) {
	t.Parallel()

	d := New()
	h := mustOpen(t, d)
	defer h.Release()

	h.Seek(0, SeekFromBound)
	for range 3 {
		writeTerm(t, h, 32)
		if h.Position() != Bound {
			t.Fatalf("position moved to %d after Write", h.Position())
		}
	}
}

func TestWriteTiming(t *testing.T) {
	t.Parallel()

	t.Run("elapsed from clock", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		clock := mocks.NewMockClock(ctrl)
		gomock.InOrder(
			clock.EXPECT().Nanotime().Return(int64(1000)),
			clock.EXPECT().Nanotime().Return(int64(1250)),
		)

		h := mustOpen(t, New(WithClock(clock)))
		defer h.Release()
		h.Seek(20, SeekAbsolute)

		elapsed, err := h.Write(make([]byte, 8), 8)
		if err != nil {
			t.Fatalf("Write: %v", err)
		}
		if elapsed != 250 {
			t.Errorf("elapsed = %d, want 250", elapsed)
		}
	})

	t.Run("backwards clock clamps to zero", func(t *testing.T) {
		t.Parallel()
		readings := []int64{500, 400}
		clock := ClockFunc(func() int64 {
			v := readings[0]
			readings = readings[1:]
			return v
		})

		h := mustOpen(t, New(WithClock(clock)))
		defer h.Release()

		elapsed, err := h.Write(make([]byte, 8), 8)
		if err != nil {
			t.Fatalf("Write: %v", err)
		}
		if elapsed != 0 {
			t.Errorf("elapsed = %d, want 0", elapsed)
		}
	})

	t.Run("monotonic clock is non-negative", func(t *testing.T) {
		t.Parallel()
		h := mustOpen(t, New())
		defer h.Release()
		h.Seek(92, SeekAbsolute)
		elapsed, err := h.Write(make([]byte, 32), 32)
		if err != nil {
			t.Fatalf("Write: %v", err)
		}
		if elapsed < 0 {
			t.Errorf("elapsed = %d, want >= 0", elapsed)
		}
	})
}

func TestWriteErrors(t *testing.T) {
	t.Parallel()

	t.Run("fault keeps elapsed", func(t *testing.T) {
		t.Parallel()
		clock := &stepClock{step: 40}
		h := mustOpen(t, New(WithClock(clock)))
		defer h.Release()
		h.Seek(10, SeekAbsolute)

		elapsed, err := h.Write(make([]byte, 1), 8)
		if !errors.Is(err, apperrors.ErrFault) {
			t.Fatalf("got %v, want ErrFault", err)
		}
		if elapsed != 40 {
			t.Errorf("elapsed = %d, want 40", elapsed)
		}
		if apperrors.ExitCodeFor(err) == apperrors.ExitSuccess {
			t.Error("fault should map to a failing exit code")
		}
	})

	t.Run("out of memory", func(t *testing.T) {
		t.Parallel()
		h := mustOpen(t, New(WithAllocator(NewPoolAllocator(8))))
		defer h.Release()

		_, err := h.Write(make([]byte, 64), 64)
		if !errors.Is(err, apperrors.ErrOutOfMemory) {
			t.Fatalf("got %v, want ErrOutOfMemory", err)
		}
		if errors.Is(err, apperrors.ErrFault) {
			t.Error("ENOMEM must not match ErrFault")
		}
	})
}

func TestReadIsStub(t *testing.T) {
	t.Parallel()

	h := mustOpen(t, New())
	defer h.Release()
	for _, pos := range []int64{-1, 0, 10, 92, 1 << 40} {
		if got := h.Read(pos); got != 0 {
			t.Errorf("Read(%d) = %d, want 0", pos, got)
		}
	}
	if h.Position() != 0 {
		t.Errorf("Read moved position to %d", h.Position())
	}
}

func TestDoubleRelease(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	d := New(WithLogger(logging.NewLogger(&logBuf, "fibdev")))
	h := mustOpen(t, d)
	h.Release()
	h.Release()

	if d.Busy() {
		t.Error("device busy after double release")
	}
	if !bytes.Contains(logBuf.Bytes(), []byte("release of a free session")) {
		t.Errorf("double release not logged: %s", logBuf.String())
	}
	mustOpen(t, d).Release()
}

func TestStaleReleaseFreesCurrentSession(t *testing.T) {
	t.Parallel()

	d := New()
	stale := mustOpen(t, d)
	stale.Release()

	current := mustOpen(t, d)
	stale.Release()
	if d.Busy() {
		t.Fatal("an unchecked release should free the session held by another handle")
	}
	_ = current
}

func TestObserverEvents(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	obs := mocks.NewMockObserver(ctrl)
	gomock.InOrder(
		obs.EXPECT().SessionOpened(),
		obs.EXPECT().SessionBusy(),
		obs.EXPECT().Seeked(int64(Bound)),
		obs.EXPECT().Wrote(int64(Bound), gomock.Any(), gomock.Nil()),
		obs.EXPECT().Wrote(int64(Bound), gomock.Any(), gomock.Not(gomock.Nil())),
		obs.EXPECT().SessionReleased(true),
		obs.EXPECT().SessionReleased(false),
	)

	d := New(WithObserver(obs))
	h := mustOpen(t, d)
	if _, err := d.Open(); err == nil {
		t.Fatal("second Open should fail")
	}
	h.Seek(500, SeekAbsolute)
	h.Write(make([]byte, 32), 32)
	h.Write(nil, 32)
	h.Release()
	h.Release()
}

// stepClock advances by step on every reading.
type stepClock struct {
	now, step int64
}

func (c *stepClock) Nanotime() int64 {
	c.now += c.step
	return c.now
}
