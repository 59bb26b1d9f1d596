package fib

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HidekiAI/hairev-utils/internal/trace"
)

type recordSink struct{ events []Event }

func (s *recordSink) OnEvent(ev Event) { s.events = append(s.events, ev) }

func TestSearch_ThousandDigits(t *testing.T) {
	if testing.Short() {
		t.Skip("long search")
	}
	res, err := Search(context.Background(), Options{Target: DefaultTarget, Start: DefaultStart})
	require.NoError(t, err)
	assert.Equal(t, uint64(4782), res.Index)
	assert.Equal(t, 1000, res.Digits)
	assert.Equal(t, 1000, res.Value.Len())
	assert.Equal(t, uint64(4782-DefaultStart+1), res.Checked)
}

func TestSearch_Window(t *testing.T) {
	tests := []struct {
		target int
		start  uint64
		want   uint64
	}{
		{1, 0, 0},
		{2, 0, 7},
		{3, DefaultStart, 12},
		{3, 0, 12},
		{10, DefaultStart, 45},
		{100, DefaultStart, 476},
		{3, 20, 20},
	}
	for _, tt := range tests {
		res, err := Search(context.Background(), Options{Target: tt.target, Start: tt.start})
		require.NoError(t, err)
		assert.Equal(t, tt.want, res.Index, "target %d from %d", tt.target, tt.start)
		assert.GreaterOrEqual(t, res.Digits, tt.target)
		assert.True(t, res.Value.Equal(Fibonacci(res.Index)))
	}
}

func TestSearch_BruteMatchesWindow(t *testing.T) {
	for _, jobs := range []int{1, 3, 8} {
		res, err := Search(context.Background(), Options{Target: 50, Start: DefaultStart, Mode: ModeBrute, Jobs: jobs})
		require.NoError(t, err)
		assert.Equal(t, uint64(237), res.Index, "jobs=%d", jobs)
		assert.Equal(t, 50, res.Digits)
	}
}

func TestSearch_Progress(t *testing.T) {
	sink := &recordSink{}
	res, err := Search(context.Background(), Options{Target: 20, Start: DefaultStart, Progress: sink})
	require.NoError(t, err)
	require.NotEmpty(t, sink.events)

	last := sink.events[len(sink.events)-1]
	assert.True(t, last.Done)
	assert.NoError(t, last.Err)
	assert.Equal(t, res.Index, last.Index)
	for _, ev := range sink.events[:len(sink.events)-1] {
		assert.False(t, ev.Done)
		assert.Less(t, ev.Digits, 20)
	}
}

func TestSearch_InvalidOptions(t *testing.T) {
	_, err := Search(context.Background(), Options{Target: 0})
	assert.ErrorIs(t, err, ErrInvalidTarget)
	_, err = Search(context.Background(), Options{Target: -3})
	assert.ErrorIs(t, err, ErrInvalidTarget)
	_, err = Search(context.Background(), Options{Target: 5, Mode: "quantum"})
	assert.Error(t, err)

	_, err = ParseMode("quantum")
	assert.Error(t, err)
	m, err := ParseMode(" Brute ")
	require.NoError(t, err)
	assert.Equal(t, ModeBrute, m)
}

func TestSearch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, mode := range []Mode{ModeWindow, ModeBrute} {
		sink := &recordSink{}
		_, err := Search(ctx, Options{Target: 100_000, Mode: mode, Progress: sink})
		assert.True(t, errors.Is(err, context.Canceled), "mode %s: %v", mode, err)
		require.NotEmpty(t, sink.events)
		assert.ErrorIs(t, sink.events[len(sink.events)-1].Err, context.Canceled)
	}
}

func TestSearch_Traced(t *testing.T) {
	var buf bytes.Buffer
	ctx := trace.WithTracer(context.Background(), trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatText))
	_, err := Search(ctx, Options{Target: 5, Start: DefaultStart, Mode: ModeBrute, Jobs: 4})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "→ search")
	assert.Contains(t, out, "→ batch")
	assert.Contains(t, out, "index=21 digits=5")
	assert.False(t, strings.Contains(out, "• fib"), "term events need debug level")
}

func TestTermsTraced(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, termsTraced(trace.Nop))
	assert.False(t, termsTraced(trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatText)))

	debug := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	require.True(t, termsTraced(debug))
	_, err := Search(trace.WithTracer(context.Background(), debug), Options{Target: 3, Start: DefaultStart})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "• fib (index=12 digits=3)")
}

func TestChannelSink_DropsAfterDone(t *testing.T) {
	ch := make(chan Event, 1)
	done := make(chan struct{})
	sink := ChannelSink{Ch: ch, Done: done}

	sink.OnEvent(Event{Index: 1})
	close(done)
	returned := make(chan struct{})
	go func() {
		sink.OnEvent(Event{Index: 2})
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatal("OnEvent blocked on a full channel after done")
	}
	assert.Equal(t, uint64(1), (<-ch).Index)
}
