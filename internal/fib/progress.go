package fib

import "time"

// Event reports search progress.
type Event struct {
	Index   uint64 // last index examined
	Digits  int    // digit count of F(Index)
	Target  int
	Done    bool
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel. Once Done is closed, events
// that cannot be delivered are dropped instead of blocking the search.
type ChannelSink struct {
	Ch   chan<- Event
	Done <-chan struct{}
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	select {
	case s.Ch <- evt:
	case <-s.Done:
	}
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
