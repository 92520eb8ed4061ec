package events

import (
	"context"
	"github.com/markusressel/ecthermal/internal/ui"
)

// Writer persists a single event
type Writer interface {
	AppendEvent(event Event) error
}

// AsyncSink hands events to a Writer on a separate goroutine, events are
// dropped when the buffer is full.
type AsyncSink struct {
	writer Writer
	queue  chan Event
}

func NewAsyncSink(writer Writer, size int) *AsyncSink {
	return &AsyncSink{
		writer: writer,
		queue:  make(chan Event, size),
	}
}

func (s *AsyncSink) Publish(event Event) {
	select {
	case s.queue <- event:
	default:
		ui.Warning("Event queue is full, dropping %s event", event.Type)
	}
}

// Run writes queued events until ctx is done. Events still queued at that
// point are written before Run returns.
func (s *AsyncSink) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.drain()
			return nil
		case event := <-s.queue:
			s.write(event)
		}
	}
}

func (s *AsyncSink) drain() {
	for {
		select {
		case event := <-s.queue:
			s.write(event)
		default:
			return
		}
	}
}

func (s *AsyncSink) write(event Event) {
	if err := s.writer.AppendEvent(event); err != nil {
		ui.Warning("Unable to persist %s event: %v", event.Type, err)
	}
}
