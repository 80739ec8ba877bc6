package terminal

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner prints a rotating indicator while a listing is generated
type Spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func NewSpinner(out io.Writer, message string) *Spinner {
	return &Spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (s *Spinner) Start() {
	go func() {
		spinChars := []string{"|", "/", "-", "\\"}
		i := 0
		for {
			select {
			case <-s.stop:
				fmt.Fprint(s.out, "\r\033[K")
				close(s.stopped)
				return
			default:
				fmt.Fprintf(s.out, "\r%s %s", spinChars[i], s.message)
				i = (i + 1) % len(spinChars)
				time.Sleep(100 * time.Millisecond)
			}
		}
	}()
}

// Stop halts the spinner and clears its line. Extra calls are no-ops.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.stop)
		<-s.stopped
	})
}
