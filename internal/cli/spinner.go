package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a progress line on w until stopped or ctx is done.
type spinner struct {
	w       io.Writer
	message string
	ctx     context.Context

	stop     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// startSpinner starts animating message and returns the running spinner.
func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	s := &spinner{
		w:       w,
		message: message,
		ctx:     ctx,
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clear()
			return
		case <-s.stop:
			s.clear()
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
		}
	}
}

func (s *spinner) clear() {
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// Stop halts the animation and clears the line. It is safe to call more
// than once.
func (s *spinner) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.stopped
}

// Cancelled reports whether the spinner's context ended.
func (s *spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
