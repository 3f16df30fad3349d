package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner animates a message on one line of a plain writer, for the
// flag-driven commands that run without a bubbletea program.
type Spinner struct {
	w     io.Writer
	msg   string
	shape spinner.Spinner

	once sync.Once
	quit chan struct{}
	done chan struct{}
}

func NewSpinner(w io.Writer, msg string) *Spinner {
	return &Spinner{
		w:     w,
		msg:   msg,
		shape: spinner.Dot,
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start draws frames until Stop.
func (s *Spinner) Start() {
	go s.loop()
}

func (s *Spinner) loop() {
	defer close(s.done)
	tick := time.NewTicker(s.shape.FPS)
	defer tick.Stop()
	for frame := 0; ; frame++ {
		fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(s.shape.Frames[frame%len(s.shape.Frames)]), Dim(s.msg))
		select {
		case <-s.quit:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-tick.C:
		}
	}
}

// Stop clears the line and waits for the animation to end. Calling it more
// than once is allowed.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.quit) })
	<-s.done
}

// StartSpinner starts a spinner on w and returns its stop function.
func StartSpinner(w io.Writer, msg string) func() {
	s := NewSpinner(w, msg)
	s.Start()
	return s.Stop
}
