package style

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

var frames = []string{"|", "/", "-", "\\"}

// Spinner shows a message while a long step runs. Writers that are not terminals get the
// message once, without animation.
type Spinner struct {
	w       io.Writer
	msg     string
	started time.Time
	stop    chan struct{}
	stopped chan struct{}
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func StartSpinner(w io.Writer, msg string) *Spinner {
	s := &Spinner{w: w, msg: msg, started: time.Now()}
	if !IsTerminal(w) {
		fmt.Fprintln(w, msg)
		return s
	}

	s.stop = make(chan struct{})
	s.stopped = make(chan struct{})
	go s.run(100 * time.Millisecond)
	return s
}

func (s *Spinner) run(interval time.Duration) {
	defer close(s.stopped)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for i := 0; ; i++ {
		fmt.Fprintf(s.w, "\r%s %s", Dim.Render(frames[i%len(frames)]), s.msg)
		select {
		case <-s.stop:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Stop clears the line and returns how long the spinner ran
func (s *Spinner) Stop() time.Duration {
	if s.stop != nil {
		close(s.stop)
		<-s.stopped
		s.stop = nil
	}
	return time.Since(s.started)
}

// Elapsed formats a step duration for the CLI, 850ms or 1.2s
func Elapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
