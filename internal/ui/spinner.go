package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

// Spinner redraws a single "label..." line until Success or Fail replaces it
// with a result line and the elapsed time.
type Spinner struct {
	label string
	out   io.Writer

	started time.Time
	stop    chan struct{}
	done    chan struct{}

	mu    sync.Mutex // guards out writes and width
	width int        // visible width of the line currently on screen
}

// NewSpinner returns a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{label: label, out: os.Stderr}
}

// SetOutput redirects the spinner. Call it before Start.
func (s *Spinner) SetOutput(w io.Writer) {
	s.out = w
}

// Start draws the first frame and animates in the background.
// A second call is a no-op.
func (s *Spinner) Start() {
	if s.stop != nil {
		return
	}
	s.started = time.Now()
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	s.draw(0)
	go s.spin()
}

// Success replaces the spinner with a check mark.
func (s *Spinner) Success() {
	s.finish(SuccessStyle().Render(SymbolComplete))
}

// Fail replaces the spinner with a cross.
func (s *Spinner) Fail() {
	s.finish(ErrorStyle().Render(SymbolFail))
}

func (s *Spinner) spin() {
	defer close(s.done)

	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for i := 1; ; i++ {
		select {
		case <-s.stop:
			return
		case <-tick.C:
			s.draw(i)
		}
	}
}

func (s *Spinner) draw(i int) {
	color := GradientColors[i%len(GradientColors)]
	frame := lipgloss.NewStyle().Foreground(color).Render(spinnerFrames[i%len(spinnerFrames)])
	s.replaceLine(fmt.Sprintf("%s %s...", frame, s.label))
}

func (s *Spinner) finish(symbol string) {
	var took time.Duration
	if s.stop != nil {
		close(s.stop)
		<-s.done
		s.stop = nil
		took = time.Since(s.started)
	}

	s.replaceLine(fmt.Sprintf("%s %s %s", symbol, s.label, MutedStyle().Render(elapsed(took))))

	s.mu.Lock()
	fmt.Fprintln(s.out)
	s.width = 0
	s.mu.Unlock()
}

// replaceLine erases whatever the spinner last drew and writes line in its place.
func (s *Spinner) replaceLine(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.width > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
	}
	fmt.Fprint(s.out, line)
	s.width = lipgloss.Width(line)
}

// elapsed renders d as "0.05s" below a tenth of a second and "1.2s" above.
func elapsed(d time.Duration) string {
	if d < 100*time.Millisecond {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
