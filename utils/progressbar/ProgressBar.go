// Package progressbar implements functionality of printing a progress
// bar to a terminal
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressBar is a progress bar that must be manually managed. That
// is, Display must be called whenever an updated progress bar should be
// written. ProgressBar does not use concurrency.
type ProgressBar struct {
	out             io.Writer
	width           int
	maxProgress     int
	currentProgress int
	startTime       time.Time
}

// New returns a new ProgressBar, width characters wide, which reaches
// 100% after max calls to Increment and writes to out
func New(out io.Writer, width, max int) *ProgressBar {
	if max <= 0 {
		panic("new: max progress must be positive")
	}
	return &ProgressBar{
		out:         out,
		width:       width,
		maxProgress: max,
		startTime:   time.Now(),
	}
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Done returns whether the progress bar is full
func (p *ProgressBar) Done() bool {
	return p.currentProgress >= p.maxProgress
}

// String returns the current state of the bar
func (p *ProgressBar) String() string {
	fraction := float64(p.currentProgress) / float64(p.maxProgress)
	filled := int(fraction * float64(p.width))

	var bar strings.Builder
	bar.WriteString("|")
	bar.WriteString(strings.Repeat("█", filled))
	bar.WriteString(strings.Repeat(" ", p.width-filled))
	fmt.Fprintf(&bar, "| [%.2f%% | elapsed: %v]", fraction*100,
		time.Since(p.startTime).Truncate(time.Second))

	return bar.String()
}

// Display redraws the progress bar on the current terminal line
func (p *ProgressBar) Display() {
	fmt.Fprintf(p.out, "\r\033[K%v", p)
	if p.Done() {
		fmt.Fprintln(p.out)
	}
}
