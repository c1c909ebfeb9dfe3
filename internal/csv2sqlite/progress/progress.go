// Package progress shows the progress of a conversion on the terminal.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

const spinnerInterval = 100 * time.Millisecond

// Tracker shows a spinner while the source is read and a progress bar
// while rows are inserted. It is driven from the conversion callbacks.
type Tracker struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	stop   chan struct{}
	done   chan struct{}

	rows   int
	failed int
}

// New returns a Tracker that renders to writer, typically os.Stderr.
func New(writer io.Writer) *Tracker {
	return &Tracker{writer: writer}
}

// Reading starts the spinner with the given description.
func (t *Tracker) Reading(description string) {
	t.Finish()

	t.bar = progressbar.NewOptions(
		-1,
		progressbar.OptionSetWriter(t.writer),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	_ = t.bar.RenderBlank()

	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.spin(t.bar, t.stop, t.done)
}

// spin re-renders the spinner until stop is closed.
func (t *Tracker) spin(bar *progressbar.ProgressBar, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			_ = bar.Add(0)
		}
	}
}

// Inserting replaces the spinner with a bar counting up to total rows.
func (t *Tracker) Inserting(total int) {
	t.Finish()
	t.rows, t.failed = 0, 0
	if total <= 0 {
		return
	}

	t.bar = progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(t.writer),
		progressbar.OptionSetDescription("Inserting rows"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(50*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	_ = t.bar.RenderBlank()
}

// Inc advances the bar by one inserted row.
func (t *Tracker) Inc() {
	t.rows++
	if t.bar != nil {
		_ = t.bar.Add(1)
	}
}

// Fail advances the bar by one row that could not be inserted and shows
// the failure count next to the description.
func (t *Tracker) Fail() {
	t.rows++
	t.failed++
	if t.bar != nil {
		t.bar.Describe(fmt.Sprintf("Inserting rows (%d failed)", t.failed))
		_ = t.bar.Add(1)
	}
}

// Finish stops and clears whatever is shown. It is safe to call more
// than once.
func (t *Tracker) Finish() {
	if t.stop != nil {
		close(t.stop)
		<-t.done
		t.stop = nil
		t.done = nil
	}
	if t.bar != nil {
		_ = t.bar.Finish()
		_ = t.bar.Close()
		t.bar = nil
	}
}
