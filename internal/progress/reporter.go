// Package progress reports per-document progress for long-running commands
// such as `docview check`.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives one Step per processed document.
type Reporter interface {
	Start(total int)
	Step(path string, err error)
	Finish()
}

// NewReporter returns a TerminalReporter writing to w, or a CIReporter if
// the CI environment variable is set.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{w: w}
	}
	return &TerminalReporter{w: w}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	w      io.Writer
	bar    *progressbar.ProgressBar
	failed int
}

func (r *TerminalReporter) Start(total int) {
	r.failed = 0
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription("Checking documents"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Step(path string, err error) {
	if r.bar == nil {
		return
	}
	if err != nil {
		r.failed++
	}
	r.bar.Describe(fmt.Sprintf("Checking documents (%d failed)", r.failed))
	_ = r.bar.Add(1)
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	w       io.Writer
	total   int
	current int
}

func (r *CIReporter) Start(total int) {
	r.total, r.current = total, 0
	fmt.Fprintf(r.w, "Checking %d documents\n", total)
}

func (r *CIReporter) Step(path string, err error) {
	r.current++
	status := "ok"
	if err != nil {
		status = "FAIL: " + err.Error()
	}
	fmt.Fprintf(r.w, "[%d/%d] %s %s\n", r.current, r.total, path, status)
}

func (r *CIReporter) Finish() {
	fmt.Fprintln(r.w, "Check complete")
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(int)          {}
func (Nop) Step(string, error) {}
func (Nop) Finish()            {}
