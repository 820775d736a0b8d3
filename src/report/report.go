// Package report emits operator-facing progress for the dispatch loop.
//
// Progress goes to stderr so the final run_id line on stdout stays
// machine-parseable. Nothing in this package ever receives the API token.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Reporter receives stage-boundary progress and the final resolved run
// identifier. The dispatch loop talks only to this interface, so tests can
// record calls.
type Reporter interface {
	// Stage announces that a stage is starting
	Stage(name string)

	// Infof emits a progress detail line
	Infof(format string, args ...interface{})

	// Spin starts an activity indicator for a long blocking call and
	// returns a function that stops it
	Spin(msg string) func()

	// RunID emits the final structured run_id line on success
	RunID(id int64)
}

// Console writes colored progress to errw and the run_id line to out.
// When interactive is false (no TTY, or --quiet piping), color and the
// spinner are disabled and output degrades to plain lines.
type Console struct {
	out         io.Writer
	errw        io.Writer
	interactive bool

	title func(a ...interface{}) string
	info  func(a ...interface{}) string
}

// NewConsole builds a console reporter. out receives only the run_id line.
func NewConsole(out, errw io.Writer, interactive bool) *Console {
	c := &Console{
		out:         out,
		errw:        errw,
		interactive: interactive,
		title:       fmt.Sprint,
		info:        fmt.Sprint,
	}
	if interactive {
		c.title = color.New(color.FgHiCyan, color.Bold).SprintFunc()
		c.info = color.New(color.FgCyan).SprintFunc()
	}
	return c
}

func (c *Console) Stage(name string) {
	fmt.Fprintf(c.errw, "%s %s\n", c.title("==>"), name)
}

func (c *Console) Infof(format string, args ...interface{}) {
	fmt.Fprintf(c.errw, "    %s\n", c.info(fmt.Sprintf(format, args...)))
}

func (c *Console) Spin(msg string) func() {
	if !c.interactive {
		fmt.Fprintf(c.errw, "    %s\n", msg)
		return func() {}
	}

	spin := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(c.errw))
	spin.Suffix = " " + msg
	spin.Start()
	return spin.Stop
}

func (c *Console) RunID(id int64) {
	fmt.Fprintf(c.out, "run_id=%d\n", id)
}

// Quiet suppresses all progress and emits only the run_id line.
type Quiet struct {
	out io.Writer
}

func NewQuiet(out io.Writer) *Quiet {
	return &Quiet{out: out}
}

func (q *Quiet) Stage(name string)                        {}
func (q *Quiet) Infof(format string, args ...interface{}) {}
func (q *Quiet) Spin(msg string) func()                   { return func() {} }
func (q *Quiet) RunID(id int64)                           { fmt.Fprintf(q.out, "run_id=%d\n", id) }
