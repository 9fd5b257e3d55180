package cli

import (
	"fmt"
	"io"
)

// IO is a command's view of stdout and stderr.
//
// Commands report problems they worked around, such as a covering cycle that
// was skipped while listing next steps, with [IO.Warn]. The command still
// prints its results. Warnings go to stderr before the first stdout line and
// again after the last one, and any warning turns the exit code into 1.
type IO struct {
	out     io.Writer
	errOut  io.Writer
	pending []string
	shown   bool
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Warn records a problem and the command that resolves it, for example a
// cycle and "remove one edge with 'op uncover'".
func (o *IO) Warn(problem string, remedy string) {
	o.pending = append(o.pending, problem+": "+remedy)
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	o.leadWarnings()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	o.leadWarnings()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish repeats the warnings after the output and returns the exit code.
func (o *IO) Finish() int {
	o.leadWarnings()

	if len(o.pending) == 0 {
		return 0
	}

	o.printWarnings()

	return 1
}

// leadWarnings prints warnings once, ahead of any stdout.
func (o *IO) leadWarnings() {
	if o.shown || len(o.pending) == 0 {
		return
	}

	o.shown = true
	o.printWarnings()
}

func (o *IO) printWarnings() {
	for _, w := range o.pending {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}
}
