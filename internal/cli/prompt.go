package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// prompter reads one line of user input. Ctrl-C yields [errPromptCancelled];
// end of input yields [io.EOF].
type prompter interface {
	Prompt(label string) (string, error)
	Close() error
}

// newPrompter uses line editing when both stdin and stdout are terminals and
// plain line reads otherwise (pipes, tests).
func newPrompter(in io.Reader, o *IO) prompter {
	if isTerminal(in) && isTerminal(o.out) {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)

		return &linerPrompter{state: state}
	}

	p := &scanPrompter{o: o}
	if in != nil {
		p.r = bufio.NewReader(in)
	}

	return p
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type linerPrompter struct {
	state *liner.State
}

func (p *linerPrompter) Prompt(label string) (string, error) {
	line, err := p.state.Prompt(label)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", errPromptCancelled
	}

	if err != nil {
		return "", err
	}

	line = strings.TrimSpace(line)
	if line != "" {
		p.state.AppendHistory(line)
	}

	return line, nil
}

func (p *linerPrompter) Close() error {
	return p.state.Close()
}

type scanPrompter struct {
	r *bufio.Reader
	o *IO
}

func (p *scanPrompter) Prompt(label string) (string, error) {
	if p.r == nil {
		return "", io.EOF
	}

	p.o.Printf("%s", label)

	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		p.o.Println()

		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (p *scanPrompter) Close() error {
	return nil
}

// isCancel reports whether err ends an interactive flow without a mutation.
func isCancel(err error) bool {
	return errors.Is(err, errPromptCancelled) || errors.Is(err, io.EOF)
}
