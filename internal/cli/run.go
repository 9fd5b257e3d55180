package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/onpurpose/internal/config"
)

// Run is the main entry point. Returns exit code.
//
// A value on sigCh cancels the running command's context. Requests already
// handed to the data layer still complete before Run returns.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	globals := flag.NewFlagSet("op", flag.ContinueOnError)
	globals.SetInterspersed(false)
	globals.SetOutput(&strings.Builder{})

	workDir := globals.StringP("cwd", "C", "", "Run as if started in `dir`")
	configPath := globals.StringP("config", "c", "", "Use specified config `file`")
	dbPath := globals.String("db", "", "Use the database at `path`")
	help := globals.BoolP("help", "h", false, "Show help")

	var argv []string
	if len(args) > 1 {
		argv = args[1:]
	}

	err := globals.Parse(argv)
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, nil)

		return 1
	}

	rest := globals.Args()

	if *help || len(rest) == 0 {
		printUsage(out, commands(nil))

		return 0
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: *workDir,
		ConfigPath:      *configPath,
		DBPathOverride:  *dbPath,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	a := &app{
		cfg: &cfg,
		in:  in,
		log: slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: cfg.Level()})),
		now: time.Now,
	}

	var cmd *Command

	for _, c := range commands(a) {
		if c.Name() == rest[0] {
			cmd = c

			break
		}
	}

	if cmd == nil {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", errUnknownCommand, rest[0]))
		printUsage(errOut, nil)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	defer close(done)

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				a.log.Debug("interrupted")
				cancel()
			case <-done:
			}
		}()
	}

	code := cmd.Run(ctx, NewIO(out, errOut), rest[1:])

	closeErr := a.close()
	if closeErr != nil {
		fprintln(errOut, "error:", closeErr)

		return 1
	}

	return code
}

// commands lists every command. a may be nil when only help text is needed.
func commands(a *app) []*Command {
	return []*Command{
		CaptureCmd(a),
		NextCmd(a),
		ShowCmd(a),
		LsCmd(a),
		FinishCmd(a),
		CoverCmd(a),
		UncoverCmd(a),
		ParentCmd(a),
		SnoozeCmd(a),
		RequireCmd(a),
		StageCmd(a),
		RenameCmd(a),
		ExportCmd(a),
		MenuCmd(a),
		PrintConfigCmd(a),
	}
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, cmds []*Command) {
	fprintln(w, `op - next steps for things you care about

Usage: op [options] <command> [args]

Options:
  -C, --cwd <dir>      Run as if started in <dir>
  -c, --config <file>  Use specified config file
      --db <path>      Use the database at <path>`)

	if len(cmds) == 0 {
		fprintln(w, "\nRun 'op --help' for the list of commands.")

		return
	}

	fprintln(w, "\nCommands:")

	for _, c := range cmds {
		fprintln(w, c.HelpLine())
	}
}
