package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/calvinalkan/onpurpose/internal/item"
)

// ExportCmd returns the export command.
func ExportCmd(a *app) *Command {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.StringP("format", "f", "yaml", "Output format (yaml|json)")
	fs.StringP("output", "o", "", "Write to this file instead of stdout")

	return &Command{
		Flags: fs,
		Usage: "export [flags]",
		Short: "Dump every stored record",
		Long: `Dump items, coverings, snoozes and requirements as one snapshot.

With -o the file is replaced atomically.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return errTooManyArgs
			}

			format, _ := fs.GetString("format")
			output, _ := fs.GetString("output")

			w, err := a.data(ctx)
			if err != nil {
				return err
			}

			snap, err := w.Snapshot(ctx)
			if err != nil {
				return err
			}

			data, err := encodeSnapshot(snap, format)
			if err != nil {
				return err
			}

			if output == "" {
				o.Printf("%s", data)

				return nil
			}

			if !filepath.IsAbs(output) {
				output = filepath.Join(a.cfg.EffectiveCwd, output)
			}

			err = os.MkdirAll(filepath.Dir(output), 0o750)
			if err != nil {
				return fmt.Errorf("create directory: %w", err)
			}

			err = atomic.WriteFile(output, bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			o.Printf("exported %d items to %s\n", len(snap.Items), output)

			return nil
		},
	}
}

func encodeSnapshot(snap item.Snapshot, format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		var buf bytes.Buffer

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)

		err := enc.Encode(snap)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}

		err = enc.Close()
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}

		return buf.Bytes(), nil
	case "json":
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}

		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %q", errInvalidFormat, format)
	}
}
