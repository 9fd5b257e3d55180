package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/onpurpose/internal/item"
)

// CaptureCmd returns the capture command.
func CaptureCmd(a *app) *Command {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	fs.StringP("kind", "k", string(item.KindToDo), "Item kind (todo|hope|motivation|question)")

	return &Command{
		Flags: fs,
		Usage: "capture [flags] <summary...>",
		Short: "Capture a new item",
		Long: `Capture a new item and print its short id.

Examples:
  op capture call the plumber
  op capture --kind motivation stay healthy`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			kindFlag, _ := fs.GetString("kind")

			kind, err := item.ParseKind(kindFlag)
			if err != nil {
				return err
			}

			summary := strings.TrimSpace(strings.Join(args, " "))
			if summary == "" {
				return errSummaryRequired
			}

			w, err := a.data(ctx)
			if err != nil {
				return err
			}

			rec, err := w.CreateItem(ctx, kind, summary)
			if err != nil {
				return err
			}

			o.Println(item.ShortID(rec.ID))

			return nil
		},
	}
}
