package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clientbook/clientbook/internal/clients"
	"github.com/clientbook/clientbook/internal/export"
	"github.com/clientbook/clientbook/internal/importer"
)

func newExportCommand(opts *globalOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:       "export clients|payments",
		Short:     "Write clients or payments as CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"clients", "payments"},
		RunE: func(cmd *cobra.Command, args []string) error {
			what := args[0]
			if what != "clients" && what != "payments" {
				return fmt.Errorf("unknown export %q (want clients or payments)", what)
			}
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				if out == "" {
					return runExport(ctx, a, what, cmd.OutOrStdout())
				}
				if err := exportToFile(ctx, a, what, out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s to %s\n", what, out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	return cmd
}

// exportToFile writes the export to path. A failed close is reported like a
// failed write.
func exportToFile(ctx context.Context, a *app, what, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := runExport(ctx, a, what, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func runExport(ctx context.Context, a *app, what string, w io.Writer) error {
	if what == "clients" {
		list, err := a.clients.List(ctx, clients.ListParams{})
		if err != nil {
			return err
		}
		return export.WriteClients(w, list)
	}
	list, err := a.payments.List(ctx)
	if err != nil {
		return err
	}
	return export.WritePayments(w, list)
}

func newImportCommand(opts *globalOptions) *cobra.Command {
	var format string
	registry := importer.DefaultRegistry()

	cmd := &cobra.Command{
		Use:   "import clients <file.csv>",
		Short: "Create clients from a CSV file, skipping ones that already exist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != "clients" {
				return fmt.Errorf("unknown import %q (only clients can be imported)", args[0])
			}
			parser := registry.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(registry.Formats(), ", "))
			}
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				res, err := importer.New(a.clients).ImportFile(ctx, parser, args[1])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d clients, skipped %d existing, rejected %d\n",
					len(res.Created), len(res.Skipped), len(res.Failed))
				for _, f := range res.Failed {
					fmt.Fprintf(out, "  %s\n", f.Error())
				}
				if len(res.Failed) > 0 {
					return fmt.Errorf("%d rows rejected", len(res.Failed))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "clientbook", "CSV layout: clientbook or legacy")

	return cmd
}
