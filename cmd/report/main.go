package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/bookings-analysis/internal/bookings"
	"github.com/AngelCh415/bookings-analysis/internal/ingest"
	"github.com/AngelCh415/bookings-analysis/internal/models"
	"github.com/AngelCh415/bookings-analysis/internal/report"
)

type options struct {
	file    string
	format  string
	rows    bool
	watch   bool
	filters map[models.Dimension]*[]string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{filters: map[models.Dimension]*[]string{}}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Bookings metrics for an opportunity CSV",
		Long: "Loads an opportunity CSV, applies the dimension filters and prints the bookings metrics.\n" +
			"Repeat a filter flag (or comma separate values) to allow several values.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), out, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "CSV file to analyse")
	f.StringVar(&opts.format, "format", "text", "output format: text or json")
	f.BoolVar(&opts.rows, "rows", false, "also print the filtered rows")
	f.BoolVarP(&opts.watch, "watch", "w", false, "recompute whenever the file changes")
	_ = cmd.MarkFlagRequired("file")

	for _, fl := range []struct {
		name string
		dim  models.Dimension
	}{
		{"channel", models.DimChannel},
		{"cet", models.DimCET},
		{"nam-iv", models.DimNAMIV},
		{"segment", models.DimSegment},
		{"gtm-tactic", models.DimGTMTacticName},
		{"close-quarter", models.DimCloseQuarter},
		{"close-half", models.DimCloseHalf},
	} {
		opts.filters[fl.dim] = f.StringSlice(fl.name, nil, "allowed "+string(fl.dim)+" values")
	}
	return cmd
}

func (o *options) selection() models.Selection {
	sel := models.Selection{}
	for dim, vals := range o.filters {
		if vals != nil && len(*vals) > 0 {
			sel[dim] = *vals
		}
	}
	return sel
}

func run(ctx context.Context, out io.Writer, opts *options) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	if err := evaluate(out, opts); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return report.Watch(ctx, opts.file, 200*time.Millisecond, func() {
		fmt.Fprintln(out)
		if err := evaluate(out, opts); err != nil {
			// el archivo puede estar a medio escribir; se espera al siguiente evento
			slog.Warn("reload failed", slog.String("file", opts.file), slog.String("err", err.Error()))
		}
	})
}

func evaluate(out io.Writer, opts *options) error {
	f, err := os.Open(opts.file)
	if err != nil {
		return err
	}
	defer f.Close()
	if !ingest.IsCSVName(opts.file) {
		return ingest.ErrNotCSV
	}
	raw, err := ingest.ParseCSV(f)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.file, err)
	}
	res := bookings.Evaluate(bookings.Enrich(raw), opts.selection())
	if opts.format == "json" {
		return report.JSON(out, res)
	}
	return report.Text(out, res, opts.rows)
}
