package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinic-slots/internal/service/availability"
	"github.com/jwalitptl/clinic-slots/pkg/logger"
	"github.com/jwalitptl/clinic-slots/pkg/validator"
)

type computeOptions struct {
	file          string
	now           string
	includeBooked bool
	asJSON        bool
	logLevel      string
}

func computeCmd() *cobra.Command {
	opts := &computeOptions{}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the slots of one day from a JSON request",
		Long: `Reads a request with the date, the weekly schedule entries and the existing
bookings, and prints the resulting slots. Use --file - to read stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if opts.file != "-" {
				f, err := os.Open(opts.file)
				if err != nil {
					return fmt.Errorf("failed to open request: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runCompute(cmd.Context(), in, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "-", "request file, - for stdin")
	cmd.Flags().StringVar(&opts.now, "now", "", "current instant as RFC3339, defaults to the system clock")
	cmd.Flags().BoolVar(&opts.includeBooked, "include-booked", false, "list booked slots as unavailable")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level")
	return cmd
}

func runCompute(ctx context.Context, in io.Reader, out io.Writer, opts *computeOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var req availability.ComputeRequest
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("failed to decode request: %w", err)
	}
	if err := validator.New().Validate(req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	if opts.includeBooked {
		req.IncludeBooked = true
	}

	var clock availability.Clock = availability.RealClock{}
	if opts.now != "" {
		now, err := time.Parse(time.RFC3339, opts.now)
		if err != nil {
			return fmt.Errorf("invalid --now: %w", err)
		}
		clock = availability.FixedClock(now)
	}

	log := logger.New(logger.Config{Level: opts.logLevel, Pretty: true, Output: os.Stderr})
	svc := availability.NewService(availability.Repositories{}, clock, availability.Config{}, nil, log)

	result, err := svc.Compute(ctx, req)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return printTable(out, result, log)
}

func printTable(out io.Writer, result *availability.SlotResult, log zerolog.Logger) error {
	if result.Exception != nil {
		fmt.Fprintf(out, "%s: off (%s)\n", result.Date, result.Exception.Type)
		return nil
	}
	if len(result.Slots) == 0 {
		fmt.Fprintf(out, "%s: no slots\n", result.Date)
		return nil
	}

	log.Debug().Int("slots", len(result.Slots)).Msg("computed")

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "START\tEND\tAVAILABLE\tPAID")
	for _, s := range result.Slots {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%t\n", s.Start, s.End, s.Available, s.IsPaid)
	}
	return tw.Flush()
}
