package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/ops-console-service/internal/seed"
)

type validateOptions struct {
	asJSON   bool
	timezone string
}

func newValidateCmd() *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <seed>",
		Short: "Check a seed for capacity, id and visibility problems",
		Long: `Loads a YAML or JSON seed and reports blocking errors (capacity, duplicate or
empty ids) and warnings (position gaps, hidden live entries, expired entries).
Exits non-zero when the seed would be rejected by the server.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the report as JSON")
	cmd.Flags().StringVar(&opts.timezone, "tz", "", "IANA zone for expiry times without an offset (default local)")
	return cmd
}

func runValidate(cmd *cobra.Command, path string, opts *validateOptions) error {
	entries, err := seed.NewFSStore(path).Load()
	if err != nil {
		return err
	}
	loc, err := loadLocation(opts.timezone)
	if err != nil {
		return err
	}
	report := seed.Validate(entries, time.Now(), loc)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "%s: %d entries\n", path, len(entries))
		for _, issue := range report.Errors {
			fmt.Fprintf(out, "  error:   %s\n", issue)
		}
		for _, issue := range report.Warnings {
			fmt.Fprintf(out, "  warning: %s\n", issue)
		}
		if report.OK() {
			fmt.Fprintln(out, "ok")
		}
	}
	return report.Err()
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", name, err)
	}
	return loc, nil
}
