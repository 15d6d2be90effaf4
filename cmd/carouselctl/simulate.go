package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/ops-console-service/internal/carousel"
	domain "github.com/preston-bernstein/ops-console-service/internal/domain/carousel"
	"github.com/preston-bernstein/ops-console-service/internal/seed"
)

type simulateOptions struct {
	dragged string
	target  string
}

func newSimulateCmd() *cobra.Command {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate <seed>",
		Short: "Run one reorder against a seed and print the resulting layout",
		Long: fmt.Sprintf(`Opens a session on the seed, drags --drag onto --target and prints the live
and backup sections afterwards. Use --target %s to drop at the end of the backup section.`, domain.BackupSectionID),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.dragged, "drag", "", "id of the entry being dragged")
	cmd.Flags().StringVar(&opts.target, "target", "", "id of the entry dropped onto")
	_ = cmd.MarkFlagRequired("drag")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func runSimulate(cmd *cobra.Command, path string, opts *simulateOptions) error {
	entries, err := seed.NewFSStore(path).Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := seed.Validate(entries, time.Now(), time.Local).Err(); err != nil {
		fmt.Fprintf(out, "refusing to simulate: %v\n", err)
		return err
	}
	session := carousel.NewSession(entries)

	result, err := session.Reorder(opts.dragged, opts.target)
	switch {
	case errors.Is(err, carousel.ErrIllegalPromotion):
		fmt.Fprintln(out, "rejected: only visible entries can be moved into the live section")
		return err
	case err != nil:
		return err
	case !result.Moved:
		fmt.Fprintln(out, "no change")
	case result.Promoted != nil:
		fmt.Fprintf(out, "promoted %s (%s) to live position %d\n", result.Promoted.ID, result.Promoted.Label(), domain.LiveCount)
	}

	printSection(out, "live", session.LiveEntries())
	printSection(out, "backup", session.BackupEntries())
	return nil
}

func printSection(w io.Writer, name string, entries []domain.Entry) {
	fmt.Fprintf(w, "%s:\n", name)
	for _, e := range entries {
		hidden := ""
		if !e.Visible {
			hidden = " [hidden]"
		}
		fmt.Fprintf(w, "  %2d  %-8s %s%s\n", e.Position, e.ID, e.Label(), hidden)
	}
}
