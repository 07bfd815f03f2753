// Package cmd - regime file management
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"translation-quote/adapters/regime"
	"translation-quote/core/tax"
	"translation-quote/core/turnaround"
	"translation-quote/core/types"
)

func (a *app) regimeCmd() *cobra.Command {
	regimeCmd := &cobra.Command{
		Use:   "regime",
		Short: "Validate and inspect regime files (operator only)",
		Long: `Regime file commands.

A regime file holds the rates, multipliers, cutoffs, tiers, holidays,
same-day table, tax rows and delivery options every quote reads.
Validate edits before deploying them; the server keeps serving the
previous regime when a reload fails.`,
	}

	regimeCmd.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Parse and validate a regime file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Regime.Path
			if len(args) == 1 {
				path = args[0]
			}
			r, err := regime.LoadFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: regime %q is valid (%d tiers, %d tax regions, %d delivery options)\n",
				path, r.ID, len(r.Tiers), len(tax.Regions(r.TaxRows)), len(r.DeliveryOptions))
			return nil
		},
	})

	regimeCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Summarize the configured regime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := regime.LoadFile(a.cfg.Regime.Path)
			if err != nil {
				return err
			}
			printRegime(cmd, r)
			return nil
		},
	})
	return regimeCmd
}

func printRegime(cmd *cobra.Command, r types.Regime) {
	out := cmd.OutOrStdout()
	p := r.Pricing
	fmt.Fprintf(out, "Regime %s (%s)\n", r.ID, p.Currency)
	fmt.Fprintf(out, "  %s per page of %s words, rounded up to %s\n", p.BaseRatePerPage.StringFixed(2), p.WordsPerPage, p.RoundingUnit)
	fmt.Fprintf(out, "  cutoffs (%s): intake %02d:%02d, rush %02d:%02d, same day %02d:%02d\n\n",
		r.IntakeCutoff.TimeZone,
		r.IntakeCutoff.Hour, r.IntakeCutoff.Minute,
		r.RushCutoff.Hour, r.RushCutoff.Minute,
		r.SameDayCutoff.Hour, r.SameDayCutoff.Minute)

	fmt.Fprintf(out, "%-12s %-8s %-30s %s\n", "TIER", "FEE", "DAYS", "FLAGS")
	for _, t := range r.Tiers {
		fee := t.FeeValue.String() + "%"
		if t.FeeType == types.FeeFlat {
			fee = t.FeeValue.StringFixed(2)
		}
		days := "same day"
		if !t.IsSameDay() {
			days = fmt.Sprintf("%d + 1 per %s pages over %s", t.Days.BaseDays, t.Days.PagesPerExtraDay, t.Days.BasePages)
		}
		flags := ""
		if t.IsDefault {
			flags = "default"
		}
		if turnaround.IsRush(t) {
			flags = "rush"
		}
		fmt.Fprintf(out, "%-12s %-8s %-30s %s\n", t.Code, fee, days, flags)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-14s %-9s %8s %s\n", "DELIVERY", "KIND", "FEE", "DAYS")
	for _, o := range r.DeliveryOptions {
		fmt.Fprintf(out, "%-14s %-9s %8s %d\n", o.Code, o.Kind, o.Fee.StringFixed(2), o.EstimatedDays)
	}

	active := 0
	for _, row := range r.SameDayRules {
		if row.Active {
			active++
		}
	}
	fmt.Fprintf(out, "\n%d holidays, %d same-day blocks, %d active same-day rules, tax regions: %v\n",
		len(r.Holidays), len(r.SameDayBlocks), active, tax.Regions(r.TaxRows))
}
