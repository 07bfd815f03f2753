// Package cmd - tax and calendar commands
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"translation-quote/core/calendar"
	"translation-quote/core/tax"
	"translation-quote/core/types"
	"translation-quote/internal/errors"
)

func (a *app) taxCmd() *cobra.Command {
	taxCmd := &cobra.Command{
		Use:   "tax",
		Short: "Inspect the regime's tax table",
	}

	taxCmd.AddCommand(&cobra.Command{
		Use:   "resolve <region>",
		Short: "Resolve the stacked tax for a billing region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			r, err := eng.ResolveTax(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", r.RegionCode, tax.Label(r))
			for _, c := range r.Components {
				fmt.Fprintf(out, "  %-8s %s\n", c.Name, c.Rate)
			}
			return nil
		},
	})

	taxCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every region in the tax table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			regime, err := eng.Regime(cmd.Context())
			if err != nil {
				return err
			}
			regions, err := tax.Group(regime.TaxRows)
			if err != nil {
				return err
			}
			for _, code := range tax.Regions(regime.TaxRows) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-4s %s\n", code, tax.Label(regions[code]))
			}
			return nil
		},
	})
	return taxCmd
}

func (a *app) calendarCmd() *cobra.Command {
	var region string
	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Business-day arithmetic against the regime's holidays",
	}
	calendarCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "region whose holidays apply (default: config default region)")

	calendarCmd.AddCommand(&cobra.Command{
		Use:   "add <date> <days>",
		Short: "Add business days to a date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := types.ParseDate(args[0])
			if err != nil {
				return errors.InvalidArgument("invalid date %q, expected YYYY-MM-DD", args[0])
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.InvalidArgument("invalid day count %q", args[1])
			}
			holidays, err := a.holidays(cmd, region)
			if err != nil {
				return err
			}
			end, err := calendar.AddBusinessDays(start, n, holidays)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), end)
			return nil
		},
	})

	calendarCmd.AddCommand(&cobra.Command{
		Use:   "count <from> <to>",
		Short: "Count business days after from, up to and including to",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := types.ParseDate(args[0])
			if err != nil {
				return errors.InvalidArgument("invalid date %q, expected YYYY-MM-DD", args[0])
			}
			to, err := types.ParseDate(args[1])
			if err != nil {
				return errors.InvalidArgument("invalid date %q, expected YYYY-MM-DD", args[1])
			}
			holidays, err := a.holidays(cmd, region)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), calendar.CountBusinessDays(from, to, holidays))
			return nil
		},
	})

	var now string
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Show the effective start date for an order placed now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := a.now(now)
			if err != nil {
				return err
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}
			regime, err := eng.Regime(cmd.Context())
			if err != nil {
				return err
			}
			start, err := calendar.ResolveEffectiveStartDate(at, regime.IntakeCutoff)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), start)
			return nil
		},
	}
	startCmd.Flags().StringVar(&now, "now", "", "order instant in RFC 3339 (default: current time)")
	calendarCmd.AddCommand(startCmd)
	return calendarCmd
}

func (a *app) holidays(cmd *cobra.Command, region string) (types.HolidaySet, error) {
	eng, err := a.engine()
	if err != nil {
		return types.HolidaySet{}, err
	}
	return eng.Holidays(cmd.Context(), region)
}
