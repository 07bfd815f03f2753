// Package cmd - quote, options and diff commands
package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"translation-quote/api/v1/mapping"
	apitypes "translation-quote/api/v1/types"
	"translation-quote/core/engine"
	"translation-quote/internal/errors"
	"translation-quote/internal/logging"
)

// orderFlags override fields of an order file
type orderFlags struct {
	tier     string
	region   string
	delivery []string
	now      string
}

func (f *orderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.tier, "tier", "t", "", "turnaround tier (default: the regime's default tier)")
	cmd.Flags().StringVarP(&f.region, "region", "r", "", "billing region, e.g. CA-AB")
	cmd.Flags().StringSliceVar(&f.delivery, "delivery", nil, "extra delivery options, e.g. canada_post")
	cmd.Flags().StringVar(&f.now, "now", "", "quote instant in RFC 3339 (default: current time)")
}

func (f *orderFlags) apply(dto *apitypes.QuoteRequest) {
	if f.tier != "" {
		dto.Tier = f.tier
	}
	if f.region != "" {
		dto.Region = f.region
	}
	if len(f.delivery) > 0 {
		dto.Delivery = f.delivery
	}
}

// readOrder decodes an order file; "-" reads stdin
func readOrder(cmd *cobra.Command, path string) (apitypes.QuoteRequest, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return apitypes.QuoteRequest{}, errors.InvalidArgument("cannot open order file %s: %v", path, err)
		}
		defer f.Close()
		r = f
	}

	var dto apitypes.QuoteRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dto); err != nil {
		return apitypes.QuoteRequest{}, errors.Wrapf(errors.TypeInvalidArgument, err, "decoding order file %s", path)
	}
	return dto, nil
}

// loadRequest reads, overrides, validates and maps one order
func (a *app) loadRequest(cmd *cobra.Command, path string, flags *orderFlags) (engine.QuoteRequest, error) {
	dto, err := readOrder(cmd, path)
	if err != nil {
		return engine.QuoteRequest{}, err
	}
	flags.apply(&dto)
	now, err := a.now(flags.now)
	if err != nil {
		return engine.QuoteRequest{}, err
	}
	return mapping.ToQuoteRequest(dto, now)
}

func (a *app) quoteCmd() *cobra.Command {
	flags := &orderFlags{}
	cmd := &cobra.Command{
		Use:   "quote <order.json>",
		Short: "Price one order",
		Long: `Price one order and print the breakdown.

The order file uses the same JSON shape as POST /v1/quotes; "-" reads it
from stdin. Flags override the matching fields of the file.

Examples:
  quote quote order.json
  quote quote --tier rush --region CA-ON order.json
  quote quote --delivery canada_post --format markdown order.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.loadRequest(cmd, args[0], flags)
			if err != nil {
				return err
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}
			f, err := a.formatter()
			if err != nil {
				return err
			}

			res, err := eng.Quote(cmd.Context(), req)
			if err != nil {
				return err
			}
			logging.Debug("quote rendered", zap.String("fingerprint", res.Fingerprint.String()))
			return f.RenderQuote(cmd.OutOrStdout(), res)
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) optionsCmd() *cobra.Command {
	flags := &orderFlags{}
	cmd := &cobra.Command{
		Use:   "options <order.json>",
		Short: "Preview every turnaround tier for an order",
		Long: `Show, for every turnaround tier, whether it can be selected, why not,
what it would cost and when it would deliver.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.loadRequest(cmd, args[0], flags)
			if err != nil {
				return err
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}
			f, err := a.formatter()
			if err != nil {
				return err
			}

			res, err := eng.Options(cmd.Context(), req)
			if err != nil {
				return err
			}
			return f.RenderOptions(cmd.OutOrStdout(), res)
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) diffCmd() *cobra.Command {
	var now string
	cmd := &cobra.Command{
		Use:   "diff <before.json> <after.json>",
		Short: "Re-quote an edited order and show what moved",
		Long: `Quote an order before and after an edit at the same instant and
compare the two results field by field and document by document.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := &orderFlags{now: now}
			before, err := a.loadRequest(cmd, args[0], flags)
			if err != nil {
				return err
			}
			after, err := a.loadRequest(cmd, args[1], flags)
			if err != nil {
				return err
			}
			// both sides are priced at one instant
			after.Now = before.Now

			eng, err := a.engine()
			if err != nil {
				return err
			}
			f, err := a.formatter()
			if err != nil {
				return err
			}

			d, err := eng.Diff(cmd.Context(), before, after)
			if err != nil {
				return err
			}
			return f.RenderDiff(cmd.OutOrStdout(), d)
		},
	}
	cmd.Flags().StringVar(&now, "now", "", "quote instant in RFC 3339 (default: current time)")
	return cmd
}
