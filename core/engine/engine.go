// Package engine is the single entry point every quoting call site uses.
// The quote wizard, staff order edits and server-side recalculation all go
// through Engine so they cannot drift apart. CLI and HTTP are thin wrappers.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"translation-quote/core/calendar"
	"translation-quote/core/determinism"
	"translation-quote/core/diff"
	"translation-quote/core/quote"
	"translation-quote/core/tax"
	"translation-quote/core/types"
	"translation-quote/internal/errors"
	"translation-quote/internal/logging"
	"translation-quote/internal/metrics"
)

// RegimeSource supplies the regime snapshot for one computation. It is read
// once per call so a computation never mixes two snapshots.
type RegimeSource interface {
	Regime(ctx context.Context) (types.Regime, error)
}

// StaticSource serves a fixed regime.
type StaticSource types.Regime

// Regime returns the fixed regime
func (s StaticSource) Regime(ctx context.Context) (types.Regime, error) {
	if err := ctx.Err(); err != nil {
		return types.Regime{}, err
	}
	return types.Regime(s), nil
}

// Engine is the primary API for quoting.
type Engine struct {
	source  RegimeSource
	metrics *metrics.Metrics
	config  EngineConfig
}

// EngineConfig configures the engine
type EngineConfig struct {
	// DefaultRegion is used when a request names no billing region
	DefaultRegion string

	// FallbackTax, when set, replaces the tax region for billing regions
	// with no tax rows. Without it REGION_NOT_FOUND is returned.
	FallbackTax *types.TaxRegion

	// DiffThreshold is the per-document amount below which a re-quote
	// reports a line as unchanged
	DiffThreshold string
}

// NewEngine creates a new quoting engine. m may be nil.
func NewEngine(source RegimeSource, m *metrics.Metrics, config EngineConfig) *Engine {
	return &Engine{source: source, metrics: m, config: config}
}

// QuoteRequest is one order as the call sites describe it
type QuoteRequest struct {
	Documents []types.DocumentInput `json:"documents"`

	// TierCode selects the turnaround tier; empty means the default tier
	TierCode string `json:"tier_code,omitempty"`

	// Region is the billing region (e.g. "CA-AB")
	Region string `json:"region,omitempty"`

	SourceLanguage string `json:"source_language,omitempty"`
	TargetLanguage string `json:"target_language,omitempty"`
	IntendedUse    string `json:"intended_use,omitempty"`

	// DeliveryCodes names the delivery options chosen on top of the
	// always-selected digital option
	DeliveryCodes []string `json:"delivery_codes,omitempty"`

	// Now is the instant the quote is computed for; the engine never reads
	// the clock itself
	Now time.Time `json:"now"`
}

// QuoteResult is a PricingResult with its provenance
type QuoteResult struct {
	RegimeID    string              `json:"regime_id"`
	Fingerprint uuid.UUID           `json:"fingerprint"`
	Now         time.Time           `json:"now"`
	Result      types.PricingResult `json:"result"`
}

// OptionsResult is the per-tier preview of an order
type OptionsResult struct {
	RegimeID           string         `json:"regime_id"`
	Fingerprint        uuid.UUID      `json:"fingerprint"`
	EffectiveStartDate types.Date     `json:"effective_start_date"`
	Options            []quote.Option `json:"options"`
}

// Quote prices one order.
func (e *Engine) Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	start := time.Now()
	result, err := e.quote(ctx, req)
	e.observe("quote", start, err)
	if err != nil {
		logging.FromContext(ctx).Debug("quote failed", zap.String("tier", req.TierCode), zap.String("region", req.Region), zap.Error(err))
		return nil, err
	}

	total, _ := result.Result.Total.Float64()
	e.metrics.ObserveAmount(string(result.Result.Currency), result.Result.TierCode, total)
	logging.FromContext(ctx).Debug("quote computed",
		zap.String("regime", result.RegimeID),
		zap.String("fingerprint", result.Fingerprint.String()),
		zap.String("tier", result.Result.TierCode),
		zap.String("total", result.Result.Total.StringFixed(2)),
		zap.Stringer("delivery_date", result.Result.EstimatedDeliveryDate),
	)
	return result, nil
}

func (e *Engine) quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	req.Now = req.Now.UTC()
	regime, err := e.source.Regime(ctx)
	if err != nil {
		return nil, err
	}
	qreq, err := e.build(regime, req)
	if err != nil {
		return nil, err
	}
	res, err := quote.Aggregate(qreq)
	if err != nil {
		return nil, err
	}
	fp, err := fingerprint(regime, req)
	if err != nil {
		return nil, err
	}
	return &QuoteResult{RegimeID: regime.ID, Fingerprint: fp, Now: req.Now, Result: res}, nil
}

// Options previews every turnaround tier for an order. TierCode is ignored.
func (e *Engine) Options(ctx context.Context, req QuoteRequest) (*OptionsResult, error) {
	start := time.Now()
	out, err := e.options(ctx, req)
	e.observe("options", start, err)
	if err != nil {
		logging.FromContext(ctx).Debug("options failed", zap.String("region", req.Region), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (e *Engine) options(ctx context.Context, req QuoteRequest) (*OptionsResult, error) {
	req.Now = req.Now.UTC()
	regime, err := e.source.Regime(ctx)
	if err != nil {
		return nil, err
	}
	qreq, err := e.build(regime, req)
	if err != nil {
		return nil, err
	}
	opts, err := quote.Options(qreq)
	if err != nil {
		return nil, err
	}
	startDate, err := calendar.ResolveEffectiveStartDate(req.Now, regime.IntakeCutoff)
	if err != nil {
		return nil, err
	}
	req.TierCode = ""
	fp, err := fingerprint(regime, req)
	if err != nil {
		return nil, err
	}
	return &OptionsResult{RegimeID: regime.ID, Fingerprint: fp, EffectiveStartDate: startDate, Options: opts}, nil
}

// Diff re-quotes an order before and after an edit and compares the results.
func (e *Engine) Diff(ctx context.Context, before, after QuoteRequest) (*diff.DiffResult, error) {
	start := time.Now()
	b, err := e.quote(ctx, before)
	if err != nil {
		e.observe("diff", start, err)
		return nil, errors.Wrap(errors.TypeOf(err), "quoting before", err)
	}
	a, err := e.quote(ctx, after)
	if err != nil {
		e.observe("diff", start, err)
		return nil, errors.Wrap(errors.TypeOf(err), "quoting after", err)
	}
	e.observe("diff", start, nil)
	return e.Compare(b.Result, a.Result), nil
}

// Compare diffs two already computed results, e.g. a stored quote against
// a fresh one.
func (e *Engine) Compare(before, after types.PricingResult) *diff.DiffResult {
	threshold, err := parseThreshold(e.config.DiffThreshold)
	if err != nil {
		logging.Named("engine").Warn("ignoring invalid diff threshold", zap.String("threshold", e.config.DiffThreshold), zap.Error(err))
	}
	return diff.NewDiffer(threshold).Diff(before, after)
}

// ResolveTax resolves a billing region against the current regime.
func (e *Engine) ResolveTax(ctx context.Context, region string) (types.TaxRegion, error) {
	start := time.Now()
	regime, err := e.source.Regime(ctx)
	if err == nil {
		var r types.TaxRegion
		r, err = e.resolveTax(regime, region)
		if err == nil {
			e.observe("tax", start, nil)
			return r, nil
		}
	}
	e.observe("tax", start, err)
	return types.TaxRegion{}, err
}

// Holidays returns the holidays that apply to region under the current
// regime. An empty region uses the default region.
func (e *Engine) Holidays(ctx context.Context, region string) (types.HolidaySet, error) {
	regime, err := e.source.Regime(ctx)
	if err != nil {
		return types.HolidaySet{}, err
	}
	if region == "" {
		region = e.config.DefaultRegion
	}
	return regionalHolidays(regime.Holidays, tax.NormalizeRegion(region)), nil
}

// Regime returns the current regime snapshot.
func (e *Engine) Regime(ctx context.Context) (types.Regime, error) {
	return e.source.Regime(ctx)
}

func (e *Engine) resolveTax(regime types.Regime, region string) (types.TaxRegion, error) {
	if region == "" {
		region = e.config.DefaultRegion
	}
	r, err := tax.Resolve(region, regime.TaxRows)
	if err != nil && errors.IsType(err, errors.TypeRegionNotFound) && e.config.FallbackTax != nil {
		fallback := *e.config.FallbackTax
		fallback.RegionCode = tax.NormalizeRegion(region)
		logging.Named("engine").Warn("no tax rows for region, applying fallback",
			zap.String("region", region),
			zap.String("rate", fallback.TotalRate.String()),
		)
		return fallback, nil
	}
	return r, err
}

func (e *Engine) observe(operation string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = string(errors.TypeOf(err))
		if de, ok := errors.As(err); ok && de.Type == errors.TypeIneligible {
			tier, _ := de.Context["tier"].(string)
			reason, _ := de.Context["reason"].(string)
			e.metrics.ObserveIneligible(tier, reason)
		}
	}
	e.metrics.ObserveQuote(operation, result, time.Since(start))
}

// fingerprint identifies the inputs of a computation: the same regime and
// request always give the same UUID.
func fingerprint(regime types.Regime, req QuoteRequest) (uuid.UUID, error) {
	fp, err := determinism.Fingerprint(struct {
		Regime  types.Regime `json:"regime"`
		Request QuoteRequest `json:"request"`
	}{regime, req})
	if err != nil {
		return uuid.Nil, errors.Internal("fingerprinting quote inputs", err)
	}
	return fp, nil
}
