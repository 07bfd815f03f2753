package turnaround

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translation-quote/core/calendar"
	"translation-quote/core/types"
	"translation-quote/internal/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tiers() types.TierSet {
	return types.TierSet{
		{Code: types.TierStandard, FeeType: types.FeePercentage, FeeValue: decimal.Zero,
			Days: types.DayRule{BaseDays: 2, BasePages: dec("2"), PagesPerExtraDay: dec("2")}, IsDefault: true},
		{Code: types.TierRush, FeeType: types.FeePercentage, FeeValue: dec("30"),
			Days: types.DayRule{BaseDays: 1, BasePages: dec("2"), PagesPerExtraDay: dec("3")}, IsRush: true},
		{Code: types.TierSameDay, FeeType: types.FeeFlat, FeeValue: dec("50"), IsRush: true},
	}
}

func cutoff(h int) types.Cutoff {
	return types.Cutoff{TimeZone: "America/Edmonton", Hour: h}
}

// edmontonTime builds an instant from Edmonton wall-clock time (UTC-6 in October).
func edmontonTime(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour+6, minute, 0, 0, time.UTC)
}

func turnaroundAt(now time.Time) types.TurnaroundContext {
	return types.TurnaroundContext{
		Now:            now,
		IntakeCutoff:   cutoff(17),
		RushCutoff:     cutoff(14),
		SameDayCutoff:  cutoff(10),
		SourceLanguage: "es",
		TargetLanguage: "en",
		IntendedUse:    "immigration",
		SameDayRules: []types.SameDayRule{
			{SourceLanguage: "es", TargetLanguage: "en", DocumentType: "birth_certificate", IntendedUse: "immigration", AdditionalFee: dec("15"), Active: true},
			{SourceLanguage: "es", TargetLanguage: "en", DocumentType: "marriage_certificate", IntendedUse: "immigration", AdditionalFee: dec("20"), Active: true},
			{SourceLanguage: "es", TargetLanguage: "en", DocumentType: "diploma", IntendedUse: "immigration", AdditionalFee: dec("99"), Active: false},
		},
	}
}

func item(docType string, total string, pages string, notarized bool) types.LineItem {
	return types.LineItem{
		DocumentType:      docType,
		IsNotarized:       notarized,
		BillablePages:     dec(pages),
		TranslationCharge: dec(total),
		LineTotal:         dec(total),
	}
}

func availability(t *testing.T, e types.Eligibility, code string) types.TierEligibility {
	t.Helper()
	te, ok := e.For(code)
	require.True(t, ok, code)
	return te
}

func TestValidateTiers(t *testing.T) {
	require.NoError(t, ValidateTiers(tiers()))

	mutate := map[string]func(types.TierSet) types.TierSet{
		"empty":          func(types.TierSet) types.TierSet { return nil },
		"two defaults":   func(s types.TierSet) types.TierSet { s[1].IsDefault = true; s[1].IsRush = false; return s },
		"no default":     func(s types.TierSet) types.TierSet { s[0].IsDefault = false; return s },
		"rush default":   func(s types.TierSet) types.TierSet { s[0].IsDefault = false; s[1].IsDefault = true; return s },
		"duplicate code": func(s types.TierSet) types.TierSet { s[1].Code = types.TierStandard; return s },
		"bad fee type":   func(s types.TierSet) types.TierSet { s[1].FeeType = "bogus"; return s },
		"negative fee":   func(s types.TierSet) types.TierSet { s[1].FeeValue = dec("-1"); return s },
		"zero divisor":   func(s types.TierSet) types.TierSet { s[0].Days.PagesPerExtraDay = decimal.Zero; return s },
	}
	for name, fn := range mutate {
		t.Run(name, func(t *testing.T) {
			err := ValidateTiers(fn(tiers()))
			assert.True(t, errors.IsType(err, errors.TypeInvalidArgument), "%v", err)
		})
	}
}

func TestFeeScenarioC(t *testing.T) {
	rush, _ := tiers().Find(types.TierRush)
	fee, err := Fee(rush, dec("145.00"), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "43.50", fee.StringFixed(2))
}

func TestFeeFlatAndSameDaySurcharge(t *testing.T) {
	sameDay, _ := tiers().Find(types.TierSameDay)
	fee, err := Fee(sameDay, dec("1000"), dec("20"))
	require.NoError(t, err)
	assert.Equal(t, "70", fee.String())

	// Surcharge only applies to same-day.
	flatRush := types.TurnaroundTier{Code: "express", FeeType: types.FeeFlat, FeeValue: dec("25"), IsRush: true}
	fee, err = Fee(flatRush, dec("1000"), dec("20"))
	require.NoError(t, err)
	assert.Equal(t, "25", fee.String())
}

func TestFeeRejectsBadInput(t *testing.T) {
	rush, _ := tiers().Find(types.TierRush)
	_, err := Fee(rush, dec("-1"), decimal.Zero)
	assert.True(t, errors.IsType(err, errors.TypeInvalidArgument))
	_, err = Fee(rush, dec("1"), dec("-1"))
	assert.True(t, errors.IsType(err, errors.TypeInvalidArgument))
	_, err = Fee(types.TurnaroundTier{Code: "x", FeeType: "per_page"}, dec("1"), decimal.Zero)
	assert.True(t, errors.IsType(err, errors.TypeInvalidArgument))
}

func TestNotarizationExclusion(t *testing.T) {
	rush, _ := tiers().Find(types.TierRush)
	plain := item("birth_certificate", "145", "2.2", false)
	notarized := item("affidavit", "194.95", "2.2", true)

	withNotarized, err := Fee(rush, RushEligibleSubtotal([]types.LineItem{plain, notarized}), decimal.Zero)
	require.NoError(t, err)
	withoutNotarized, err := Fee(rush, RushEligibleSubtotal([]types.LineItem{plain}), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, withNotarized.Equal(withoutNotarized))
	assert.Equal(t, "43.5", withNotarized.String())
}

func TestEvaluateAllOpenBeforeCutoffs(t *testing.T) {
	items := []types.LineItem{item("birth_certificate", "145", "2.2", false)}
	e, err := Evaluate(items, tiers(), turnaroundAt(edmontonTime(16, 9, 0)))
	require.NoError(t, err)

	for _, code := range []string{types.TierStandard, types.TierRush, types.TierSameDay} {
		assert.True(t, availability(t, e, code).Available, code)
	}
	assert.Equal(t, "15", e.SameDayAdditionalFee.String())
	assert.Equal(t, types.MustParseDate("2026-10-16"), e.EffectiveStartDate)
}

func TestEvaluateScenarioE(t *testing.T) {
	items := []types.LineItem{item("birth_certificate", "145", "2.2", false)}
	in := turnaroundAt(edmontonTime(16, 11, 0))

	open, err := Evaluate(items, tiers(), in)
	require.NoError(t, err)

	sameDay := availability(t, open, types.TierSameDay)
	assert.False(t, sameDay.Available)
	assert.Equal(t, types.ReasonPastCutoff, sameDay.Reason)
	assert.True(t, availability(t, open, types.TierRush).Available)
	assert.True(t, open.SameDayAdditionalFee.IsZero())

	err = Require(open, types.TierSameDay)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeIneligible))
	assert.NoError(t, Require(open, types.TierRush))
}

func TestEvaluateRushPastCutoff(t *testing.T) {
	items := []types.LineItem{item("birth_certificate", "145", "2.2", false)}
	e, err := Evaluate(items, tiers(), turnaroundAt(edmontonTime(16, 14, 0)))
	require.NoError(t, err)

	assert.Equal(t, types.ReasonPastCutoff, availability(t, e, types.TierRush).Reason)
	assert.True(t, availability(t, e, types.TierStandard).Available)
}

func TestEvaluateAllNotarized(t *testing.T) {
	items := []types.LineItem{
		item("birth_certificate", "145", "2.2", true),
		item("marriage_certificate", "65", "1", true),
	}
	e, err := Evaluate(items, tiers(), turnaroundAt(edmontonTime(16, 9, 0)))
	require.NoError(t, err)

	assert.Equal(t, types.ReasonAllNotarized, availability(t, e, types.TierRush).Reason)
	assert.Equal(t, types.ReasonAllNotarized, availability(t, e, types.TierSameDay).Reason)
	assert.True(t, availability(t, e, types.TierStandard).Available)
}

func TestEvaluateSameDayMatching(t *testing.T) {
	now := edmontonTime(16, 9, 0)

	t.Run("every type must match", func(t *testing.T) {
		items := []types.LineItem{
			item("birth_certificate", "145", "2.2", false),
			item("bank_statement", "65", "1", false),
		}
		e, err := Evaluate(items, tiers(), turnaroundAt(now))
		require.NoError(t, err)
		assert.Equal(t, types.ReasonNoSameDayRule, availability(t, e, types.TierSameDay).Reason)
	})

	t.Run("inactive rows never match", func(t *testing.T) {
		items := []types.LineItem{item("diploma", "145", "2.2", false)}
		e, err := Evaluate(items, tiers(), turnaroundAt(now))
		require.NoError(t, err)
		assert.Equal(t, types.ReasonNoSameDayRule, availability(t, e, types.TierSameDay).Reason)
	})

	t.Run("notarized types are ignored and surcharge is the largest match", func(t *testing.T) {
		items := []types.LineItem{
			item("birth_certificate", "145", "2.2", false),
			item("MARRIAGE_CERTIFICATE", "65", "1", false),
			item("bank_statement", "65", "1", true),
		}
		e, err := Evaluate(items, tiers(), turnaroundAt(now))
		require.NoError(t, err)
		assert.True(t, availability(t, e, types.TierSameDay).Available)
		assert.Equal(t, "20", e.SameDayAdditionalFee.String())
	})

	t.Run("intended use is part of the key", func(t *testing.T) {
		in := turnaroundAt(now)
		in.IntendedUse = "academic"
		e, err := Evaluate([]types.LineItem{item("birth_certificate", "145", "2.2", false)}, tiers(), in)
		require.NoError(t, err)
		assert.Equal(t, types.ReasonNoSameDayRule, availability(t, e, types.TierSameDay).Reason)
	})
}

func TestEvaluateSameDayCalendarGates(t *testing.T) {
	items := []types.LineItem{item("birth_certificate", "145", "2.2", false)}

	in := turnaroundAt(edmontonTime(16, 9, 0))
	in.Holidays = types.NewHolidaySet(types.MustParseDate("2026-10-16"))
	e, err := Evaluate(items, tiers(), in)
	require.NoError(t, err)
	assert.Equal(t, types.ReasonNotBusinessDay, availability(t, e, types.TierSameDay).Reason)

	in = turnaroundAt(edmontonTime(16, 9, 0))
	in.SameDayBlocks = types.NewHolidaySet(types.MustParseDate("2026-10-16"))
	e, err = Evaluate(items, tiers(), in)
	require.NoError(t, err)
	assert.Equal(t, types.ReasonSameDayBlocked, availability(t, e, types.TierSameDay).Reason)
	assert.True(t, availability(t, e, types.TierRush).Available)

	e, err = Evaluate(items, tiers(), turnaroundAt(edmontonTime(17, 9, 0)))
	require.NoError(t, err)
	assert.Equal(t, types.ReasonNotBusinessDay, availability(t, e, types.TierSameDay).Reason)
	assert.Equal(t, types.ReasonPastCutoff, availability(t, e, types.TierRush).Reason, "rush is weekdays only")
}

func TestEvaluateSameDayNeedsTodayAsStart(t *testing.T) {
	items := []types.LineItem{item("birth_certificate", "145", "2.2", false)}

	// Same-day closes later than intake: before intake the order still starts today.
	in := turnaroundAt(edmontonTime(16, 16, 30))
	in.SameDayCutoff = cutoff(18)
	e, err := Evaluate(items, tiers(), in)
	require.NoError(t, err)
	assert.True(t, availability(t, e, types.TierSameDay).Available)

	// Friday 17:30 is before the same-day cutoff but after intake, so the
	// start moves to Saturday and same-day cannot deliver on it.
	in = turnaroundAt(edmontonTime(16, 17, 30))
	in.SameDayCutoff = cutoff(18)
	e, err = Evaluate(items, tiers(), in)
	require.NoError(t, err)
	assert.Equal(t, types.MustParseDate("2026-10-17"), e.EffectiveStartDate)
	assert.Equal(t, types.ReasonPastCutoff, availability(t, e, types.TierSameDay).Reason)
	assert.True(t, errors.IsType(Require(e, types.TierSameDay), errors.TypeIneligible))
}

func TestEvaluateNoDocuments(t *testing.T) {
	e, err := Evaluate(nil, tiers(), turnaroundAt(edmontonTime(16, 9, 0)))
	require.NoError(t, err)
	assert.Equal(t, types.ReasonNoDocuments, availability(t, e, types.TierRush).Reason)
	assert.True(t, availability(t, e, types.TierStandard).Available)
}

func TestRequireUnknownTier(t *testing.T) {
	e, err := Evaluate(nil, tiers(), turnaroundAt(edmontonTime(16, 9, 0)))
	require.NoError(t, err)
	assert.True(t, errors.IsType(Require(e, "overnight"), errors.TypeInvalidArgument))
}

func TestDays(t *testing.T) {
	std := types.DayRule{BaseDays: 2, BasePages: dec("2"), PagesPerExtraDay: dec("2")}
	tests := []struct {
		pages string
		want  int
	}{
		{"1", 2},
		{"2", 2},
		{"2.2", 3},
		{"4", 3},
		{"4.1", 4},
		{"10", 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Days(std, dec(tt.pages)), tt.pages)
	}
}

func TestDaysSaturatesPastMaximum(t *testing.T) {
	std := types.DayRule{BaseDays: 2, BasePages: dec("2"), PagesPerExtraDay: dec("2")}

	// 2 + ceil(726/2) is exactly the maximum.
	assert.Equal(t, calendar.MaxBusinessDays, Days(std, dec("728")))
	assert.Equal(t, calendar.MaxBusinessDays+1, Days(std, dec("730")))
	assert.Equal(t, calendar.MaxBusinessDays+1, Days(std, dec("1e30")))

	set := tiers()
	standard, _ := set.Find(types.TierStandard)
	_, err := DeliveryDate(standard, set, dec("1e30"), types.MustParseDate("2026-10-16"), types.HolidaySet{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInvalidArgument))
}

func TestValidateTiersBoundsBaseDays(t *testing.T) {
	set := tiers()
	set[0].Days.BaseDays = calendar.MaxBusinessDays + 1
	assert.True(t, errors.IsType(ValidateTiers(set), errors.TypeInvalidArgument))
}

func TestRushCodeFollowsRushRules(t *testing.T) {
	set := tiers()
	set[1].IsRush = false
	set[1].Days = types.DayRule{BaseDays: 4, BasePages: dec("1"), PagesPerExtraDay: dec("10")}
	rush, _ := set.Find(types.TierRush)

	assert.True(t, IsRush(rush))
	assert.True(t, IsExpedited(rush))
	assert.Equal(t, 2, TierDays(rush, set, dec("1")), "clamped to standard")

	e, err := Evaluate([]types.LineItem{item("affidavit", "145", "2.2", true)}, set, turnaroundAt(edmontonTime(16, 9, 0)))
	require.NoError(t, err)
	assert.Equal(t, types.ReasonAllNotarized, availability(t, e, types.TierRush).Reason)

	set[1].IsDefault, set[0].IsDefault = true, false
	assert.True(t, errors.IsType(ValidateTiers(set), errors.TypeInvalidArgument), "rush cannot be the default")
}

func TestDeliveryDate(t *testing.T) {
	set := tiers()
	friday := types.MustParseDate("2026-10-16")
	std, _ := set.Find(types.TierStandard)
	rush, _ := set.Find(types.TierRush)
	sameDay, _ := set.Find(types.TierSameDay)

	got, err := DeliveryDate(std, set, dec("2.2"), friday, types.HolidaySet{})
	require.NoError(t, err)
	assert.Equal(t, types.MustParseDate("2026-10-21"), got) // 3 business days

	got, err = DeliveryDate(rush, set, dec("2.2"), friday, types.HolidaySet{})
	require.NoError(t, err)
	assert.Equal(t, types.MustParseDate("2026-10-20"), got) // 2 business days

	got, err = DeliveryDate(sameDay, set, dec("40"), friday, types.HolidaySet{})
	require.NoError(t, err)
	assert.Equal(t, friday, got)

	_, err = DeliveryDate(std, set, dec("-1"), friday, types.HolidaySet{})
	assert.True(t, errors.IsType(err, errors.TypeInvalidArgument))
}

func TestRushNeverLaterThanStandard(t *testing.T) {
	set := tiers()
	// A misconfigured rush tier that would be slower than standard for small orders.
	set[1].Days = types.DayRule{BaseDays: 4, BasePages: dec("1"), PagesPerExtraDay: dec("10")}
	std, _ := set.Find(types.TierStandard)
	rush, _ := set.Find(types.TierRush)
	start := types.MustParseDate("2026-10-16")
	holidays := types.NewHolidaySet(types.MustParseDate("2026-10-19"))

	for pages := dec("1"); pages.LessThanOrEqual(dec("40")); pages = pages.Add(dec("0.1")) {
		stdDate, err := DeliveryDate(std, set, pages, start, holidays)
		require.NoError(t, err)
		rushDate, err := DeliveryDate(rush, set, pages, start, holidays)
		require.NoError(t, err)
		require.Falsef(t, rushDate.After(stdDate), "pages %s: rush %s after standard %s", pages, rushDate, stdDate)
	}
}

func TestProjectDeliveryWaitsForNotarizedWork(t *testing.T) {
	set := tiers()
	rush, _ := set.Find(types.TierRush)
	start := types.MustParseDate("2026-10-16")
	items := []types.LineItem{
		item("birth_certificate", "65", "1", false),
		item("affidavit", "260", "8", true),
	}

	got, err := ProjectDelivery(rush, set, items, start, types.HolidaySet{})
	require.NoError(t, err)
	// Rush over 9 pages is 1+ceil(7/3)=4 days; standard over the notarized 8 pages is 2+3=5 days.
	assert.Equal(t, types.MustParseDate("2026-10-23"), got)

	std, _ := set.Find(types.TierStandard)
	got, err = ProjectDelivery(std, set, items, start, types.HolidaySet{})
	require.NoError(t, err)
	// Standard over 9 pages: 2+ceil(7/2)=6 days.
	assert.Equal(t, types.MustParseDate("2026-10-26"), got)
}
