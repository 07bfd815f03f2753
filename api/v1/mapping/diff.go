// Package mapping - Diff mapping
package mapping

import (
	"time"

	"translation-quote/api/v1/types"
	"translation-quote/core/diff"
)

// MapDiffResponse maps an engine diff to the API response
func MapDiffResponse(d *diff.DiffResult, includeUnchanged bool, now time.Time, duration time.Duration, config MapperConfig) types.DiffResponse {
	resp := types.DiffResponse{
		Metadata: metadata("", "", now.UTC(), duration, config),
		Before: types.DiffSideDTO{
			Total:        money(d.TotalBefore),
			Tier:         d.TierBefore,
			DeliveryDate: d.DeliveryDateBefore.String(),
			Documents:    d.RemovedCount + d.ChangedCount + d.UnchangedCount,
		},
		After: types.DiffSideDTO{
			Total:        money(d.TotalAfter),
			Tier:         d.TierAfter,
			DeliveryDate: d.DeliveryDateAfter.String(),
			Documents:    d.AddedCount + d.ChangedCount + d.UnchangedCount,
		},
		Delta: types.DeltaDTO{
			Total:         signed(d.TotalDelta),
			Percent:       d.DeltaPercent.String(),
			DateShiftDays: d.DateShiftDays,
			Added:         d.AddedCount,
			Removed:       d.RemovedCount,
			Changed:       d.ChangedCount,
		},
		Fields:  make([]types.FieldChangeDTO, 0, len(d.Fields)),
		Changes: make([]types.ChangeDTO, 0),
		Summary: d.Summary(),
	}

	for _, f := range d.Fields {
		if !f.Changed {
			continue
		}
		resp.Fields = append(resp.Fields, types.FieldChangeDTO{
			Name:   f.Name,
			Before: money(f.Before),
			After:  money(f.After),
			Delta:  signed(f.Delta),
		})
	}

	groups := [][]*diff.LineDiff{d.Added, d.Removed, d.Changed}
	if includeUnchanged {
		groups = append(groups, d.Unchanged)
	}
	for _, group := range groups {
		for _, ld := range group {
			resp.Changes = append(resp.Changes, mapChange(ld))
		}
	}

	for _, r := range d.Reasons {
		resp.Reasons = append(resp.Reasons, types.ReasonDTO{
			Category: r.Category,
			What:     r.What,
			Impact:   signed(r.Impact),
		})
	}
	return resp
}

func mapChange(ld *diff.LineDiff) types.ChangeDTO {
	c := types.ChangeDTO{
		Type:     ld.ChangeType.String(),
		Document: ld.Key,
		Delta:    signed(ld.Delta),
	}
	if ld.Before != nil {
		c.Before = money(ld.Before.LineTotal)
	}
	if ld.After != nil {
		c.After = money(ld.After.LineTotal)
	}
	return c
}
