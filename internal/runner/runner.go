// Package runner drives the per-area enrichment pass.
package runner

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/eorzea-tools/aetheryte-cli/internal/dataset"
	"github.com/eorzea-tools/aetheryte-cli/internal/extract"
	"github.com/eorzea-tools/aetheryte-cli/internal/match"
	"github.com/eorzea-tools/aetheryte-cli/internal/model"
	"github.com/eorzea-tools/aetheryte-cli/internal/wiki"
)

// PageSource supplies raw area pages. A nil page means the area could
// not be retrieved this run.
type PageSource interface {
	Page(ctx context.Context, areaKey string) (*wiki.Page, error)
}

// Extractor turns raw page markup into candidates.
type Extractor func(pageHTML string) []model.Candidate

// AreaResult is the outcome for one area, for presentation.
type AreaResult struct {
	Area     string
	Updated  int
	Skipped  int
	Saved    bool
	Messages []string
}

// Summary accumulates the whole run.
type Summary struct {
	Updated        int
	SkippedRecords int
	SkippedAreas   int
	Areas          []AreaResult
}

// Runner processes every area referenced by the dataset, one at a time.
// Processing is deliberately sequential: the only external host is the
// wiki and fetches are paced to stay polite.
type Runner struct {
	ds      *dataset.Dataset
	pages   PageSource
	extract Extractor
}

// New creates a Runner. extract defaults to the standard extraction
// cascade when nil.
func New(ds *dataset.Dataset, pages PageSource, ex Extractor) *Runner {
	if ex == nil {
		ex = extract.Extract
	}
	return &Runner{ds: ds, pages: pages, extract: ex}
}

// Run walks the dataset's areas in sorted order: retrieve, extract,
// reconcile, and persist after each area that received at least one
// update, so a crash mid-run keeps partial progress. The processed set
// is scoped to this call.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	log := zap.L().With(zap.String("component", "runner"))

	summary := &Summary{}
	processed := make(map[string]bool)

	for _, area := range r.ds.AreaNames() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		key := model.AreaKey(area)
		if processed[key] {
			continue
		}

		if !r.ds.NeedsCoords(area) {
			summary.SkippedAreas++
			log.Debug("area already complete", zap.String("area", area))
			continue
		}

		result, err := r.processArea(ctx, area, key)
		if err != nil {
			return summary, err
		}

		summary.Updated += result.Updated
		summary.SkippedRecords += result.Skipped
		summary.Areas = append(summary.Areas, result)
		processed[key] = true
	}

	log.Info("run complete",
		zap.Int("updated", summary.Updated),
		zap.Int("skipped_records", summary.SkippedRecords),
		zap.Int("skipped_areas", summary.SkippedAreas),
	)
	return summary, nil
}

func (r *Runner) processArea(ctx context.Context, area, key string) (AreaResult, error) {
	result := AreaResult{Area: area}

	page, err := r.pages.Page(ctx, key)
	if err != nil {
		return result, err
	}

	var candidates []model.Candidate
	if page != nil {
		candidates = r.extract(page.Body)
	}
	if len(candidates) == 0 {
		result.Messages = append(result.Messages,
			fmt.Sprintf("no data found for %s, skipping", area))
		return result, nil
	}
	result.Messages = append(result.Messages,
		fmt.Sprintf("found %d teleport points", len(candidates)))

	rec := match.Reconcile(r.ds.ForArea(area), candidates, area)
	result.Updated = rec.Updated
	result.Skipped = rec.Skipped
	result.Messages = append(result.Messages, rec.Messages...)

	if rec.Updated > 0 {
		if err := r.ds.Save(); err != nil {
			return result, eris.Wrapf(err, "runner: save after %s", area)
		}
		result.Saved = true
		result.Messages = append(result.Messages,
			fmt.Sprintf("updates saved - %s", area))
	}

	return result, nil
}
