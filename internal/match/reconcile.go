package match

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/eorzea-tools/aetheryte-cli/internal/model"
)

// Result summarizes one area's reconciliation pass. Messages are
// human-readable notes for the presentation layer; the counters feed the
// run summary.
type Result struct {
	Updated  int
	Skipped  int
	Messages []string
}

// Reconcile assigns candidate coordinates to the area's records, in
// dataset order, mutating records in place. Records that already carry
// coordinates are never touched. Returns counts of updated and skipped
// records.
//
// The plaza special case runs before general similarity: a record named
// after its own area takes the area's single "Aetheryte Plaza" candidate
// unconditionally, because main hub points are labeled only with the
// area name on the wiki.
func Reconcile(records []*model.Aetheryte, candidates []model.Candidate, areaDisplay string) Result {
	var res Result
	if len(records) == 0 {
		return res
	}

	log := zap.L().With(zap.String("component", "match"), zap.String("area", areaDisplay))

	plazas := plazaCandidates(candidates)

	for _, rec := range records {
		if rec.HasCoords() {
			log.Debug("skipping record with existing coordinates",
				zap.String("name", rec.Name),
				zap.Float64("x", rec.X),
				zap.Float64("y", rec.Y),
			)
			res.Skipped++
			continue
		}

		if rec.Name == rec.MapArea && len(plazas) == 1 {
			p := plazas[0]
			log.Debug("area-name match, assigning plaza candidate",
				zap.String("record", rec.Name),
				zap.String("candidate", p.Name),
			)
			rec.X = p.X
			rec.Y = p.Y
			res.Updated++
			res.Messages = append(res.Messages,
				fmt.Sprintf("%s <- %s (%.1f, %.1f) [plaza]", rec.Name, p.Name, p.X, p.Y))
			continue
		}

		for _, c := range candidates {
			if Similar(rec.Name, c.Name, areaDisplay) {
				log.Debug("updating coordinates",
					zap.String("record", rec.Name),
					zap.String("candidate", c.Name),
					zap.Float64("x", c.X),
					zap.Float64("y", c.Y),
				)
				rec.X = c.X
				rec.Y = c.Y
				res.Updated++
				res.Messages = append(res.Messages,
					fmt.Sprintf("%s <- %s (%.1f, %.1f)", rec.Name, c.Name, c.X, c.Y))
				break
			}
		}
	}

	if res.Skipped > 0 {
		res.Messages = append(res.Messages,
			fmt.Sprintf("skipped %d records with existing coordinates", res.Skipped))
	}

	return res
}

// plazaCandidates filters candidates down to the area's hub points.
// "aetherite" is a common scraped misspelling and is accepted on purpose.
func plazaCandidates(candidates []model.Candidate) []model.Candidate {
	var plazas []model.Candidate
	for _, c := range candidates {
		name := strings.ToLower(c.Name)
		if strings.Contains(name, "aetheryte plaza") || strings.Contains(name, "aetherite plaza") {
			plazas = append(plazas, c)
		}
	}
	return plazas
}
