// Package extract pulls teleport point candidates out of raw wiki markup.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/eorzea-tools/aetheryte-cli/internal/model"
)

// coordPattern matches "Name (X:31, Y:30)" and "Name (10.5, 20.8)" with
// one expression: optional axis labels, integer or decimal values, comma
// or whitespace separator. Group 1 is the name segment, untrimmed.
var coordPattern = regexp.MustCompile(`([^(]+)\s*\(\s*(?:X:\s*)?(\d+(?:\.\d+)?)\s*(?:,|\s)\s*(?:Y:\s*)?(\d+(?:\.\d+)?)\s*\)`)

// Strategy is one extraction tier: a pure function from a parsed page to
// a candidate list. Tiers are tried in order, first non-empty result wins.
type Strategy struct {
	Name string
	Run  func(doc *html.Node) []model.Candidate
}

// DefaultStrategies returns the tiers in fallback order, most structured
// first, most permissive last.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "definition_list", Run: definitionList},
		{Name: "adjacent_sibling", Run: adjacentSibling},
		{Name: "page_scan", Run: pageScan},
	}
}

// Extract parses the page and runs the strategy cascade. Deterministic
// for identical input; returns nil when no tier finds anything, never
// panics.
func Extract(pageHTML string) []model.Candidate {
	if strings.TrimSpace(pageHTML) == "" {
		return nil
	}

	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	log := zap.L().With(zap.String("component", "extract"))

	for _, s := range DefaultStrategies() {
		if found := s.Run(doc); len(found) > 0 {
			unique := dedupe(found)
			log.Debug("extraction tier produced candidates",
				zap.String("strategy", s.Name),
				zap.Int("raw", len(found)),
				zap.Int("unique", len(unique)),
			)
			return unique
		}
	}

	log.Debug("no extraction tier produced candidates")
	return nil
}

// parseCoords applies the coordinate pattern to a text fragment.
func parseCoords(text string) []model.Candidate {
	var out []model.Candidate
	for _, m := range coordPattern.FindAllStringSubmatch(text, -1) {
		x, errX := strconv.ParseFloat(m[2], 64)
		y, errY := strconv.ParseFloat(m[3], 64)
		if errX != nil || errY != nil {
			continue
		}
		out = append(out, model.Candidate{
			Name: strings.TrimSpace(m[1]),
			X:    x,
			Y:    y,
		})
	}
	return out
}

// dedupe drops repeated names, keeping the first occurrence.
func dedupe(in []model.Candidate) []model.Candidate {
	seen := make(map[string]bool, len(in))
	out := make([]model.Candidate, 0, len(in))
	for _, c := range in {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c)
	}
	return out
}
