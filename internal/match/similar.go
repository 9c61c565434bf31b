package match

import (
	"strings"
)

// majorCities are the areas whose hub aetheryte carries a wiki name
// ("Aetheryte Plaza") that diverges sharply from the dataset name.
var majorCities = map[string]bool{
	"limsa lominsa": true,
	"gridania":      true,
	"ul'dah":        true,
	"ishgard":       true,
	"kugane":        true,
	"crystarium":    true,
	"old sharlayan": true,
}

// charContainmentThreshold is the fallback score floor: below it two
// non-exact names are considered different locations.
const charContainmentThreshold = 0.85

// Similar reports whether two location names refer to the same teleport
// point. It is a boolean gate chain, not a distance metric: each gate
// short-circuits before the more expensive ones run. areaDisplay is the
// area both names belong to; pass "" when no area context exists.
func Similar(a, b, areaDisplay string) bool {
	na := Normalize(a)
	nb := Normalize(b)

	if na == nb {
		return true
	}

	// Major-city hub points: "Aetheryte Plaza" must match names like
	// "Limsa Lominsa Upper Decks" even though they share almost nothing.
	if area := strings.ToLower(areaDisplay); majorCities[area] {
		needle := strings.ReplaceAll(area, "'", "")
		if isCityPlaza(na, needle) || isCityPlaza(nb, needle) {
			return true
		}
	}

	// A short label never matches a long descriptive phrase.
	lenA := len([]rune(na))
	lenB := len([]rune(nb))
	shorter := min(lenA, lenB)
	diff := lenA - lenB
	if diff < 0 {
		diff = -diff
	}
	if float64(diff) > float64(shorter)/3 {
		return false
	}

	wa := strings.Fields(na)
	wb := strings.Fields(nb)
	wordDiff := len(wa) - len(wb)
	if wordDiff < 0 {
		wordDiff = -wordDiff
	}
	if wordDiff > 1 {
		return false
	}

	if sharedWords(wa, wb) == 0 {
		return false
	}

	return charContainment(na, nb) > charContainmentThreshold
}

// isCityPlaza reports whether a normalized name looks like a major city's
// hub aetheryte: it must name the plaza and embed the city itself.
func isCityPlaza(normalized, city string) bool {
	return strings.Contains(normalized, "aetheryte") &&
		strings.Contains(normalized, "plaza") &&
		strings.Contains(normalized, city)
}

func sharedWords(wa, wb []string) int {
	n := 0
	for _, w1 := range wa {
		for _, w2 := range wb {
			if w1 == w2 {
				n++
				break
			}
		}
	}
	return n
}

// charContainment is the ratio of characters in a that appear anywhere
// in b, over the length of the longer string. Duplicates in a count each
// time they occur.
func charContainment(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	longer := max(len(ra), len(rb))
	if longer == 0 {
		return 0
	}

	present := make(map[rune]bool, len(rb))
	for _, r := range rb {
		present[r] = true
	}

	common := 0
	for _, r := range ra {
		if present[r] {
			common++
		}
	}
	return float64(common) / float64(longer)
}
