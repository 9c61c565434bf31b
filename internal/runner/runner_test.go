package runner

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eorzea-tools/aetheryte-cli/internal/dataset"
	"github.com/eorzea-tools/aetheryte-cli/internal/model"
	"github.com/eorzea-tools/aetheryte-cli/internal/wiki"
)

// fakePages serves canned page bodies keyed by area key. Missing keys
// behave like an unreachable page: nil page, nil error.
type fakePages struct {
	pages map[string]string
	calls []string
}

func (f *fakePages) Page(_ context.Context, areaKey string) (*wiki.Page, error) {
	f.calls = append(f.calls, areaKey)
	if body, ok := f.pages[areaKey]; ok {
		return &wiki.Page{Body: body}, nil
	}
	return nil, nil
}

// lineExtractor parses "Name|X|Y" lines so tests don't depend on HTML
// fixtures.
func lineExtractor(body string) []model.Candidate {
	var out []model.Candidate
	for _, line := range strings.Split(body, "\n") {
		parts := strings.Split(strings.TrimSpace(line), "|")
		if len(parts) != 3 {
			continue
		}
		x, errX := strconv.ParseFloat(parts[1], 64)
		y, errY := strconv.ParseFloat(parts[2], 64)
		if errX != nil || errY != nil {
			continue
		}
		out = append(out, model.Candidate{Name: parts[0], X: x, Y: y})
	}
	return out
}

func newTestDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aetheryte.json")
	content := `{"Aetherytes": [
		{"Name": "Camp Bronze Lake", "MapArea": "Upper La Noscea", "X": 0, "Y": 0},
		{"Name": "Camp Overlook", "MapArea": "Upper La Noscea", "X": 12, "Y": 16.4},
		{"Name": "Camp Drybone", "MapArea": "Eastern Thanalan", "X": 0, "Y": 0},
		{"Name": "Camp Cloudtop", "MapArea": "The Sea of Clouds", "X": 9.7, "Y": 31.2}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ds, err := dataset.Load(path)
	require.NoError(t, err)
	return ds
}

func TestRun_UpdatesAndPersists(t *testing.T) {
	ds := newTestDataset(t)
	pages := &fakePages{pages: map[string]string{
		"Upper_La_Noscea":  "Camp Bronze Lake|30.1|22.5",
		"Eastern_Thanalan": "Camp Drybone|14|24",
	}}

	summary, err := New(ds, pages, lineExtractor).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Updated)
	assert.Equal(t, 1, summary.SkippedRecords, "Camp Overlook already has coordinates")
	assert.Equal(t, 1, summary.SkippedAreas, "The Sea of Clouds is complete")

	// Dataset file was rewritten with the new coordinates.
	reloaded, err := dataset.Load(ds.Path)
	require.NoError(t, err)
	assert.Equal(t, 30.1, reloaded.Aetherytes[0].X)
	assert.Equal(t, 24.0, reloaded.Aetherytes[2].Y)

	// Complete areas are never fetched.
	assert.NotContains(t, pages.calls, "The_Sea_of_Clouds")
}

func TestRun_SecondPassIsIdempotent(t *testing.T) {
	ds := newTestDataset(t)
	pages := &fakePages{pages: map[string]string{
		"Upper_La_Noscea":  "Camp Bronze Lake|30.1|22.5",
		"Eastern_Thanalan": "Camp Drybone|14|24",
	}}

	_, err := New(ds, pages, lineExtractor).Run(context.Background())
	require.NoError(t, err)

	reloaded, err := dataset.Load(ds.Path)
	require.NoError(t, err)

	second, err := New(reloaded, pages, lineExtractor).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, second.Updated)
	assert.Equal(t, 3, second.SkippedAreas, "every area is now complete")
	assert.Empty(t, second.Areas)
}

func TestRun_RetrievalFailureSkipsArea(t *testing.T) {
	ds := newTestDataset(t)
	pages := &fakePages{pages: map[string]string{
		// Eastern Thanalan intentionally absent: fetch fails.
		"Upper_La_Noscea": "Camp Bronze Lake|30.1|22.5",
	}}

	summary, err := New(ds, pages, lineExtractor).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Updated)

	var thanalan *AreaResult
	for i := range summary.Areas {
		if summary.Areas[i].Area == "Eastern Thanalan" {
			thanalan = &summary.Areas[i]
		}
	}
	require.NotNil(t, thanalan)
	assert.Equal(t, 0, thanalan.Updated)
	assert.False(t, thanalan.Saved)
	require.NotEmpty(t, thanalan.Messages)
	assert.Contains(t, thanalan.Messages[0], "no data found")

	// The record carries over untouched for the next run.
	reloaded, err := dataset.Load(ds.Path)
	require.NoError(t, err)
	assert.False(t, reloaded.Aetherytes[2].HasCoords())
}

func TestRun_NoMatchMeansNoSave(t *testing.T) {
	ds := newTestDataset(t)
	originalInfo, err := os.Stat(ds.Path)
	require.NoError(t, err)

	pages := &fakePages{pages: map[string]string{
		"Upper_La_Noscea":  "Completely Unrelated Place|1|1",
		"Eastern_Thanalan": "Another Unrelated Spot|2|2",
	}}

	summary, err := New(ds, pages, lineExtractor).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Updated)
	for _, area := range summary.Areas {
		assert.False(t, area.Saved)
	}

	// File untouched.
	info, err := os.Stat(ds.Path)
	require.NoError(t, err)
	assert.Equal(t, originalInfo.ModTime(), info.ModTime())
}

func TestRun_ContextCancellation(t *testing.T) {
	ds := newTestDataset(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(ds, &fakePages{}, lineExtractor).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
