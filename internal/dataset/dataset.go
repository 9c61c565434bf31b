// Package dataset loads and persists the aetheryte JSON document.
package dataset

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/eorzea-tools/aetheryte-cli/internal/model"
)

// aetherytesKey is the required top-level collection key.
const aetherytesKey = "Aetherytes"

// Dataset is the loaded document. Aetherytes are mutated in place as
// matches are found; Save rewrites the file. Top-level keys other than
// Aetherytes are carried through untouched.
type Dataset struct {
	Path       string
	Aetherytes []model.Aetheryte

	extra map[string]json.RawMessage
}

// Load reads and validates the dataset file. It fails when the file is
// missing, the document is not valid JSON, or the Aetherytes key is
// absent — callers abort the update phase on any of these.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s", path)
	}

	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, eris.Wrapf(err, "dataset: parse %s", path)
	}

	entries, ok := doc[aetherytesKey]
	if !ok {
		return nil, eris.Errorf("dataset: %s has no %q key", path, aetherytesKey)
	}

	var aetherytes []model.Aetheryte
	if err := json.Unmarshal(entries, &aetherytes); err != nil {
		return nil, eris.Wrapf(err, "dataset: parse %s entries", aetherytesKey)
	}
	delete(doc, aetherytesKey)

	return &Dataset{
		Path:       path,
		Aetherytes: aetherytes,
		extra:      doc,
	}, nil
}

// Save rewrites the dataset file in place. The write is whole-file and
// non-atomic; a crash mid-write can corrupt the file, which is accepted
// behavior for this tool.
func (d *Dataset) Save() error {
	doc := make(map[string]json.RawMessage, len(d.extra)+1)
	for k, v := range d.extra {
		doc[k] = v
	}

	entries, err := json.Marshal(d.Aetherytes)
	if err != nil {
		return eris.Wrap(err, "dataset: marshal entries")
	}
	doc[aetherytesKey] = entries

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "dataset: marshal document")
	}

	if err := os.WriteFile(d.Path, out, 0o644); err != nil {
		return eris.Wrapf(err, "dataset: write %s", d.Path)
	}
	return nil
}

// AreaNames returns the distinct non-empty MapArea values, sorted.
func (d *Dataset) AreaNames() []string {
	seen := make(map[string]bool)
	for _, a := range d.Aetherytes {
		if a.MapArea != "" {
			seen[a.MapArea] = true
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ForArea returns pointers to the records belonging to one area, in
// dataset order.
func (d *Dataset) ForArea(area string) []*model.Aetheryte {
	var recs []*model.Aetheryte
	for i := range d.Aetherytes {
		if d.Aetherytes[i].MapArea == area {
			recs = append(recs, &d.Aetherytes[i])
		}
	}
	return recs
}

// NeedsCoords reports whether any record in the area still carries the
// (0, 0) sentinel.
func (d *Dataset) NeedsCoords(area string) bool {
	for i := range d.Aetherytes {
		a := &d.Aetherytes[i]
		if a.MapArea == area && !a.HasCoords() {
			return true
		}
	}
	return false
}
