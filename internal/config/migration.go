package config

import (
	"log/slog"
	"sort"

	"github.com/micro-nova/amplipi-prefs/internal/identity"
	"github.com/micro-nova/amplipi-prefs/internal/prefs"
)

// migrateDocument fixes up documents written by older clients: controller
// identities are folded to their normalized spelling (early builds kept MAC
// addresses upper case) and missing collections are filled in.
func migrateDocument(doc Document) {
	ids := make([]string, 0, len(doc))
	for id := range doc {
		ids = append(ids, id)
	}
	// Already-normalized keys first so they win over their legacy spellings.
	sort.SliceStable(ids, func(i, j int) bool {
		ni := identity.Normalize(ids[i]) == ids[i]
		nj := identity.Normalize(ids[j]) == ids[j]
		if ni != nj {
			return ni
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		p := doc[id]
		if p == nil {
			p = NewControllerPreferences()
			doc[id] = p
		}
		p.fill()

		norm := identity.Normalize(id)
		if norm == id {
			continue
		}
		delete(doc, id)
		target, ok := doc[norm]
		if !ok {
			slog.Warn("config: renaming controller identity", "from", id, "to", norm)
			doc[norm] = p
			continue
		}
		slog.Warn("config: merging duplicate controller identity", "from", id, "to", norm)
		mergeMissing(target, p)
	}
}

// mergeMissing copies records from src whose identifiers dst lacks.
func mergeMissing(dst, src *ControllerPreferences) {
	mergeTable(dst.Groups, src.Groups)
	mergeTable(dst.Zones, src.Zones)
}

func mergeTable(dst, src *prefs.Table) {
	for _, id := range src.Identifiers() {
		if dst.Has(id) {
			continue
		}
		rec, err := src.Record(id)
		if err != nil {
			continue
		}
		dst.SetRecord(id, *rec)
	}
}
