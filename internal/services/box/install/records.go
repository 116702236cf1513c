package install

import (
	"sort"

	"github.com/louisbranch/boxsync/internal/services/box/domain"
	"github.com/louisbranch/boxsync/internal/services/box/storage"
)

func toRecord(box domain.Box, packageID int64) storage.BoxRecord {
	return storage.BoxRecord{
		PackageID:         packageID,
		Identifier:        box.Identifier,
		Name:              box.Name.Default,
		BoxType:           string(box.Type),
		Position:          string(box.Position),
		ShowOrder:         box.ShowOrder,
		VisibleEverywhere: box.VisibleEverywhere,
		IsMultilingual:    box.IsMultilingual,
		CSSClassName:      box.CSSClassName,
		ShowHeader:        box.ShowHeader,
		OriginIsSystem:    box.OriginIsSystem,
		Controller:        box.Controller,
	}
}

func nameRecords(box domain.Box) []storage.NameRecord {
	locales := box.Name.Locales()
	out := make([]storage.NameRecord, 0, len(locales))
	for _, locale := range locales {
		out = append(out, storage.NameRecord{Locale: locale, Name: box.Name.Localized[locale]})
	}
	return out
}

// contentRecords returns the content blocks of content-bearing boxes. System
// boxes have no body, so their per-language titles become title-only rows.
func contentRecords(box domain.Box) []storage.ContentRecord {
	if box.Type.HasContent() {
		out := make([]storage.ContentRecord, 0, len(box.Contents))
		for _, locale := range sortedKeys(box.Contents) {
			block := box.Contents[locale]
			out = append(out, storage.ContentRecord{Locale: locale, Title: block.Title, Content: block.Body})
		}
		return out
	}
	out := make([]storage.ContentRecord, 0, len(box.Titles))
	for _, locale := range sortedKeys(box.Titles) {
		out = append(out, storage.ContentRecord{Locale: locale, Title: box.Titles[locale]})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
