package install

import (
	"context"
	"sort"

	"github.com/louisbranch/boxsync/internal/services/box/domain"
	"github.com/louisbranch/boxsync/internal/services/box/manifest"
	"github.com/louisbranch/boxsync/internal/services/box/storage"
)

// Plugin is the install lifecycle for one manifest. Run calls Prepare for
// every imported item, then FindExisting and Import per item, then PostImport
// once. HandleDelete runs for the delete section.
type Plugin interface {
	// Prepare validates an item and stages its visibility exceptions in acc.
	Prepare(item manifest.Item, acc *Exceptions) (domain.Box, error)
	// FindExisting looks the box up by its natural key.
	FindExisting(ctx context.Context, tx storage.Tx, box domain.Box) (storage.BoxRecord, bool, error)
	// Import inserts, updates, or skips box. existing is nil for new boxes.
	Import(ctx context.Context, tx storage.Tx, existing *storage.BoxRecord, box domain.Box) (storage.BoxRecord, Outcome, error)
	// PostImport writes the staged visibility exceptions.
	PostImport(ctx context.Context, tx storage.Tx, acc Exceptions) error
	// HandleDelete removes the listed boxes in a single transaction.
	HandleDelete(ctx context.Context, items []manifest.Item) error
}

// Outcome is what Import did with a box.
type Outcome string

const (
	OutcomeInserted Outcome = "inserted"
	OutcomeUpdated  Outcome = "updated"
	// OutcomeSkipped means the row exists with a user-editable type and was
	// left as is.
	OutcomeSkipped Outcome = "skipped"
)

// Exceptions accumulates visibility exceptions across the items of one run,
// keyed by box identifier. The zero value is ready to use.
type Exceptions struct {
	pages map[string][]string
}

// Stage records the page identifiers for a box, replacing any earlier entry
// for the same identifier. Empty lists are ignored.
func (e *Exceptions) Stage(identifier string, pages []string) {
	if len(pages) == 0 {
		return
	}
	if e.pages == nil {
		e.pages = make(map[string][]string)
	}
	e.pages[identifier] = append([]string(nil), pages...)
}

// Len returns the number of staged boxes.
func (e Exceptions) Len() int {
	return len(e.pages)
}

// Identifiers returns the staged box identifiers in sorted order.
func (e Exceptions) Identifiers() []string {
	ids := make([]string, 0, len(e.pages))
	for id := range e.pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Pages returns the page identifiers staged for a box.
func (e Exceptions) Pages(identifier string) []string {
	return append([]string(nil), e.pages[identifier]...)
}
