package storage

//go:generate mockgen -source=storage.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	apperrors "github.com/louisbranch/boxsync/internal/platform/errors"
)

// ErrNotFound indicates a requested persistence record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// BoxRecord is a persisted row of the box table.
type BoxRecord struct {
	BoxID             int64
	PackageID         int64
	Identifier        string
	Name              string
	BoxType           string
	Position          string
	ShowOrder         int
	VisibleEverywhere bool
	IsMultilingual    bool
	CSSClassName      string
	ShowHeader        bool
	OriginIsSystem    bool
	Controller        string
}

// ContentRecord is one localized title/body row of a box. Locale is empty
// for the language-neutral row of a non-multilingual box.
type ContentRecord struct {
	Locale  string
	Title   string
	Content string
}

// NameRecord is one localized name of a box.
type NameRecord struct {
	Locale string
	Name   string
}

// PageRecord identifies a page boxes can be attached to.
type PageRecord struct {
	PageID     int64
	Identifier string
	PackageID  int64
}

// BoxPageRecord is one row of the box-to-page visibility join table.
type BoxPageRecord struct {
	BoxID   int64
	PageID  int64
	Visible bool
}

// Tx exposes the box persistence operations available inside a transaction.
type Tx interface {
	// FindBox returns the box with the natural key (identifier, packageID) or
	// ErrNotFound.
	FindBox(ctx context.Context, identifier string, packageID int64) (BoxRecord, error)
	// NextShowOrder returns 1 + the highest show order at position, or 1 when
	// the position is empty. Implementations serialize concurrent callers for
	// the same position until the transaction ends.
	NextShowOrder(ctx context.Context, position string) (int, error)
	// InsertBox stores a new box and returns its generated id.
	InsertBox(ctx context.Context, box BoxRecord) (int64, error)
	// UpdateBox overwrites every column of the box with the given id.
	UpdateBox(ctx context.Context, box BoxRecord) error
	// ReplaceBoxContent replaces all localized content rows of a box.
	ReplaceBoxContent(ctx context.Context, boxID int64, content []ContentRecord) error
	// ReplaceBoxNames replaces all localized name rows of a box.
	ReplaceBoxNames(ctx context.Context, boxID int64, names []NameRecord) error
	// DeleteBox removes the box with the natural key and reports the number of
	// rows deleted.
	DeleteBox(ctx context.Context, identifier string, packageID int64) (int64, error)
	// ListBoxesByIdentifiers returns the package's boxes among identifiers.
	ListBoxesByIdentifiers(ctx context.Context, packageID int64, identifiers []string) ([]BoxRecord, error)
	// DeleteBoxPages removes every visibility row of a box.
	DeleteBoxPages(ctx context.Context, boxID int64) error
	// ResolvePageIDs maps page identifiers to page ids. Unknown identifiers
	// are left out of the result.
	ResolvePageIDs(ctx context.Context, identifiers []string) ([]int64, error)
	// InsertBoxPage stores a visibility row; an existing (boxID, pageID) pair
	// is left untouched and is not an error.
	InsertBoxPage(ctx context.Context, row BoxPageRecord) error
}

// Store runs box persistence work inside transactions.
type Store interface {
	// RunInTx executes fn in a transaction that commits when fn returns nil and
	// rolls back otherwise.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Close() error
}

// PageStore manages the page table consumed by visibility resolution. Pages
// are owned by another installer; boxsync only writes them for fixtures and
// local tooling.
type PageStore interface {
	PutPage(ctx context.Context, page PageRecord) (int64, error)
}

// Reader exposes read-only queries used by tooling and tests.
type Reader interface {
	ListBoxes(ctx context.Context, packageID int64) ([]BoxRecord, error)
	ListBoxContent(ctx context.Context, boxID int64) ([]ContentRecord, error)
	ListBoxNames(ctx context.Context, boxID int64) ([]NameRecord, error)
	ListBoxPages(ctx context.Context, boxID int64) ([]BoxPageRecord, error)
}
