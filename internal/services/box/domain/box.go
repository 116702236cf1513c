// Package domain defines the normalized box record and the validation rules
// that turn a parsed manifest item into one.
package domain

import (
	"github.com/louisbranch/boxsync/internal/platform/i18n"
)

// Type identifies how a box produces its content.
type Type string

const (
	// TypeSystem boxes render through a named controller and are fully owned
	// by the installing package.
	TypeSystem Type = "system"
	TypeHTML   Type = "html"
	TypeText   Type = "text"
	TypeTpl    Type = "tpl"
)

// HasContent reports whether boxes of this type carry static content blocks.
func (t Type) HasContent() bool {
	switch t {
	case TypeHTML, TypeText, TypeTpl:
		return true
	default:
		return false
	}
}

// Position is one of the fixed page slots a box can occupy.
type Position string

const (
	PositionBottom        Position = "bottom"
	PositionContentBottom Position = "contentBottom"
	PositionContentTop    Position = "contentTop"
	PositionFooter        Position = "footer"
	PositionFooterBoxes   Position = "footerBoxes"
	PositionHeaderBoxes   Position = "headerBoxes"
	PositionHero          Position = "hero"
	PositionSidebarLeft   Position = "sidebarLeft"
	PositionSidebarRight  Position = "sidebarRight"
	PositionTop           Position = "top"
)

var positions = []Position{
	PositionBottom,
	PositionContentBottom,
	PositionContentTop,
	PositionFooter,
	PositionFooterBoxes,
	PositionHeaderBoxes,
	PositionHero,
	PositionSidebarLeft,
	PositionSidebarRight,
	PositionTop,
}

// Positions returns every valid position.
func Positions() []Position {
	return append([]Position(nil), positions...)
}

// Valid reports whether p is one of the fixed positions.
func (p Position) Valid() bool {
	for _, candidate := range positions {
		if p == candidate {
			return true
		}
	}
	return false
}

// Content is a localized content block.
type Content struct {
	Title string
	Body  string
}

// Box is a normalized box ready to be persisted. ShowOrder is left at zero
// by Normalize; the install engine assigns it inside the write transaction.
type Box struct {
	Identifier        string
	Name              i18n.Value
	Type              Type
	Position          Position
	ShowOrder         int
	VisibleEverywhere bool
	IsMultilingual    bool
	CSSClassName      string
	ShowHeader        bool
	OriginIsSystem    bool
	Controller        string
	// Titles holds per-language box titles, keyed by canonical language tag.
	Titles map[string]string
	// Contents holds content blocks keyed by canonical language tag; the empty
	// key is the language-neutral block of a non-multilingual box.
	Contents map[string]Content
	// VisibilityExceptions lists page identifiers on which the default
	// visibility is inverted.
	VisibilityExceptions []string
}
