// Package manifest reads box definitions from a package XML document.
//
// A document holds an <import> section of <box> elements to install or
// update and an optional <delete> section naming boxes to remove:
//
//	<data>
//	  <import>
//	    <box identifier="com.example.box.stats">
//	      <name language="en">Statistics</name>
//	      <boxType>system</boxType>
//	      <controller>example\StatsBoxController</controller>
//	      <position>sidebarRight</position>
//	    </box>
//	  </import>
//	  <delete>
//	    <box identifier="com.example.box.old"/>
//	  </delete>
//	</data>
package manifest

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/louisbranch/boxsync/internal/platform/errors"
)

const (
	tagBox    = "box"
	tagImport = "import"
	tagDelete = "delete"

	attrIdentifier = "identifier"
	attrLanguage   = "language"
)

// Element is a generic XML element as it appears in a package document.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr
	Children []Element

	// nodes keeps character data and child elements in document order.
	nodes []node
}

// node is either a run of character data or the index of a child element.
type node struct {
	text  string
	child int
	isEl  bool
}

// UnmarshalXML decodes the element, its attributes and its mixed content.
func (e *Element) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	e.XMLName = start.Name
	e.Attrs = append(e.Attrs[:0], start.Attr...)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			e.nodes = append(e.nodes, node{text: string(t)})
		case xml.StartElement:
			var child Element
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			e.nodes = append(e.nodes, node{child: len(e.Children), isEl: true})
			e.Children = append(e.Children, child)
		case xml.EndElement:
			return nil
		}
	}
}

// Name returns the local tag name.
func (e Element) Name() string {
	return e.XMLName.Local
}

// Attr returns the value of the named attribute, or "" when absent.
func (e Element) Attr(name string) string {
	for _, attr := range e.Attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// Value returns the element's text content in document order, including the
// text of nested elements. Only the outer ends are trimmed.
func (e Element) Value() string {
	var b strings.Builder
	e.writeText(&b)
	return strings.TrimSpace(b.String())
}

func (e Element) writeText(b *strings.Builder) {
	for _, n := range e.nodes {
		if n.isEl {
			e.Children[n.child].writeText(b)
			continue
		}
		b.WriteString(n.text)
	}
}

// Item is one parsed <box> element.
type Item struct {
	Identifier string
	Attributes map[string]string
	Fields     Fields
}

// Document is a parsed package document.
type Document struct {
	Import []Item
	Delete []Item
}

// Parse decodes a package document. <box> elements directly under the root
// are treated as part of the import section.
func Parse(r io.Reader) (Document, error) {
	var root Element
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return Document{}, apperrors.Wrap(apperrors.CodeManifestMalformed, "decode box manifest", err)
	}

	var doc Document
	for _, section := range root.Children {
		switch section.Name() {
		case tagImport:
			for _, el := range section.Children {
				if el.Name() != tagBox {
					continue
				}
				item, err := ParseItem(el)
				if err != nil {
					return Document{}, err
				}
				doc.Import = append(doc.Import, item)
			}
		case tagDelete:
			for _, el := range section.Children {
				if el.Name() != tagBox {
					continue
				}
				item, err := parseDeleteItem(el)
				if err != nil {
					return Document{}, err
				}
				doc.Delete = append(doc.Delete, item)
			}
		case tagBox:
			item, err := ParseItem(section)
			if err != nil {
				return Document{}, err
			}
			doc.Import = append(doc.Import, item)
		}
	}
	return doc, nil
}

// ParseItem converts one <box> element into an Item, accumulating each child
// element according to its field kind.
func ParseItem(el Element) (Item, error) {
	item, err := itemHeader(el)
	if err != nil {
		return Item{}, err
	}
	item.Fields = newFields()

	for _, child := range el.Children {
		field := child.Name()
		switch KindOf(field) {
		case KindLocaleText:
			language := child.Attr(attrLanguage)
			if language == "" {
				return Item{}, apperrors.WithMetadata(
					apperrors.CodeManifestMissingLanguage,
					fmt.Sprintf("Missing required attribute 'language' for '%s' element (box '%s')", field, item.Identifier),
					map[string]string{"identifier": item.Identifier, "field": field},
				)
			}
			item.Fields.setText(field, language, child.Value())
		case KindLocaleContent:
			content, err := parseContent(child, item.Identifier)
			if err != nil {
				return Item{}, err
			}
			item.Fields.setContent(child.Attr(attrLanguage), content)
		case KindList:
			values := make([]string, 0, len(child.Children))
			for _, entry := range child.Children {
				values = append(values, entry.Value())
			}
			item.Fields.setList(field, values)
		default:
			item.Fields.setScalar(field, child.Value())
		}
	}
	return item, nil
}

func parseDeleteItem(el Element) (Item, error) {
	return itemHeader(el)
}

func itemHeader(el Element) (Item, error) {
	identifier := strings.TrimSpace(el.Attr(attrIdentifier))
	if identifier == "" {
		return Item{}, apperrors.New(
			apperrors.CodeManifestMissingID,
			"Missing required attribute 'identifier' for 'box' element",
		)
	}
	attributes := make(map[string]string, len(el.Attrs))
	for _, attr := range el.Attrs {
		attributes[attr.Name.Local] = attr.Value
	}
	return Item{Identifier: identifier, Attributes: attributes}, nil
}

func parseContent(el Element, identifier string) (Content, error) {
	children := map[string]string{}
	for _, child := range el.Children {
		children[child.Name()] = child.Value()
	}
	for _, required := range []string{FieldTitle, FieldContent} {
		if children[required] == "" {
			return Content{}, apperrors.WithMetadata(
				apperrors.CodeManifestEmptyChild,
				fmt.Sprintf("Expected non-empty child element '%s' for 'content' element (box '%s')", required, identifier),
				map[string]string{"identifier": identifier, "field": required},
			)
		}
	}
	return Content{Title: children[FieldTitle], Body: children[FieldContent]}, nil
}
