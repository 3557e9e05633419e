// Package acta defines the custody document kinds, the immutable document
// value produced by a successful form submission, and the declarative
// per-kind specification that parameterizes the rest of the engine.
package acta

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind identifies one of the supported acta variants.
type Kind string

const (
	// KindEntrega is the equipment assignment acta.
	KindEntrega Kind = "entrega"
	// KindSalida is the equipment exit acta.
	KindSalida Kind = "salida"
)

// ParseKind validates a raw kind string (typically a URL segment or flag).
func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindEntrega:
		return KindEntrega, nil
	case KindSalida:
		return KindSalida, nil
	default:
		return "", fmt.Errorf("acta: unknown kind %q", raw)
	}
}

// Header carries the validated header fields shared by both kinds. From and
// To are populated only for the salida kind.
type Header struct {
	Date       time.Time
	AssignedTo string
	Location   string
	IDNumber   string
	From       string
	To         string
}

// LineItem is one equipment entry within a document.
type LineItem struct {
	SerialNumber string
	Description  string
	Quantity     int
}

// Document is the immutable snapshot produced when validation succeeds. It
// is only constructed through NewDocument; the item sequence is copied on
// the way in and on the way out so callers cannot mutate it afterwards.
type Document struct {
	Kind   Kind
	Header Header
	items  []LineItem
}

var errNoItems = errors.New("acta: document requires at least one line item")

// NewDocument builds a document value. The items slice must contain at least
// one entry; insertion order is preserved exactly.
func NewDocument(kind Kind, header Header, items []LineItem) (Document, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return Document{}, err
	}
	if len(items) == 0 {
		return Document{}, errNoItems
	}
	copied := make([]LineItem, len(items))
	copy(copied, items)
	return Document{Kind: kind, Header: header, items: copied}, nil
}

// Items returns the line items in insertion order.
func (d Document) Items() []LineItem {
	out := make([]LineItem, len(d.items))
	copy(out, d.items)
	return out
}

// FormatDate renders a date the way the rendered acta displays it.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatFileDate renders a date the way export filenames encode it.
func FormatFileDate(t time.Time) string {
	return t.Format("02-01-2006")
}
