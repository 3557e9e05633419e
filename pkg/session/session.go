// Package session owns the mutable editing state of one acta form: raw
// header values, the line-item store, validation wiring, and the current
// preview. A session lives for the life of one page view; there is exactly
// one writer and no background work.
package session

import (
	"sync/atomic"
	"time"

	"github.com/modo-caracas/actagen/pkg/acta"
	"github.com/modo-caracas/actagen/pkg/forms"
	"github.com/modo-caracas/actagen/pkg/render"
)

// State names the session phases. Editing is initial; Previewing is entered
// on the first successful submission and persists until superseded.
type State string

const (
	StateEditing    State = "editing"
	StatePreviewing State = "previewing"
)

// Item is one line-item row as currently edited. ID is a stable identity
// assigned at append time and never reused, so removal by identity cannot
// corrupt the editing state of surviving rows.
type Item struct {
	ID           int64
	SerialNumber string
	Description  string
	Quantity     string
}

// Session is the form state machine for one kind.
type Session struct {
	spec      acta.Spec
	form      forms.Form
	validator *forms.Validator

	values map[string]string
	items  []Item
	nextID int64

	state  State
	errs   forms.Errors
	doc    *acta.Document
	visual *render.VisualDocument

	exporting atomic.Bool
}

// New seeds a session with today's date and a single placeholder line item,
// mirroring the defaults the form opens with.
func New(spec acta.Spec, form forms.Form) *Session {
	s := &Session{
		spec:      spec,
		form:      form,
		validator: forms.NewValidator(spec, form),
		values: map[string]string{
			"date": time.Now().Format("2006-01-02"),
		},
		state: StateEditing,
	}
	s.appendItem()
	return s
}

// Spec returns the kind specification the session was built for.
func (s *Session) Spec() acta.Spec { return s.spec }

// Form returns the form schema the session validates against.
func (s *Session) Form() forms.Form { return s.form }

// State reports the current phase.
func (s *Session) State() State { return s.state }

// Errors returns the field errors from the most recent submission, if any.
func (s *Session) Errors() forms.Errors { return s.errs }

// SetValue records a raw header value as typed.
func (s *Session) SetValue(name, value string) {
	s.values[name] = value
}

// Values returns a copy of the raw header values.
func (s *Session) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for name, value := range s.values {
		out[name] = value
	}
	return out
}

// Items returns a copy of the line-item store in order.
func (s *Session) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// AddItem appends a placeholder entry and returns it.
func (s *Session) AddItem() Item {
	return s.appendItem()
}

func (s *Session) appendItem() Item {
	s.nextID++
	item := Item{ID: s.nextID, Quantity: "1"}
	s.items = append(s.items, item)
	return item
}

// RemoveItem deletes the entry with the given identity. Removing the last
// remaining entry, or an unknown identity, is a no-op: the store never
// shrinks below one item. The return value reports whether a removal
// happened.
func (s *Session) RemoveItem(id int64) bool {
	if len(s.items) <= 1 {
		return false
	}
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// SetItemField updates one column of the identified entry. Unknown
// identities and field names are ignored.
func (s *Session) SetItemField(id int64, name, value string) {
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		switch name {
		case "serialNumber":
			s.items[i].SerialNumber = value
		case "description":
			s.items[i].Description = value
		case "quantity":
			s.items[i].Quantity = value
		}
		return
	}
}

// Submit validates the current raw state. On failure the session stays in
// Editing with errors attached and any prior preview untouched. On success
// the new document atomically supersedes the previous one and the session
// enters Previewing; the form remains editable throughout.
func (s *Session) Submit() (acta.Document, forms.Errors) {
	sub := forms.RawSubmission{
		Values: s.Values(),
		Items:  make([]map[string]string, 0, len(s.items)),
	}
	for _, item := range s.items {
		sub.Items = append(sub.Items, map[string]string{
			"serialNumber": item.SerialNumber,
			"description":  item.Description,
			"quantity":     item.Quantity,
		})
	}

	doc, errs := s.validator.Validate(sub)
	if len(errs) > 0 {
		s.errs = errs
		return acta.Document{}, errs
	}

	visual, err := render.BuildVisual(doc)
	if err != nil {
		errs = forms.Errors{}
		errs.Add("items", err.Error())
		s.errs = errs
		return acta.Document{}, errs
	}

	s.errs = nil
	s.doc = &doc
	s.visual = &visual
	s.state = StatePreviewing
	return doc, nil
}

// Document returns the current document value, if a submission succeeded.
func (s *Session) Document() (acta.Document, bool) {
	if s.doc == nil {
		return acta.Document{}, false
	}
	return *s.doc, true
}

// Visual returns the current visual document, if a submission succeeded.
func (s *Session) Visual() (render.VisualDocument, bool) {
	if s.visual == nil {
		return render.VisualDocument{}, false
	}
	return *s.visual, true
}

// RenderOptions snapshots the editing state for a form render.
func (s *Session) RenderOptions() render.Options {
	rows := make([]render.ItemRow, 0, len(s.items))
	for _, item := range s.items {
		rows = append(rows, render.ItemRow{
			ID:           item.ID,
			SerialNumber: item.SerialNumber,
			Description:  item.Description,
			Quantity:     item.Quantity,
		})
	}
	return render.Options{
		Values:     s.Values(),
		Items:      rows,
		Errors:     s.errs,
		Previewing: s.state == StatePreviewing,
	}
}
