package forms

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/modo-caracas/actagen/pkg/acta"
)

// dateWireFormat is the ISO format date inputs submit (HTML date controls,
// CLI prompts).
const dateWireFormat = "2006-01-02"

// RawSubmission carries user input exactly as typed: header values keyed by
// field name and one string map per line item.
type RawSubmission struct {
	Values map[string]string
	Items  []map[string]string
}

// Validator applies a form schema to raw submissions, producing either an
// immutable document or a full error mapping. Validation is all-or-nothing:
// any failing field blocks document creation.
type Validator struct {
	spec acta.Spec
	form Form
}

// NewValidator pairs a kind specification with its lowered form schema.
func NewValidator(spec acta.Spec, form Form) *Validator {
	return &Validator{spec: spec, form: form}
}

// Validate checks every field and every line item. On success the returned
// Errors map is empty and the document preserves item insertion order.
func (v *Validator) Validate(sub RawSubmission) (acta.Document, Errors) {
	errs := Errors{}
	header := acta.Header{}

	for _, field := range v.form.Fields {
		switch field.Type {
		case FieldTypeDate:
			if t, ok := v.validateDate(field, sub.Values[field.Name], errs); ok {
				setHeaderDate(&header, field.Name, t)
			}
		case FieldTypeString:
			raw := sub.Values[field.Name]
			v.validateString(field, field.Name, raw, errs)
			setHeaderString(&header, field.Name, raw)
		case FieldTypeArray:
			// Line items validate below against the element schema.
		}
	}

	items := v.validateItems(sub.Items, errs)

	if len(errs) > 0 {
		return acta.Document{}, errs
	}

	doc, err := acta.NewDocument(v.spec.Kind, header, items)
	if err != nil {
		errs.Add("items", itemsMessage(v.form))
		return acta.Document{}, errs
	}
	return doc, errs
}

func (v *Validator) validateDate(field Field, raw string, errs Errors) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		errs.Add(field.Name, fieldMessage(field, "required", "La fecha es requerida"))
		return time.Time{}, false
	}

	t, err := time.Parse(dateWireFormat, trimmed)
	if err != nil {
		errs.Add(field.Name, fieldMessage(field, "type", "La fecha no es válida"))
		return time.Time{}, false
	}

	if rule, ok := field.Rule(RuleMinDate); ok {
		min, perr := time.Parse(dateWireFormat, rule.Params["value"])
		if perr == nil && t.Before(min) {
			errs.Add(field.Name, ruleMessage(rule, "La fecha no puede ser anterior a "+rule.Params["value"]))
			return time.Time{}, false
		}
	}
	return t, true
}

func (v *Validator) validateString(field Field, path, raw string, errs Errors) bool {
	if rule, ok := field.Rule(RuleMinLength); ok {
		min, _ := strconv.Atoi(rule.Params["value"])
		if utf8.RuneCountInString(raw) < min {
			errs.Add(path, ruleMessage(rule, fmt.Sprintf("Debe tener al menos %d caracteres", min)))
			return false
		}
	}
	return true
}

func (v *Validator) validateInteger(field Field, path, raw string, errs Errors) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		errs.Add(path, fieldMessage(field, "type", "La cantidad debe ser un número"))
		return 0, false
	}
	if rule, ok := field.Rule(RuleMin); ok {
		min, _ := strconv.Atoi(rule.Params["value"])
		if n < min {
			errs.Add(path, ruleMessage(rule, fmt.Sprintf("Debe ser al menos %d", min)))
			return 0, false
		}
	}
	return n, true
}

func (v *Validator) validateItems(raw []map[string]string, errs Errors) []acta.LineItem {
	if len(raw) == 0 {
		errs.Add("items", itemsMessage(v.form))
		return nil
	}

	elementFields := v.form.ItemFields()
	items := make([]acta.LineItem, 0, len(raw))

	for i, entry := range raw {
		item := acta.LineItem{}
		for _, field := range elementFields {
			path := ItemPath(i, field.Name)
			value := entry[field.Name]
			switch field.Type {
			case FieldTypeInteger:
				if n, ok := v.validateInteger(field, path, value, errs); ok {
					setItemInt(&item, field.Name, n)
				}
			default:
				if v.validateString(field, path, value, errs) {
					setItemString(&item, field.Name, value)
				}
			}
		}
		items = append(items, item)
	}
	return items
}

func itemsMessage(form Form) string {
	if field, ok := form.Field("items"); ok {
		if rule, ok := field.Rule(RuleMinItems); ok && rule.Message != "" {
			return rule.Message
		}
	}
	return "Debe haber al menos un ítem"
}

func fieldMessage(field Field, key, fallback string) string {
	if msg, ok := field.Messages[key]; ok && msg != "" {
		return msg
	}
	return fallback
}

func ruleMessage(rule ValidationRule, fallback string) string {
	if rule.Message != "" {
		return rule.Message
	}
	return fallback
}

func setHeaderDate(h *acta.Header, name string, t time.Time) {
	if name == "date" {
		h.Date = t
	}
}

func setHeaderString(h *acta.Header, name, value string) {
	switch name {
	case "assignedTo":
		h.AssignedTo = value
	case "location":
		h.Location = value
	case "idNumber":
		h.IDNumber = value
	case "from":
		h.From = value
	case "to":
		h.To = value
	}
}

func setItemString(item *acta.LineItem, name, value string) {
	switch name {
	case "serialNumber":
		item.SerialNumber = value
	case "description":
		item.Description = value
	}
}

func setItemInt(item *acta.LineItem, name string, n int) {
	if name == "quantity" {
		item.Quantity = n
	}
}
