// Package forms holds the declarative form schema consumed by the session
// and renderers, plus the validator that turns raw user input into an
// immutable acta document.
package forms

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeDate    FieldType = "date"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

// Validation rule kinds. The set is closed: these are the only constraints
// either acta schema declares.
const (
	RuleRequired  = "required"
	RuleMinLength = "minLength"
	RuleMin       = "min"
	RuleMinItems  = "minItems"
	RuleMinDate   = "minDate"
)

// ValidationRule is a single constraint applied to a field. Thresholds live
// in Params["value"]; Message carries the user-facing text surfaced when the
// rule fails.
type ValidationRule struct {
	Kind    string            `json:"kind"`
	Params  map[string]string `json:"params,omitempty"`
	Message string            `json:"message,omitempty"`
}

// Field models an individual input inside a form. Array fields describe
// their element shape through Items/Nested.
type Field struct {
	Name        string           `json:"name"`
	Type        FieldType        `json:"type"`
	Order       int              `json:"order,omitempty"`
	Label       string           `json:"label,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	Required    bool             `json:"required"`
	Default     string           `json:"default,omitempty"`
	Items       *Field           `json:"items,omitempty"`
	Nested      []Field          `json:"nested,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty"`
	// Messages carries field-level texts keyed by condition ("required",
	// "type") that do not belong to a specific rule.
	Messages map[string]string `json:"messages,omitempty"`
}

// Rule returns the first validation rule of the given kind, if present.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// Form is the schema for one acta kind as lowered from the OpenAPI source.
type Form struct {
	ID     string  `json:"id"`
	Title  string  `json:"title,omitempty"`
	Fields []Field `json:"fields"`
}

// Field looks up a top-level field by name.
func (f Form) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// ItemFields returns the element fields of the items array, or nil when the
// form declares no item collection.
func (f Form) ItemFields() []Field {
	field, ok := f.Field("items")
	if !ok || field.Items == nil {
		return nil
	}
	return field.Items.Nested
}
