package render

// ItemRow carries one line item's raw editing state into a form render. ID
// is the stable identity assigned by the session, independent of position.
type ItemRow struct {
	ID           int64
	SerialNumber string
	Description  string
	Quantity     string
}

// Options describe per-request data renderers use to customise output
// without touching the schema pipeline.
type Options struct {
	// Values pre-populates header controls keyed by field name.
	Values map[string]string
	// Items supplies the current line-item rows in store order.
	Items []ItemRow
	// Errors surfaces validation feedback keyed by field path
	// (e.g. "items[2].quantity").
	Errors map[string][]string
	// Previewing marks that a validated document exists, so the form render
	// can offer export and print actions.
	Previewing bool
	// Print requests the print variant of a visual render: interactive
	// chrome hidden, @page margin rules emitted.
	Print bool
}
