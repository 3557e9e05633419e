package forms

import (
	"fmt"
	"sort"
	"strings"
)

// Errors maps dotted/indexed field paths (for example "items[2].quantity")
// to the messages raised for that path. An empty map means the submission
// validated cleanly.
type Errors map[string][]string

// Add appends a message for a path, skipping blank messages.
func (e Errors) Add(path, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	e[path] = append(e[path], message)
}

// Has reports whether any message exists for the path.
func (e Errors) Has(path string) bool {
	return len(e[path]) > 0
}

// First returns the first message for a path, or "".
func (e Errors) First(path string) string {
	if msgs := e[path]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Paths returns the error paths in sorted order for deterministic output.
func (e Errors) Paths() []string {
	paths := make([]string, 0, len(e))
	for path := range e {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// ItemPath builds the canonical path for one column of one line item.
func ItemPath(index int, name string) string {
	return fmt.Sprintf("items[%d].%s", index, name)
}
