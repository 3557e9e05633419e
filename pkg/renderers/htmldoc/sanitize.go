package htmldoc

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	logoPolicyOnce sync.Once
	logoPolicy     *bluemonday.Policy
)

// sanitizeLogoMarkup strips everything but plain images and static SVG from
// configured logo markup before it is injected into the document header.
func sanitizeLogoMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := strings.TrimSpace(logoSanitizer().Sanitize(trimmed))
	return cleaned
}

func logoSanitizer() *bluemonday.Policy {
	logoPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()

		policy.AllowElements("img")
		policy.AllowAttrs("src", "alt", "width", "height", "class").OnElements("img")
		policy.AllowURLSchemes("http", "https", "data")

		elements := []string{
			"svg", "g", "path", "circle", "rect", "line", "polyline", "polygon",
			"ellipse", "title", "desc", "defs", "use",
		}
		policy.AllowElements(elements...)
		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "stroke-linecap", "stroke-linejoin", "aria-hidden",
			"role", "focusable", "class",
		).OnElements("svg")
		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "fill", "stroke", "stroke-width", "class",
			).OnElements(el)
		}

		logoPolicy = policy
	})
	return logoPolicy
}
