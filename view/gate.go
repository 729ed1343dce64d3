package view

import "html/template"

// DefaultRestrictedMessage renders when a gate denies and no custom fallback
// was supplied.
const DefaultRestrictedMessage = `<p class="access-restricted">Access restricted.</p>`

// Gated maps a gate decision to markup: children when allowed, otherwise the
// fallback (or a default placeholder) when showFallback is set, otherwise
// nothing.
func Gated(allowed bool, children template.HTML, showFallback bool, fallback template.HTML) template.HTML {
	if allowed {
		return children
	}
	if !showFallback {
		return ""
	}
	if fallback != "" {
		return fallback
	}
	return template.HTML(DefaultRestrictedMessage)
}
