package middleware

import "strings"

// routeTemplates map concrete paths onto bounded metric labels. ":name" segments
// are replaced, "*" keeps the concrete segment, anything else must match. First
// match wins, so longer templates come first.
var routeTemplates = [][]string{
	{"carousel", "sessions", ":id", "entries", ":entryId"},
	{"carousel", "sessions", ":id"},
	{"admin", "catalog", "*", ":id"},
}

func normalizePath(path string) string {
	if path == "" {
		return ""
	}
	path, _, _ = strings.Cut(path, "?")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	for _, tmpl := range routeTemplates {
		if applyTemplate(parts, tmpl) {
			break
		}
	}
	return "/" + strings.Join(parts, "/")
}

func applyTemplate(parts, tmpl []string) bool {
	if len(parts) < len(tmpl) {
		return false
	}
	for i, seg := range tmpl {
		if seg != "*" && !strings.HasPrefix(seg, ":") && parts[i] != seg {
			return false
		}
	}
	for i, seg := range tmpl {
		if strings.HasPrefix(seg, ":") {
			parts[i] = seg
		}
	}
	return true
}
