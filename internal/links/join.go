package links

import (
	"net/url"
	"strings"
)

// JoinLinks joins URL fragments with single slashes. Query strings found in
// any fragment are merged, later keys winning, and appended once at the end.
// A fragment identifier is kept from the last part carrying one. Empty parts
// are skipped and the "://" of an absolute URL is preserved.
func JoinLinks(parts ...string) string {
	var (
		result   string
		query    = url.Values{}
		fragment string
	)

	for _, part := range parts {
		if part == "" {
			continue
		}
		if idx := strings.Index(part, "#"); idx >= 0 {
			fragment = part[idx+1:]
			part = part[:idx]
		}
		if idx := strings.Index(part, "?"); idx >= 0 {
			if values, err := url.ParseQuery(part[idx+1:]); err == nil {
				for key, value := range values {
					query[key] = value
				}
			}
			part = part[:idx]
		}
		if part == "" {
			continue
		}

		switch {
		case result == "":
			result = part
		case strings.HasSuffix(result, "/") && strings.HasPrefix(part, "/"):
			result += part[1:]
		case strings.HasSuffix(result, "/") || strings.HasPrefix(part, "/"):
			result += part
		default:
			result += "/" + part
		}
	}

	result = collapseSlashes(result)
	if len(query) > 0 {
		result += "?" + query.Encode()
	}
	if fragment != "" {
		result += "#" + fragment
	}
	return result
}

func collapseSlashes(link string) string {
	prefix := ""
	if idx := strings.Index(link, "://"); idx >= 0 {
		prefix, link = link[:idx+3], link[idx+3:]
	}
	for strings.Contains(link, "//") {
		link = strings.ReplaceAll(link, "//", "/")
	}
	return prefix + link
}
