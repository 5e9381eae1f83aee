package locales

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

type languageInfo struct {
	rfc1766 string
	code    string
	native  string
	title   string
}

// describe derives language metadata from a locale code such as en_NZ.
// Codes that do not parse as BCP 47 still produce a usable RFC 1766 form.
func describe(code string) languageInfo {
	hyphenated := strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	info := languageInfo{
		rfc1766: strings.ToLower(hyphenated),
		code:    strings.ToLower(strings.SplitN(hyphenated, "-", 2)[0]),
	}

	tag, err := language.Parse(hyphenated)
	if err != nil {
		return info
	}

	base, _ := tag.Base()
	if base.String() != "" {
		info.code = base.String()
	}
	info.native = display.Self.Name(base)
	info.title = display.English.Tags().Name(tag)
	return info
}

// normalizeCode builds the lookup key for a locale code so en-US, en_us and
// en_US resolve to the same entry.
func normalizeCode(code string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(code), "-", "_"))
}

func normalizeHost(hostname string) string {
	return strings.ToLower(strings.TrimSpace(hostname))
}
