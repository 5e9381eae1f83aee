package fluent

import "strings"

// Linking modes reported by LocaleInformation.
const (
	LinkingModeCurrent = "current"
	LinkingModeLink    = "link"
)

// HrefLangXDefault is the hreflang value of the x-default alternate.
const HrefLangXDefault = "x-default"

// LocaleInfo is the per-locale data a locale switcher or hreflang block
// renders for one node.
type LocaleInfo struct {
	Code           string `json:"code"`
	RFC1766        string `json:"rfc1766"`
	HrefLang       string `json:"hreflang"`
	Title          string `json:"title"`
	LanguageNative string `json:"language_native"`
	Language       string `json:"language"`
	URLSegment     string `json:"url_segment"`
	Link           string `json:"link"`
	AbsoluteLink   string `json:"absolute_link"`
	LinkingMode    string `json:"linking_mode"`
	IsDefault      bool   `json:"is_default"`
	IsXDefault     bool   `json:"is_x_default"`
}

// Alternate is one hreflang alternate of a node.
type Alternate struct {
	HrefLang string `json:"hreflang"`
	Href     string `json:"href"`
}

// ParentLinks returns the parent's relative link in code. It is only
// consulted for nested children; nil means the node is treated as top level.
type ParentLinks func(code string) (string, error)

// ResolveLink returns the link of node in code, or in the stack's current
// locale when code is empty. Links to locales served by another domain are
// absolute.
func (m *Module) ResolveLink(stack *Stack, node PageNode, parentRelative, code string) (string, error) {
	return m.snapshot().links.ResolveLink(node, parentRelative, code, stack.Current())
}

// RelativeLink returns the localised link relative to the site base path.
func (m *Module) RelativeLink(stack *Stack, node PageNode, parentRelative, code string) (string, error) {
	return m.snapshot().links.RelativeLink(node, parentRelative, code, stack.Current())
}

// AbsoluteLink returns ResolveLink as an absolute URL.
func (m *Module) AbsoluteLink(stack *Stack, node PageNode, parentRelative, code string) (string, error) {
	return m.snapshot().links.AbsoluteLink(node, parentRelative, code, stack.Current())
}

// AbsoluteBaseURL returns the absolute site root for the stack's context.
func (m *Module) AbsoluteBaseURL(stack *Stack) string {
	return m.snapshot().links.AbsoluteBaseURL(stack.Current())
}

// URLSegmentPrefix returns the absolute URL shown before node's own segment
// in an editor.
func (m *Module) URLSegmentPrefix(stack *Stack, node PageNode, parent ParentLinkFunc) (string, error) {
	return m.snapshot().links.URLSegmentPrefix(stack, node, parent)
}

// LocaleInformation describes node in code, or in the stack's current locale
// when code is empty.
func (m *Module) LocaleInformation(stack *Stack, node PageNode, parentRelative, code string) (LocaleInfo, error) {
	snap := m.snapshot()
	ec := stack.Current()

	code = localeOrCurrent(code, ec)
	if code == "" {
		code = snap.registry.DefaultLocale().Code
	}
	locale, err := snap.registry.Locale(code)
	if err != nil {
		return LocaleInfo{}, err
	}

	link, err := snap.links.ResolveLink(node, parentRelative, locale.Code, ec)
	if err != nil {
		return LocaleInfo{}, err
	}
	absolute, err := snap.links.AbsoluteLink(node, parentRelative, locale.Code, ec)
	if err != nil {
		return LocaleInfo{}, err
	}

	mode := LinkingModeLink
	if current, err := snap.registry.Locale(ec.Locale); err == nil && current.Code == locale.Code {
		mode = LinkingModeCurrent
	}

	return LocaleInfo{
		Code:           locale.Code,
		RFC1766:        locale.RFC1766,
		HrefLang:       locale.HrefLang(),
		Title:          locale.Title,
		LanguageNative: locale.LanguageNative,
		Language:       locale.LanguageCode,
		URLSegment:     locale.URLSegment,
		Link:           link,
		AbsoluteLink:   absolute,
		LinkingMode:    mode,
		IsDefault:      snap.registry.IsDefault(locale.Code, ec.IsDomainMode),
		IsXDefault:     snap.links.IsXDefaultCandidate(node, locale.Code, ec),
	}, nil
}

// Locales describes node in every registered locale, in catalogue order.
func (m *Module) Locales(stack *Stack, node PageNode, parent ParentLinks) ([]LocaleInfo, error) {
	all := m.snapshot().registry.Locales()
	out := make([]LocaleInfo, 0, len(all))
	for _, locale := range all {
		parentRelative, err := parentLink(parent, locale.Code)
		if err != nil {
			return nil, err
		}
		info, err := m.LocaleInformation(stack, node, parentRelative, locale.Code)
		if err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, nil
}

// Alternates lists the hreflang alternates of node. An x-default entry
// pointing at the site root is appended when the current locale qualifies.
func (m *Module) Alternates(stack *Stack, node PageNode, parent ParentLinks) ([]Alternate, error) {
	infos, err := m.Locales(stack, node, parent)
	if err != nil {
		return nil, err
	}

	out := make([]Alternate, 0, len(infos)+1)
	for _, info := range infos {
		out = append(out, Alternate{HrefLang: info.HrefLang, Href: info.AbsoluteLink})
	}

	snap := m.snapshot()
	ec := stack.Current()
	current := localeOrCurrent("", ec)
	if current == "" {
		current = snap.registry.DefaultLocale().Code
	}
	if snap.links.IsXDefaultCandidate(node, current, ec) {
		out = append(out, Alternate{HrefLang: HrefLangXDefault, Href: snap.links.AbsoluteBaseURL(ec)})
	}
	return out, nil
}

func parentLink(parent ParentLinks, code string) (string, error) {
	if parent == nil {
		return "", nil
	}
	link, err := parent(code)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(link), nil
}
