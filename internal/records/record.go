package records

import "github.com/goliatone/go-fluent/internal/locales"

// RecordLocale describes a node's presence in one locale. SourceLocale is set
// only when the node is absent in Locale and inherited from a fallback.
type RecordLocale struct {
	Locale          locales.Locale
	ExistsDraft     bool
	ExistsPublished bool
	ExistsArchived  bool
	SourceLocale    *locales.Locale
}

// ExistsInLocale reports whether the node has a draft or a published version
// in this locale.
func (r RecordLocale) ExistsInLocale() bool {
	return r.ExistsDraft || r.ExistsPublished
}

// IsInherited reports whether content is served from a fallback locale.
func (r RecordLocale) IsInherited() bool {
	return r.SourceLocale != nil
}

// IsDraftOnly reports whether the node has a draft that was never published.
func (r RecordLocale) IsDraftOnly() bool {
	return r.ExistsDraft && !r.ExistsPublished
}
