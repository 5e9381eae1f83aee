package flags

import (
	"github.com/goliatone/go-fluent/internal/records"
	"github.com/goliatone/go-fluent/internal/state"
)

// Message codes returned by StatusMessage.
const (
	MessageNotVisibleUntilPublished = "not-visible-until-published"
	MessageInherited                = "inherited"
	MessageNoContent                = "no-content"
	MessageDraftOnly                = "draft-only"
)

var messageTexts = map[string]string{
	MessageNotVisibleUntilPublished: "This page will not be visible in this locale until it has been published.",
	MessageInherited:                "Content for this page may be inherited from another locale. Copy it to this locale to make an independent version.",
	MessageNoContent:                "No content is available for this page. Localise it or configure a locale fallback.",
	MessageDraftOnly:                "A draft exists for this locale, but published content may still be inherited from another locale until this one is published.",
}

// Policy holds the publishing rules that shape messages and visibility.
type Policy struct {
	FrontendPublishRequired bool
	CMSLocalisationRequired bool
	StatusMessages          bool
}

// Message is a status banner for the editor. Text is the default English
// wording; callers translate by Code.
type Message struct {
	Code string
	Text string
}

// StatusMessage returns the banner for record, if any.
func StatusMessage(record records.RecordLocale, policy Policy) (Message, bool) {
	if !policy.StatusMessages || record.ExistsPublished {
		return Message{}, false
	}

	code := ""
	switch {
	case policy.FrontendPublishRequired:
		code = MessageNotVisibleUntilPublished
	case !record.ExistsDraft && record.IsInherited():
		code = MessageInherited
	case !record.ExistsDraft:
		code = MessageNoContent
	default:
		code = MessageDraftOnly
	}
	return Message{Code: code, Text: messageTexts[code]}, true
}

// RestoreAvailable reports whether a restore action may be offered: the node
// must exist or be archived in the record's locale.
func RestoreAvailable(record records.RecordLocale) bool {
	return record.ExistsInLocale() || record.ExistsArchived
}

// Visible reports whether the node may be shown in the current context.
func Visible(record records.RecordLocale, ctx state.ExecutionContext, policy Policy) bool {
	if ctx.IsFrontend {
		return !policy.FrontendPublishRequired || record.ExistsPublished
	}
	return !policy.CMSLocalisationRequired || record.ExistsDraft
}
