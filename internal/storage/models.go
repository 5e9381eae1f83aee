package storage

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LocalisedRecord is one versioned row of a page in a locale and stage.
type LocalisedRecord struct {
	bun.BaseModel `bun:"table:fluent_page_localisations,alias:fpl"`

	ID        uuid.UUID `bun:",pk,type:uuid"        json:"id"`
	PageID    uuid.UUID `bun:"page_id,type:uuid,notnull" json:"page_id"`
	Locale    string    `bun:"locale,notnull"       json:"locale"`
	Stage     string    `bun:"stage,notnull"        json:"stage"`
	Version   int       `bun:"version,notnull,default:1" json:"version"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// LocaleRecord persists a catalogue locale.
type LocaleRecord struct {
	bun.BaseModel `bun:"table:fluent_locales,alias:fl"`

	ID              uuid.UUID `bun:",pk,type:uuid"          json:"id"`
	Code            string    `bun:"code,notnull,unique"    json:"code"`
	Title           string    `bun:"title"                  json:"title,omitempty"`
	URLSegment      string    `bun:"url_segment"            json:"url_segment,omitempty"`
	LanguageCode    string    `bun:"language_code"          json:"language_code,omitempty"`
	LanguageNative  string    `bun:"language_native"        json:"language_native,omitempty"`
	Domain          string    `bun:"domain"                 json:"domain,omitempty"`
	IsDefault       bool      `bun:"is_default,notnull,default:false" json:"is_default"`
	IsGlobalDefault bool      `bun:"is_global_default,notnull,default:false" json:"is_global_default"`
	Fallbacks       string    `bun:"fallbacks"              json:"fallbacks,omitempty"`
	Position        int       `bun:"position,notnull,default:0" json:"position"`
}

// FallbackCodes splits the stored comma separated fallback chain.
func (r *LocaleRecord) FallbackCodes() []string {
	if r == nil || strings.TrimSpace(r.Fallbacks) == "" {
		return nil
	}
	parts := strings.Split(r.Fallbacks, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SetFallbackCodes stores codes as a comma separated chain.
func (r *LocaleRecord) SetFallbackCodes(codes []string) {
	r.Fallbacks = strings.Join(codes, ",")
}

// DomainRecord persists a catalogue domain.
type DomainRecord struct {
	bun.BaseModel `bun:"table:fluent_domains,alias:fd"`

	ID            uuid.UUID `bun:",pk,type:uuid"          json:"id"`
	Hostname      string    `bun:"hostname,notnull,unique" json:"hostname"`
	DefaultLocale string    `bun:"default_locale"         json:"default_locale,omitempty"`
	Position      int       `bun:"position,notnull,default:0" json:"position"`
}
