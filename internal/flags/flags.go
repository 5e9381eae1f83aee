package flags

import (
	"maps"
	"slices"

	"github.com/goliatone/go-fluent/internal/records"
	"github.com/goliatone/go-fluent/internal/state"
)

// Flag keys understood by the computer. Other keys pass through untouched.
const (
	Modified  = "modified"
	Archived  = "archived"
	NoSource  = "no-source"
	Invisible = "invisible"
)

// Descriptor is the label pair rendered for a flag.
type Descriptor struct {
	Text  string `json:"text"`
	Title string `json:"title"`
}

// Flags maps flag keys to their descriptors.
type Flags map[string]Descriptor

// Has reports whether key is present.
func (f Flags) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Clone returns a shallow copy; a nil receiver yields an empty map.
func (f Flags) Clone() Flags {
	out := make(Flags, len(f))
	maps.Copy(out, f)
	return out
}

// Names returns the flag keys in sorted order.
func (f Flags) Names() []string {
	return slices.Sorted(maps.Keys(f))
}

var defaultDescriptors = map[string]Descriptor{
	NoSource: {
		Text:  "No source",
		Title: "This page has no source content in this locale or its fallbacks",
	},
	Invisible: {
		Text:  "Invisible",
		Title: "This page is not visible in this locale",
	},
}

// Input carries the per-node facts the computer needs.
type Input struct {
	Record               records.RecordLocale
	HasAnyLocaleInstance bool
	Context              state.ExecutionContext
}

// Computer derives the status flags shown next to a node.
type Computer struct {
	descriptors map[string]Descriptor
}

// NewComputer returns a computer using the default English descriptors for
// flags it adds. overrides replaces descriptors by key.
func NewComputer(overrides map[string]Descriptor) *Computer {
	descriptors := maps.Clone(defaultDescriptors)
	maps.Copy(descriptors, overrides)
	return &Computer{descriptors: descriptors}
}

// Compute returns a new flag set derived from raw. raw is never mutated.
func (c *Computer) Compute(in Input, raw Flags) Flags {
	out := raw.Clone()
	if !in.Context.HasLocale() {
		return out
	}

	record := in.Record
	if !record.ExistsDraft {
		delete(out, Modified)
	}

	if in.HasAnyLocaleInstance {
		delete(out, Archived)
	}

	if !out.Has(Archived) && !record.IsInherited() && in.HasAnyLocaleInstance && !record.ExistsInLocale() {
		out[NoSource] = c.descriptor(NoSource)
	}

	if !record.ExistsInLocale() {
		out[Invisible] = c.descriptor(Invisible)
	}

	return out
}

func (c *Computer) descriptor(key string) Descriptor {
	if c == nil {
		return defaultDescriptors[key]
	}
	return c.descriptors[key]
}
