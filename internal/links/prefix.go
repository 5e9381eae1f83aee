package links

import (
	"github.com/goliatone/go-fluent/internal/state"
	"github.com/goliatone/go-fluent/pkg/interfaces"
)

// ParentLinkFunc returns the parent's relative link under the supplied
// context. It is only called for nested children.
type ParentLinkFunc func(ec state.ExecutionContext) (string, error)

// URLSegmentPrefix returns the absolute URL that precedes node's own segment,
// as shown next to the segment field in an editor. It is computed as the
// frontend would see it, with domain mode forced on.
func (r *Resolver) URLSegmentPrefix(stack *state.Stack, node interfaces.PageNode, parent ParentLinkFunc) (string, error) {
	overrides := state.Overrides{}.WithDomainMode(true).WithFrontend(true)
	return state.WithScope(stack, overrides, func(ec state.ExecutionContext) (string, error) {
		var relative string
		if node.HasParent() && r.opts.NestedURLs && parent != nil {
			link, err := parent(ec)
			if err != nil {
				return "", err
			}
			relative = link
		} else {
			relative = r.ResolveRelative(node, "/", "", ec)
		}

		base := r.AbsoluteBaseURL(ec)
		if domain, ok := r.catalogue.DomainFor(ec.Locale, true); ok {
			base = JoinLinks(r.DomainLink(domain.Hostname), r.opts.BasePath)
		}
		return JoinLinks(base, relative), nil
	})
}
