package links

import (
	"net/url"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-fluent/internal/locales"
	"github.com/goliatone/go-fluent/internal/state"
	"github.com/goliatone/go-fluent/pkg/interfaces"
)

// Catalogue is the slice of the locale registry used by the resolver.
type Catalogue interface {
	Locale(code string) (locales.Locale, error)
	Domains() []locales.Domain
	DomainFor(code string, domainMode bool) (locales.Domain, bool)
	IsDefault(code string, domainMode bool) bool
	IsOnlyLocale(code string, domainMode bool) bool
}

// Resolver computes locale-aware links for site tree nodes. It is safe for
// concurrent use; per-request state travels in the ExecutionContext.
type Resolver struct {
	catalogue Catalogue
	opts      Options
	logger    interfaces.Logger

	routes      *urlkit.RouteManager
	routeGroups map[string]string

	mu          sync.RWMutex
	domainLinks map[string]string
}

// NewResolver returns a resolver for catalogue. Domain base links are built
// through a route manager holding one group per registered domain.
func NewResolver(catalogue Catalogue, opts Options) *Resolver {
	opts = opts.normalized()
	r := &Resolver{
		catalogue:   catalogue,
		opts:        opts,
		logger:      opts.Logger,
		domainLinks: make(map[string]string),
	}
	r.routes, r.routeGroups = buildRouteManager(catalogue.Domains(), opts.Scheme)
	return r
}

// Options returns the normalised options.
func (r *Resolver) Options() Options {
	return r.opts
}

// ResolveRelative applies the locale prefix rules to base, the node's
// relative link before localisation.
func (r *Resolver) ResolveRelative(node interfaces.PageNode, base, code string, ec state.ExecutionContext) string {
	if node.HasParent() && r.opts.NestedURLs {
		return base
	}

	locale, ok := r.recordLocale(code, ec)
	if !ok {
		return base
	}

	if !node.Exists() {
		return JoinLinks(base, "?"+r.opts.QueryParam+"="+url.QueryEscape(locale.Code))
	}

	if r.opts.DisableDefaultPrefix && r.catalogue.IsDefault(locale.Code, ec.IsDomainMode) {
		return base
	}

	if r.catalogue.IsOnlyLocale(locale.Code, ec.IsDomainMode) {
		return base
	}

	return JoinLinks(locale.URLSegment, base)
}

// RewriteForDomain prefixes link with the locale's domain when that domain is
// not the one currently serving the request.
func (r *Resolver) RewriteForDomain(link, code string, ec state.ExecutionContext) string {
	locale, ok := r.recordLocale(code, ec)
	if !ok {
		return link
	}

	domain, ok := r.catalogue.DomainFor(locale.Code, ec.IsDomainMode)
	if !ok {
		return link
	}
	if strings.EqualFold(domain.Hostname, ec.ActiveHostname) {
		return link
	}

	rewritten := JoinLinks(r.DomainLink(domain.Hostname), link)
	r.logger.Debug("links: rewrote link for domain",
		"locale", locale.Code,
		"hostname", domain.Hostname,
		"active_hostname", ec.ActiveHostname,
	)
	return rewritten
}

// IsXDefaultCandidate reports whether node should be advertised as the
// x-default alternate for code.
func (r *Resolver) IsXDefaultCandidate(node interfaces.PageNode, code string, ec state.ExecutionContext) bool {
	if r.opts.DisableDefaultPrefix {
		return false
	}
	if locale, ok := r.recordLocale(code, ec); ok && r.catalogue.IsOnlyLocale(locale.Code, ec.IsDomainMode) {
		return false
	}
	return node.Segment() == r.opts.HomeSegment
}

// RelativeLink returns the localised link relative to the site base path.
// parentRelative is the parent's relative link in the same locale and is
// only used for nested children.
func (r *Resolver) RelativeLink(node interfaces.PageNode, parentRelative, code string, ec state.ExecutionContext) (string, error) {
	if err := r.checkLocale(code); err != nil {
		return "", err
	}
	return r.ResolveRelative(node, r.nodeBase(node, parentRelative), code, ec), nil
}

// ResolveLink returns the root-relative link for node, rewritten to an
// absolute URL when the locale lives on another domain.
func (r *Resolver) ResolveLink(node interfaces.PageNode, parentRelative, code string, ec state.ExecutionContext) (string, error) {
	relative, err := r.RelativeLink(node, parentRelative, code, ec)
	if err != nil {
		return "", err
	}
	link := JoinLinks(r.opts.BasePath, relative)
	return r.RewriteForDomain(link, code, ec), nil
}

// AbsoluteLink returns ResolveLink as an absolute URL. Links that are still
// relative are resolved against the site base URL, or the active hostname
// when no base URL is configured.
func (r *Resolver) AbsoluteLink(node interfaces.PageNode, parentRelative, code string, ec state.ExecutionContext) (string, error) {
	link, err := r.ResolveLink(node, parentRelative, code, ec)
	if err != nil {
		return "", err
	}
	if isAbsolute(link) {
		return link, nil
	}
	origin := r.origin(ec)
	if origin == "" {
		return link, nil
	}
	return JoinLinks(origin, link), nil
}

// AbsoluteBaseURL returns the absolute site base URL for ec.
func (r *Resolver) AbsoluteBaseURL(ec state.ExecutionContext) string {
	if r.opts.BaseURL != "" {
		return JoinLinks(r.opts.BaseURL, "/")
	}
	origin := r.origin(ec)
	if origin == "" {
		return r.opts.BasePath
	}
	return JoinLinks(origin, r.opts.BasePath)
}

func (r *Resolver) nodeBase(node interfaces.PageNode, parentRelative string) string {
	segment := node.Segment()
	switch {
	case node.HasParent() && r.opts.NestedURLs:
		return JoinLinks(parentRelative, segment, "/")
	case node.IsRoot || segment == "" || segment == r.opts.HomeSegment:
		return "/"
	default:
		return JoinLinks(segment, "/")
	}
}

// recordLocale returns the locale a link is resolved for: code when given,
// the context locale otherwise.
func (r *Resolver) recordLocale(code string, ec state.ExecutionContext) (locales.Locale, bool) {
	if strings.TrimSpace(code) == "" {
		code = ec.Locale
	}
	if strings.TrimSpace(code) == "" {
		return locales.Locale{}, false
	}
	locale, err := r.catalogue.Locale(code)
	if err != nil {
		r.logger.Debug("links: unknown locale, link left unlocalised", "locale", code)
		return locales.Locale{}, false
	}
	return locale, true
}

func (r *Resolver) checkLocale(code string) error {
	if strings.TrimSpace(code) == "" {
		return nil
	}
	_, err := r.catalogue.Locale(code)
	return err
}

func (r *Resolver) origin(ec state.ExecutionContext) string {
	if r.opts.BaseURL != "" {
		parsed, err := url.Parse(r.opts.BaseURL)
		if err == nil && parsed.Scheme != "" && parsed.Host != "" {
			return parsed.Scheme + "://" + parsed.Host
		}
	}
	if host := strings.TrimSpace(ec.ActiveHostname); host != "" {
		return r.opts.Scheme + "://" + host
	}
	return ""
}

func isAbsolute(link string) bool {
	return strings.Contains(link, "://")
}
