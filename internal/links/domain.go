package links

import (
	"fmt"
	"strconv"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-fluent/internal/locales"
)

const domainRoute = "root"

// DomainLink returns the base link of hostname, e.g. http://www.example.de/.
// Results are memoised for the lifetime of the resolver; a catalogue reload
// builds a new resolver.
func (r *Resolver) DomainLink(hostname string) string {
	r.mu.RLock()
	link, ok := r.domainLinks[hostname]
	r.mu.RUnlock()
	if ok {
		return link
	}

	link, err := r.buildDomainLink(hostname)
	if err != nil {
		r.logger.Warn("links: route manager could not build domain link", "hostname", hostname, "error", err)
		link = r.opts.Scheme + "://" + hostname
	}
	link = JoinLinks(link, "/")

	r.mu.Lock()
	r.domainLinks[hostname] = link
	r.mu.Unlock()
	return link
}

func (r *Resolver) buildDomainLink(hostname string) (string, error) {
	name, ok := r.routeGroups[hostname]
	if !ok {
		return "", fmt.Errorf("links: no route group for domain %q", hostname)
	}
	group, err := lookupGroup(r.routes, name)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, domainRoute)
	if err != nil {
		return "", err
	}
	return builder.Build()
}

func buildRouteManager(domains []locales.Domain, scheme string) (*urlkit.RouteManager, map[string]string) {
	groups := make(map[string]string, len(domains))
	if len(domains) == 0 {
		return nil, groups
	}

	configs := make([]urlkit.GroupConfig, 0, len(domains))
	for i, domain := range domains {
		name := "domain" + strconv.Itoa(i)
		groups[domain.Hostname] = name
		configs = append(configs, urlkit.GroupConfig{
			Name:    name,
			BaseURL: scheme + "://" + domain.Hostname,
			Paths: map[string]string{
				domainRoute: "/",
			},
		})
	}
	return urlkit.NewRouteManager(&urlkit.Config{Groups: configs}), groups
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("links: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("links: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	if group == nil {
		return nil, fmt.Errorf("links: route group %q not found", name)
	}
	return group, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			builder, err = nil, fmt.Errorf("links: urlkit builder panic: %v", rec)
		}
	}()
	return group.Builder(route), nil
}
