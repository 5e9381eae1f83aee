package links

import (
	"strings"

	"github.com/goliatone/go-fluent/internal/logging"
	"github.com/goliatone/go-fluent/pkg/interfaces"
)

const (
	defaultQueryParam  = "l"
	defaultHomeSegment = "home"
	defaultBasePath    = "/"
	defaultScheme      = "http"
)

// Options configures link resolution.
type Options struct {
	// DisableDefaultPrefix drops the locale segment for default locales.
	DisableDefaultPrefix bool
	// NestedURLs makes child links extend their parent's relative link.
	NestedURLs bool
	// QueryParam names the locale parameter used for unsaved nodes.
	QueryParam string
	// HomeSegment is the URL segment of the home node.
	HomeSegment string
	// BasePath is the site path prefix joined to every relative link.
	BasePath string
	// Scheme is used to build domain links.
	Scheme string
	// BaseURL is the absolute site base URL, e.g. http://example.com/.
	BaseURL string
	Logger  interfaces.Logger
}

// DefaultOptions returns the routing defaults.
func DefaultOptions() Options {
	return Options{
		NestedURLs:  true,
		QueryParam:  defaultQueryParam,
		HomeSegment: defaultHomeSegment,
		BasePath:    defaultBasePath,
		Scheme:      defaultScheme,
	}
}

func (o Options) normalized() Options {
	if strings.TrimSpace(o.QueryParam) == "" {
		o.QueryParam = defaultQueryParam
	}
	if strings.TrimSpace(o.HomeSegment) == "" {
		o.HomeSegment = defaultHomeSegment
	}
	o.HomeSegment = strings.Trim(strings.TrimSpace(o.HomeSegment), "/")
	o.BasePath = JoinLinks("/", strings.TrimSpace(o.BasePath), "/")
	o.Scheme = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(o.Scheme)), "://")
	if o.Scheme == "" {
		o.Scheme = defaultScheme
	}
	o.BaseURL = strings.TrimSpace(o.BaseURL)
	if o.Logger == nil {
		o.Logger = logging.NoOp()
	}
	return o
}
