package pages

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

// PublicURLResolver builds the public address of a page from its slug.
type PublicURLResolver interface {
	PageURL(slug string) (string, error)
}

const (
	publicGroup = "public"
	pageRoute   = "page"
)

// URLKitResolverOptions configures a go-urlkit backed resolver.
type URLKitResolverOptions struct {
	Manager   *urlkit.RouteManager
	Group     string
	Route     string
	SlugParam string
}

// URLKitResolver resolves page URLs through a go-urlkit route manager.
type URLKitResolver struct {
	manager   *urlkit.RouteManager
	group     string
	route     string
	slugParam string
}

// NewURLKitResolver constructs a resolver backed by go-urlkit.
func NewURLKitResolver(opts URLKitResolverOptions) *URLKitResolver {
	if opts.Group == "" {
		opts.Group = publicGroup
	}
	if opts.Route == "" {
		opts.Route = pageRoute
	}
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}
	return &URLKitResolver{
		manager:   opts.Manager,
		group:     strings.TrimSpace(opts.Group),
		route:     strings.TrimSpace(opts.Route),
		slugParam: strings.TrimSpace(opts.SlugParam),
	}
}

// NewPublicURLResolver registers a single "public" group with a "page" route
// at pagePath under baseURL.
func NewPublicURLResolver(baseURL, pagePath, slugParam string) *URLKitResolver {
	if slugParam == "" {
		slugParam = "slug"
	}
	if pagePath == "" {
		pagePath = "/:" + slugParam
	}
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    publicGroup,
				BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
				Paths: map[string]string{
					pageRoute: pagePath,
				},
			},
		},
	})
	return NewURLKitResolver(URLKitResolverOptions{Manager: manager, SlugParam: slugParam})
}

// PageURL builds the URL of the page published under slug.
func (r *URLKitResolver) PageURL(slug string) (string, error) {
	if r == nil || r.manager == nil {
		return "", ErrPublicURLDisabled
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", fmt.Errorf("%w: empty slug", ErrSlugInvalid)
	}

	group, err := lookupGroup(r.manager, r.group)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, r.route)
	if err != nil {
		return "", err
	}
	builder.WithParam(r.slugParam, slug)
	url, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("pages: build public url: %w", err)
	}
	return url, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pages: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	if group == nil {
		return nil, fmt.Errorf("pages: route group %q not found", name)
	}
	return group, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pages: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}
