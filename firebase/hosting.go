package firebase

import (
	"fmt"

	"github.com/zero-day-ai/firecheck/schema"
)

// sourceSelector is one way of matching request paths. Hosting rules carry
// exactly one of them.
type sourceSelector struct {
	name string
	desc string
}

var sourceSelectors = []sourceSelector{
	{name: "glob", desc: "Glob matched against the request path."},
	{name: "source", desc: "Glob matched against the original request path, before rewrites."},
	{name: "regex", desc: "RE2 regular expression matched against the request path."},
}

func (s sourceSelector) field() schema.Field {
	return schema.Required(s.name, schema.String()).WithDescription(s.desc)
}

// rewriteTarget is one way of serving a rewritten request. Rewrites carry
// exactly one of them.
type rewriteTarget struct {
	name  string
	field func() schema.Field
}

var rewriteTargets = []rewriteTarget{
	{name: "destination", field: func() schema.Field {
		return schema.Required("destination", schema.String()).
			WithDescription("Local file served for the request.")
	}},
	{name: "function", field: func() schema.Field {
		return schema.Required("function", schema.String()).
			WithDescription("HTTP Cloud Function handling the request.")
	}},
	{name: "run", field: func() schema.Field {
		run := schema.MustObject([]schema.Field{
			schema.Required("serviceId", schema.String()).
				WithDescription("Cloud Run service name."),
			schema.Optional("region", schema.String()).
				WithDescription("Cloud Run region. Defaults to us-central1."),
		}, schema.Title("CloudRunTarget"))
		return schema.Required("run", run).
			WithDescription("Cloud Run service handling the request.")
	}},
	{name: "dynamicLinks", field: func() schema.Field {
		return schema.Required("dynamicLinks", schema.Bool()).
			WithDescription("Serve Dynamic Links for the matched paths.")
	}},
}

// redirectNode accepts a redirect rule: one source selector, a destination
// and an optional status code.
func redirectNode() schema.Node {
	alts := make([]schema.Node, 0, len(sourceSelectors))
	for _, src := range sourceSelectors {
		alts = append(alts, schema.MustObject([]schema.Field{
			src.field(),
			schema.Required("destination", schema.String()).
				WithDescription("Value of the Location header."),
			schema.Optional("type", schema.Number()).
				WithDescription("Redirect status code, 301 or 302."),
		}, schema.Title(fmt.Sprintf("Redirect(%s)", src.name))))
	}
	return schema.MustUnion(alts...)
}

// rewriteNode accepts a rewrite rule: one source selector combined with one
// rewrite target, every pairing as its own closed alternative.
func rewriteNode() schema.Node {
	alts := make([]schema.Node, 0, len(sourceSelectors)*len(rewriteTargets))
	for _, src := range sourceSelectors {
		for _, dst := range rewriteTargets {
			alts = append(alts, schema.MustObject([]schema.Field{
				src.field(),
				dst.field(),
			}, schema.Title(fmt.Sprintf("Rewrite(%s, %s)", src.name, dst.name))))
		}
	}
	return schema.MustUnion(alts...)
}

// headerRuleNode accepts a custom header rule: one source selector and the
// headers applied to matching responses.
func headerRuleNode() schema.Node {
	header := schema.MustObject([]schema.Field{
		schema.Required("key", schema.String()).WithDescription("Header name."),
		schema.Required("value", schema.String()).WithDescription("Header value."),
	}, schema.Title("Header"))

	alts := make([]schema.Node, 0, len(sourceSelectors))
	for _, src := range sourceSelectors {
		alts = append(alts, schema.MustObject([]schema.Field{
			src.field(),
			schema.Required("headers", schema.MustArrayOf(header)),
		}, schema.Title(fmt.Sprintf("HeaderRule(%s)", src.name))))
	}
	return schema.MustUnion(alts...)
}

// hostingBase returns the fields shared by single-site and multi-site hosting.
func hostingBase() []schema.Field {
	i18n := schema.MustObject([]schema.Field{
		schema.Required("root", schema.String()).
			WithDescription("Directory holding the localized content."),
	}, schema.Title("I18n"))

	return []schema.Field{
		schema.Optional("public", schema.String()).
			WithDescription("Directory uploaded to Hosting."),
		schema.Optional("ignore", stringList()).
			WithDescription("Files to leave out of the upload."),
		schema.Optional("appAssociation", schema.String()).
			WithDescription("AUTO (the default) serves generated assetlinks.json and apple-app-site-association files."),
		schema.Optional("cleanUrls", schema.Bool()).
			WithDescription("Drop .html extensions from uploaded file URLs."),
		schema.Optional("trailingSlash", schema.Bool()).
			WithDescription("Whether URLs carry trailing slashes."),
		schema.Optional("redirects", schema.MustArrayOf(redirectNode())).
			WithDescription("HTTP redirect rules."),
		schema.Optional("rewrites", schema.MustArrayOf(rewriteNode())).
			WithDescription("Rewrite rules."),
		schema.Optional("headers", schema.MustArrayOf(headerRuleNode())).
			WithDescription("Custom response header rules."),
		schema.Optional("i18n", i18n).
			WithDescription("Internationalization rewrites."),
	}
}

func hostingNode() schema.Node {
	addressing := []schema.Field{
		schema.Optional("site", schema.String()).
			WithDescription("Hosting site name."),
		schema.Optional("target", schema.String()).
			WithDescription("Deploy target name, see `firebase target:apply`."),
	}

	single := schema.MustObject(
		deployable(append(hostingBase(), addressing...)...),
		schema.Title("HostingSingle"),
	)

	target := schema.MustObject(
		deployable(append(hostingBase(), addressing...)...),
		schema.RequireAtLeastOne("site", "target"),
		schema.Title("HostingTarget"),
	)

	return schema.MustUnion(single, schema.MustArrayOf(target))
}
