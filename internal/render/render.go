// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render builds the public blog pages with gomponents. It supports
// full-page and HTMX partial rendering, automatically detecting the request
// type via the HX-Request header.
package render

import (
	"log/slog"
	"net/http"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"inkwell/internal/models"
)

// PageData holds what the layout needs around a page body.
type PageData struct {
	Title      string            // Page title for <title> tag
	Categories []models.Category // Navigation entries
	Active     string            // Slug of the highlighted category, if any
	Admin      string            // Admin section ("posts" or "categories"); empty on the public site
}

// Renderer writes complete pages to HTTP responses.
type Renderer struct {
	siteName string
}

// New creates a Renderer for a site with the given display name.
func New(siteName string) *Renderer {
	return &Renderer{siteName: siteName}
}

// SiteName returns the configured site name.
func (rn *Renderer) SiteName() string {
	return rn.siteName
}

// Page renders body inside the site layout with the given status code.
// For HTMX requests only the body is sent.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, data PageData, body g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	node := body
	if !isHTMX(r) {
		node = rn.layout(data, body)
	}
	if err := node.Render(w); err != nil {
		slog.Error("render page failed", "path", r.URL.Path, "error", err)
	}
}

// Paths where the router serves the embedded assets.
const (
	StylesheetPath  = "/static/css/site.css"
	AdminScriptPath = "/static/js/admin-upload.js"
)

func (rn *Renderer) layout(data PageData, body g.Node) g.Node {
	title := rn.siteName
	if data.Title != "" {
		title = data.Title + " | " + rn.siteName
	}
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text(title)),
				Link(Rel("stylesheet"), Href(StylesheetPath)),
				g.If(data.Admin != "", Script(Src(AdminScriptPath), Defer())),
			),
			Body(
				Div(Class("container"),
					g.If(data.Admin == "", rn.navbar(data)),
					g.If(data.Admin != "", rn.adminNavbar(data.Admin)),
					Main(ID("content"), body),
				),
				Footer(Class("footer"),
					P(Small(g.Textf("%s, a blog about everything.", rn.siteName))),
				),
			),
		),
	)
}

func (rn *Renderer) navbar(data PageData) g.Node {
	links := make([]g.Node, 0, len(data.Categories))
	for _, c := range data.Categories {
		links = append(links, A(
			Href("/category/"+c.Slug),
			g.If(c.Slug == data.Active, Class("active")),
			g.Text(c.Name),
		))
	}
	return Nav(Class("nav"),
		Div(Class("brand"), A(Href("/"), g.Text(rn.siteName))),
		Div(Class("nav-links"), g.Group(links)),
	)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
