package render

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"inkwell/internal/models"
)

const dateLayout = "January 2, 2006"

// Home lists every published post.
func Home(posts []models.PostWithCategories) g.Node {
	return Section(
		H1(g.Text("Latest posts")),
		postList(posts, "No posts have been published yet."),
	)
}

// CategoryPosts lists the published posts of one category.
func CategoryPosts(category *models.Category, posts []models.PostWithCategories) g.Node {
	return Section(
		H1(g.Text(category.Name)),
		g.If(category.Description != nil, P(Class("meta"), g.Text(deref(category.Description)))),
		postList(posts, "No posts in this category yet."),
	)
}

// PostDetail shows a single post. bodyHTML is the already rendered content.
func PostDetail(post *models.PostWithCategories, bodyHTML string) g.Node {
	return Article(Class("post"),
		H1(g.Text(post.Title)),
		P(Class("meta"), g.Text(post.CreatedAt.Format(dateLayout)), g.Text(" "), tags(post.Categories)),
		g.If(post.ImageURL != nil, Img(Src(deref(post.ImageURL)), Alt(post.Title))),
		Div(Class("content"), g.Raw(bodyHTML)),
	)
}

// NotFound is the body of the 404 page.
func NotFound() g.Node {
	return Section(
		H1(g.Text("Not found")),
		P(g.Text("The page you are looking for does not exist or is not published.")),
		P(A(Href("/"), g.Text("Back to all posts"))),
	)
}

// ServerError is the body of the 500 page.
func ServerError() g.Node {
	return Section(
		H1(g.Text("Something went wrong")),
		P(g.Text("Please try again in a moment.")),
	)
}

func postList(posts []models.PostWithCategories, empty string) g.Node {
	if len(posts) == 0 {
		return P(Class("meta"), g.Text(empty))
	}
	cards := make([]g.Node, 0, len(posts))
	for i := range posts {
		cards = append(cards, postCard(&posts[i]))
	}
	return Div(Class("posts"), g.Group(cards))
}

func postCard(p *models.PostWithCategories) g.Node {
	href := "/post/" + p.Slug
	return Article(Class("card"),
		g.If(p.ImageURL != nil, A(Href(href), Img(Src(deref(p.ImageURL)), Alt(p.Title)))),
		H2(A(Href(href), g.Text(p.Title))),
		P(Class("meta"), g.Text(p.CreatedAt.Format(dateLayout)), g.Text(" "), tags(p.Categories)),
	)
}

func tags(categories []models.Category) g.Node {
	nodes := make([]g.Node, 0, len(categories))
	for _, c := range categories {
		nodes = append(nodes, A(Class("tag"), Href("/category/"+c.Slug), g.Text(c.Name)))
	}
	return g.Group(nodes)
}

// deref safely dereferences a string pointer.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
