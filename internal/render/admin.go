// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"strconv"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
)

// PostForm is the state of the post editor. ID is zero for a new post.
type PostForm struct {
	ID          int64
	Title       string
	Content     string
	ImageURL    string
	Published   bool
	CategoryIDs map[int64]bool
	Error       string
	CSRFToken   string
	Uploads     bool // object storage is configured
}

// CategoryForm is the state of the category editor. ID is zero for a new
// category.
type CategoryForm struct {
	ID          int64
	Name        string
	Description string
	Error       string
	CSRFToken   string
}

func (rn *Renderer) adminNavbar(section string) g.Node {
	link := func(href, label, name string) g.Node {
		return A(Href(href), g.If(section == name, Class("active")), g.Text(label))
	}
	return Nav(Class("nav"),
		Div(Class("brand"), A(Href("/admin/posts"), g.Text(rn.siteName+" admin"))),
		Div(Class("nav-links"),
			link("/admin/posts", "Posts", "posts"),
			link("/admin/categories", "Categories", "categories"),
			A(Href("/"), g.Text("View site")),
		),
	)
}

// AdminPosts lists every post, drafts included, with its status and actions.
func AdminPosts(posts []models.PostWithCategories, csrfToken string) g.Node {
	rows := make([]g.Node, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		rows = append(rows, Tr(
			Td(A(Href(postEditPath(p.ID)), g.Text(p.Title))),
			Td(statusBadge(&p.Post)),
			Td(tags(p.Categories)),
			Td(Class("meta"), g.Text(p.CreatedAt.Format(dateLayout))),
			Td(Class("actions"),
				g.If(p.IsPublished(), A(Href("/post/"+p.Slug), g.Text("View"))),
				deleteButton("/admin/posts/"+itoa(p.ID)+"/delete", csrfToken),
			),
		))
	}
	return Section(
		Div(Class("toolbar"),
			H1(g.Text("Posts")),
			A(Class("button"), Href("/admin/posts/new"), g.Text("New post")),
		),
		g.If(len(posts) == 0, P(Class("meta"), g.Text("No posts yet."))),
		g.If(len(posts) > 0, Table(Class("admin-table"),
			THead(Tr(Th(g.Text("Title")), Th(g.Text("Status")), Th(g.Text("Categories")), Th(g.Text("Created")), Th())),
			TBody(g.Group(rows)),
		)),
	)
}

// AdminPostForm is the new and edit post page.
func AdminPostForm(form PostForm, categories []models.Category) g.Node {
	heading, action := "New post", "/admin/posts"
	if form.ID != 0 {
		heading, action = "Edit post", "/admin/posts/"+itoa(form.ID)
	}

	boxes := make([]g.Node, 0, len(categories))
	for _, c := range categories {
		id := "category-" + itoa(c.ID)
		boxes = append(boxes, Label(For(id), Class("checkbox"),
			Input(Type("checkbox"), ID(id), Name("category_ids"), Value(itoa(c.ID)), g.If(form.CategoryIDs[c.ID], Checked())),
			g.Text(" "+c.Name),
		))
	}

	return Section(
		H1(g.Text(heading)),
		formError(form.Error),
		Form(Method("post"), Action(action), Class("admin-form"),
			Input(Type("hidden"), Name(middleware.CSRFFormField), Value(form.CSRFToken)),
			Label(For("title"), g.Text("Title")),
			Input(Type("text"), ID("title"), Name("title"), Value(form.Title), Required()),
			Label(For("content"), g.Text("Content (Markdown)")),
			Textarea(ID("content"), Name("content"), g.Attr("rows", "16"), Required(), g.Text(form.Content)),
			Label(For("image_url"), g.Text("Image URL")),
			Input(Type("url"), ID("image_url"), Name("image_url"), Value(form.ImageURL), Placeholder("https://")),
			g.If(form.Uploads, Div(Class("upload"),
				Input(Type("file"), ID("image_file"), Accept("image/*"), Data("target", "image_url")),
				Small(Class("meta"), g.Text("Uploading fills in the image URL.")),
			)),
			FieldSet(
				Legend(g.Text("Categories")),
				g.If(len(categories) == 0, P(Class("meta"), A(Href("/admin/categories/new"), g.Text("Create a category first.")))),
				g.Group(boxes),
			),
			Label(For("published"), Class("checkbox"),
				Input(Type("checkbox"), ID("published"), Name("published"), Value("on"), g.If(form.Published, Checked())),
				g.Text(" Published"),
			),
			Div(Class("form-actions"),
				Button(Type("submit"), g.Text("Save")),
				A(Href("/admin/posts"), g.Text("Cancel")),
			),
		),
	)
}

// AdminCategories lists every category with its actions.
func AdminCategories(categories []models.Category, csrfToken string) g.Node {
	rows := make([]g.Node, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, Tr(
			Td(A(Href("/admin/categories/"+itoa(c.ID)+"/edit"), g.Text(c.Name))),
			Td(Class("meta"), g.Text(c.Slug)),
			Td(g.Text(deref(c.Description))),
			Td(Class("actions"), deleteButton("/admin/categories/"+itoa(c.ID)+"/delete", csrfToken)),
		))
	}
	return Section(
		Div(Class("toolbar"),
			H1(g.Text("Categories")),
			A(Class("button"), Href("/admin/categories/new"), g.Text("New category")),
		),
		g.If(len(categories) == 0, P(Class("meta"), g.Text("No categories yet."))),
		g.If(len(categories) > 0, Table(Class("admin-table"),
			THead(Tr(Th(g.Text("Name")), Th(g.Text("Slug")), Th(g.Text("Description")), Th())),
			TBody(g.Group(rows)),
		)),
	)
}

// AdminCategoryForm is the new and edit category page.
func AdminCategoryForm(form CategoryForm) g.Node {
	heading, action := "New category", "/admin/categories"
	if form.ID != 0 {
		heading, action = "Edit category", "/admin/categories/"+itoa(form.ID)
	}
	return Section(
		H1(g.Text(heading)),
		formError(form.Error),
		Form(Method("post"), Action(action), Class("admin-form"),
			Input(Type("hidden"), Name(middleware.CSRFFormField), Value(form.CSRFToken)),
			Label(For("name"), g.Text("Name")),
			Input(Type("text"), ID("name"), Name("name"), Value(form.Name), Required()),
			Label(For("description"), g.Text("Description")),
			Textarea(ID("description"), Name("description"), g.Attr("rows", "4"), g.Text(form.Description)),
			Div(Class("form-actions"),
				Button(Type("submit"), g.Text("Save")),
				A(Href("/admin/categories"), g.Text("Cancel")),
			),
		),
	)
}

func statusBadge(p *models.Post) g.Node {
	if p.IsPublished() {
		return Span(Class("badge badge-published"), g.Text("Published"))
	}
	return Span(Class("badge badge-draft"), g.Text("Draft"))
}

func deleteButton(action, csrfToken string) g.Node {
	return Form(Method("post"), Action(action), Class("inline"),
		Input(Type("hidden"), Name(middleware.CSRFFormField), Value(csrfToken)),
		Button(Type("submit"), Class("danger"), g.Text("Delete")),
	)
}

func formError(msg string) g.Node {
	return g.If(msg != "", P(Class("error"), Role("alert"), g.Text(msg)))
}

func postEditPath(id int64) string {
	return "/admin/posts/" + itoa(id) + "/edit"
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
