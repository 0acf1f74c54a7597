// Package seed loads sample blog content for development databases.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"inkwell/internal/blog"
	"inkwell/internal/models"
)

type samplePost struct {
	title      string
	content    string
	published  bool
	categories []string
}

var sampleCategories = []struct {
	name        string
	description string
}{
	{"Engineering", "Notes from building and running software."},
	{"Design", "Interfaces, typography and the craft around them."},
	{"Announcements", ""},
}

var samplePosts = []samplePost{
	{
		title: "Hello, Inkwell",
		content: "Welcome to **Inkwell**. This post was created by the development seed.\n\n" +
			"Posts are written in Markdown and can belong to any number of categories.",
		published:  true,
		categories: []string{"Announcements"},
	},
	{
		title: "Designing readable code samples",
		content: "Code blocks are highlighted on the server:\n\n" +
			"```go\nfunc main() {\n\tfmt.Println(\"hello\")\n}\n```\n",
		published:  true,
		categories: []string{"Engineering", "Design"},
	},
	{
		title:      "Drafts stay private",
		content:    "This post is a draft. It shows up in the admin listing but never on the public site.",
		published:  false,
		categories: []string{"Engineering"},
	},
}

// Run populates an empty blog with sample categories and posts. It is a
// no-op when any category or post already exists.
func Run(ctx context.Context, svc *blog.Service) error {
	categories, err := svc.Categories(ctx)
	if err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	posts, err := svc.AdminAll(ctx)
	if err != nil {
		return fmt.Errorf("seed check posts: %w", err)
	}
	if len(categories) > 0 || len(posts) > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	ids := make(map[string]int64, len(sampleCategories))
	for _, sc := range sampleCategories {
		c, err := svc.CreateCategory(ctx, sc.name, models.Optional(sc.description))
		if err != nil {
			return fmt.Errorf("seed category %q: %w", sc.name, err)
		}
		ids[sc.name] = c.ID
	}

	for _, sp := range samplePosts {
		p, err := svc.CreatePost(ctx, models.NewPost{Title: sp.title, Content: sp.content})
		if err != nil {
			return fmt.Errorf("seed post %q: %w", sp.title, err)
		}
		if sp.published {
			published := true
			if _, err := svc.UpdatePost(ctx, p.ID, models.PostPatch{PublishedStatus: &published}); err != nil {
				return fmt.Errorf("seed publish %q: %w", sp.title, err)
			}
		}
		categoryIDs := make([]int64, 0, len(sp.categories))
		for _, name := range sp.categories {
			categoryIDs = append(categoryIDs, ids[name])
		}
		if err := svc.AssignCategories(ctx, p.ID, categoryIDs); err != nil {
			return fmt.Errorf("seed categories for %q: %w", sp.title, err)
		}
	}

	slog.Info("database seeded with sample content",
		"categories", len(sampleCategories),
		"posts", len(samplePosts),
	)
	return nil
}
