package models

import "testing"

func TestCategoryPatchApply(t *testing.T) {
	t.Run("name recomputes slug", func(t *testing.T) {
		c := Category{ID: 1, Name: "Tech", Slug: "tech", Description: strPtr("gadgets")}
		CategoryPatch{Name: strPtr("Tech News")}.Apply(&c)
		if c.Name != "Tech News" || c.Slug != "tech-news" {
			t.Errorf("name/slug: got %q/%q", c.Name, c.Slug)
		}
		if c.Description == nil || *c.Description != "gadgets" {
			t.Errorf("description changed: %v", c.Description)
		}
	})

	t.Run("description only keeps slug", func(t *testing.T) {
		c := Category{ID: 1, Name: "Tech", Slug: "tech"}
		CategoryPatch{Description: strPtr("all about tech")}.Apply(&c)
		if c.Slug != "tech" {
			t.Errorf("slug: got %q, want tech", c.Slug)
		}
		if c.Description == nil || *c.Description != "all about tech" {
			t.Errorf("description: got %v", c.Description)
		}
	})

	t.Run("empty description clears", func(t *testing.T) {
		c := Category{ID: 1, Name: "Tech", Slug: "tech", Description: strPtr("x")}
		CategoryPatch{Description: strPtr("")}.Apply(&c)
		if c.Description != nil {
			t.Errorf("description: got %q, want nil", *c.Description)
		}
	})
}

func TestCategoryPatchIsEmpty(t *testing.T) {
	if !(CategoryPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	if (CategoryPatch{Name: strPtr("Go")}).IsEmpty() {
		t.Error("patch with a name is not empty")
	}
}
