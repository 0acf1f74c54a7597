// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "inkwell/internal/slug"

// Category groups posts. Name and Slug are both unique; the slug is always
// derived from the name.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Slug        string  `json:"slug"`
}

// CategoryPatch is a partial update for a category. Nil fields are left
// untouched. A present but empty Description clears it.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}

// Apply merges the patch into c, recomputing the slug when the name changes.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
		c.Slug = slug.Generate(*p.Name)
	}
	if p.Description != nil {
		c.Description = Optional(*p.Description)
	}
}

// PostCategory is a single row of the post/category association.
type PostCategory struct {
	PostID     int64 `json:"postId"`
	CategoryID int64 `json:"categoryId"`
}
