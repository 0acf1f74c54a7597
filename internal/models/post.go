// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"inkwell/internal/slug"
)

// Post is a blog post. Posts start as drafts and become visible on the
// public site once PublishedStatus is set.
type Post struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Slug            string    `json:"slug"`
	PublishedStatus bool      `json:"publishedStatus"`
	ImageURL        *string   `json:"imageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// IsPublished returns true if the post is visible on the public site.
func (p *Post) IsPublished() bool {
	return p.PublishedStatus
}

// NewPost holds the caller-supplied fields for creating a post.
// Status is not part of it: every post is created as a draft.
type NewPost struct {
	Title    string
	Content  string
	ImageURL *string
}

// PostPatch is a partial update for a post. Nil fields are left untouched.
// A present but empty ImageURL removes the image.
type PostPatch struct {
	Title           *string `json:"title,omitempty"`
	Content         *string `json:"content,omitempty"`
	PublishedStatus *bool   `json:"publishedStatus,omitempty"`
	ImageURL        *string `json:"imageUrl,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.PublishedStatus == nil && p.ImageURL == nil
}

// Apply merges the patch into post, recomputing the slug when the title
// changes. UpdatedAt is the store's responsibility.
func (p PostPatch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
		post.Slug = slug.Generate(*p.Title)
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.PublishedStatus != nil {
		post.PublishedStatus = *p.PublishedStatus
	}
	if p.ImageURL != nil {
		post.ImageURL = Optional(*p.ImageURL)
	}
}

// PostFilter narrows post listings.
type PostFilter struct {
	PublishedOnly bool
}

// PostWithCategories is a post together with the categories assigned to it.
type PostWithCategories struct {
	Post
	Categories []Category `json:"categories"`
}

// Optional returns nil for a blank string and a pointer to s otherwise.
func Optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
