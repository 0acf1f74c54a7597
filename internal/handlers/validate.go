package handlers

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"inkwell/internal/slug"
)

// Validation limits for post, category and upload inputs.
const (
	minTitleLen       = 3
	maxTitleLen       = 256
	minContentLen     = 10
	maxContentLen     = 100_000
	minNameLen        = 3
	maxNameLen        = 256
	maxDescriptionLen = 1_000
	maxSlugLen        = 300
	maxImageURLLen    = 2_048
	maxFilenameLen    = 255
)

// validateTitle checks a post title.
func validateTitle(title string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n < minTitleLen {
		return "Title must be at least 3 characters."
	}
	if n > maxTitleLen {
		return "Title is too long (max 256 characters)."
	}
	if !slug.HasWord(title) {
		return "Title must contain at least one letter or digit."
	}
	return ""
}

// validateContent checks a post body.
func validateContent(content string) string {
	n := utf8.RuneCountInString(content)
	if n < minContentLen {
		return "Content must be at least 10 characters."
	}
	if n > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	return ""
}

// validateName checks a category name.
func validateName(name string) string {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < minNameLen {
		return "Name must be at least 3 characters."
	}
	if n > maxNameLen {
		return "Name is too long (max 256 characters)."
	}
	if !slug.HasWord(name) {
		return "Name must contain at least one letter or digit."
	}
	return ""
}

func validateDescription(desc string) string {
	if utf8.RuneCountInString(desc) > maxDescriptionLen {
		return "Description is too long (max 1,000 characters)."
	}
	return ""
}

func validateSlug(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Slug is required."
	}
	if utf8.RuneCountInString(s) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	return ""
}

// validateImageURL accepts an empty string (which removes the image) or an
// absolute http(s) URL.
func validateImageURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if len(raw) > maxImageURLLen {
		return "Image URL is too long (max 2,048 characters)."
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "Image URL must be an absolute http or https URL."
	}
	return ""
}

func validateID(field string, id int64) string {
	if id <= 0 {
		return fmt.Sprintf("%s must be a positive integer.", field)
	}
	return ""
}

func validateFilename(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Filename is required."
	}
	if utf8.RuneCountInString(name) > maxFilenameLen {
		return "Filename is too long (max 255 characters)."
	}
	return ""
}
