// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from post titles and
// category names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// whitespace matches runs of ASCII and Unicode space characters.
	whitespace = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	// nonWord matches anything that isn't a word character or a hyphen.
	nonWord = regexp.MustCompile(`[^\w-]+`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello World" → "hello-world", "Go: A Guide" → "go-a-guide".
//
// Surrounding whitespace is not trimmed: " Hello" becomes "-hello". Callers
// trim names and titles before storing them. Uniqueness is not guaranteed;
// two inputs may produce the same slug.
func Generate(s string) string {
	result := strings.ToLower(s)
	result = whitespace.ReplaceAllString(result, "-")
	result = nonWord.ReplaceAllString(result, "")
	return result
}

// HasWord reports whether s produces a slug with at least one word
// character. Inputs made only of punctuation or whitespace do not.
func HasWord(s string) bool {
	return strings.Trim(Generate(s), "-") != ""
}
