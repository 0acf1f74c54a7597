package slug

import (
	"strings"
	"testing"
	"unicode"
)

// TestGenerate exercises the slug generator with typical titles, punctuation,
// whitespace variants, and non-ASCII input.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal titles ---
		{name: "simple two words", input: "Hello World", want: "hello-world"},
		{name: "title with year", input: "Hello World 2026", want: "hello-world-2026"},
		{name: "single word", input: "Tech", want: "tech"},
		{name: "already a slug", input: "hello-world", want: "hello-world"},

		// --- Punctuation ---
		{name: "punctuation marks", input: "Hello, World! How's it going?", want: "hello-world-hows-it-going"},
		{name: "colon separated title", input: "Go: The Complete Guide", want: "go-the-complete-guide"},
		{name: "parentheses and brackets", input: "Version (2.0) [Beta]", want: "version-20-beta"},
		{name: "standalone symbols leave adjacent hyphens", input: "Rock & Roll", want: "rock--roll"},
		{name: "underscores are word characters", input: "snake_case title", want: "snake_case-title"},
		{name: "hyphen preserved", input: "well-known fact", want: "well-known-fact"},

		// --- Whitespace ---
		{name: "leading and trailing spaces kept as hyphens", input: "  hello world  ", want: "-hello-world-"},
		{name: "single leading space", input: " Hello", want: "-hello"},
		{name: "runs of spaces collapse", input: "hello    world", want: "hello-world"},
		{name: "tab", input: "hello\tworld", want: "hello-world"},
		{name: "newline", input: "hello\nworld", want: "hello-world"},
		{name: "no-break space", input: "hello\u00a0world", want: "hello-world"},

		// --- Non-ASCII ---
		{name: "accented letters stripped", input: "Café Résumé", want: "caf-rsum"},
		{name: "only non-ascii", input: "日本語", want: ""},

		// --- Edge cases ---
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "    ", want: "-"},
		{name: "only symbols", input: "!@#$%^&*()", want: ""},
		{name: "digits", input: "2026", want: "2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Properties checks that every slug is lowercase, has no
// whitespace, and is stable across repeated calls.
func TestGenerate_Properties(t *testing.T) {
	inputs := []string{
		"Hello World",
		"HELLO WORLD",
		"  Mixed\tCase \n Title ",
		"Ünïcödé Tïtlé",
		"Why Go? Because 2026!",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := Generate(input)
			if second := Generate(input); second != first {
				t.Errorf("Generate(%q) not deterministic: %q then %q", input, first, second)
			}
			if first != strings.ToLower(first) {
				t.Errorf("Generate(%q) = %q, want lowercase", input, first)
			}
			if strings.IndexFunc(first, unicode.IsSpace) != -1 {
				t.Errorf("Generate(%q) = %q, contains whitespace", input, first)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that a slug maps to itself.
func TestGenerate_Idempotent(t *testing.T) {
	for _, s := range []string{"hello-world", "my-post-2026", "a", "snake_case"} {
		t.Run(s, func(t *testing.T) {
			if got := Generate(s); got != s {
				t.Errorf("Generate(%q) = %q, want %q", s, got, s)
			}
		})
	}
}

func TestHasWord(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Hello World", true},
		{"  go  ", true},
		{"2026", true},
		{"!!!", false},
		{"???", false},
		{"! ! !", false},
		{"   ", false},
		{"日本語", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := HasWord(tt.input); got != tt.want {
			t.Errorf("HasWord(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
