package slug

import "testing"

// TestGenerate exercises the slug generator with typical titles, special
// characters, and the placeholder fallback.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "title with punctuation",
			input: "Derby de Bunia: un final sous haute tension",
			want:  "derby-de-bunia-un-final-sous-haute-tension",
		},
		{
			name:  "apostrophes collapse into the run",
			input: "L'économie aujourd'hui",
			want:  "l-conomie-aujourd-hui",
		},
		{
			name:  "run of special characters becomes one hyphen",
			input: "Rock & Roll @ the Arena",
			want:  "rock-roll-the-arena",
		},
		{
			name:  "leading and trailing junk trimmed",
			input: "  ...Breaking News!!!  ",
			want:  "breaking-news",
		},
		{
			name:  "digits survive",
			input: "Top 10 de 2025",
			want:  "top-10-de-2025",
		},
		{
			name:  "already a slug",
			input: "already-a-slug",
			want:  "already-a-slug",
		},
		{
			name:  "empty input falls back",
			input: "",
			want:  Placeholder,
		},
		{
			name:  "only special characters falls back",
			input: "!!! ??? ...",
			want:  Placeholder,
		},
		{
			name:  "uppercase normalized",
			input: "BREAKING",
			want:  "breaking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
