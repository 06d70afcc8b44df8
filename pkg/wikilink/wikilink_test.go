// Package wikilink extracts wiki-style references from note bodies.
package wikilink

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []Link
	}{
		// Basic wikilinks (IsEmbed=false)
		{
			name:    "simple wikilink",
			content: "Check out [[Note Name]] for more info",
			expected: []Link{
				{Target: "Note Name", Alias: "", IsEmbed: false},
			},
		},
		{
			name:    "wikilink with alias",
			content: "See [[Note Name|Display Text]] here",
			expected: []Link{
				{Target: "Note Name", Alias: "Display Text", IsEmbed: false},
			},
		},
		{
			name:    "wikilink with heading",
			content: "Jump to [[Note Name#Heading]] section",
			expected: []Link{
				{Target: "Note Name#Heading", Alias: "", IsEmbed: false},
			},
		},

		// Embeds (IsEmbed=true)
		{
			name:    "simple embed",
			content: "Embedded: ![[Note Name]]",
			expected: []Link{
				{Target: "Note Name", Alias: "", IsEmbed: true},
			},
		},
		{
			name:    "image embed with alias",
			content: "![[Image.png|400]]",
			expected: []Link{
				{Target: "Image.png", Alias: "400", IsEmbed: true},
			},
		},

		// Mixed content
		{
			name:    "link and embed in same content",
			content: "Link: [[Note1]] and embed: ![[Note2]]",
			expected: []Link{
				{Target: "Note1", Alias: "", IsEmbed: false},
				{Target: "Note2", Alias: "", IsEmbed: true},
			},
		},

		// Should NOT capture - markdown links
		{
			name:     "markdown external link",
			content:  "Check [Display Text](https://example.com) here",
			expected: nil,
		},
		{
			name:     "markdown relative link",
			content:  "See [Display Text](note.md) for details",
			expected: nil,
		},
		{
			name:     "auto-linked URL",
			content:  "Visit https://example.com for more",
			expected: nil,
		},

		// Edge cases
		{
			name:     "empty content",
			content:  "",
			expected: nil,
		},
		{
			name:     "no links",
			content:  "Just plain text without any links",
			expected: nil,
		},
		{
			name:    "multiple links keep document order",
			content: "[[Note1]] and [[Note2]] and [[Note3|Alias]]",
			expected: []Link{
				{Target: "Note1", Alias: "", IsEmbed: false},
				{Target: "Note2", Alias: "", IsEmbed: false},
				{Target: "Note3", Alias: "Alias", IsEmbed: false},
			},
		},
		{
			name:    "repeated reference kept as separate occurrences",
			content: "[[Note]] appears twice [[Note]]",
			expected: []Link{
				{Target: "Note", Alias: "", IsEmbed: false},
				{Target: "Note", Alias: "", IsEmbed: false},
			},
		},
		{
			name:    "link with path separators",
			content: "[[folder/subfolder/note]]",
			expected: []Link{
				{Target: "folder/subfolder/note", Alias: "", IsEmbed: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.content)

			if len(result) != len(tt.expected) {
				t.Errorf("Parse(%q) returned %d links, want %d", tt.content, len(result), len(tt.expected))
				t.Errorf("Got: %+v", result)
				t.Errorf("Want: %+v", tt.expected)
				return
			}

			for i, link := range result {
				if link.Target != tt.expected[i].Target {
					t.Errorf("Link[%d].Target = %q, want %q", i, link.Target, tt.expected[i].Target)
				}
				if link.Alias != tt.expected[i].Alias {
					t.Errorf("Link[%d].Alias = %q, want %q", i, link.Alias, tt.expected[i].Alias)
				}
				if link.IsEmbed != tt.expected[i].IsEmbed {
					t.Errorf("Link[%d].IsEmbed = %v, want %v", i, link.IsEmbed, tt.expected[i].IsEmbed)
				}
			}
		})
	}
}

func TestParse_ComplexContent(t *testing.T) {
	content := `# My Note

This note has various links:
- A regular link: [[Another Note]]
- A link with alias: [[Note|Custom Text]]
- An embedded note: ![[Embedded Note]]
- A heading link: [[Note#Section]]

Some markdown links that should NOT be captured:
- [External](https://example.com)
- [Relative](./other.md)

More wikilinks at the end: [[Final Note]]
`

	result := Parse(content)

	expectedTargets := []string{
		"Another Note",
		"Note",
		"Embedded Note",
		"Note#Section",
		"Final Note",
	}

	if len(result) != len(expectedTargets) {
		t.Errorf("Expected %d links, got %d", len(expectedTargets), len(result))
		for _, link := range result {
			t.Logf("Found: %+v", link)
		}
		return
	}

	for i, link := range result {
		if link.Target != expectedTargets[i] {
			t.Errorf("Link[%d].Target = %q, want %q", i, link.Target, expectedTargets[i])
		}
	}

	// Verify embeds are correctly identified
	for _, link := range result {
		if link.Target == "Embedded Note" {
			if !link.IsEmbed {
				t.Errorf("Link %q should be an embed", link.Target)
			}
		} else if link.IsEmbed {
			t.Errorf("Link %q should NOT be an embed", link.Target)
		}
	}
}
