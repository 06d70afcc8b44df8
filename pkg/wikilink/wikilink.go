// Package wikilink extracts wiki-style references from note bodies.
package wikilink

import "regexp"

// Link represents a single wiki-style reference occurrence in a body.
type Link struct {
	Target  string // referenced note title
	Alias   string // optional alias from [[target|alias]]
	IsEmbed bool   // true if this is an embed (![[...]]) rather than a link ([[...]])
}

// linkRegex matches [[wiki-links]], [[link|alias]], and ![[embeds]] patterns.
// Group 1: optional "!" prefix (embed marker)
// Group 2: target title
// Group 3: optional alias
var linkRegex = regexp.MustCompile(`(!?)\[\[([^\]|]+)(?:\|([^\]]+))?\]\]`)

// Parse extracts every [[Target]], [[Target|Alias]], and ![[Embed]] reference
// from content, in order of appearance. Repeated references are kept as
// separate occurrences so callers see the full outbound link sequence.
func Parse(content string) []Link {
	if content == "" {
		return nil
	}

	matches := linkRegex.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	links := make([]Link, 0, len(matches))
	for _, match := range matches {
		link := Link{
			Target:  match[2],
			IsEmbed: match[1] == "!",
		}
		if len(match) > 3 && match[3] != "" {
			link.Alias = match[3]
		}
		links = append(links, link)
	}

	return links
}
