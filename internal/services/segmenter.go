package services

import (
	"regexp"
	"strings"
)

// SectionKeywords is the fixed ordered list of profile headings used to
// delimit text regions. Matching is purely positional, so two visually
// distinct sections sharing a heading substring can mis-segment. That is
// an accepted limitation of the heading-scan approach.
var SectionKeywords = []string{
	"About",
	"Experience",
	"Education",
	"Licenses & certifications",
	"Skills",
	"Projects",
	"Honors & awards",
	"Languages",
	"Volunteer Experience",
	"Publications",
}

// SectionMap maps a canonical section name (lowercase, underscored) to its
// excerpt, or nil when the heading never appears in the text.
type SectionMap map[string]*string

// ProfileSegments is everything the segmenter derives from raw text.
type ProfileSegments struct {
	Name     string
	Headline string
	Summary  string
	Sections SectionMap
}

type SectionSegmenter interface {
	Segment(rawText string) *ProfileSegments
}

type sectionSegmenter struct {
	patterns map[string]*regexp.Regexp
}

func NewSectionSegmenter() SectionSegmenter {
	patterns := make(map[string]*regexp.Regexp, len(SectionKeywords))
	for _, kw := range SectionKeywords {
		patterns[kw] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return &sectionSegmenter{patterns: patterns}
}

// CanonicalSectionName converts a heading keyword to its map key.
func CanonicalSectionName(keyword string) string {
	return strings.ReplaceAll(strings.ToLower(keyword), " ", "_")
}

func (s *sectionSegmenter) Segment(rawText string) *ProfileSegments {
	segments := &ProfileSegments{
		Sections: make(SectionMap, len(SectionKeywords)),
	}

	segments.Name, segments.Headline = firstTwoLines(rawText)
	segments.Summary = summarize(rawText, 500)

	// All occurrences of every keyword, found once up front.
	occurrences := make(map[string][][]int, len(SectionKeywords))
	for _, kw := range SectionKeywords {
		occurrences[kw] = s.patterns[kw].FindAllStringIndex(rawText, -1)
	}

	for _, kw := range SectionKeywords {
		key := CanonicalSectionName(kw)

		occ := occurrences[kw]
		if len(occ) == 0 {
			segments.Sections[key] = nil
			continue
		}

		// Section runs from just after the first occurrence of this
		// keyword to the soonest following occurrence of any other
		// keyword, or to end-of-text.
		start := occ[0][1]
		end := len(rawText)
		for _, other := range SectionKeywords {
			if other == kw {
				continue
			}
			for _, o := range occurrences[other] {
				if o[0] >= start && o[0] < end {
					end = o[0]
				}
			}
		}

		excerpt := collapseWhitespace(rawText[start:end])
		segments.Sections[key] = &excerpt
	}

	return segments
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// firstTwoLines returns the first two non-blank lines: document name and
// headline in a LinkedIn export.
func firstTwoLines(text string) (string, string) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == 2 {
			break
		}
	}

	switch len(lines) {
	case 0:
		return "", ""
	case 1:
		return lines[0], ""
	default:
		return lines[0], lines[1]
	}
}

func summarize(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
