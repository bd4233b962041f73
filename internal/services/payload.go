package services

import (
	"fmt"
	"strings"
)

// ProfileForm is the user-submitted structured shape of a profile.
type ProfileForm struct {
	Name       string
	Headline   string
	About      string
	Experience string
	Education  string
	Skills     string
}

func (f *ProfileForm) Empty() bool {
	return f.Name == "" && f.Headline == "" && f.About == "" &&
		f.Experience == "" && f.Education == "" && f.Skills == ""
}

// ProfilePayload carries exactly one of the two profile shapes per request:
// segmented raw text from an upload, or a structured form.
type ProfilePayload struct {
	Segments *ProfileSegments
	RawText  string
	Form     *ProfileForm
}

// Serialize renders the active shape as prompt-ready text.
func (p *ProfilePayload) Serialize() string {
	if p.Form != nil {
		var b strings.Builder
		writeField(&b, "Name", p.Form.Name)
		writeField(&b, "Headline", p.Form.Headline)
		writeField(&b, "About", p.Form.About)
		writeField(&b, "Experience", p.Form.Experience)
		writeField(&b, "Education", p.Form.Education)
		writeField(&b, "Skills", p.Form.Skills)
		return b.String()
	}

	var b strings.Builder
	if p.Segments != nil {
		writeField(&b, "Name", p.Segments.Name)
		writeField(&b, "Headline", p.Segments.Headline)
		for _, kw := range SectionKeywords {
			excerpt := p.Segments.Sections[CanonicalSectionName(kw)]
			if excerpt == nil || *excerpt == "" {
				continue
			}
			writeField(&b, kw, *excerpt)
		}
	}
	if b.Len() == 0 {
		b.WriteString(p.RawText)
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}
