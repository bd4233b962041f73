package services

import (
	"math"
	"regexp"
	"strings"
)

// SectionFeedback is the per-section slice of an analysis. Score is a
// derived 0-100 integer computed from keyword presence in the generated
// feedback text, not a number the model reported.
type SectionFeedback struct {
	Title      string `json:"title"`
	Suggestion string `json:"suggestion"`
	Reasoning  string `json:"reasoning"`
	Score      int    `json:"score"`
}

// AnalysisReport is the structured form of one LLM critique. Fields whose
// marker is absent from the response stay empty; that is a data condition,
// not an error.
type AnalysisReport struct {
	CareerGoal      string            `json:"careerGoal"`
	OverallFeedback string            `json:"overallFeedback"`
	WritingStyle    string            `json:"writingStyle"`
	SkillAnalysis   string            `json:"skillAnalysis"`
	Sections        []SectionFeedback `json:"sections"`
	SpellingGrammar []string          `json:"spellingGrammar"`
	OverallScore    int               `json:"overallScore"`
}

var (
	careerGoalRe      = regexp.MustCompile(`\*\*Inferred Career Goal:\*\*\s*([^\n]+)`)
	overallFeedbackRe = regexp.MustCompile(`(?s)\*\*Overall Feedback:\*\*\s*(.*?)\s*(?:\n\s*\*\*|\z)`)
	writingStyleRe    = regexp.MustCompile(`(?s)\*\*Writing Style Feedback:\*\*\s*(.*?)\s*(?:\n\s*\*\*|\z)`)
	skillAnalysisRe   = regexp.MustCompile(`(?s)\*\*Skill Analysis:\*\*\s*(.*?)\s*(?:\n\s*\*\*|\z)`)
	spellingRe        = regexp.MustCompile(`(?s)\*\*Spelling &(?:amp;)? Grammar:\*\*\s*(.*?)\s*(?:\n\s*\*\*|\z)`)
	sectionHeaderRe   = regexp.MustCompile(`\*\*([^*\n]+?) Section:\*\*`)
	suggestionRe      = regexp.MustCompile(`(?s)-\s*Suggestion:\s*(.*?)\s*(?:\n\s*-\s*Reasoning:|\z)`)
	reasoningRe       = regexp.MustCompile(`(?s)-\s*Reasoning:\s*(.*?)\s*\z`)
)

// ParseReport extracts the structured report from the LLM's free-text
// response. The marker patterns here are a brittle adapter boundary kept
// in one place so the matching rules can change without touching the
// HTTP layer.
func ParseReport(response string) *AnalysisReport {
	report := &AnalysisReport{
		CareerGoal:      firstGroup(careerGoalRe, response),
		OverallFeedback: firstGroup(overallFeedbackRe, response),
		WritingStyle:    firstGroup(writingStyleRe, response),
		SkillAnalysis:   firstGroup(skillAnalysisRe, response),
	}

	report.Sections = parseSections(response)
	report.SpellingGrammar = parseSpellingNotes(response)
	report.OverallScore = deriveOverallScore(report.Sections, report.SpellingGrammar)

	return report
}

func firstGroup(re *regexp.Regexp, text string) string {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

func parseSections(response string) []SectionFeedback {
	headers := sectionHeaderRe.FindAllStringSubmatchIndex(response, -1)

	var sections []SectionFeedback
	for _, header := range headers {
		title := strings.TrimSpace(response[header[2]:header[3]])

		// Block runs from the end of this header to the next ** marker.
		blockStart := header[1]
		blockEnd := len(response)
		if next := strings.Index(response[blockStart:], "\n**"); next != -1 {
			blockEnd = blockStart + next
		}
		block := response[blockStart:blockEnd]

		feedback := SectionFeedback{
			Title:      title,
			Suggestion: firstGroup(suggestionRe, block),
			Reasoning:  firstGroup(reasoningRe, block),
		}
		feedback.Score = DeriveScore(feedback.Suggestion, feedback.Reasoning)

		sections = append(sections, feedback)
	}

	return sections
}

func parseSpellingNotes(response string) []string {
	block := firstGroup(spellingRe, response)
	if block == "" {
		return nil
	}

	var notes []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		if line != "" {
			notes = append(notes, line)
		}
	}
	return notes
}

// DeriveScore maps feedback wording to a 0-100 score. First match wins:
// text containing "lacks" scores 45 regardless of what else appears, and
// so on down the table. The branch order is a stable contract; see the
// parser tests before reordering.
func DeriveScore(suggestion, reasoning string) int {
	text := strings.ToLower(suggestion + " " + reasoning)

	switch {
	case containsAny(text, "lacks", "needs to", "currently lacks"):
		return 45
	case containsAny(text, "add", "provide", "expand"):
		return 55
	case containsAny(text, "enhance", "improve"):
		return 65
	case containsAny(text, "consider", "include"):
		return 58
	default:
		return 60
	}
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// deriveOverallScore averages all contributing scores: one per section,
// plus a 100 for every spelling/grammar note signalling a clean result.
// An empty pool defaults to 70.
func deriveOverallScore(sections []SectionFeedback, spellingNotes []string) int {
	var pool []int
	for _, s := range sections {
		pool = append(pool, s.Score)
	}
	for _, note := range spellingNotes {
		if strings.Contains(strings.ToLower(note), "no") {
			pool = append(pool, 100)
		}
	}

	if len(pool) == 0 {
		return 70
	}

	sum := 0
	for _, score := range pool {
		sum += score
	}
	return int(math.Round(float64(sum) / float64(len(pool))))
}
