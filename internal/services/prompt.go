package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildProfileAnalysisPrompt creates the critique prompt for a LinkedIn
// profile. The marker format below is what the report parser expects.
func (pb *PromptBuilder) BuildProfileAnalysisPrompt(payload *ProfilePayload) string {
	return fmt.Sprintf(`You are an expert LinkedIn profile coach reviewing a candidate's profile.

CANDIDATE PROFILE:
%s

Analyze the profile and respond using EXACTLY this format:

**Inferred Career Goal:**
<one line describing the candidate's likely career goal>

**Overall Feedback:**
<2-4 sentences of overall feedback>

For each profile section present (About, Experience, Education, Licenses & certifications, Skills, Projects, Honors & awards, Languages, Volunteer Experience, Publications), add a block:

**<Section name> Section:**
- Suggestion: <one concrete improvement>
- Reasoning: <why it matters>

**Writing Style Feedback:**
<feedback on tone and clarity>

**Skill Analysis:**
<assessment of the skill set versus the inferred goal>

**Spelling & Grammar:**
- <one note per line; write "No spelling or grammar issues found" if clean>

Be specific and reference actual profile content in every suggestion.`, payload.Serialize())
}

// BuildChatModifyPrompt creates the follow-up prompt that may revise an
// existing analysis. The original analysis is resent verbatim every turn;
// no conversation state is kept server-side.
func (pb *PromptBuilder) BuildChatModifyPrompt(userRequest, originalAnalysis string) string {
	return fmt.Sprintf(`You are an expert LinkedIn profile coach. A candidate received the analysis below and has a follow-up request.

ORIGINAL ANALYSIS:
%s

USER REQUEST:
%s

Respond with ONLY a valid JSON object in this exact shape:
{
  "chatbotResponse": "<conversational reply to the user>",
  "updatedReport": {<changed fields of the analysis, or omit if nothing changes>}
}

Do not wrap the JSON in markdown code fences or add any other text.`, originalAnalysis, userRequest)
}
