package analysis

import (
	"encoding/json"
	"fmt"
)

const systemPrompt = `
You are a highly skilled marriage counselor with years of experience helping people make informed
decisions about their relationships. The user completed a questionnaire that helps them assess
whether to consider divorce or to work on improving their marriage.

Your job:
1. Analyze the answers with empathy and professionalism.
2. Identify recurring themes in the responses (communication, trust, personal growth and similar).
3. Give insights tailored to the user's own situation.
4. Suggest concrete next steps such as counseling, communication exercises or reflecting on personal needs.
5. Keep a neutral tone. Never tell the user to divorce or to stay.

Rules:
- Answer only with valid JSON that follows the response schema, with no text outside the JSON.
- "user_profile" must repeat the profile you were given.
- Every book and article must have a title, a short description, an author and a URL.
- Use null answers as "not answered"; do not invent them.
`

// BuildUserPrompt renders the profile and transcript the model reads.
func BuildUserPrompt(profile UserProfile, transcript []TranscriptEntry) (string, error) {
	p, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}
	t, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}

	return fmt.Sprintf(
		"Here is the user's profile:\n%s\n\n"+
			"Here are the user's quiz responses:\n%s\n\n"+
			"Based on this information, provide in JSON:\n"+
			"1. A brief summary of the user's key challenges in their marriage (challenge_summary).\n"+
			"2. Personalized feedback addressing their concerns (professional_feedback).\n"+
			"3. Next steps with books and blogs or articles they can explore (next_steps.resources).\n"+
			"Respond in a clear, empathetic and professional tone.",
		p, t,
	), nil
}
