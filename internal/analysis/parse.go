package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUpstreamFormat = errors.New("analysis response is not in the expected format")

func stripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// Parse decodes the model output and returns it with its compacted JSON form.
func Parse(raw string) (*Analysis, []byte, error) {
	clean := stripFences(raw)
	if clean == "" {
		return nil, nil, fmt.Errorf("%w: empty response", ErrUpstreamFormat)
	}

	var a Analysis
	if err := json.Unmarshal([]byte(clean), &a); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUpstreamFormat, err)
	}
	if missing := a.missingSections(); len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: missing %s", ErrUpstreamFormat, strings.Join(missing, ", "))
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(clean)); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUpstreamFormat, err)
	}
	return &a, buf.Bytes(), nil
}

func (a *Analysis) missingSections() []string {
	var missing []string
	if a.UserProfile == nil {
		missing = append(missing, "user_profile")
	}
	if strings.TrimSpace(a.ChallengeSummary) == "" {
		missing = append(missing, "challenge_summary")
	}
	if strings.TrimSpace(a.ProfessionalFeedback) == "" {
		missing = append(missing, "professional_feedback")
	}
	switch {
	case a.NextSteps == nil:
		missing = append(missing, "next_steps")
	case a.NextSteps.Resources == nil:
		missing = append(missing, "next_steps.resources")
	default:
		if a.NextSteps.Resources.Books == nil {
			missing = append(missing, "next_steps.resources.books")
		}
		if a.NextSteps.Resources.BlogsAndArticles == nil {
			missing = append(missing, "next_steps.resources.blogs_and_articles")
		}
	}
	return missing
}
