package profileanalyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cvmatch/internal/core/domain/cv"

	"google.golang.org/genai"
)

const prompt = `You are an expert AI career assistant that extracts a structured profile from a CV.

Analyze the CV text below and return a JSON object in exactly this format:

{
  "headline": string,
  "summary": string,
  "years_experience": number,
  "skills": [string]
}

- "headline" is a one-line professional title for the candidate.
- "summary" is a 2-3 sentence overview of the candidate's background.
- "years_experience" is the total years of professional experience, rounded down.
- "skills" lists concrete technologies and competencies explicitly mentioned in the CV.

Base all reasoning only on the provided text. Do not make up data or assume
experience not explicitly mentioned. Return only valid JSON. Do not include
explanations, markdown, or text before or after the JSON.

CV text:
`

// Gemini extracts structured CV profiles with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(client *genai.Client, model string) *Gemini {
	if client == nil {
		panic("client must not be nil")
	}
	return &Gemini{client: client, model: model}
}

func (g *Gemini) AnalyzeProfile(ctx context.Context, text string) (profile cv.Profile, err error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt+text), nil)
	if err != nil {
		return profile, fmt.Errorf("failed to generate profile: %w", err)
	}

	var parsed struct {
		Headline        string   `json:"headline"`
		Summary         string   `json:"summary"`
		YearsExperience uint32   `json:"years_experience"`
		Skills          []string `json:"skills"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(resp.Text())), &parsed); err != nil {
		return profile, fmt.Errorf("failed to parse profile response: %w", err)
	}
	return cv.Profile{
		Headline:        parsed.Headline,
		Summary:         parsed.Summary,
		YearsExperience: parsed.YearsExperience,
		Skills:          parsed.Skills,
	}, nil
}

// cleanJSON strips the markdown code fences models tend to wrap JSON in.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
