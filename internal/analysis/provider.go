package analysis

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/saulo-duarte/quizlens/internal/config"
)

var ErrNoAPIKey = errors.New("gemini api key is not configured")

// Provider sends one prompt and returns the raw model text.
type Provider interface {
	Generate(ctx context.Context, system, user string) (string, error)
	Model() string
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (Provider, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente Gemini: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) Model() string { return p.model }

func (p *geminiProvider) Generate(ctx context.Context, system, user string) (string, error) {
	log := config.WithContext(ctx).WithField("model", p.model)

	result, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		genai.Text(user),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    analysisSchema,
		},
	)
	if err != nil {
		log.WithError(err).Error("Falha ao gerar conteúdo do Gemini")
		return "", fmt.Errorf("generate content: %w", err)
	}

	raw := result.Text()
	log.Debugf("Resposta bruta do Gemini:\n%s", raw)
	return raw, nil
}

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func resourceList() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: object(map[string]*genai.Schema{
			"title":       str(),
			"description": str(),
			"author":      str(),
			"url":         str(),
		}, "title", "description", "author", "url"),
	}
}

var analysisSchema = object(map[string]*genai.Schema{
	"user_profile": object(map[string]*genai.Schema{
		"first_name": str(),
		"last_name":  str(),
		"email":      str(),
		"username":   str(),
	}, "first_name", "last_name", "email", "username"),
	"challenge_summary":     str(),
	"professional_feedback": str(),
	"next_steps": object(map[string]*genai.Schema{
		"resources": object(map[string]*genai.Schema{
			"books":              resourceList(),
			"blogs_and_articles": resourceList(),
		}, "books", "blogs_and_articles"),
	}, "resources"),
}, "user_profile", "challenge_summary", "professional_feedback", "next_steps")
