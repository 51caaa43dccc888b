package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrEmptyAnswer is returned when the model produced no text
var ErrEmptyAnswer = errors.New("model returned no answer")

type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Tutor answers student doubts with hints rather than full solutions
type Tutor struct {
	client *genai.Client
	model  contentGenerator
}

func NewTutor(ctx context.Context, apiKey, modelName string) (*Tutor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Tutor{client: client, model: client.GenerativeModel(modelName)}, nil
}

// Ask sends the question to the model and returns its text answer
func (t *Tutor) Ask(ctx context.Context, question, background string) (string, error) {
	resp, err := t.model.GenerateContent(ctx, genai.Text(BuildPrompt(question, background)))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	var b strings.Builder
	if resp != nil {
		for _, cand := range resp.Candidates {
			if cand == nil || cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					b.WriteString(string(text))
				}
			}
			if b.Len() > 0 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyAnswer
	}
	return b.String(), nil
}

// Close releases the underlying client
func (t *Tutor) Close() error {
	if t.client == nil {
		return nil
	}
	return t.client.Close()
}

// BuildPrompt wraps a question in the tutoring instructions
func BuildPrompt(question, background string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a helpful coding tutor. A student is asking: %q\n\n", question)
	if background != "" {
		fmt.Fprintf(&b, "Context: %s\n\n", background)
	}
	b.WriteString("Rules:\n")
	b.WriteString("- Explain the concept simply and clearly\n")
	b.WriteString("- Do NOT provide full code solutions\n")
	b.WriteString("- Provide hints and guidance only\n")
	b.WriteString("- Make it interview-friendly\n")
	b.WriteString("- Help them understand the approach, not copy code\n\n")
	b.WriteString("Answer:")
	return b.String()
}
