package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/Consistent-coder/QuizMaster/utils"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Gemini wraps the generative-AI provider. One client is constructed at
// startup and shared by reference for the process lifetime.
type Gemini struct {
	client    *genai.Client
	chatModel *genai.GenerativeModel
	jsonModel *genai.GenerativeModel
}

func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	chatModel := client.GenerativeModel(modelName)

	jsonModel := client.GenerativeModel(modelName)
	jsonModel.ResponseMIMEType = "application/json"

	return &Gemini{
		client:    client,
		chatModel: chatModel,
		jsonModel: jsonModel,
	}, nil
}

func (g *Gemini) Close() {
	g.client.Close()
}

type GeneratedOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type GeneratedQuestion struct {
	Text    string            `json:"text"`
	Review  string            `json:"review"`
	Options []GeneratedOption `json:"options"`
}

// GenerateQuestions asks the provider for question drafts on a topic. The
// streamed payload is accumulated before parsing; a response that does not
// parse as the expected JSON array is a generation error, with no retry.
func (g *Gemini) GenerateQuestions(ctx context.Context, topic string, count int) ([]GeneratedQuestion, error) {
	prompt := buildGenerationPrompt(topic, count)

	iter := g.jsonModel.GenerateContentStream(ctx, genai.Text(prompt))

	var raw strings.Builder
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Gemini generation stream error: %v", err)
			return nil, utils.Internal("AI question generation failed!")
		}
		raw.WriteString(extractText(resp))
	}

	return parseGeneratedQuestions(raw.String())
}

// parseGeneratedQuestions turns an accumulated provider payload into
// validated question drafts. A payload that is not the expected JSON array,
// or that yields no well-formed item, is a generation error.
func parseGeneratedQuestions(raw string) ([]GeneratedQuestion, error) {
	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &questions); err != nil {
		log.Printf("Error parsing AI-generated questions: %v", err)
		return nil, utils.Internal("Failed to parse AI-generated questions as JSON.")
	}

	valid := validateGeneratedQuestions(questions)
	if len(valid) == 0 {
		return nil, utils.Internal("AI response contained no well-formed questions.")
	}

	return valid, nil
}

// Ask forwards a plain prompt to the provider and returns its reply text.
func (g *Gemini) Ask(ctx context.Context, prompt string) (string, error) {
	resp, err := g.chatModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("Gemini API error: %v", err)
		return "", utils.Internal("AI assistant is unavailable right now!")
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", utils.Internal("AI assistant returned an empty reply!")
	}

	return text, nil
}

// validateGeneratedQuestions keeps only items matching the requested shape:
// non-empty text, 2 to 4 options, exactly one marked correct.
func validateGeneratedQuestions(questions []GeneratedQuestion) []GeneratedQuestion {
	valid := make([]GeneratedQuestion, 0, len(questions))
	for _, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		if len(q.Options) < 2 || len(q.Options) > 4 {
			continue
		}
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			continue
		}
		valid = append(valid, q)
	}
	return valid
}

func buildGenerationPrompt(topic string, count int) string {
	return fmt.Sprintf(`You are quiz-master created by QuizMaster generate %d easy to super hard questions on the topic "%s"
Each question must include:
- "text": The question
- "options": An array of minimum 2 and ideally 4 options where exactly one has isCorrect:true
- "review": Explanation about why the correct answer is right.

Strict JSON format:
[
  {
    "text": "What is ...?",
    "review": "Explanation about why the correct answer is right.",
    "options": [
      { "text": "...", "isCorrect": true },
      { "text": "...", "isCorrect": false },
      { "text": "...", "isCorrect": false },
      { "text": "...", "isCorrect": false }
    ]
  }
]
`, count, topic)
}

func stripCodeFences(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
