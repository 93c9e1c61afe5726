package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/winnow-hq/winnow-api/internal/core"
	"github.com/winnow-hq/winnow-api/internal/models"
)

// The model is told to answer in bare JSON; ResponseMIMEType below enforces
// it on the API side, the instruction covers models that ignore the flag.
const systemInstruction = `You are 'Winnow Recruitment Master'. Respond ONLY in pure JSON format.

CRITICAL: NO markdown code blocks! Never use ` + "```json or ```" + ` in your response.

Response format (Korean text in aiResponse):
{"aiResponse":"한국어로 대화","options":["선택1","선택2","선택3","기타"],"jdData":{"title":"","companyName":"","teamName":"","jobRole":"","location":"","scale":"","vision":"","mission":"","responsibilities":[],"requirements":[],"preferred":[],"benefits":[]}}

Rules:
- Ask step-by-step questions in Korean
- Update jdData with all conversation info
- Provide 3-4 options every time
`

type GeminiChat struct {
	client    *genai.Client
	modelName string
}

func NewGeminiChat(ctx context.Context, apiKey, modelName string) (*GeminiChat, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	return &GeminiChat{client: cl, modelName: modelName}, nil
}

func (g *GeminiChat) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Chat replays the prior turns into a fresh model session and sends the new
// message. The model reply is reshaped locally and malformed output degrades
// to a raw-text reply instead of an error.
func (g *GeminiChat) Chat(ctx context.Context, history []models.ChatTurn, message string) (models.ChatReply, error) {
	m := g.client.GenerativeModel(g.modelName)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	m.ResponseMIMEType = "application/json"

	cs := m.StartChat()
	cs.History = translateHistory(history)

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return models.ChatReply{}, fmt.Errorf("gemini chat: %w", err)
	}

	return repairReply(collectText(resp)), nil
}

// translateHistory maps turns into the API's role vocabulary: "user" stays
// "user", everything else becomes "model". Empty turns are dropped.
func translateHistory(history []models.ChatTurn) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		if turn.Text == "" {
			continue
		}
		role := "model"
		if turn.Role == "user" {
			role = "user"
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}
	return out
}

func collectText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

var _ core.ChatModel = (*GeminiChat)(nil)
