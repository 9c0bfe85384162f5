package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anoa.com/livestockhub/internal/modules/aichat/dto"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const systemPrompt = `You are a livestock advisor for small farmers. Answer briefly and practically
about cattle, buffalo, goats, sheep, pigs and poultry: health, vaccination, breeding and feeding.
For any sign of serious illness tell the farmer to contact a veterinary officer.`

// Provider answers a farmer's question given the earlier turns.
type Provider interface {
	Name() string
	Reply(ctx context.Context, history []dto.Turn, question, language string) (string, error)
	Close()
}

type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.4)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	return &GeminiProvider{client: client, model: model}, nil
}

func (g *GeminiProvider) Name() string { return "gemini" }

func (g *GeminiProvider) Reply(ctx context.Context, history []dto.Turn, question, language string) (string, error) {
	cs := g.model.StartChat()
	for _, t := range history {
		role := "user"
		if t.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(t.Text)}})
	}

	prompt := question
	if language != "" && language != "en" {
		prompt = fmt.Sprintf("Reply in the language with ISO code %q.\n\n%s", language, question)
	}

	resp, err := cs.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no response from model")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("no text content in response")
	}
	return b.String(), nil
}

func (g *GeminiProvider) Close() {
	g.client.Close()
}

// StubProvider answers from a fixed keyword table. It is used when no model
// is configured so the chat page keeps working offline.
type StubProvider struct{}

var stubAnswers = []struct {
	keywords []string
	answer   string
}{
	{[]string{"fever", "sick", "temperature", "not eating"}, "Isolate the animal, offer clean water and shade, and record its temperature twice a day. If the fever lasts more than a day, contact your veterinary officer."},
	{[]string{"vaccin", "fmd", "hs ", "brucell"}, "Keep to the vaccination schedule in the Vaccination page. FMD is usually repeated every six months; ask your veterinary officer for the local calendar."},
	{[]string{"feed", "fodder", "silage", "diet"}, "Balance green fodder, dry fodder and concentrate. Check the Feeding page for low stock and expiring feed before planning the week."},
	{[]string{"heat", "breed", "insemination", "pregnan", "calving"}, "Record every service in the Breeding page. The expected delivery date is estimated from the species' gestation period."},
	{[]string{"milk", "yield"}, "Milk yield depends on feed, water and comfort. Make sure the animal has clean water at all times and a mineral mixture in the ration."},
}

const stubFallback = "I can help with animal health, vaccination, breeding and feeding. Please describe the animal and the problem in a little more detail."

func (StubProvider) Name() string { return "stub" }

func (StubProvider) Reply(_ context.Context, _ []dto.Turn, question, _ string) (string, error) {
	q := strings.ToLower(question)
	for _, entry := range stubAnswers {
		for _, kw := range entry.keywords {
			if strings.Contains(q, kw) {
				return entry.answer, nil
			}
		}
	}
	return stubFallback, nil
}

func (StubProvider) Close() {}
