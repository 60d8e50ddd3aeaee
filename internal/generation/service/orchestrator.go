package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sitee-labs/sitee-backend/internal/generation/inference"
)

// Orchestrator composes inference calls into the four generation
// modes. Handlers resolve billing; this layer only produces text.
type Orchestrator struct {
	client *inference.Client

	generators map[Kind]generator
}

func NewOrchestrator(client *inference.Client) *Orchestrator {
	o := &Orchestrator{client: client}
	o.generators = map[Kind]generator{
		KindSite:         &siteGenerator{client: client},
		KindChat:         &chatGenerator{client: client},
		KindReactConvert: &reactGenerator{client: client},
	}
	return o
}

// Output is the result of one generation.
type Output struct {
	Kind Kind
	Text string
}

// Generate runs the optional vision pre-pass, resolves the mode once
// and dispatches to the mode's generator.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Output, error) {
	logger := NewLogger(ctx)

	prompt := req.Prompt
	if req.ImageData != "" {
		analysis, err := o.analyzeImage(ctx, req.ImageData)
		if err != nil {
			logger.LogError("vision_analysis", err)
			return nil, err
		}
		prompt = prompt + "\n\nReference image analysis:\n" + analysis
	}

	kind := ResolveKind(req)
	text, err := o.generators[kind].generate(ctx, prompt, req)
	if err != nil {
		logger.LogError("generate_"+kind.String(), err)
		return nil, err
	}
	return &Output{Kind: kind, Text: text}, nil
}

// SuggestImprovements returns the cached critique, if present and not
// forced, without calling the model. Otherwise it runs the critique
// template against the HTML.
func (o *Orchestrator) SuggestImprovements(ctx context.Context, html string, cached *string, force bool) (string, bool, error) {
	if text, ok := CachedSuggestion(cached, force); ok {
		return text, true, nil
	}

	text, err := o.complete(ctx, "", []inference.Message{
		inference.Text("system", suggestPrompt),
		inference.Text("user", html),
	}, 2048, 0.6)
	if err != nil {
		NewLogger(ctx).LogError("suggest_improvements", err)
		return "", false, err
	}
	return strings.TrimSpace(text), false, nil
}

// CachedSuggestion reports whether a prior suggestion can be served
// as-is. Handlers use this before reserving a credit.
func CachedSuggestion(cached *string, force bool) (string, bool) {
	if force || cached == nil || *cached == "" {
		return "", false
	}
	return *cached, true
}

func (o *Orchestrator) analyzeImage(ctx context.Context, imageData string) (string, error) {
	dataURL := imageData
	if !strings.HasPrefix(dataURL, "data:") {
		dataURL = "data:image/png;base64," + dataURL
	}
	analysis, err := o.complete(ctx, o.client.VisionModel(), []inference.Message{
		inference.TextWithImage("user", visionPrompt, dataURL),
	}, 2048, 0.3)
	if err != nil {
		return "", fmt.Errorf("image analysis: %w", err)
	}
	return strings.TrimSpace(analysis), nil
}

func (o *Orchestrator) complete(ctx context.Context, model string, msgs []inference.Message, maxTokens int, temperature float64) (string, error) {
	start := time.Now()
	text, err := o.client.Complete(ctx, model, msgs, maxTokens, temperature)
	recordModelCall(time.Since(start), err)
	return text, err
}

type generator interface {
	generate(ctx context.Context, prompt string, req Request) (string, error)
}

type siteGenerator struct {
	client *inference.Client
}

func (g *siteGenerator) generate(ctx context.Context, prompt string, req Request) (string, error) {
	system := sitePrompt
	if req.PunjabiMode {
		system = system + " " + punjabiInstruction
	}

	start := time.Now()
	text, err := g.client.Complete(ctx, "", []inference.Message{
		inference.Text("system", system),
		inference.Text("user", prompt),
	}, 8192, 0.7)
	recordModelCall(time.Since(start), err)
	if err != nil {
		return "", err
	}

	// Discard any preamble before the document marker.
	if idx := strings.Index(text, htmlDocMarker); idx > 0 {
		text = text[idx:]
	}
	return text, nil
}

type chatGenerator struct {
	client *inference.Client
}

func (g *chatGenerator) generate(ctx context.Context, prompt string, req Request) (string, error) {
	start := time.Now()
	text, err := g.client.Complete(ctx, "", []inference.Message{
		inference.Text("system", chatPrompt),
		inference.Text("user", prompt),
	}, 2048, 0.5)
	recordModelCall(time.Since(start), err)
	return text, err
}

type reactGenerator struct {
	client *inference.Client
}

func (g *reactGenerator) generate(ctx context.Context, prompt string, req Request) (string, error) {
	start := time.Now()
	text, err := g.client.Complete(ctx, "", []inference.Message{
		inference.Text("system", reactPrompt),
		inference.Text("user", prompt),
	}, 8192, 0.4)
	recordModelCall(time.Since(start), err)
	if err != nil {
		return "", err
	}
	return stripCodeFence(text), nil
}

// stripCodeFence removes a surrounding ``` wrapper (with or without a
// language tag) that models often add despite instructions.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		return strings.Trim(trimmed, "`")
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
