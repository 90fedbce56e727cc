package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/raphalinka/bomator/internal/bom"
	"github.com/raphalinka/bomator/internal/logging"
)

const bomSystemPrompt = `You are an electronics sourcing assistant. Given a device description, produce its bill of materials as a JSON array. Each element must have the fields: "part" (string), "qty" (number), "unit" (string), "spec" (string), "suggested_product" (string, a concrete manufacturer part number or product name when one exists), "supplier" (string, a likely distributor), "unit_price" (number, estimated, in the requested currency). Respond with JSON only, no prose.`

// Generator turns a free-text device description into a coerced BOM item
// list via a hosted language model.
type Generator struct {
	provider Provider
	logger   logging.Logger
}

// NewGenerator creates a BOM generator.
func NewGenerator(provider Provider, logger logging.Logger) *Generator {
	return &Generator{provider: provider, logger: logger}
}

// Generate asks the model for a BOM and coerces the response field by
// field. Malformed items degrade individually; only an unusable response
// as a whole is an error.
func (g *Generator) Generate(ctx context.Context, prompt, currency string) ([]bom.Item, error) {
	if g.provider == nil {
		return nil, errors.New("llm provider is not configured")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("device description is required")
	}

	content, err := g.provider.Complete(ctx, []Message{
		{Role: "system", Content: bomSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Currency: %s\nDevice description:\n%s", currency, prompt)},
	})
	if err != nil {
		return nil, fmt.Errorf("generate bom: %w", err)
	}

	items, err := ParseItems(content)
	if err != nil {
		return nil, fmt.Errorf("generate bom: %w", err)
	}
	return items, nil
}

// itemsEnvelope tolerates models that wrap the array in an object.
type itemsEnvelope struct {
	Items []bom.Item `json:"items"`
}

// ParseItems extracts the item array from best-effort model output: a bare
// JSON array, an {"items": [...]} envelope, or either of those inside a
// fenced code block or surrounding prose.
func ParseItems(content string) ([]bom.Item, error) {
	raw := extractJSON(content)
	if raw == "" {
		return nil, errors.New("model response carried no JSON")
	}

	var items []bom.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		var envelope itemsEnvelope
		if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
			return nil, fmt.Errorf("parse model response: %w", err)
		}
		items = envelope.Items
	}

	coerced := make([]bom.Item, 0, len(items))
	for _, it := range items {
		it.Coerce()
		if it.Part == "" {
			continue
		}
		coerced = append(coerced, it)
	}
	if len(coerced) == 0 {
		return nil, errors.New("model response carried no usable items")
	}
	return coerced, nil
}

// extractJSON pulls the outermost JSON array or object out of a response
// that may wrap it in markdown fences or filler text.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if fenced := strings.Index(content, "```"); fenced >= 0 {
		rest := content[fenced+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end >= 0 {
			content = strings.TrimSpace(rest[:end])
		}
	}

	arrStart := strings.Index(content, "[")
	objStart := strings.Index(content, "{")
	switch {
	case arrStart >= 0 && (objStart < 0 || arrStart < objStart):
		if end := strings.LastIndex(content, "]"); end > arrStart {
			return content[arrStart : end+1]
		}
	case objStart >= 0:
		if end := strings.LastIndex(content, "}"); end > objStart {
			return content[objStart : end+1]
		}
	}
	return ""
}
