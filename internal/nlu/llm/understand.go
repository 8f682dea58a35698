package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"gig-copilot/internal/nlu"
	"gig-copilot/pkg/llmprovider"
)

type classifyAnswer struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

type extractAnswer struct {
	Slots map[string]*struct {
		Value      any     `json:"value"`
		Confidence float64 `json:"confidence"`
	} `json:"slots"`
}

// Understand implements nlu.Capability.
func (c *Capability) Understand(ctx context.Context, req nlu.Request) (nlu.Guess, error) {
	switch req.Task {
	case nlu.TaskClassify:
		return c.classify(ctx, req)
	case nlu.TaskExtract:
		return c.extract(ctx, req)
	default:
		return nlu.Guess{}, fmt.Errorf("%w: %s", nlu.ErrUnsupportedTask, req.Task)
	}
}

func (c *Capability) classify(ctx context.Context, req nlu.Request) (nlu.Guess, error) {
	var b strings.Builder
	if req.LastIntent != "" || req.Pending != "" {
		fmt.Fprintf(&b, PromptContextLine, req.LastIntent, req.Pending)
	}
	fmt.Fprintf(&b, PromptMessageLine, req.Text)

	raw, err := c.generate(ctx, PromptClassifySystem, b.String(), c.classifySchema)
	if err != nil {
		return nlu.Guess{}, err
	}

	var ans classifyAnswer
	if err := json.Unmarshal([]byte(raw), &ans); err != nil {
		return nlu.Guess{}, fmt.Errorf("%w: %v", nlu.ErrMalformed, err)
	}
	return nlu.Guess{
		Label:      strings.TrimSpace(strings.ToLower(ans.Intent)),
		Confidence: ans.Confidence,
		Reason:     ans.Reasoning,
	}, nil
}

func (c *Capability) extract(ctx context.Context, req nlu.Request) (nlu.Guess, error) {
	var b strings.Builder
	b.WriteString(PromptFieldsHeader)
	for _, f := range req.Fields {
		hint := f.Hint
		if len(f.Enum) > 0 {
			hint += fmt.Sprintf(PromptEnumHint, strings.Join(f.Enum, ", "))
		}
		if hint != "" {
			hint = ":" + hint
		}
		fmt.Fprintf(&b, PromptFieldLine, f.Name, f.Type, hint)
	}
	if len(req.Focus) > 0 {
		fmt.Fprintf(&b, PromptFocusLine, strings.Join(req.Focus, ", "))
	}
	fmt.Fprintf(&b, PromptMessageLine, req.Text)

	raw, err := c.generate(ctx, PromptExtractSystem, b.String(), c.extractSchema)
	if err != nil {
		return nlu.Guess{}, err
	}

	var ans extractAnswer
	if err := json.Unmarshal([]byte(raw), &ans); err != nil {
		return nlu.Guess{}, fmt.Errorf("%w: %v", nlu.ErrMalformed, err)
	}

	wanted := make(map[string]bool, len(req.Fields))
	for _, f := range req.Fields {
		wanted[f.Name] = true
	}
	guess := nlu.Guess{Slots: make(map[string]nlu.SlotGuess)}
	for name, s := range ans.Slots {
		if s == nil || !wanted[name] {
			continue
		}
		v := spanString(s.Value)
		if v == "" {
			continue
		}
		guess.Slots[name] = nlu.SlotGuess{Value: v, Confidence: s.Confidence}
	}
	return guess, nil
}

// generate calls the provider and returns a repaired, schema-checked JSON document.
func (c *Capability) generate(ctx context.Context, system, prompt string, schema *gojsonschema.Schema) (string, error) {
	req := llmprovider.UserText(system, prompt)
	req.Temperature = Temperature
	req.MaxTokens = MaxTokens
	req.JSONOutput = true

	resp, err := c.provider.GenerateContent(ctx, req)
	if err != nil {
		c.l.Warnf(ctx, "%s: %s: %v", LogPrefixUnderstand, ErrMsgLLMCallFailed, err)
		return "", fmt.Errorf("%w: %v", nlu.ErrUnavailable, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		c.l.Warnf(ctx, "%s: %s", LogPrefixUnderstand, ErrMsgEmptyResponse)
		return "", fmt.Errorf("%w: %s", nlu.ErrMalformed, ErrMsgEmptyResponse)
	}

	doc, err := normaliseJSON(text)
	if err != nil {
		c.l.Warnf(ctx, "%s: %s: %v", LogPrefixUnderstand, ErrMsgRepairFailed, err)
		return "", fmt.Errorf("%w: %v", nlu.ErrMalformed, err)
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return "", fmt.Errorf("%w: %v", nlu.ErrMalformed, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		c.l.Warnf(ctx, "%s: %s: %s", LogPrefixUnderstand, ErrMsgSchemaMismatch, strings.Join(msgs, "; "))
		return "", fmt.Errorf("%w: %s", nlu.ErrMalformed, ErrMsgSchemaMismatch)
	}
	return doc, nil
}

func spanString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
