package slots

import (
	"context"
	"slices"
	"strings"

	"gig-copilot/internal/model"
	"gig-copilot/internal/nlu"
	"gig-copilot/pkg/money"
)

// Extract reads the fields of schema from text. focus names the fields the
// conversation is waiting for, so a bare answer can fill them.
// Partial results are normal; capability failure yields all-absent slots.
func (e *Extractor) Extract(ctx context.Context, text string, schema Schema, focus []string) Result {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	guess, err := e.capability.Understand(ctx, nlu.Request{
		Task:   nlu.TaskExtract,
		Text:   text,
		Fields: schema.Fields,
		Focus:  focus,
	})
	if err != nil {
		e.l.Warnf(ctx, "%s: capability %s failed: %v", LogPrefixExtract, e.capability.Name(), err)
		return Result{Slots: model.ExtractedSlots{}, Degraded: true}
	}

	res := Result{Slots: model.ExtractedSlots{}}
	for _, f := range schema.Fields {
		g, ok := guess.Slots[f.Name]
		if !ok || strings.TrimSpace(g.Value) == "" {
			continue
		}
		if g.Confidence > 0 && g.Confidence < MinSlotConfidence {
			res.Dropped = append(res.Dropped, f.Name)
			continue
		}
		value, ok := normalise(f, g.Value)
		if !ok {
			// Unparseable values stay absent, never zero.
			e.l.Debugf(ctx, "%s: dropped %s=%q", LogPrefixExtract, f.Name, g.Value)
			res.Dropped = append(res.Dropped, f.Name)
			continue
		}
		res.Slots[f.Name] = model.Slot{Value: value, Raw: g.Value, Present: true, Confidence: g.Confidence}
	}

	fillBareAnswer(text, schema, focus, res.Slots)
	e.applySeverity(ctx, text, schema, res.Slots)
	return res
}

// fillBareAnswer lets a short reply answer the single field being asked for.
func fillBareAnswer(text string, schema Schema, focus []string, slots model.ExtractedSlots) {
	var open []string
	for _, name := range focus {
		if !slots.Has(name) {
			open = append(open, name)
		}
	}
	if len(open) != 1 {
		return
	}
	f, ok := schema.Field(open[0])
	if !ok {
		return
	}

	text = strings.TrimSpace(text)
	switch f.Type {
	case nlu.FieldMoney:
		if v, err := money.Parse(text); err == nil {
			slots[f.Name] = model.Slot{Value: v.String(), Raw: text, Present: true, Confidence: 0.8}
		}
	case nlu.FieldPlace, nlu.FieldText:
		if len(strings.Fields(text)) > BareAnswerMaxWords || len(money.Find(text)) > 0 {
			return
		}
		if v, ok := normalise(f, text); ok {
			slots[f.Name] = model.Slot{Value: v, Raw: text, Present: true, Confidence: 0.6}
		}
	}
}

// applySeverity grades vehicle issues with the ontology. Indeterminate
// descriptions get model.DefaultSeverity, marked as defaulted.
func (e *Extractor) applySeverity(ctx context.Context, text string, schema Schema, slots model.ExtractedSlots) {
	if _, ok := schema.Field(model.SlotSeverity); !ok {
		return
	}
	issue, _ := slots.String(model.SlotIssue)
	component, _ := slots.String(model.SlotComponent)

	if sev, term, ok := ClassifySeverity(issue, component, text); ok {
		slots[model.SlotSeverity] = model.Slot{Value: string(sev), Raw: term, Present: true, Confidence: 1}
		return
	}
	if hinted, ok := slots.String(model.SlotSeverity); ok {
		if _, valid := model.ParseSeverity(hinted); valid {
			return
		}
	}
	if !slots.Has(model.SlotIssue) {
		slots.Drop(model.SlotSeverity)
		return
	}
	e.l.Infof(ctx, "%s: severity indeterminate for %q, defaulting to %s", LogPrefixExtract, issue, model.DefaultSeverity)
	slots[model.SlotSeverity] = model.Slot{Value: string(model.DefaultSeverity), Present: true, Defaulted: true}
}

func normalise(f nlu.Field, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	switch f.Type {
	case nlu.FieldMoney:
		v, err := money.Parse(raw)
		if err != nil {
			ms := money.Find(raw)
			if len(ms) == 0 {
				return "", false
			}
			v = ms[0].Value
		}
		return v.String(), true
	case nlu.FieldPlace:
		return cleanPlace(raw)
	case nlu.FieldSeverity:
		sev, ok := model.ParseSeverity(raw)
		return string(sev), ok
	case nlu.FieldEnum:
		v := strings.ToLower(raw)
		if slices.Contains(f.Enum, v) {
			return v, true
		}
		if slices.Contains(f.Enum, PlatformOther) {
			return PlatformOther, true
		}
		return "", false
	default:
		v := strings.Join(strings.Fields(raw), " ")
		return v, v != ""
	}
}

var placePrefixes = []string{"from ", "to ", "at ", "in ", "near "}

// cleanPlace keeps the driver's place text as written, minus connective words.
func cleanPlace(raw string) (string, bool) {
	v := strings.Trim(strings.Join(strings.Fields(raw), " "), " .,!?;:")
	lower := strings.ToLower(v)
	for _, p := range placePrefixes {
		if strings.HasPrefix(lower, p) {
			v = strings.TrimSpace(v[len(p):])
			break
		}
	}
	return v, v != ""
}
