package llm

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"gig-copilot/internal/nlu"
	"gig-copilot/pkg/llmprovider"
	"gig-copilot/pkg/log"
)

// Capability asks an LLM provider for intents and slot spans.
type Capability struct {
	provider llmprovider.Provider
	l        log.Logger

	classifySchema *gojsonschema.Schema
	extractSchema  *gojsonschema.Schema
}

var _ nlu.Capability = (*Capability)(nil)

// New creates an LLM backed capability. provider is usually an *llmprovider.Manager.
func New(provider llmprovider.Provider, l log.Logger) (*Capability, error) {
	classify, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(SchemaClassify))
	if err != nil {
		return nil, fmt.Errorf("llm: classify schema: %w", err)
	}
	extract, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(SchemaExtract))
	if err != nil {
		return nil, fmt.Errorf("llm: extract schema: %w", err)
	}
	return &Capability{
		provider:       provider,
		l:              l,
		classifySchema: classify,
		extractSchema:  extract,
	}, nil
}

// Name implements nlu.Capability.
func (c *Capability) Name() string {
	return Name
}
