package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/session"
)

// PersonaTools serves the single persona row.
type PersonaTools struct {
	base
}

func NewPersonaTools(h *session.Handle) *PersonaTools {
	return &PersonaTools{base{Handle: h}}
}

type SavePersonaInput struct {
	Name         *string `json:"name,omitempty" jsonschema:"Display name"`
	Gender       *string `json:"gender,omitempty" jsonschema:"Gender"`
	Personality  *string `json:"personality,omitempty" jsonschema:"Personality description"`
	AvatarURL    *string `json:"avatar_url,omitempty" jsonschema:"Avatar image URL"`
	Bio          *string `json:"bio,omitempty" jsonschema:"Short biography"`
	PrivacyLevel *string `json:"privacy_level,omitempty" jsonschema:"public or private"`
}

func (in SavePersonaInput) fields() map[string]any {
	out := map[string]any{}
	set := func(key string, v *string) {
		if v != nil {
			out[key] = *v
		}
	}
	set("name", in.Name)
	set("gender", in.Gender)
	set("personality", in.Personality)
	set("avatar_url", in.AvatarURL)
	set("bio", in.Bio)
	set("privacy_level", in.PrivacyLevel)
	return out
}

func (t *PersonaTools) GetPersona(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	s, errResult := t.requireStore(ctx)
	if errResult != nil {
		return errResult, nil, nil
	}
	p, err := s.GetPersona(ctx)
	if err != nil {
		return toolError("Failed to get persona: %v", err), nil, nil
	}
	if p == nil {
		return toolError("Persona is missing"), nil, nil
	}
	return toolJSON(p)
}

// SavePersona updates only the fields present in the input.
func (t *PersonaTools) SavePersona(ctx context.Context, _ *mcp.CallToolRequest, input SavePersonaInput) (*mcp.CallToolResult, any, error) {
	s, errResult := t.requireStore(ctx)
	if errResult != nil {
		return errResult, nil, nil
	}
	fields := input.fields()
	if len(fields) == 0 {
		return toolError("At least one persona field is required"), nil, nil
	}
	if _, err := s.UpdatePersona(ctx, fields); err != nil {
		return toolError("Failed to update persona: %v", err), nil, nil
	}
	p, err := s.GetPersona(ctx)
	if err != nil {
		return toolError("Persona updated but could not be read back: %v", err), nil, nil
	}
	return toolJSON(p)
}
