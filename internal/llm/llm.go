package llm

import (
	"context"
	"errors"

	"tailor-backend/resume/model"
)

// EditProposal is what an edit-capable model turn produces. Updated is nil
// when the model answered without proposing changes.
type EditProposal struct {
	AssistantMessage string
	Updated          *model.Resume
	Summary          []string
}

// Client abstracts LLM providers for resume structuring and editing.
type Client interface {
	// StructureResume turns raw resume text (plus optional extra experience
	// supplied by the user) into the canonical resume structure.
	StructureResume(ctx context.Context, rawText, extraExperience string) (model.Resume, error)

	// ProposeEdits takes the current resume and a free-form instruction and
	// returns a reply, optionally with a full updated resume to stage.
	ProposeEdits(ctx context.Context, current model.Resume, instruction string) (EditProposal, error)

	// TailorResume rewrites the resume against a job description and always
	// returns an updated resume with a summary of the changes.
	TailorResume(ctx context.Context, current model.Resume, jobDescription string) (EditProposal, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM not configured")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// StructureResume returns ErrNotConfigured.
func (PlaceholderClient) StructureResume(ctx context.Context, rawText, extraExperience string) (model.Resume, error) {
	_ = ctx
	_ = rawText
	_ = extraExperience
	return model.Resume{}, ErrNotConfigured
}

// ProposeEdits returns ErrNotConfigured.
func (PlaceholderClient) ProposeEdits(ctx context.Context, current model.Resume, instruction string) (EditProposal, error) {
	_ = ctx
	_ = current
	_ = instruction
	return EditProposal{}, ErrNotConfigured
}

// TailorResume returns ErrNotConfigured.
func (PlaceholderClient) TailorResume(ctx context.Context, current model.Resume, jobDescription string) (EditProposal, error) {
	_ = ctx
	_ = current
	_ = jobDescription
	return EditProposal{}, ErrNotConfigured
}
