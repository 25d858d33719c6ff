package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"tailor-backend/internal/llm"
	"tailor-backend/internal/shared/metrics"
	"tailor-backend/resume/model"
)

// Client implements llm.Client using Google Gemini.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a Gemini-backed LLM client.
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(modelName) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, model: modelName}, nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// editTurnResponse is the wire shape both edit and tailor prompts promise.
type editTurnResponse struct {
	AssistantMessage string        `json:"assistant_message"`
	UpdatedResume    *model.Resume `json:"updated_resume"`
	EditsSummary     []string      `json:"edits_summary"`
}

// StructureResume turns raw text into the canonical resume structure.
func (c *Client) StructureResume(ctx context.Context, rawText, extraExperience string) (model.Resume, error) {
	prompt := strings.NewReplacer(
		"{{RESUME_TEXT}}", rawText,
		"{{EXTRA_EXPERIENCE}}", extraExperience,
	).Replace(llm.StructurePrompt())

	raw, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return model.Resume{}, err
	}

	var resume model.Resume
	if err := json.Unmarshal([]byte(raw), &resume); err != nil {
		return model.Resume{}, fmt.Errorf("gemini structure decode: %w", err)
	}
	resume.Normalize()
	return resume, nil
}

// ProposeEdits asks the model to interpret a free-form instruction against
// the current resume.
func (c *Client) ProposeEdits(ctx context.Context, current model.Resume, instruction string) (llm.EditProposal, error) {
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return llm.EditProposal{}, err
	}
	prompt := strings.NewReplacer(
		"{{RESUME_JSON}}", string(currentJSON),
		"{{INSTRUCTION}}", instruction,
	).Replace(llm.EditPrompt())

	return c.editTurn(ctx, prompt)
}

// TailorResume rewrites the resume against a job description.
func (c *Client) TailorResume(ctx context.Context, current model.Resume, jobDescription string) (llm.EditProposal, error) {
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return llm.EditProposal{}, err
	}
	prompt := strings.NewReplacer(
		"{{RESUME_JSON}}", string(currentJSON),
		"{{JOB_DESCRIPTION}}", jobDescription,
	).Replace(llm.TailorPrompt())

	proposal, err := c.editTurn(ctx, prompt)
	if err != nil {
		return llm.EditProposal{}, err
	}
	if proposal.Updated == nil {
		return llm.EditProposal{}, fmt.Errorf("gemini tailor returned no updated resume")
	}
	return proposal, nil
}

func (c *Client) editTurn(ctx context.Context, prompt string) (llm.EditProposal, error) {
	raw, err := c.generateJSON(ctx, prompt)
	if err != nil {
		return llm.EditProposal{}, err
	}

	var parsed editTurnResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return llm.EditProposal{}, fmt.Errorf("gemini edit decode: %w", err)
	}
	if parsed.UpdatedResume != nil {
		parsed.UpdatedResume.Normalize()
	}
	return llm.EditProposal{
		AssistantMessage: strings.TrimSpace(parsed.AssistantMessage),
		Updated:          parsed.UpdatedResume,
		Summary:          parsed.EditsSummary,
	}, nil
}

func (c *Client) generateJSON(ctx context.Context, prompt string) (string, error) {
	gm := c.client.GenerativeModel(c.model)
	gm.SetTemperature(0.2)
	gm.SetMaxOutputTokens(4096)
	gm.ResponseMIMEType = "application/json"

	started := metrics.NowMillis()
	resp, err := gm.GenerateContent(ctx, genai.Text(prompt))
	metrics.ObserveLLMDurationMs(metrics.NowMillis() - started)
	if err != nil {
		metrics.IncLLMFailures()
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text, err := textFromResponse(resp)
	if err != nil {
		metrics.IncLLMFailures()
		return "", err
	}
	return cleanJSONBlock(text), nil
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini response has no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response has no content")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("gemini response has no text parts")
	}
	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code fences some models wrap JSON in.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

var _ llm.Client = (*Client)(nil)
