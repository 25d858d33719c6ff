package tailoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"tailor-backend/internal/documents"
	"tailor-backend/internal/llm"
	"tailor-backend/internal/shared/metrics"
	"tailor-backend/internal/shared/storage/object"
	"tailor-backend/resume/model"
	"tailor-backend/resume/render"
)

var (
	// ErrNoResume means no stage of the pipeline has produced a resume yet.
	ErrNoResume = errors.New("no resume draft found for this doc_id; parse or structure resume first")
	// ErrInvalidInput flags caller mistakes the handler maps to 400s.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPresignUnsupported means the configured store cannot mint download URLs.
	ErrPresignUnsupported = errors.New("object store does not support download URLs")
)

const (
	// StatusProposed marks a turn that staged edits awaiting confirmation.
	StatusProposed = "proposed"
	// StatusApplied marks a turn that applied a staged proposal.
	StatusApplied = "applied"
	// StatusAnswered marks a plain conversational turn with no edits.
	StatusAnswered = "answered"
)

type proposalSource int

const (
	sourceChat proposalSource = iota
	sourceTailor
)

// pendingProposal is a staged edit set awaiting a user affirmation. One per
// document; a newer proposal silently supersedes an older one.
type pendingProposal struct {
	resume  model.Resume
	summary []string
	source  proposalSource
}

// TurnResult is the outcome of one chat or tailor turn.
type TurnResult struct {
	AssistantMessage  string
	EditsSummary      []string
	NeedsConfirmation bool
	Status            string
}

// ExportResult describes a rendered export and where to download it.
type ExportResult struct {
	DocID            string
	ExportKey        string
	DownloadURL      string
	ExpiresInSeconds int
}

// Service implements the conversational edit-confirmation protocol. The
// client never interprets affirmations; every decision about whether a
// message applies staged edits happens here.
type Service struct {
	Docs      documents.Repo
	Store     object.ObjectStore
	LLM       llm.Client
	ExportTTL time.Duration

	mu      sync.Mutex
	pending map[string]pendingProposal
}

// NewService constructs a tailoring service.
func NewService(docs documents.Repo, store object.ObjectStore, llmClient llm.Client, exportTTL time.Duration) *Service {
	if exportTTL <= 0 {
		exportTTL = time.Hour
	}
	return &Service{
		Docs:      docs,
		Store:     store,
		LLM:       llmClient,
		ExportTTL: exportTTL,
		pending:   make(map[string]pendingProposal),
	}
}

// affirmations are the utterances that consent to applying staged edits.
// Matching happens after lowercasing and trimming trailing punctuation.
var affirmations = map[string]struct{}{
	"yes": {}, "y": {}, "yeah": {}, "yep": {}, "sure": {},
	"confirm": {}, "apply": {}, "ok": {}, "okay": {},
	"do it": {}, "go ahead": {}, "sounds good": {}, "apply the edits": {},
}

func isAffirmation(message string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	normalized = strings.TrimRight(normalized, ".!?")
	normalized = strings.Join(strings.Fields(normalized), " ")
	_, ok := affirmations[normalized]
	return ok
}

// Chat handles one conversational turn. With a proposal staged and an
// affirmative message, the proposal is applied; anything else is forwarded to
// the model, and any edits it returns become the new staged proposal.
func (s *Service) Chat(ctx context.Context, docID, message string) (TurnResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return TurnResult{}, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if _, err := s.Docs.GetByID(ctx, docID); err != nil {
		return TurnResult{}, err
	}
	metrics.IncChatTurns()

	if staged, ok := s.takePendingIf(docID, isAffirmation(message)); ok {
		if err := s.applyProposal(ctx, docID, staged); err != nil {
			// Re-stage so the user can retry the affirmation.
			s.stage(docID, staged)
			return TurnResult{}, err
		}
		return TurnResult{
			AssistantMessage: appliedMessage(staged),
			Status:           StatusApplied,
		}, nil
	}

	current, err := s.latestResume(ctx, docID)
	if err != nil {
		return TurnResult{}, err
	}

	proposal, err := s.LLM.ProposeEdits(ctx, current, message)
	if err != nil {
		return TurnResult{}, fmt.Errorf("chat turn: %w", err)
	}

	if proposal.Updated == nil {
		return TurnResult{
			AssistantMessage: proposal.AssistantMessage,
			Status:           StatusAnswered,
		}, nil
	}

	s.stage(docID, pendingProposal{
		resume:  *proposal.Updated,
		summary: proposal.Summary,
		source:  sourceChat,
	})
	metrics.IncProposals()

	return TurnResult{
		AssistantMessage:  proposal.AssistantMessage,
		NeedsConfirmation: true,
		Status:            StatusProposed,
	}, nil
}

// Tailor rewrites the resume against a job description and stages the result
// as a proposal. It always requires confirmation and supersedes any staged
// proposal, chat or tailor alike.
func (s *Service) Tailor(ctx context.Context, docID, jobDescription string) (TurnResult, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return TurnResult{}, fmt.Errorf("%w: job_description is required", ErrInvalidInput)
	}
	if _, err := s.Docs.GetByID(ctx, docID); err != nil {
		return TurnResult{}, err
	}

	current, err := s.latestResume(ctx, docID)
	if err != nil {
		return TurnResult{}, err
	}

	proposal, err := s.LLM.TailorResume(ctx, current, jobDescription)
	if err != nil {
		return TurnResult{}, fmt.Errorf("tailor turn: %w", err)
	}
	if proposal.Updated == nil {
		return TurnResult{}, fmt.Errorf("tailor turn: model returned no updated resume")
	}

	s.stage(docID, pendingProposal{
		resume:  *proposal.Updated,
		summary: proposal.Summary,
		source:  sourceTailor,
	})
	metrics.IncProposals()

	return TurnResult{
		AssistantMessage:  proposal.AssistantMessage,
		EditsSummary:      proposal.Summary,
		NeedsConfirmation: true,
		Status:            StatusProposed,
	}, nil
}

// Export renders the latest resume stage to LaTeX, stores it, and mints a
// download URL.
func (s *Service) Export(ctx context.Context, docID string) (ExportResult, error) {
	if _, err := s.Docs.GetByID(ctx, docID); err != nil {
		return ExportResult{}, err
	}

	current, err := s.latestResume(ctx, docID)
	if err != nil {
		return ExportResult{}, err
	}

	rendered := render.Resume(current)
	exportKey := documents.ExportKey(docID)
	if _, err := s.Store.SaveWithKey(ctx, exportKey, "application/x-tex", bytes.NewReader([]byte(rendered))); err != nil {
		return ExportResult{}, fmt.Errorf("store export: %w", err)
	}

	presigner, ok := s.Store.(object.Presigner)
	if !ok {
		return ExportResult{}, ErrPresignUnsupported
	}
	url, err := presigner.PresignGet(ctx, exportKey, s.ExportTTL)
	if err != nil {
		return ExportResult{}, fmt.Errorf("presign export: %w", err)
	}

	metrics.IncExports()
	return ExportResult{
		DocID:            docID,
		ExportKey:        exportKey,
		DownloadURL:      url,
		ExpiresInSeconds: int(s.ExportTTL.Seconds()),
	}, nil
}

// HasPending reports whether a proposal is staged for the document.
func (s *Service) HasPending(docID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[docID]
	return ok
}

func (s *Service) stage(docID string, p pendingProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[docID] = p
}

// takePendingIf removes and returns the staged proposal when affirmed is
// true. A non-affirmation leaves the proposal staged: the follow-up
// instruction may or may not replace it, depending on what the model returns.
func (s *Service) takePendingIf(docID string, affirmed bool) (pendingProposal, bool) {
	if !affirmed {
		return pendingProposal{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	staged, ok := s.pending[docID]
	if ok {
		delete(s.pending, docID)
	}
	return staged, ok
}

func (s *Service) applyProposal(ctx context.Context, docID string, staged pendingProposal) error {
	payload, err := json.MarshalIndent(staged.resume, "", "  ")
	if err != nil {
		return err
	}
	if _, err := s.Store.SaveWithKey(ctx, documents.DraftKey(docID), "application/json", bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	if staged.source == sourceTailor {
		if _, err := s.Store.SaveWithKey(ctx, documents.TailoredKey(docID), "application/json", bytes.NewReader(payload)); err != nil {
			return fmt.Errorf("store tailored: %w", err)
		}
	}
	metrics.IncEditsApplied()
	return nil
}

func appliedMessage(staged pendingProposal) string {
	if n := len(staged.summary); n > 0 {
		noun := "edits"
		if n == 1 {
			noun = "edit"
		}
		return fmt.Sprintf("Applied %d %s to your resume draft.", n, noun)
	}
	return "Applied the proposed edits to your resume draft."
}

// latestResume walks the stage hierarchy newest-first: draft, tailored,
// structured, parsed.
func (s *Service) latestResume(ctx context.Context, docID string) (model.Resume, error) {
	keys := []string{
		documents.DraftKey(docID),
		documents.TailoredKey(docID),
		documents.StructuredKey(docID),
		documents.ParsedKey(docID),
	}
	for _, key := range keys {
		reader, err := s.Store.Open(ctx, key)
		if err != nil {
			continue
		}
		data, err := io.ReadAll(reader)
		reader.Close()
		if err != nil {
			continue
		}
		var resume model.Resume
		if err := json.Unmarshal(data, &resume); err != nil {
			continue
		}
		resume.Normalize()
		return resume, nil
	}
	return model.Resume{}, ErrNoResume
}
