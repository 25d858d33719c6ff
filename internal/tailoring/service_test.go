package tailoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"tailor-backend/internal/documents"
	"tailor-backend/internal/llm"
	"tailor-backend/internal/shared/storage/object"
	"tailor-backend/internal/shared/storage/object/local"
	"tailor-backend/resume/model"
)

// failingStore rejects writes while delegating reads.
type failingStore struct {
	object.ObjectStore
}

func (failingStore) SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error) {
	return 0, errors.New("store unavailable")
}

type fakeLLM struct {
	propose func(instruction string) (llm.EditProposal, error)
	tailor  func(jobDescription string) (llm.EditProposal, error)
}

func (f *fakeLLM) StructureResume(ctx context.Context, rawText, extraExperience string) (model.Resume, error) {
	return model.Resume{}, errors.New("not implemented")
}

func (f *fakeLLM) ProposeEdits(ctx context.Context, current model.Resume, instruction string) (llm.EditProposal, error) {
	return f.propose(instruction)
}

func (f *fakeLLM) TailorResume(ctx context.Context, current model.Resume, jobDescription string) (llm.EditProposal, error) {
	return f.tailor(jobDescription)
}

func newTestService(t *testing.T, client llm.Client) (*Service, string, *local.Store) {
	t.Helper()

	store := local.New(t.TempDir())
	repo := documents.NewMemoryRepo()

	doc := documents.Document{
		ID:       "doc-1",
		FileName: "resume.pdf",
	}
	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("create doc: %v", err)
	}

	parsed := model.Resume{}
	parsed.Header.Name = "Ada Lovelace"
	parsed.Normalize()
	payload, _ := json.Marshal(parsed)
	if _, err := store.SaveWithKey(context.Background(), documents.ParsedKey(doc.ID), "application/json", bytes.NewReader(payload)); err != nil {
		t.Fatalf("seed parsed resume: %v", err)
	}

	return NewService(repo, store, client, time.Hour), doc.ID, store
}

func proposalFor(name string) llm.EditProposal {
	updated := model.Resume{}
	updated.Header.Name = name
	updated.Normalize()
	return llm.EditProposal{
		AssistantMessage: "I can update the header. Apply these edits?",
		Updated:          &updated,
		Summary:          []string{"Changed header name to " + name},
	}
}

func draftName(t *testing.T, store *local.Store, docID string) string {
	t.Helper()
	reader, err := store.Open(context.Background(), documents.DraftKey(docID))
	if err != nil {
		t.Fatalf("open draft: %v", err)
	}
	defer reader.Close()
	var r model.Resume
	if err := json.NewDecoder(reader).Decode(&r); err != nil {
		t.Fatalf("decode draft: %v", err)
	}
	return r.Header.Name
}

func TestChatProposeThenConfirmAppliesDraft(t *testing.T) {
	client := &fakeLLM{
		propose: func(string) (llm.EditProposal, error) { return proposalFor("Ada L."), nil },
	}
	svc, docID, store := newTestService(t, client)

	first, err := svc.Chat(context.Background(), docID, "shorten my name")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !first.NeedsConfirmation {
		t.Fatal("expected needs_confirmation on proposal turn")
	}
	if first.Status != StatusProposed {
		t.Fatalf("status = %q, want %q", first.Status, StatusProposed)
	}
	if !svc.HasPending(docID) {
		t.Fatal("expected staged proposal")
	}

	second, err := svc.Chat(context.Background(), docID, "yes")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if second.NeedsConfirmation {
		t.Fatal("confirmation turn must not ask again")
	}
	if second.Status != StatusApplied {
		t.Fatalf("status = %q, want %q", second.Status, StatusApplied)
	}
	if svc.HasPending(docID) {
		t.Fatal("proposal should be consumed")
	}
	if got := draftName(t, store, docID); got != "Ada L." {
		t.Fatalf("draft name = %q, want %q", got, "Ada L.")
	}
}

func TestChatAffirmationVariants(t *testing.T) {
	for _, message := range []string{"Yes", "  apply  ", "go ahead!", "Sounds good.", "OKAY"} {
		if !isAffirmation(message) {
			t.Errorf("isAffirmation(%q) = false, want true", message)
		}
	}
	for _, message := range []string{"yes but shorter", "no", "maybe", "apply to google"} {
		if isAffirmation(message) {
			t.Errorf("isAffirmation(%q) = true, want false", message)
		}
	}
}

func TestChatAffirmationWithoutPendingGoesToModel(t *testing.T) {
	client := &fakeLLM{
		propose: func(instruction string) (llm.EditProposal, error) {
			if instruction != "yes" {
				t.Fatalf("instruction = %q, want %q", instruction, "yes")
			}
			return llm.EditProposal{AssistantMessage: "Nothing is pending."}, nil
		},
	}
	svc, docID, _ := newTestService(t, client)

	result, err := svc.Chat(context.Background(), docID, "yes")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if result.Status != StatusAnswered {
		t.Fatalf("status = %q, want %q", result.Status, StatusAnswered)
	}
}

func TestNewProposalSupersedesStaged(t *testing.T) {
	names := []string{"First Draft", "Second Draft"}
	var calls int
	client := &fakeLLM{
		propose: func(string) (llm.EditProposal, error) {
			p := proposalFor(names[calls])
			calls++
			return p, nil
		},
	}
	svc, docID, store := newTestService(t, client)

	if _, err := svc.Chat(context.Background(), docID, "first change"); err != nil {
		t.Fatalf("first chat: %v", err)
	}
	if _, err := svc.Chat(context.Background(), docID, "actually do this instead"); err != nil {
		t.Fatalf("second chat: %v", err)
	}
	if _, err := svc.Chat(context.Background(), docID, "confirm"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if got := draftName(t, store, docID); got != "Second Draft" {
		t.Fatalf("draft name = %q, want %q", got, "Second Draft")
	}
}

func TestTailorAlwaysRequiresConfirmation(t *testing.T) {
	client := &fakeLLM{
		tailor: func(string) (llm.EditProposal, error) { return proposalFor("Tailored Ada"), nil },
		propose: func(string) (llm.EditProposal, error) {
			t.Fatal("propose should not be called")
			return llm.EditProposal{}, nil
		},
	}
	svc, docID, store := newTestService(t, client)

	result, err := svc.Tailor(context.Background(), docID, "Senior Go Engineer at Acme")
	if err != nil {
		t.Fatalf("tailor: %v", err)
	}
	if !result.NeedsConfirmation {
		t.Fatal("tailor must require confirmation")
	}
	if len(result.EditsSummary) == 0 {
		t.Fatal("tailor should report an edit summary")
	}

	if _, err := svc.Chat(context.Background(), docID, "apply"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got := draftName(t, store, docID); got != "Tailored Ada" {
		t.Fatalf("draft name = %q, want %q", got, "Tailored Ada")
	}

	// A confirmed tailor keeps a copy of the tailored stage too.
	if _, err := store.Open(context.Background(), documents.TailoredKey(docID)); err != nil {
		t.Fatalf("tailored stage missing: %v", err)
	}
}

func TestTailorRequiresJobDescription(t *testing.T) {
	svc, docID, _ := newTestService(t, &fakeLLM{})

	_, err := svc.Tailor(context.Background(), docID, "   ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestChatUnknownDocument(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeLLM{})

	_, err := svc.Chat(context.Background(), "missing", "hello")
	if !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestChatNoResumeStage(t *testing.T) {
	client := &fakeLLM{
		propose: func(string) (llm.EditProposal, error) { return llm.EditProposal{}, nil },
	}
	store := local.New(t.TempDir())
	repo := documents.NewMemoryRepo()
	if err := repo.Create(context.Background(), documents.Document{ID: "doc-2", FileName: "r.pdf"}); err != nil {
		t.Fatalf("create doc: %v", err)
	}
	svc := NewService(repo, store, client, time.Hour)

	_, err := svc.Chat(context.Background(), "doc-2", "hello")
	if !errors.Is(err, ErrNoResume) {
		t.Fatalf("err = %v, want ErrNoResume", err)
	}
}

func TestExportRendersLatestStage(t *testing.T) {
	client := &fakeLLM{
		propose: func(string) (llm.EditProposal, error) { return proposalFor("Ada Export"), nil },
	}
	svc, docID, store := newTestService(t, client)

	if _, err := svc.Chat(context.Background(), docID, "tweak"); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if _, err := svc.Chat(context.Background(), docID, "yes"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	result, err := svc.Export(context.Background(), docID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if result.ExportKey != documents.ExportKey(docID) {
		t.Fatalf("export key = %q", result.ExportKey)
	}
	if result.DownloadURL == "" {
		t.Fatal("expected a download URL")
	}
	if result.ExpiresInSeconds != 3600 {
		t.Fatalf("expires = %d, want 3600", result.ExpiresInSeconds)
	}

	reader, err := store.Open(context.Background(), result.ExportKey)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer reader.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(buf.String(), "Ada Export") {
		t.Fatal("export should contain the applied draft name")
	}
}

func TestFailedApplyRestagesProposal(t *testing.T) {
	client := &fakeLLM{
		propose: func(string) (llm.EditProposal, error) { return proposalFor("Ada Retry"), nil },
	}
	svc, docID, _ := newTestService(t, client)

	if _, err := svc.Chat(context.Background(), docID, "tweak"); err != nil {
		t.Fatalf("chat: %v", err)
	}

	// Swap in a store that rejects writes, then restore it.
	good := svc.Store
	svc.Store = failingStore{good}
	if _, err := svc.Chat(context.Background(), docID, "yes"); err == nil {
		t.Fatal("expected apply failure")
	}
	if !svc.HasPending(docID) {
		t.Fatal("proposal should be re-staged after a failed apply")
	}

	svc.Store = good
	result, err := svc.Chat(context.Background(), docID, "yes")
	if err != nil {
		t.Fatalf("retry confirm: %v", err)
	}
	if result.Status != StatusApplied {
		t.Fatalf("status = %q, want %q", result.Status, StatusApplied)
	}
}
