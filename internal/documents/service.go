package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"tailor-backend/internal/extract"
	"tailor-backend/internal/llm"
	"tailor-backend/internal/shared/metrics"
	"tailor-backend/internal/shared/storage/object"
	"tailor-backend/internal/shared/util"
	"tailor-backend/resume/model"
	"tailor-backend/resume/parse"
)

const previewChars = 1200

// Service contains the upload, parse, and structure pipeline.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
	LLM   llm.Client
}

// Upload extracts text from the file, persists the original and the extracted
// text, and records the document.
func (s *Service) Upload(ctx context.Context, fileName string, data []byte) (Document, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Document{}, ErrInvalidInput
	}

	text, err := extract.Text(sanitized, data)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			return Document{}, err
		}
		return Document{}, fmt.Errorf("extract upload: %w", err)
	}

	docID := uuid.NewString()
	uploadKey := UploadKey(docID, sanitized)
	extractedKey := ExtractedKey(docID)

	if _, err := s.Store.SaveWithKey(ctx, uploadKey, contentTypeFor(sanitized), bytes.NewReader(data)); err != nil {
		return Document{}, fmt.Errorf("store upload: %w", err)
	}
	if _, err := s.Store.SaveWithKey(ctx, extractedKey, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return Document{}, fmt.Errorf("store extracted text: %w", err)
	}

	doc := Document{
		ID:           docID,
		FileName:     sanitized,
		MimeType:     contentTypeFor(sanitized),
		SizeBytes:    int64(len(data)),
		UploadKey:    uploadKey,
		ExtractedKey: extractedKey,
		TextPreview:  preview(text),
		TextChars:    len(text),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	metrics.IncUploads()
	return doc, nil
}

// Parse runs the heuristic resume parser over the extracted text and stores
// the result as the parsed stage.
func (s *Service) Parse(ctx context.Context, docID string) (model.Resume, error) {
	if _, err := s.Repo.GetByID(ctx, docID); err != nil {
		return model.Resume{}, err
	}

	text, err := s.loadText(ctx, ExtractedKey(docID))
	if err != nil {
		return model.Resume{}, ErrNotFound
	}

	resume := parse.FromText(text)
	if err := s.saveResume(ctx, ParsedKey(docID), resume); err != nil {
		return model.Resume{}, err
	}

	metrics.IncParses()
	return resume, nil
}

// Structure asks the LLM to build the full resume structure from the
// extracted text, optionally folding in extra experience the user typed.
func (s *Service) Structure(ctx context.Context, docID, extraExperience string) (model.Resume, error) {
	if _, err := s.Repo.GetByID(ctx, docID); err != nil {
		return model.Resume{}, err
	}

	text, err := s.loadText(ctx, ExtractedKey(docID))
	if err != nil {
		return model.Resume{}, ErrNotFound
	}

	resume, err := s.LLM.StructureResume(ctx, text, extraExperience)
	if err != nil {
		return model.Resume{}, fmt.Errorf("structure resume: %w", err)
	}
	if err := s.saveResume(ctx, StructuredKey(docID), resume); err != nil {
		return model.Resume{}, err
	}
	return resume, nil
}

func (s *Service) loadText(ctx context.Context, key string) (string, error) {
	reader, err := s.Store.Open(ctx, key)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Service) saveResume(ctx context.Context, key string, resume model.Resume) error {
	payload, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return err
	}
	if _, err := s.Store.SaveWithKey(ctx, key, "application/json", bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("store resume json key=%s: %w", key, err)
	}
	return nil
}

func preview(text string) string {
	if len(text) <= previewChars {
		return text
	}
	return text[:previewChars]
}

func contentTypeFor(fileName string) string {
	switch {
	case strings.HasSuffix(strings.ToLower(fileName), ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(strings.ToLower(fileName), ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case strings.HasSuffix(strings.ToLower(fileName), ".txt"):
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
