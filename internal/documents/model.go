package documents

import (
	"path"
	"time"
)

// Document represents an uploaded resume tracked for the life of the process.
// The bytes themselves live in the object store; this is session metadata.
type Document struct {
	ID           string
	FileName     string
	MimeType     string
	SizeBytes    int64
	UploadKey    string
	ExtractedKey string
	TextPreview  string
	TextChars    int
	CreatedAt    time.Time
}

// Storage keys for the per-document object hierarchy. Every stage of the
// pipeline writes under its own prefix; later stages shadow earlier ones.
func UploadKey(docID, fileName string) string { return path.Join("uploads", docID, fileName) }

// ExtractedKey is where the raw extracted text lives.
func ExtractedKey(docID string) string { return path.Join("extracted", docID, "resume.txt") }

// ParsedKey holds the heuristic parse result.
func ParsedKey(docID string) string { return path.Join("parsed", docID, "resume.json") }

// StructuredKey holds the LLM structuring result.
func StructuredKey(docID string) string { return path.Join("structured", docID, "resume.json") }

// TailoredKey holds the most recent applied tailoring result.
func TailoredKey(docID string) string { return path.Join("tailored", docID, "resume.json") }

// DraftKey holds the current working draft; chat edits land here.
func DraftKey(docID string) string { return path.Join("draft", docID, "resume.json") }

// ExportKey holds the rendered LaTeX export.
func ExportKey(docID string) string { return path.Join("exports", docID, "resume.tex") }
