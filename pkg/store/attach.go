package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/srivarthinivelu/tender-poc/pkg/model"
)

// uploadedOnFormat matches the second-precision timestamps the document
// has always carried for attachments.
const uploadedOnFormat = "2006-01-02T15:04:05"

// SaveAttachment writes content under the attachments directory keyed by
// the original filename (an existing file of the same name is overwritten),
// records the attachment on the named opportunity, and persists the
// document. Returns the recorded metadata.
func (s *Store) SaveAttachment(doc *model.Document, id, name string, content []byte) (model.Attachment, error) {
	opp := GetByID(doc, id)
	if opp == nil {
		return model.Attachment{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if name == "" {
		return model.Attachment{}, fmt.Errorf("attachment needs a filename")
	}

	if err := os.MkdirAll(s.AttachDir, 0o755); err != nil {
		return model.Attachment{}, fmt.Errorf("creating attachments directory: %w", err)
	}

	// Strip any path components so the name stays a plain storage key.
	name = filepath.Base(name)
	path := filepath.Join(s.AttachDir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return model.Attachment{}, fmt.Errorf("writing attachment %s: %w", name, err)
	}

	att := model.Attachment{
		Name:       name,
		Size:       int64(len(content)),
		Path:       path,
		UploadedOn: time.Now().Format(uploadedOnFormat),
	}
	opp.Attachments = append(opp.Attachments, att)

	if err := s.Save(doc); err != nil {
		return model.Attachment{}, err
	}
	return att, nil
}

// AttachFile reads a file from disk and stores it as an attachment on the
// named opportunity.
func (s *Store) AttachFile(doc *model.Document, id, srcPath string) (model.Attachment, error) {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("reading %s: %w", srcPath, err)
	}
	return s.SaveAttachment(doc, id, filepath.Base(srcPath), content)
}
