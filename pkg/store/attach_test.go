package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/srivarthinivelu/tender-poc/pkg/model"
	"github.com/srivarthinivelu/tender-poc/pkg/testutil"
)

func TestSaveAttachment(t *testing.T) {
	s := newTestStore(t)
	doc := testutil.Doc(testutil.Opp(1, model.StageProposal))

	att, err := s.SaveAttachment(doc, "OPP-0001", "quote.pdf", []byte("pdf bytes"))
	if err != nil {
		t.Fatalf("SaveAttachment failed: %v", err)
	}

	if att.Name != "quote.pdf" {
		t.Errorf("name = %q, want quote.pdf", att.Name)
	}
	if att.Size != int64(len("pdf bytes")) {
		t.Errorf("size = %d, want %d", att.Size, len("pdf bytes"))
	}
	if att.UploadedOn == "" {
		t.Error("uploaded_on not recorded")
	}

	content, err := os.ReadFile(att.Path)
	if err != nil {
		t.Fatalf("attachment file missing: %v", err)
	}
	if string(content) != "pdf bytes" {
		t.Errorf("stored content = %q", content)
	}

	reloaded := s.Load()
	atts := GetByID(reloaded, "OPP-0001").Attachments
	if len(atts) != 1 || atts[0].Name != "quote.pdf" {
		t.Errorf("attachment metadata not persisted: %+v", atts)
	}
}

func TestSaveAttachment_SameNameOverwrites(t *testing.T) {
	s := newTestStore(t)
	doc := testutil.Doc(testutil.Opp(1, model.StageProposal))

	if _, err := s.SaveAttachment(doc, "OPP-0001", "spec.txt", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	att, err := s.SaveAttachment(doc, "OPP-0001", "spec.txt", []byte("v2 longer"))
	if err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(att.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "v2 longer" {
		t.Errorf("expected overwrite, got %q", content)
	}

	// Metadata stays append-only even when storage overwrites.
	if got := len(GetByID(doc, "OPP-0001").Attachments); got != 2 {
		t.Errorf("expected 2 attachment records, got %d", got)
	}
}

func TestSaveAttachment_StripsPathComponents(t *testing.T) {
	s := newTestStore(t)
	doc := testutil.Doc(testutil.Opp(1, model.StageProposal))

	att, err := s.SaveAttachment(doc, "OPP-0001", filepath.Join("..", "escape.txt"), []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if att.Name != "escape.txt" {
		t.Errorf("name = %q, want bare filename", att.Name)
	}
	if filepath.Dir(att.Path) != s.AttachDir {
		t.Errorf("attachment escaped the attachments dir: %s", att.Path)
	}
}

func TestSaveAttachment_UnknownID(t *testing.T) {
	s := newTestStore(t)
	doc := testutil.Doc(testutil.Opp(1, model.StageProposal))

	_, err := s.SaveAttachment(doc, "OPP-0099", "quote.pdf", []byte("x"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAttachFile(t *testing.T) {
	s := newTestStore(t)
	doc := testutil.Doc(testutil.Opp(1, model.StageProposal))

	src := filepath.Join(t.TempDir(), "report.txt")
	if err := os.WriteFile(src, []byte("report body"), 0o644); err != nil {
		t.Fatal(err)
	}

	att, err := s.AttachFile(doc, "OPP-0001", src)
	if err != nil {
		t.Fatalf("AttachFile failed: %v", err)
	}
	if att.Name != "report.txt" || att.Size != int64(len("report body")) {
		t.Errorf("unexpected metadata: %+v", att)
	}
}
