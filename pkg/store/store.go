// Package store persists the tender document as a single pretty-printed
// JSON file and provides the record-level operations on it: lookup, id
// allocation, stage filtering, attachment storage, and the submit-tender
// transition.
//
// Reads are tolerant: a missing, unreadable, or misshapen file loads as an
// empty document. Writes rewrite the whole file; a write failure is the
// only storage error surfaced to callers.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/srivarthinivelu/tender-poc/pkg/debug"
	"github.com/srivarthinivelu/tender-poc/pkg/model"
)

// Default storage locations, relative to the working directory.
const (
	DefaultDataPath  = "data/tenders.json"
	DefaultAttachDir = "data/attachments"
)

// ErrNotFound is returned by operations that name a record id absent from
// the document.
var ErrNotFound = errors.New("opportunity not found")

// Store binds the document file and the attachments directory.
type Store struct {
	DataPath  string
	AttachDir string
}

// New creates a Store for the given paths, applying defaults for empty ones.
func New(dataPath, attachDir string) *Store {
	if dataPath == "" {
		dataPath = DefaultDataPath
	}
	if attachDir == "" {
		attachDir = DefaultAttachDir
	}
	return &Store{DataPath: dataPath, AttachDir: attachDir}
}

// Load reads the persisted document. Absent, unreadable, or malformed
// storage yields an empty document; Load never fails.
func (s *Store) Load() *model.Document {
	doc := &model.Document{}
	defer doc.Normalize()

	data, err := os.ReadFile(s.DataPath)
	if err != nil {
		debug.Log("load %s: %v (starting empty)", s.DataPath, err)
		return doc
	}

	var parsed model.Document
	if err := json.Unmarshal(data, &parsed); err != nil {
		debug.Log("load %s: malformed document: %v (starting empty)", s.DataPath, err)
		return doc
	}

	*doc = parsed
	return doc
}

// Save rewrites the whole document file, pretty-printed for diffing.
// Parent directories are created as needed.
func (s *Store) Save(doc *model.Document) error {
	doc.Normalize()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}

	if dir := filepath.Dir(s.DataPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	if err := os.WriteFile(s.DataPath, data, 0o644); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// GetByID returns a pointer to the first opportunity with the given id,
// or nil when no record matches.
func GetByID(doc *model.Document, id string) *model.Opportunity {
	for i := range doc.Opportunities {
		if doc.Opportunities[i].ID == id {
			return &doc.Opportunities[i]
		}
	}
	return nil
}

// NextID allocates the next opportunity id. It scans existing ids for a
// trailing numeric suffix, skipping any that do not parse, and formats
// max+1 (or 1 for an empty document) as OPP-%04d.
func NextID(doc *model.Document) string {
	max := 0
	seen := false
	for _, o := range doc.Opportunities {
		suffix := o.ID
		if i := strings.LastIndex(suffix, "-"); i >= 0 {
			suffix = suffix[i+1:]
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if !seen || n > max {
			max = n
			seen = true
		}
	}
	next := 1
	if seen {
		next = max + 1
	}
	return fmt.Sprintf("OPP-%04d", next)
}

// Append adds a new opportunity to the document and persists it.
// The caller is expected to have assigned the id via NextID.
func (s *Store) Append(doc *model.Document, opp model.Opportunity) error {
	if err := opp.Validate(); err != nil {
		return err
	}
	if opp.Products == nil {
		opp.Products = []model.Product{}
	}
	if opp.Attachments == nil {
		opp.Attachments = []model.Attachment{}
	}
	doc.Opportunities = append(doc.Opportunities, opp)
	return s.Save(doc)
}

// AddProduct appends a product line to the named opportunity and persists.
func (s *Store) AddProduct(doc *model.Document, id string, p model.Product) error {
	opp := GetByID(doc, id)
	if opp == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if p.Quantity < 0 || p.Price < 0 {
		return fmt.Errorf("product quantity and price must be non-negative")
	}
	opp.Products = append(opp.Products, p)
	return s.Save(doc)
}
