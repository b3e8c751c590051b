// Package model defines the tender domain types: opportunities, their
// products and attachments, and the document container persisted to disk.
package model

import (
	"fmt"
	"strings"
)

// Stage is the pipeline status of an opportunity.
type Stage string

const (
	StageQualification Stage = "Qualification"
	StageProposal      Stage = "Proposal"
	StageNegotiation   Stage = "Negotiation"
	StageSubmitted     Stage = "Submitted"
	StageClosedWon     Stage = "Closed Won"
	StageClosedLost    Stage = "Closed Lost"
)

// Stages lists all pipeline stages in funnel order.
var Stages = []Stage{
	StageQualification,
	StageProposal,
	StageNegotiation,
	StageSubmitted,
	StageClosedWon,
	StageClosedLost,
}

// ParseStage matches s against the known stages, trimming whitespace and
// ignoring case. Returns false for anything unrecognized.
func ParseStage(s string) (Stage, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, st := range Stages {
		if strings.ToLower(string(st)) == needle {
			return st, true
		}
	}
	return "", false
}

// Product is a line item on an opportunity. Products have no id; they are
// identified by position and are append-only.
type Product struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Date     string  `json:"date"`
}

// Attachment records a file stored under the attachments directory.
// Name doubles as the storage key, so a second upload of the same
// filename overwrites the first on disk.
type Attachment struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	Path       string `json:"path"`
	UploadedOn string `json:"uploaded_on"`
}

// Opportunity is a single tender record tracked through the pipeline.
// ID is immutable once assigned (format OPP-%04d).
type Opportunity struct {
	ID                         string       `json:"id"`
	Name                       string       `json:"name"`
	AccountName                string       `json:"account_name"`
	Private                    bool         `json:"private"`
	ExpectedRevenue            float64      `json:"expected_revenue"`
	CloseDate                  string       `json:"close_date"`
	NextStep                   string       `json:"next_step"`
	Stage                      Stage        `json:"stage"`
	Probability                int          `json:"probability"`
	Type                       string       `json:"type"`
	LeadSource                 string       `json:"lead_source"`
	PrimaryCampaignSource      string       `json:"primary_campaign_source"`
	MainCompetitors            string       `json:"main_competitors"`
	OrderNumber                string       `json:"order_number"`
	CurrentGenerators          string       `json:"current_generators"`
	TrackingNumber             string       `json:"tracking_number"`
	DeliveryInstallationStatus string       `json:"delivery_installation_status"`
	CreatedBy                  string       `json:"created_by"`
	LastModifiedBy             string       `json:"last_modified_by"`
	Products                   []Product    `json:"products"`
	Attachments                []Attachment `json:"attachments"`
}

// Validate checks field-level constraints. Records loaded from disk are
// accepted as-is; this guards values entered through the creation form.
func (o *Opportunity) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("opportunity has no id")
	}
	if o.ExpectedRevenue < 0 {
		return fmt.Errorf("opportunity %s: expected revenue must be non-negative", o.ID)
	}
	if o.Probability < 0 || o.Probability > 100 {
		return fmt.Errorf("opportunity %s: probability %d out of range 0-100", o.ID, o.Probability)
	}
	for i, p := range o.Products {
		if p.Quantity < 0 {
			return fmt.Errorf("opportunity %s: product %d has negative quantity", o.ID, i)
		}
		if p.Price < 0 {
			return fmt.Errorf("opportunity %s: product %d has negative price", o.ID, i)
		}
	}
	return nil
}

// Document is the top-level persisted container. Opportunities is always
// present as a list, even when empty.
type Document struct {
	Opportunities []Opportunity `json:"opportunities"`
}

// Normalize ensures slice fields are non-nil so the persisted form always
// carries explicit empty lists.
func (d *Document) Normalize() {
	if d.Opportunities == nil {
		d.Opportunities = []Opportunity{}
	}
	for i := range d.Opportunities {
		if d.Opportunities[i].Products == nil {
			d.Opportunities[i].Products = []Product{}
		}
		if d.Opportunities[i].Attachments == nil {
			d.Opportunities[i].Attachments = []Attachment{}
		}
	}
}
