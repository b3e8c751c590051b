package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/srivarthinivelu/tender-poc/pkg/config"
	"github.com/srivarthinivelu/tender-poc/pkg/model"
	"github.com/srivarthinivelu/tender-poc/pkg/store"
)

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(accessible bool, groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if accessible || !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// RunCreateWizard walks through creating an opportunity on the command
// line, without entering the full-screen UI. Returns the created record.
func RunCreateWizard(st *store.Store, cfg config.Config, doc *model.Document) (model.Opportunity, error) {
	var (
		name        = ""
		account     = ""
		stage       = string(model.StageQualification)
		probability = "10"
		revenue     = "0"
		closeDate   = ""
		nextStep    = ""
		leadSource  = "Web"
		private     = false
	)

	stageOpts := make([]huh.Option[string], len(model.Stages))
	for i, s := range model.Stages {
		stageOpts[i] = huh.NewOption(string(s), string(s))
	}

	form := newForm(cfg.UI.Accessible,
		huh.NewGroup(
			huh.NewInput().
				Title("Opportunity name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Account").
				Value(&account),
			huh.NewSelect[string]().
				Title("Stage").
				Options(stageOpts...).
				Value(&stage),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Probability %").
				Value(&probability).
				Validate(validateIntRange(0, 100)),
			huh.NewInput().
				Title("Expected revenue").
				Value(&revenue).
				Validate(validateNonNegativeFloat),
			huh.NewInput().
				Title("Close date (YYYY-MM-DD)").
				Value(&closeDate),
			huh.NewInput().
				Title("Next step").
				Value(&nextStep),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Lead source").
				Options(
					huh.NewOption("Web", "Web"),
					huh.NewOption("Phone Inquiry", "Phone Inquiry"),
					huh.NewOption("Partner Referral", "Partner Referral"),
					huh.NewOption("Purchased List", "Purchased List"),
					huh.NewOption("Other", "Other"),
				).
				Value(&leadSource),
			huh.NewConfirm().
				Title("Mark as private?").
				Value(&private),
		),
	)

	if err := form.Run(); err != nil {
		return model.Opportunity{}, err
	}

	prob, _ := strconv.Atoi(strings.TrimSpace(probability))
	rev, _ := strconv.ParseFloat(strings.TrimSpace(revenue), 64)
	parsedStage, _ := model.ParseStage(stage)

	opp := model.Opportunity{
		ID:              store.NextID(doc),
		Name:            strings.TrimSpace(name),
		AccountName:     strings.TrimSpace(account),
		Private:         private,
		ExpectedRevenue: rev,
		CloseDate:       strings.TrimSpace(closeDate),
		NextStep:        strings.TrimSpace(nextStep),
		Stage:           parsedStage,
		Probability:     prob,
		LeadSource:      leadSource,
		CreatedBy:       cfg.Operator,
		LastModifiedBy:  cfg.Operator,
		Products:        []model.Product{},
		Attachments:     []model.Attachment{},
	}
	if err := st.Append(doc, opp); err != nil {
		return model.Opportunity{}, err
	}
	return opp, nil
}

func validateIntRange(lo, hi int) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("must be a whole number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func validateNonNegativeFloat(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if f < 0 {
		return fmt.Errorf("must be non-negative")
	}
	return nil
}
