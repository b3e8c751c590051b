package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/srivarthinivelu/tender-poc/pkg/model"
)

// GeneratorConfig controls pipeline fixture generation.
type GeneratorConfig struct {
	Seed     int64         // Random seed for determinism (0 = use current time)
	IDStart  int           // First numeric id suffix (default: 1)
	StageMix []model.Stage // Stage distribution (nil = all Qualification)
	Accounts []string      // Account pool (nil = built-in sample accounts)
}

// DefaultGeneratorConfig returns a config suitable for most tests.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:     42,
		IDStart:  1,
		StageMix: model.Stages,
	}
}

var sampleAccounts = []string{
	"City of Utrecht", "Port Authority", "Rail Infra BV", "Coastal Works",
	"Provincie Zuid", "Harbor Logistics", "Delta Energy", "Metro Transit",
}

// Generator produces deterministic opportunity fixtures for tests that
// need more records than hand-written ones.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// NewGenerator creates a Generator with the given config.
func NewGenerator(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.IDStart < 1 {
		cfg.IDStart = 1
	}
	if len(cfg.StageMix) == 0 {
		cfg.StageMix = []model.Stage{model.StageQualification}
	}
	if len(cfg.Accounts) == 0 {
		cfg.Accounts = sampleAccounts
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Opportunities returns n generated records with sequential ids.
func (g *Generator) Opportunities(n int) []model.Opportunity {
	opps := make([]model.Opportunity, n)
	for i := range opps {
		opps[i] = g.next(g.cfg.IDStart + i)
	}
	return opps
}

// Pipeline returns a document with the given number of records per stage,
// in funnel order, ids allocated sequentially.
func (g *Generator) Pipeline(perStage map[model.Stage]int) *model.Document {
	var opps []model.Opportunity
	idx := g.cfg.IDStart
	for _, stage := range model.Stages {
		for i := 0; i < perStage[stage]; i++ {
			o := g.next(idx)
			o.Stage = stage
			opps = append(opps, o)
			idx++
		}
	}
	return Doc(opps...)
}

func (g *Generator) next(idx int) model.Opportunity {
	stage := g.cfg.StageMix[g.rng.Intn(len(g.cfg.StageMix))]
	account := g.cfg.Accounts[g.rng.Intn(len(g.cfg.Accounts))]

	o := model.Opportunity{
		ID:              OppID(idx),
		Name:            fmt.Sprintf("Generated tender %d", idx),
		AccountName:     account,
		ExpectedRevenue: float64(g.rng.Intn(500)+1) * 1000,
		CloseDate:       "2026-12-31",
		Stage:           stage,
		Probability:     g.rng.Intn(101),
		CreatedBy:       "Tender Desk",
		LastModifiedBy:  "Tender Desk",
		Products:        []model.Product{},
		Attachments:     []model.Attachment{},
	}

	// Occasional product lines so list/detail code sees non-empty ones.
	for p := 0; p < g.rng.Intn(3); p++ {
		o.Products = append(o.Products, model.Product{
			Name:     fmt.Sprintf("Line item %d", p+1),
			Quantity: g.rng.Intn(20) + 1,
			Price:    float64(g.rng.Intn(9000)+100) / 10,
			Date:     "2026-06-30",
		})
	}
	return o
}
