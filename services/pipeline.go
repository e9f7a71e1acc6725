package services

import (
	"fmt"

	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

// Pipeline runs the full cleaning sequence: join, coerce, derive, scan,
// rules, outlier imputation, transform diagnostic. Each stage consumes
// the whole record set and hands the (possibly narrowed) set to the next;
// no stage ever reintroduces a removed record.
type Pipeline struct {
	logger *utils.Logger

	joiner      *Joiner
	coercer     *Coercer
	deriver     *Deriver
	scanner     *Scanner
	rules       *RuleEngine
	outliers    *OutlierEngine
	transformer *Transformer
}

// NewPipeline wires up all stages with a shared logger.
func NewPipeline(logger *utils.Logger) *Pipeline {
	return &Pipeline{
		logger:      logger,
		joiner:      NewJoiner(logger),
		coercer:     NewCoercer(logger),
		deriver:     NewDeriver(logger),
		scanner:     NewScanner(logger),
		rules:       NewRuleEngine(logger),
		outliers:    NewOutlierEngine(logger),
		transformer: NewTransformer(logger),
	}
}

// Run executes the pipeline over one input snapshot. Structural problems
// with the whole input abort the run; per-record issues never do.
func (p *Pipeline) Run(rows []*models.RawListing, refs []*models.LGARef) ([]*models.Listing, *models.CleaningReport, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("pipeline: empty listings input")
	}
	if len(refs) == 0 {
		return nil, nil, fmt.Errorf("pipeline: empty LGA reference table")
	}

	report := &models.CleaningReport{RawRecords: len(rows)}

	joined := p.joiner.Join(rows, refs)
	report.JoinMisses = JoinMissCount(joined)

	listings := p.coercer.Coerce(joined)
	report.CoercionFails = p.coercer.Failures()

	p.deriver.Derive(listings)

	report.NullsByColumn = p.scanner.Audit(listings)
	before := len(listings)
	listings = p.scanner.Scan(listings)
	report.DroppedMissing = before - len(listings)

	before = len(listings)
	listings = p.rules.Apply(listings)
	report.RuleViolations = p.rules.Violations()
	report.GuestsClamped = p.rules.Clamped()
	report.DroppedCeiling = p.rules.Ceilinged()
	report.DroppedByRules = before - len(listings) - report.DroppedCeiling

	if len(listings) == 0 {
		return nil, nil, fmt.Errorf("pipeline: no listings survived cleaning")
	}

	report.Outliers = p.outliers.Impute(listings)
	report.Transform = p.transformer.Analyze(listings)
	report.FinalRecords = len(listings)

	p.logger.Info("[pipeline] Done: %d raw -> %d clean listings", report.RawRecords, report.FinalRecords)
	return listings, report, nil
}
