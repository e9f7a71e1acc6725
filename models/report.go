package models

// AttributeOutlierSummary records what the outlier engine did to one
// numeric attribute.
type AttributeOutlierSummary struct {
	Attribute  string
	Q1         float64
	Q3         float64
	LowerFence float64
	UpperFence float64
	Median     float64
	Flagged    int
	Total      int
}

// TransformSummary holds the diagnostic output of the Box-Cox / z-score
// stage. Nothing in the dataset is changed by this stage.
type TransformSummary struct {
	Lambda       float64
	Mean         float64
	StdDev       float64
	Flagged      int
	Total        int
	ZThreshold   float64
	FlaggedIDs   []string
	MaxAbsZScore float64
}

// CleaningReport accumulates per-stage diagnostics across a pipeline run.
type CleaningReport struct {
	RawRecords    int
	JoinMisses    int
	CoercionFails int

	// NullsByColumn is the missing-value audit taken before whole-record
	// deletion, keyed by column name.
	NullsByColumn  map[string]int
	DroppedMissing int

	RuleViolations map[string]int // rule name -> flagged records
	DroppedByRules int
	GuestsClamped  int
	DroppedCeiling int

	Outliers []AttributeOutlierSummary

	Transform TransformSummary

	FinalRecords int
}
