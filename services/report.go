package services

import (
	"fmt"
	"sort"
	"strings"

	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

// ReportService renders the cleaning diagnostics collected across a
// pipeline run.
type ReportService struct {
	logger *utils.Logger
}

// NewReportService creates a ReportService with the given logger.
func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Print writes the full cleaning report to stdout.
func (s *ReportService) Print(r *models.CleaningReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🧹 LISTINGS CLEANING REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Raw listings read      : \033[1m%d\033[0m\n", r.RawRecords)
	fmt.Printf("  Join misses            : \033[1m%d\033[0m\n", r.JoinMisses)
	fmt.Printf("  Coercion failures      : \033[1m%d\033[0m\n", r.CoercionFails)
	fmt.Printf("  Clean listings written : \033[1;32m%d\033[0m\n", r.FinalRecords)
	fmt.Println()

	// Missing values
	fmt.Printf("\033[1;33m  Missing Values (pre-deletion audit)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	printCounts(r.NullsByColumn)
	fmt.Printf("  Records dropped        : \033[1;31m%d\033[0m\n\n", r.DroppedMissing)

	// Rules
	fmt.Printf("\033[1;33m  Consistency Rules\033[0m\n")
	fmt.Printf("  %s\n", thin)
	printCounts(r.RuleViolations)
	fmt.Printf("  Removed by rules       : \033[1;31m%d\033[0m\n", r.DroppedByRules)
	fmt.Printf("  guests_included clamped: \033[1m%d\033[0m\n", r.GuestsClamped)
	fmt.Printf("  Above price ceiling    : \033[1;31m%d\033[0m\n\n", r.DroppedCeiling)

	// Outliers
	fmt.Printf("\033[1;33m  Tukey Fence Imputation\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, o := range r.Outliers {
		fmt.Printf("  %-18s fences [%.2f, %.2f] median %.2f — imputed \033[1m%d\033[0m/%d\n",
			o.Attribute, o.LowerFence, o.UpperFence, o.Median, o.Flagged, o.Total)
	}
	fmt.Println()

	// Transform diagnostic
	t := r.Transform
	fmt.Printf("\033[1;33m  Box-Cox / Z-Score Diagnostic (price_duplicate)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Lambda        : \033[1m%.2f\033[0m\n", t.Lambda)
	fmt.Printf("  Max |z|       : %.2f\n", t.MaxAbsZScore)
	fmt.Printf("  Flagged |z|>%.0f : \033[1m%d\033[0m of %d (report only, nothing removed)\n",
		t.ZThreshold, t.Flagged, t.Total)

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// printCounts renders a name->count map sorted by count descending.
func printCounts(counts map[string]int) {
	type entry struct {
		name  string
		count int
	}
	var entries []entry
	for name, count := range counts {
		if count > 0 {
			entries = append(entries, entry{name, count})
		}
	}
	if len(entries) == 0 {
		fmt.Printf("  (none)\n")
		return
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	for _, e := range entries {
		fmt.Printf("  %-24s %d\n", e.name, e.count)
	}
}
