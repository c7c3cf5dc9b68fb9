package qualification

import (
	"fmt"
	"math"
	"strings"

	"ultron_backend/internal/organizations/repository"
	"ultron_backend/internal/prospects/domain"
	prospectrepo "ultron_backend/internal/prospects/repository"
)

const (
	// Maximum contribution from each factor before weighting.
	// Keeps weighted scores within the 0-100 range with default weights.
	maxWealthContribution = 40.0
	maxIncomeContribution = 35.0
	maxNeedsContribution  = 25.0
)

// Result holds the qualification output for a prospect.
type Result struct {
	Label         string
	Score         int
	Justification string
}

// Service computes prospect qualifications from declared financials and
// expressed needs, weighted by the tenant's scoring configuration.
type Service struct{}

func New() *Service {
	return &Service{}
}

// Qualify scores a prospect and maps the score to a qualification label
// using the tenant thresholds. The justification is deterministic so that
// two runs over the same prospect produce the same audit trail.
func (s *Service) Qualify(prospect prospectrepo.Prospect, cfg repository.ScoringConfig) Result {
	cfg = cfg.WithDefaults()

	wealth := scoreWealth(prospect.EstimatedWealth) * cfg.WealthWeight
	income := scoreIncome(prospect.AnnualIncome) * cfg.IncomeWeight
	needs := scoreNeeds(prospect.ExpressedNeeds) * cfg.NeedsWeight

	score := clampScore(wealth + income + needs)

	label := domain.QualificationCold
	switch {
	case score >= cfg.HotThreshold:
		label = domain.QualificationHot
	case score >= cfg.WarmThreshold:
		label = domain.QualificationWarm
	}

	return Result{
		Label:         label,
		Score:         score,
		Justification: justification(label, score, wealth, income, needs),
	}
}

// scoreWealth evaluates the declared estimated wealth in euros.
// Brackets follow the typical segmentation used by wealth advisory firms.
func scoreWealth(wealth *int64) float64 {
	if wealth == nil {
		return 0
	}
	val := *wealth
	switch {
	case val >= 1_000_000:
		return maxWealthContribution
	case val >= 500_000:
		return 32
	case val >= 250_000:
		return 24
	case val >= 100_000:
		return 16
	case val >= 50_000:
		return 8
	default:
		return 2
	}
}

// scoreIncome evaluates declared annual income in euros.
func scoreIncome(income *int64) float64 {
	if income == nil {
		return 0
	}
	val := *income
	switch {
	case val >= 150_000:
		return maxIncomeContribution
	case val >= 100_000:
		return 28
	case val >= 70_000:
		return 20
	case val >= 45_000:
		return 12
	case val >= 25_000:
		return 5
	default:
		return 0
	}
}

// needsKeywordTable maps expressed-needs keywords to their scores.
// A longer, more specific need signals stronger intent.
var needsKeywordTable = []struct {
	keywords []string
	score    float64
}{
	{[]string{"succession", "transmission", "héritage", "heritage"}, 10},
	{[]string{"retraite", "per ", "pension"}, 8},
	{[]string{"immobilier", "scpi", "pinel", "lmnp"}, 8},
	{[]string{"défiscalisation", "defiscalisation", "impôt", "impot", "fiscal"}, 7},
	{[]string{"assurance vie", "assurance-vie"}, 6},
	{[]string{"placement", "investir", "investissement", "épargne", "epargne"}, 5},
}

// scoreNeeds evaluates the free-text expressed needs field.
func scoreNeeds(needs *string) float64 {
	if needs == nil {
		return 0
	}
	text := strings.TrimSpace(*needs)
	if text == "" {
		return 0
	}

	score := 0.0

	// Length indicates effort and seriousness.
	switch {
	case len(text) >= 200:
		score += 8
	case len(text) >= 80:
		score += 5
	default:
		score += 2
	}

	lower := strings.ToLower(text)
	for _, entry := range needsKeywordTable {
		if containsAny(lower, entry.keywords) {
			score += entry.score
			break
		}
	}

	return clampFloat(score, 0, maxNeedsContribution)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// justification builds the deterministic French explanation stored next to
// the qualification for advisor review.
func justification(label string, score int, wealth, income, needs float64) string {
	var parts []string
	if wealth > 0 {
		parts = append(parts, fmt.Sprintf("patrimoine %.0f pts", wealth))
	}
	if income > 0 {
		parts = append(parts, fmt.Sprintf("revenus %.0f pts", income))
	}
	if needs > 0 {
		parts = append(parts, fmt.Sprintf("besoins exprimés %.0f pts", needs))
	}
	detail := "aucun critère renseigné"
	if len(parts) > 0 {
		detail = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("Qualification %s (score %d/100) : %s.", label, score, detail)
}

func clampScore(value float64) int {
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
