package qualification

import (
	"strings"
	"testing"

	"ultron_backend/internal/organizations/repository"
	prospectrepo "ultron_backend/internal/prospects/repository"
)

func int64Ptr(v int64) *int64 { return &v }
func strPtr(s string) *string { return &s }

func TestQualifyHotProspect(t *testing.T) {
	svc := New()
	needs := "Je souhaite préparer ma succession et optimiser la transmission de mon patrimoine immobilier à mes enfants."
	prospect := prospectrepo.Prospect{
		EstimatedWealth: int64Ptr(1_200_000),
		AnnualIncome:    int64Ptr(180_000),
		ExpressedNeeds:  &needs,
	}

	result := svc.Qualify(prospect, repository.ScoringConfig{})
	if result.Label != "hot" {
		t.Fatalf("expected hot, got %q (score %d)", result.Label, result.Score)
	}
	if result.Score < 70 {
		t.Fatalf("hot label requires score >= default threshold, got %d", result.Score)
	}
	if !strings.Contains(result.Justification, "patrimoine") || !strings.Contains(result.Justification, "besoins exprimés") {
		t.Fatalf("justification should name the contributing factors: %q", result.Justification)
	}
}

func TestQualifyColdProspectWithoutData(t *testing.T) {
	svc := New()

	result := svc.Qualify(prospectrepo.Prospect{}, repository.ScoringConfig{})
	if result.Label != "cold" {
		t.Fatalf("expected cold, got %q", result.Label)
	}
	if result.Score != 0 {
		t.Fatalf("expected zero score without any data, got %d", result.Score)
	}
	if !strings.Contains(result.Justification, "aucun critère renseigné") {
		t.Fatalf("unexpected justification: %q", result.Justification)
	}
}

func TestQualifyWarmProspect(t *testing.T) {
	svc := New()
	prospect := prospectrepo.Prospect{
		EstimatedWealth: int64Ptr(300_000),
		AnnualIncome:    int64Ptr(80_000),
	}

	result := svc.Qualify(prospect, repository.ScoringConfig{})
	if result.Label != "warm" {
		t.Fatalf("expected warm, got %q (score %d)", result.Label, result.Score)
	}
}

func TestQualifyIsDeterministic(t *testing.T) {
	svc := New()
	needs := "Je cherche un placement en assurance vie pour préparer ma retraite."
	prospect := prospectrepo.Prospect{
		EstimatedWealth: int64Ptr(600_000),
		AnnualIncome:    int64Ptr(95_000),
		ExpressedNeeds:  &needs,
	}

	first := svc.Qualify(prospect, repository.ScoringConfig{})
	second := svc.Qualify(prospect, repository.ScoringConfig{})
	if first != second {
		t.Fatalf("two runs over the same prospect diverged: %+v vs %+v", first, second)
	}
}

func TestQualifyRespectsTenantThresholds(t *testing.T) {
	svc := New()
	prospect := prospectrepo.Prospect{
		EstimatedWealth: int64Ptr(300_000),
		AnnualIncome:    int64Ptr(80_000),
	}

	// The same prospect becomes hot when the tenant lowers its threshold.
	result := svc.Qualify(prospect, repository.ScoringConfig{HotThreshold: 30, WarmThreshold: 10})
	if result.Label != "hot" {
		t.Fatalf("expected hot under a lowered threshold, got %q (score %d)", result.Label, result.Score)
	}
}

func TestQualifyNeedsKeywords(t *testing.T) {
	svc := New()

	generic := strPtr("Je veux des informations.")
	succession := strPtr("Je veux préparer ma succession.")

	base := svc.Qualify(prospectrepo.Prospect{ExpressedNeeds: generic}, repository.ScoringConfig{})
	boosted := svc.Qualify(prospectrepo.Prospect{ExpressedNeeds: succession}, repository.ScoringConfig{})
	if boosted.Score <= base.Score {
		t.Fatalf("a succession need should score higher than a generic one: %d vs %d", boosted.Score, base.Score)
	}
}

func TestScoringConfigDefaults(t *testing.T) {
	cfg := repository.ScoringConfig{}.WithDefaults()
	if cfg.WealthWeight != 1.0 || cfg.IncomeWeight != 1.0 || cfg.NeedsWeight != 1.0 {
		t.Fatalf("unexpected default weights: %+v", cfg)
	}
	if cfg.HotThreshold != 70 || cfg.WarmThreshold != 40 {
		t.Fatalf("unexpected default thresholds: %+v", cfg)
	}

	custom := repository.ScoringConfig{WealthWeight: 0.5, HotThreshold: 80}.WithDefaults()
	if custom.WealthWeight != 0.5 || custom.HotThreshold != 80 {
		t.Fatalf("explicit values must be kept: %+v", custom)
	}
}
