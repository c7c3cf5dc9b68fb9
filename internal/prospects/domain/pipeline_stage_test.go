package domain

import "testing"

func TestStageSets(t *testing.T) {
	waiting := []string{StageEnAttente, StageRelance}
	meeting := []string{StageRdvValide, StageRdvConfirme}
	neither := []string{StageNouveau, StageContact, StageGagne, StagePerdu, "inconnu"}

	for _, stage := range waiting {
		if !IsWaitingStage(stage) {
			t.Fatalf("%q should be a waiting stage", stage)
		}
		if IsMeetingStage(stage) {
			t.Fatalf("%q should not be a meeting stage", stage)
		}
	}
	for _, stage := range meeting {
		if !IsMeetingStage(stage) {
			t.Fatalf("%q should be a meeting stage", stage)
		}
		if IsWaitingStage(stage) {
			t.Fatalf("%q should not be a waiting stage", stage)
		}
	}
	for _, stage := range neither {
		if IsWaitingStage(stage) || IsMeetingStage(stage) {
			t.Fatalf("%q should belong to neither set", stage)
		}
	}
}

func TestIsKnownStage(t *testing.T) {
	for _, stage := range []string{StageNouveau, StageContact, StageEnAttente, StageRelance, StageRdvValide, StageRdvConfirme, StageGagne, StagePerdu} {
		if !IsKnownStage(stage) {
			t.Fatalf("%q should be known", stage)
		}
	}
	if IsKnownStage("archived") {
		t.Fatal("unknown stage accepted")
	}
}

func TestIsQualified(t *testing.T) {
	for _, label := range []string{QualificationHot, QualificationWarm, QualificationCold} {
		if !IsQualified(label) {
			t.Fatalf("%q should count as qualified", label)
		}
	}
	if IsQualified("") || IsQualified(QualificationNone) {
		t.Fatal("empty and sentinel labels are not qualifications")
	}
}
