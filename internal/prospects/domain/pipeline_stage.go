package domain

const (
	StageNouveau     = "nouveau"
	StageContact     = "contact"
	StageEnAttente   = "en_attente"
	StageRelance     = "relance"
	StageRdvValide   = "rdv_valide"
	StageRdvConfirme = "rdv_confirme"
	StageGagne       = "gagne"
	StagePerdu       = "perdu"
)

var knownStages = map[string]struct{}{
	StageNouveau:     {},
	StageContact:     {},
	StageEnAttente:   {},
	StageRelance:     {},
	StageRdvValide:   {},
	StageRdvConfirme: {},
	StageGagne:       {},
	StagePerdu:       {},
}

func IsKnownStage(stage string) bool {
	_, ok := knownStages[stage]
	return ok
}

// IsWaitingStage reports whether a stage belongs to the waiting set, where a
// brochure follow-up can be triggered.
func IsWaitingStage(stage string) bool {
	return stage == StageEnAttente || stage == StageRelance
}

// IsMeetingStage reports whether a stage belongs to the meeting set, where a
// meeting confirmation or reminder applies.
func IsMeetingStage(stage string) bool {
	return stage == StageRdvValide || stage == StageRdvConfirme
}

// Stage transition subtypes: a secondary discriminator on a stage move that
// distinguishes different reasons for landing on the same stage.
const (
	SubtypePlaquette     = "plaquette"
	SubtypeRappelDiffere = "rappel_differe"
)

// Qualification labels. QualificationNone is the sentinel for a prospect the
// scoring engine has not classified yet.
const (
	QualificationHot  = "hot"
	QualificationWarm = "warm"
	QualificationCold = "cold"
	QualificationNone = "unqualified"
)

// IsQualified reports whether a qualification label is an actual
// classification rather than empty or the unqualified sentinel.
func IsQualified(label string) bool {
	return label != "" && label != QualificationNone
}
