package email

// Email types, also used as prompt-config keys in the tenant settings and as
// email_log entry types.
const (
	TypePlaquette = "plaquette"
	TypeRdvValide = "rdv_valide"
	TypeRappelRdv = "rappel_rdv"
)

// Substitution variables available to all templates:
//
//	{{prenom}}        prospect first name
//	{{nom}}           prospect last name
//	{{conseiller}}    advisor display name
//	{{organisation}}  tenant name
//	{{date_rdv}}      meeting time, formatted in the business timezone
//	{{qualification}} prospect qualification label

// DefaultPrompt returns the built-in prompt for an email type. Tenants
// override any subset of the fields through their settings.
func DefaultPrompt(emailType string) Prompt {
	switch emailType {
	case TypePlaquette:
		return Prompt{
			SystemPrompt: "Tu es l'assistant d'un conseiller en gestion de patrimoine. " +
				"Rédige un email court et professionnel en français. " +
				"Réponds avec une première ligne \"Objet: ...\" suivie du corps du message.",
			UserTemplate: "Rédige un email pour {{prenom}} {{nom}} accompagnant l'envoi de notre plaquette de présentation. " +
				"Le conseiller est {{conseiller}} ({{organisation}}).",
			Subject: "Votre plaquette {{organisation}}",
			Body: "Bonjour {{prenom}},\n\n" +
				"Veuillez trouver ci-joint notre plaquette de présentation.\n\n" +
				"Bien cordialement,\n{{conseiller}}",
		}
	case TypeRdvValide:
		return Prompt{
			SystemPrompt: "Tu es l'assistant d'un conseiller en gestion de patrimoine. " +
				"Rédige un email de confirmation de rendez-vous, chaleureux et professionnel, en français. " +
				"Réponds avec une première ligne \"Objet: ...\" suivie du corps du message.",
			UserTemplate: "Rédige un email confirmant le rendez-vous du {{date_rdv}} avec {{prenom}} {{nom}}. " +
				"Le conseiller est {{conseiller}} ({{organisation}}).",
			Subject: "Confirmation de votre rendez-vous",
			Body: "Bonjour {{prenom}},\n\n" +
				"Nous vous confirmons votre rendez-vous du {{date_rdv}} avec {{conseiller}}.\n\n" +
				"Bien cordialement,\n{{organisation}}",
		}
	case TypeRappelRdv:
		return Prompt{
			Subject: "Rappel : votre rendez-vous du {{date_rdv}}",
			Body: "Bonjour {{prenom}},\n\n" +
				"Nous vous rappelons votre rendez-vous du {{date_rdv}} avec {{conseiller}}.\n\n" +
				"Bien cordialement,\n{{organisation}}",
		}
	default:
		return Prompt{}
	}
}
