package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ultron_backend/internal/credentials"
	"ultron_backend/internal/prospects/repository"
)

// resolveSending determines the acting advisor and resolves SMTP credentials
// for them, shared by both workflows.
//
// Advisor preference: the caller's user first, then the prospect's long-term
// assignee. The caller may be a different advisor performing the stage move
// on a colleague's prospect, and the email should come from whoever acted.
//
// Credential fallback: an expired personal grant is not fatal. The shared
// organization grant is tried next and its use is reported as a warning so
// the advisor learns their token needs renewing. Only when that fallback
// also fails does the workflow abort, carrying the original expiry message.
func (e *Engine) resolveSending(ctx context.Context, org Organization, prospect repository.Prospect, user *User) (credentials.Resolved, string, error) {
	var advisorID *uuid.UUID
	if user != nil {
		advisorID = &user.ID
	} else if prospect.AssignedTo != nil {
		advisorID = prospect.AssignedTo
	}

	resolved, err := e.deps.Credentials.Resolve(ctx, org.ID, advisorID)
	if err == nil {
		return resolved, "", nil
	}

	var expired *credentials.GrantExpiredError
	if !errors.As(err, &expired) {
		return credentials.Resolved{}, "", err
	}

	warning := fmt.Sprintf("l'accès email de %s a expiré, envoi via le compte partagé de l'organisation", expired.UserEmail)

	resolved, fallbackErr := e.deps.Credentials.Resolve(ctx, org.ID, nil)
	if fallbackErr != nil {
		return credentials.Resolved{}, "", fmt.Errorf("aucun identifiant utilisable: %s", expired.Error())
	}

	return resolved, warning, nil
}
