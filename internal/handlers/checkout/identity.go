package checkout

import (
	"log"

	"hanbloom_back_end/internal/middleware"
)

type IdentityKind int

const (
	IdentityAuthenticated IdentityKind = iota
	IdentityEmail
	IdentityGuest
)

// Identity : identité effective de l'acheteur, résolue par une chaîne de
// priorité ordonnée (token valide → email fourni → invité)
type Identity struct {
	Kind   IdentityKind
	UserID string
	Email  string
}

// ResolveIdentity résout l'identité de l'acheteur. Un token invalide ou
// expiré n'est jamais fatal : on loggue et on dégrade en silence vers le
// maillon suivant — un mauvais token ne doit pas empêcher de payer.
func ResolveIdentity(authHeader, providedEmail, secret string) Identity {
	if authHeader != "" {
		userID, email, err := middleware.ParseBearer(authHeader, secret)
		if err == nil {
			if email == "" {
				email = providedEmail
			}
			return Identity{Kind: IdentityAuthenticated, UserID: userID, Email: email}
		}
		log.Printf("⚠️ Token invalide, checkout invité: %v", err)
	}

	if providedEmail != "" {
		return Identity{Kind: IdentityEmail, Email: providedEmail}
	}

	return Identity{Kind: IdentityGuest}
}
