package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveIdentity_ValidToken(t *testing.T) {
	token := signToken(t, "user-42", "mina@example.com", time.Hour)

	identity := ResolveIdentity("Bearer "+token, "", testSecret)

	assert.Equal(t, IdentityAuthenticated, identity.Kind)
	assert.Equal(t, "user-42", identity.UserID)
	assert.Equal(t, "mina@example.com", identity.Email)
}

func TestResolveIdentity_ValidTokenKeepsProvidedEmailWhenClaimEmpty(t *testing.T) {
	token := signToken(t, "user-42", "", time.Hour)

	identity := ResolveIdentity("Bearer "+token, "contact@example.com", testSecret)

	assert.Equal(t, IdentityAuthenticated, identity.Kind)
	assert.Equal(t, "contact@example.com", identity.Email)
}

func TestResolveIdentity_ExpiredTokenFallsBackToEmail(t *testing.T) {
	token := signToken(t, "user-42", "mina@example.com", -time.Hour)

	identity := ResolveIdentity("Bearer "+token, "contact@example.com", testSecret)

	// Mauvais token = dégradation silencieuse, jamais une erreur
	assert.Equal(t, IdentityEmail, identity.Kind)
	assert.Empty(t, identity.UserID)
	assert.Equal(t, "contact@example.com", identity.Email)
}

func TestResolveIdentity_GarbageTokenFallsBackToGuest(t *testing.T) {
	identity := ResolveIdentity("Bearer n.importe.quoi", "", testSecret)

	assert.Equal(t, IdentityGuest, identity.Kind)
	assert.Empty(t, identity.UserID)
	assert.Empty(t, identity.Email)
}

func TestResolveIdentity_NoTokenWithEmail(t *testing.T) {
	identity := ResolveIdentity("", "contact@example.com", testSecret)

	assert.Equal(t, IdentityEmail, identity.Kind)
	assert.Equal(t, "contact@example.com", identity.Email)
}

func TestResolveIdentity_Guest(t *testing.T) {
	identity := ResolveIdentity("", "", testSecret)

	assert.Equal(t, IdentityGuest, identity.Kind)
}
