package authz

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	owner := uuid.MustParse("6f1c1a2e-83c4-4c4b-9d6a-0e3b5a7c9d11")
	other := uuid.MustParse("0b9f4d3c-2a1e-4f6b-8c7d-5e4a3b2c1d00")
	subject := owner.String()

	tests := []struct {
		name    string
		subject string
		isAdmin bool
		own     Ownership
		want    Decision
	}{
		{"no subject", "", false, None(), Unauthorized},
		{"no subject even as admin", "", true, Object(owner), Unauthorized},
		{"object owned by subject", subject, false, Object(owner), Allow},
		{"object owned by someone else", subject, false, Object(other), Forbid},
		{"object owned by someone else, admin", subject, true, Object(other), Allow},
		{"bare id equal to subject", subject, false, BareID(subject), Allow},
		{"bare id equal up to uuid casing", subject, false, BareID(strings.ToUpper(subject)), Allow},
		{"bare id of someone else", subject, false, BareID(other.String()), Forbid},
		{"bare id of someone else, admin", subject, true, BareID(other.String()), Allow},
		{"bare id non-uuid match", "service-account", false, BareID("Service-Account"), Allow},
		{"bare id non-uuid mismatch", "service-account", false, BareID("other-account"), Forbid},
		{"bare id uuid against non-uuid subject", "service-account", false, BareID(other.String()), Forbid},
		{"no ownership context", subject, false, None(), Forbid},
		{"no ownership context, admin", subject, true, None(), Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.subject, tt.isAdmin, tt.own))
		})
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "forbid", Forbid.String())
	assert.Equal(t, "unauthorized", Unauthorized.String())
}
