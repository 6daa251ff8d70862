// Package authz implements the creator-or-admin access decision shared by
// every mutating endpoint. Call sites state explicitly where the ownership
// information lives (an owned object's creator id, a bare id argument, or
// nothing at all); the guard itself is a pure function over that input.
package authz

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Forbid means the caller is authenticated but neither creator nor admin.
	Forbid Decision = iota
	// Allow means the caller may proceed.
	Allow
	// Unauthorized means no authenticated subject was presented.
	Unauthorized
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Unauthorized:
		return "unauthorized"
	default:
		return "forbid"
	}
}

type ownershipKind int

const (
	kindNone ownershipKind = iota
	kindObject
	kindBareID
)

// Ownership carries the ownership evidence a call site has for the request:
// the creator id of a loaded or submitted resource, a conventionally named id
// argument, or nothing.
type Ownership struct {
	kind    ownershipKind
	creator uuid.UUID
	raw     string
}

// Object is the ownership context for requests carrying a creator-owned
// resource (upserts, deletes of a loaded row).
func Object(creatorID uuid.UUID) Ownership {
	return Ownership{kind: kindObject, creator: creatorID}
}

// BareID is the ownership context for requests that pass the owner only as an
// id argument (private reads on behalf of a user). Both UUID and plain string
// forms are accepted.
func BareID(value string) Ownership {
	return Ownership{kind: kindBareID, raw: value}
}

// None is the ownership context for requests with nothing to compare against;
// only admins pass.
func None() Ownership {
	return Ownership{kind: kindNone}
}

// Authorize decides whether subject may act on the resource described by own.
// It never mutates anything and always returns a decision; every decision is
// logged with the compared identities.
func Authorize(subject string, isAdmin bool, own Ownership) Decision {
	if subject == "" {
		slog.Warn("authorization rejected: no authenticated subject")
		return Unauthorized
	}

	var (
		isCreator bool
		compared  = "none"
	)

	switch own.kind {
	case kindObject:
		compared = own.creator.String()
		isCreator = identifiersEqual(own.creator.String(), subject)
	case kindBareID:
		compared = own.raw
		if id, err := uuid.Parse(own.raw); err == nil {
			isCreator = identifiersEqual(id.String(), subject)
		} else {
			isCreator = identifiersEqual(own.raw, subject)
		}
	case kindNone:
		if isAdmin {
			slog.Info("authorization granted via admin role", "subject", subject)
			return Allow
		}
		slog.Warn("authorization denied: no ownership context", "subject", subject)
		return Forbid
	}

	if isCreator || isAdmin {
		slog.Info("authorization granted",
			"subject", subject, "creator", compared, "admin", isAdmin)
		return Allow
	}

	slog.Warn("authorization denied: subject is not creator or admin",
		"subject", subject, "creator", compared)
	return Forbid
}

// identifiersEqual compares identifiers case-insensitively, canonicalizing
// UUID text forms so that brace/case variants of the same id still match.
func identifiersEqual(a, b string) bool {
	if ua, err := uuid.Parse(a); err == nil {
		if ub, err := uuid.Parse(b); err == nil {
			return ua == ub
		}
		return false
	}
	return strings.EqualFold(a, b)
}
