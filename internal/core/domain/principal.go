package domain

import "strconv"

// Role is the single role tag carried by every principal and token.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal is the authenticated actor executing an action.
// It is a closed union: UserPrincipal, AdminPrincipal, FallbackAdmin.
type Principal interface {
	Role() Role
	// SubjectID is the token subject: the persisted record id for stored
	// identities, or the configured sentinel for the fallback admin.
	SubjectID() string
}

// UserPrincipal is an ordinary citizen identity.
type UserPrincipal struct {
	ID uint
}

func (p UserPrincipal) Role() Role { return RoleUser }

func (p UserPrincipal) SubjectID() string {
	return strconv.FormatUint(uint64(p.ID), 10)
}

// AdminPrincipal is a persisted administrator identity.
type AdminPrincipal struct {
	ID uint
}

func (p AdminPrincipal) Role() Role { return RoleAdmin }

func (p AdminPrincipal) SubjectID() string {
	return strconv.FormatUint(uint64(p.ID), 10)
}

// FallbackAdmin is the single non-persisted administrator identity,
// authenticated against fixed configuration values. It has no stored id;
// Sentinel is the configured subject-id marker embedded in its tokens.
type FallbackAdmin struct {
	Sentinel string
}

func (p FallbackAdmin) Role() Role { return RoleAdmin }

func (p FallbackAdmin) SubjectID() string { return p.Sentinel }

// AdminID returns the persisted admin id behind a principal, if any.
// The fallback admin has none, so writes that would record it as an
// assignee must be skipped.
func AdminID(p Principal) (uint, bool) {
	admin, ok := p.(AdminPrincipal)
	if !ok {
		return 0, false
	}
	return admin.ID, true
}
