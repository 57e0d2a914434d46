// internal/app/system/roles/roles.go
// Package roles maps between the fixed role universe's numeric ids and
// names. The universe is closed: admin, member, and adopter, with stable
// ids that match the seeded reference data.
package roles

import (
	"fmt"
	"strings"
)

const (
	Admin   = "admin"
	Member  = "member"
	Adopter = "adopter"
)

const (
	AdminID   = 1
	MemberID  = 2
	AdopterID = 3
)

// Name returns the role name for a role id. Unknown ids map to "adopter":
// the least-privileged role. Callers must treat an unrecognized id as
// granting adopter access and nothing more.
func Name(id int) string {
	switch id {
	case AdminID:
		return Admin
	case MemberID:
		return Member
	case AdopterID:
		return Adopter
	default:
		return Adopter
	}
}

// ID returns the role id for a role name. Names outside the closed set are
// an error; role names arrive from clients (e.g. invitation payloads) and
// must be validated, not defaulted.
func ID(name string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Admin:
		return AdminID, nil
	case Member:
		return MemberID, nil
	case Adopter:
		return AdopterID, nil
	default:
		return 0, fmt.Errorf("unknown role %q", name)
	}
}

// IsValid reports whether name is one of the three defined roles.
func IsValid(name string) bool {
	_, err := ID(name)
	return err == nil
}

// IsValidID reports whether id is one of the three defined role ids.
func IsValidID(id int) bool {
	return id == AdminID || id == MemberID || id == AdopterID
}
