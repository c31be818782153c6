// Package model contains domain models/data structures shared across layers.
// Workflow rules live in internal/claim; this package only carries data and derived values.
package model

// Role is the workflow role a user acts under.
type Role string

const (
	RoleLecturer    Role = "Lecturer"
	RoleCoordinator Role = "Coordinator"
	RoleManager     Role = "AcademicManager"
	RoleHR          Role = "HR"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleLecturer, RoleCoordinator, RoleManager, RoleHR:
		return true
	}
	return false
}

// IsReviewer reports whether r takes part in the review chain.
func (r Role) IsReviewer() bool {
	return r == RoleCoordinator || r == RoleManager || r == RoleHR
}
