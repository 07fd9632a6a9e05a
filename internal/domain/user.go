package domain

import "time"

// UserRole is the closed set of account roles on the platform.
type UserRole string

const (
	RoleStudent    UserRole = "Student"
	RoleProfessor  UserRole = "Professor"
	RoleUniversity UserRole = "University"
)

// ValidRole reports whether r is one of the known account roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleUniversity:
		return true
	}
	return false
}

// User represents an account on the platform. Credentials are never part of
// this struct; they live inside the account repository.
type User struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Handle      string   `json:"handle"`
	Email       string   `json:"email"`
	DateOfBirth string   `json:"dateOfBirth"` // YYYY-MM-DD
	AvatarURL   string   `json:"avatarUrl"`
	BannerURL   string   `json:"bannerUrl,omitempty"`
	Role        UserRole `json:"role"`
	Bio         string   `json:"bio,omitempty"`
	Followers   int      `json:"followers"`
	Following   int      `json:"following"`
}

// DateOfBirthLayout is the wire format for account birth dates.
const DateOfBirthLayout = "2006-01-02"

// Age returns full calendar years between birth and today, decremented by one
// when the birthday has not yet occurred in today's year.
func Age(birth, today time.Time) int {
	years := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}
	return years
}
