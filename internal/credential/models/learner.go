package models

import "strings"

// Learner is the host platform's view of a user, as far as credentials care.
type Learner struct {
	ID                LearnerID
	Username          string
	Email             string
	ProfileName       string
	FirstName         string
	LastName          string
	Active            bool
	HasUsablePassword bool
}

// DisplayName prefers the profile name and falls back to "first last".
func (l Learner) DisplayName() string {
	if name := strings.TrimSpace(l.ProfileName); name != "" {
		return name
	}
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

// Notifiable reports whether the learner should receive a generation email.
func (l Learner) Notifiable() bool {
	return l.Active && l.HasUsablePassword
}
