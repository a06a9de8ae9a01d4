package domain

import "strings"

// Colleague is a person row on the board and an assignable target for tasks.
type Colleague struct {
	ID         string
	Name       string
	Position   string
	Department string
	Team       string
	Initials   string
}

// AvatarInitials returns the stored initials, deriving them from the name
// when unset.
func (c Colleague) AvatarInitials() string {
	if c.Initials != "" {
		return c.Initials
	}
	var b strings.Builder
	for _, part := range strings.Fields(c.Name) {
		if b.Len() >= 2 {
			break
		}
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}
