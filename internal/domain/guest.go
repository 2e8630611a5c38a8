package domain

import "fmt"

// Guest represents a single registered attendee of an event.
// swagger:model Guest
type Guest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewGuest returns a Guest with the given name and email. Values are stored
// as given; empty strings are accepted.
func NewGuest(name, email string) Guest {
	return Guest{Name: name, Email: email}
}

// String renders the guest as `Guest: <name> (<email>)`.
func (g Guest) String() string {
	return fmt.Sprintf("Guest: %s (%s)", g.Name, g.Email)
}
