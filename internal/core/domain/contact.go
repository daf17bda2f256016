package domain

import "time"

type ContactStatus string

const (
	ContactNew        ContactStatus = "new"
	ContactInProgress ContactStatus = "in-progress"
	ContactResolved   ContactStatus = "resolved"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactInProgress, ContactResolved:
		return true
	}
	return false
}

// ContactPreferences records the channels a visitor agreed to be reached on.
type ContactPreferences struct {
	Phone    bool `json:"contactPhone"`
	WhatsApp bool `json:"contactWhatsApp"`
	Email    bool `json:"contactEmail"`
}

// Contact is a message submitted through the public contact form.
type Contact struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Interest    string             `json:"interest"`
	Message     string             `json:"message"`
	Preferences ContactPreferences `json:"contactPreferences"`
	Status      ContactStatus      `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
