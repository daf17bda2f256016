package domain

import (
	"strings"
	"time"
)

// NotificationType enumerates the domain events that produce notifications.
type NotificationType string

const (
	NotifyPropertyAdded   NotificationType = "property-added"
	NotifyPropertyUpdated NotificationType = "property-updated"
	NotifyPropertyDeleted NotificationType = "property-deleted"
	NotifyAgentAdded      NotificationType = "agent-added"
	NotifyAgentUpdated    NotificationType = "agent-updated"
	NotifyAgentDeleted    NotificationType = "agent-deleted"
	NotifyAdminAdded      NotificationType = "admin-added"
	NotifyAdminUpdated    NotificationType = "admin-updated"
	NotifyAdminDeleted    NotificationType = "admin-deleted"
	NotifySystem          NotificationType = "system"
)

var notificationTypes = map[NotificationType]struct{}{
	NotifyPropertyAdded:   {},
	NotifyPropertyUpdated: {},
	NotifyPropertyDeleted: {},
	NotifyAgentAdded:      {},
	NotifyAgentUpdated:    {},
	NotifyAgentDeleted:    {},
	NotifyAdminAdded:      {},
	NotifyAdminUpdated:    {},
	NotifyAdminDeleted:    {},
	NotifySystem:          {},
}

// Valid reports whether t is one of the enumerated event kinds.
func (t NotificationType) Valid() bool {
	_, ok := notificationTypes[t]
	return ok
}

// Presentation returns the icon and color a client renders for t. It depends
// on t alone.
func (t NotificationType) Presentation() (icon, color string) {
	entity, action, _ := strings.Cut(string(t), "-")

	switch entity {
	case "property":
		icon = "home"
	case "agent":
		icon = "user"
	case "admin":
		icon = "shield"
	default:
		icon = "bell"
	}

	switch action {
	case "added":
		color = "green"
	case "updated":
		color = "blue"
	case "deleted":
		color = "red"
	default:
		color = "gray"
	}
	return icon, color
}

// EntityRef points at the record that triggered a notification.
type EntityRef struct {
	ID   string
	Name string
}

// Notification is addressed to exactly one recipient.
type Notification struct {
	ID            string           `json:"id"`
	Recipient     string           `json:"recipient"`
	Type          NotificationType `json:"type"`
	Message       string           `json:"message"`
	EntityID      string           `json:"entityId,omitempty"`
	EntityName    string           `json:"entityName,omitempty"`
	Read          bool             `json:"read"`
	CreatedBy     string           `json:"createdBy"`
	CreatedByName string           `json:"createdByName,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}
