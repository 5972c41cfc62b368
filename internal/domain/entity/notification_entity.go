package entity

import "time"

type NotificationType string

const (
	NotificationAppointment  NotificationType = "APPOINTMENT"
	NotificationPrescription NotificationType = "PRESCRIPTION"
	NotificationChat         NotificationType = "CHAT"
)

// Notification is an informational record owned by exactly one user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}
