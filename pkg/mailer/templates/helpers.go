package templates

import "time"

// Option pattern
type Option func(*NotificationData)

func WithTime(t time.Time) Option {
	return func(d *NotificationData) { d.Time = t.UTC().Format("02 January 2006, 15:04") }
}

func WithBrand(appName, companyName, supportURL string) Option {
	return func(d *NotificationData) {
		d.AppName = appName
		d.CompanyName = companyName
		d.SupportURL = supportURL
	}
}

// NewNotificationData builds the template data for a dispatched notification.
func NewNotificationData(name, email, typ, title, message string, opts ...Option) map[string]any {
	d := NotificationData{
		Name:    name,
		Email:   email,
		Type:    typ,
		Title:   title,
		Message: message,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}
