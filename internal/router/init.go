package router

import (
	"github.com/oksasatya/medico-api/internal/application"
	"github.com/oksasatya/medico-api/internal/container"
	handlers "github.com/oksasatya/medico-api/internal/interface/http"
	"github.com/oksasatya/medico-api/internal/router/modules"
	"github.com/oksasatya/medico-api/pkg/validation"
)

// Services are the application services built from a container.
type Services struct {
	Users         *application.UserService
	Appointments  *application.AppointmentService
	Prescriptions *application.PrescriptionService
	Chat          *application.ChatService
	Notifications *application.NotificationService
}

// BuildServices wires the application layer. Optional clients that are nil
// are passed as untyped nil so the services can test for them.
func BuildServices(c *container.Container) Services {
	var email application.EmailPublisher
	if c.Email != nil && c.Config.MailSendEnabled {
		email = c.Email
	}
	var avatars application.AvatarStorage
	if c.Avatars != nil {
		avatars = c.Avatars
	}

	notifications := application.NewNotificationService(
		c.Notifications,
		c.Users,
		c.Broker(),
		email,
		application.Brand{
			AppName:     c.Config.AppName,
			CompanyName: c.Config.CompanyName,
			SupportURL:  c.Config.SupportURL,
		},
		c.Logger,
	)

	return Services{
		Users:         application.NewUserService(c.Users, c.JWT, avatars, c.Doctors, c.Logger),
		Appointments:  application.NewAppointmentService(c.Appointments, c.Users, notifications, c.Logger),
		Prescriptions: application.NewPrescriptionService(c.Prescriptions, c.Appointments, notifications, c.Logger),
		Chat:          application.NewChatService(c.Chat, c.Users, notifications, c.Logger),
		Notifications: notifications,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, c *container.Container) {
	validation.Init()
	svc := BuildServices(c)
	auth := modules.Auth{Users: c.Users, JWT: c.JWT, Redis: c.Redis, Logger: c.Logger}

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(c.Ping, c.Logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, c.Logger), auth, c.Config.LoginRateLimit))
	r.Add(modules.NewAppointmentModule(handlers.NewAppointmentHandler(svc.Appointments, c.Logger), auth))
	r.Add(modules.NewPrescriptionModule(handlers.NewPrescriptionHandler(svc.Prescriptions, c.Logger), auth))
	r.Add(modules.NewChatModule(handlers.NewChatHandler(svc.Chat, c.Logger), auth))
	r.Add(modules.NewNotificationModule(handlers.NewNotificationHandler(svc.Notifications, c.Logger), auth))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
