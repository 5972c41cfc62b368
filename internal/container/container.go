// Package container holds the infrastructure built once in main and handed
// to the router. Optional clients stay nil when not configured.
package container

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/medico-api/config"
	repo "github.com/oksasatya/medico-api/internal/domain/repository"
	"github.com/oksasatya/medico-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/medico-api/internal/infrastructure/postgres"
	"github.com/oksasatya/medico-api/internal/infrastructure/realtime"
	"github.com/oksasatya/medico-api/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	JWT    *helpers.JWTManager

	// Optional clients
	Redis   *redis.Client
	Avatars *helpers.GCSUploader
	Doctors repo.DoctorIndex
	Email   *helpers.RabbitPublisher

	Users         repo.UserRepository
	Appointments  repo.AppointmentRepository
	Prescriptions repo.PrescriptionRepository
	Chat          repo.ChatRepository
	Notifications repo.NotificationRepository

	// Ping reports store health.
	Ping func(ctx context.Context) error
}

func New(cfg *config.Config, logger *logrus.Logger, jwt *helpers.JWTManager) *Container {
	return &Container{Config: cfg, Logger: logger, JWT: jwt}
}

// UsePostgres wires every repository to the pool.
func (c *Container) UsePostgres(pool *pgxpool.Pool) {
	c.Users = pginfra.NewUserRepository(pool)
	c.Appointments = pginfra.NewAppointmentRepository(pool)
	c.Prescriptions = pginfra.NewPrescriptionRepository(pool)
	c.Chat = pginfra.NewChatRepository(pool)
	c.Notifications = pginfra.NewNotificationRepository(pool)
	c.Ping = pool.Ping
}

// UseMemory wires every repository to a process-local store.
func (c *Container) UseMemory(s *memory.Store) {
	c.Users = s.Users()
	c.Appointments = s.Appointments()
	c.Prescriptions = s.Prescriptions()
	c.Chat = s.Chat()
	c.Notifications = s.Notifications()
	c.Ping = func(context.Context) error { return s.Ping() }
}

// Broker picks Redis pub/sub when available so streams work across instances.
func (c *Container) Broker() repo.NotificationBroker {
	if c.Redis != nil {
		return realtime.NewRedisBroker(c.Redis, c.Logger)
	}
	return realtime.NewLocalBroker()
}
