package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/infrastructure/memory"
	"github.com/oksasatya/medico-api/pkg/apperror"
	"github.com/oksasatya/medico-api/pkg/helpers"
)

type testEnv struct {
	store         *memory.Store
	notifications *NotificationService
	users         *UserService
	appointments  *AppointmentService
	prescriptions *PrescriptionService
	chat          *ChatService

	doctor, otherDoctor, patient, otherPatient, pharmacist *entity.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	logger := helpers.NewDiscardLogger()
	jwt, err := helpers.NewJWTManager("test-secret", time.Hour)
	require.NoError(t, err)

	notifications := NewNotificationService(store.Notifications(), store.Users(), nil, nil, Brand{AppName: "Medico"}, logger)
	e := &testEnv{
		store:         store,
		notifications: notifications,
		users:         NewUserService(store.Users(), jwt, nil, nil, logger),
		appointments:  NewAppointmentService(store.Appointments(), store.Users(), notifications, logger),
		prescriptions: NewPrescriptionService(store.Prescriptions(), store.Appointments(), notifications, logger),
		chat:          NewChatService(store.Chat(), store.Users(), notifications, logger),
	}
	e.doctor = e.addUser(t, "Kasyfil", "kasyfil@medico.test", entity.RoleDoctor)
	e.otherDoctor = e.addUser(t, "Ayu", "ayu@medico.test", entity.RoleDoctor)
	e.patient = e.addUser(t, "Bryan", "bryan@medico.test", entity.RolePatient)
	e.otherPatient = e.addUser(t, "Eve", "eve@medico.test", entity.RolePatient)
	e.pharmacist = e.addUser(t, "Sari", "sari@medico.test", entity.RolePharmacist)
	return e
}

// addUser skips bcrypt; these users never log in.
func (e *testEnv) addUser(t *testing.T, name, email string, role entity.Role) *entity.User {
	t.Helper()
	u := &entity.User{Name: name, Email: email, PasswordHash: "-", Role: role}
	require.NoError(t, e.store.Users().Create(context.Background(), u))
	return u
}

func (e *testEnv) inbox(t *testing.T, u *entity.User) []entity.Notification {
	t.Helper()
	list, err := e.store.Notifications().ListByUser(context.Background(), u.ID)
	require.NoError(t, err)
	return list
}

func (e *testEnv) book(t *testing.T) *entity.Appointment {
	t.Helper()
	a, err := e.appointments.Create(context.Background(), e.patient, CreateAppointmentInput{
		Date:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Complaint: "Headache",
		DoctorID:  e.doctor.ID,
	})
	require.NoError(t, err)
	return a
}

func requireAppErr(t *testing.T, err error, kind apperror.Kind, msg string) {
	t.Helper()
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, kind, ae.Kind)
	if msg != "" {
		assert.Equal(t, msg, ae.Message)
	}
}
