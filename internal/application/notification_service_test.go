package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/internal/infrastructure/realtime"
	"github.com/oksasatya/medico-api/pkg/apperror"
	"github.com/oksasatya/medico-api/pkg/mailer"
	"github.com/oksasatya/medico-api/pkg/mailer/templates"
)

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID string) ([]entity.Notification, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]entity.Notification)
	return list, args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type fakeEmail struct {
	jobs []mailer.EmailJob
}

func (f *fakeEmail) PublishJSON(_ context.Context, body any) error {
	f.jobs = append(f.jobs, body.(mailer.EmailJob))
	return nil
}

func TestNotifyInsertFailureIsSwallowed(t *testing.T) {
	e := newTestEnv(t)
	logger, hook := test.NewNullLogger()

	repo := &mockNotificationRepo{}
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	e.notifications.Repo = repo
	e.notifications.Logger = logger

	failedBefore := notificationsFailed.Value()

	a, err := e.appointments.Create(context.Background(), e.patient, CreateAppointmentInput{
		Date: time.Now(), Complaint: "Cough", DoctorID: e.doctor.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)

	repo.AssertExpectations(t)
	assert.Equal(t, failedBefore+1, notificationsFailed.Value())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "notification insert failed", hook.LastEntry().Message)
}

func TestNotifyOutlivesCallerContext(t *testing.T) {
	e := newTestEnv(t)
	repo := &mockNotificationRepo{}
	repo.On("Create", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), mock.Anything).
		Return(nil).Once()
	e.notifications.Repo = repo

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e.notifications.Notify(ctx, e.patient.ID, entity.NotificationChat, "New Message", "hi")

	repo.AssertExpectations(t)
}

func TestNotifyFansOut(t *testing.T) {
	e := newTestEnv(t)
	broker := realtime.NewLocalBroker()
	email := &fakeEmail{}
	e.notifications.Broker = broker
	e.notifications.Email = email

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	live, err := e.notifications.Stream(ctx, e.patient)
	require.NoError(t, err)

	sentBefore := notificationsSent.Value()
	e.notifications.Notify(context.Background(), e.patient.ID, entity.NotificationPrescription, "Prescription Ready", "Your prescription is ready for pickup")
	assert.Equal(t, sentBefore+1, notificationsSent.Value())

	select {
	case n := <-live:
		assert.Equal(t, "Prescription Ready", n.Title)
		assert.NotEmpty(t, n.ID)
	case <-time.After(time.Second):
		t.Fatal("live notification not delivered")
	}

	require.Len(t, email.jobs, 1)
	job := email.jobs[0]
	assert.Equal(t, "bryan@medico.test", job.To)
	assert.Equal(t, templates.Notification, job.Template)
	assert.Equal(t, "Bryan", job.Data["Name"])
	assert.Equal(t, "Medico", job.Data["AppName"])
}

func TestMarkRead(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.notifications.Notify(ctx, e.patient.ID, entity.NotificationChat, "a", "a")
	e.notifications.Notify(ctx, e.patient.ID, entity.NotificationChat, "b", "b")

	list, err := e.notifications.List(ctx, e.patient)
	require.NoError(t, err)
	require.Len(t, list, 2)

	err = e.notifications.MarkRead(ctx, e.otherPatient, list[0].ID)
	requireAppErr(t, err, apperror.KindNotFound, "Notification not found")

	require.NoError(t, e.notifications.MarkRead(ctx, e.patient, list[0].ID))
	require.NoError(t, e.notifications.MarkRead(ctx, e.patient, list[0].ID))

	n, err := e.notifications.MarkAllRead(ctx, e.patient)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	list, err = e.notifications.List(ctx, e.patient)
	require.NoError(t, err)
	for _, item := range list {
		assert.True(t, item.IsRead)
	}
}

func TestStreamWithoutBroker(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.notifications.Stream(context.Background(), e.patient)
	requireAppErr(t, err, apperror.KindUnavailable, "")
}
