package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/medico-api/pkg/mailer/templates"
)

type sent struct {
	to, subject, text, html string
}

type fakeSender struct {
	err  error
	sent []sent
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{to, subject, text, html})
	return nil
}

func encode(t *testing.T, job EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestProcessRendersTemplate(t *testing.T) {
	s := &fakeSender{}
	w := &Worker{Sender: s}

	data := templates.NewNotificationData("Bryan", "bryan@medico.test", "APPOINTMENT",
		"Appointment Approved", "Your appointment on March 1, 2025 has been approved")
	err := w.Process(context.Background(), encode(t, EmailJob{
		To:       "bryan@medico.test",
		Template: templates.Notification,
		Data:     data,
	}))
	require.NoError(t, err)

	require.Len(t, s.sent, 1)
	assert.Equal(t, "bryan@medico.test", s.sent[0].to)
	assert.Equal(t, "Appointment Approved", s.sent[0].subject)
	assert.Contains(t, s.sent[0].text, "Hi Bryan,")
	assert.Contains(t, s.sent[0].html, "has been approved")
}

func TestProcessPlainJob(t *testing.T) {
	s := &fakeSender{}
	w := &Worker{Sender: s}

	err := w.Process(context.Background(), encode(t, EmailJob{To: "a@b.co", Subject: "Hi", Text: "body"}))
	require.NoError(t, err)
	assert.Equal(t, "body", s.sent[0].text)
}

func TestProcessBadJobs(t *testing.T) {
	w := &Worker{Sender: &fakeSender{}}
	ctx := context.Background()

	assert.ErrorIs(t, w.Process(ctx, []byte("{")), ErrBadJob)
	assert.ErrorIs(t, w.Process(ctx, encode(t, EmailJob{Subject: "x"})), ErrBadJob)
	assert.ErrorIs(t, w.Process(ctx, encode(t, EmailJob{To: "a@b.co"})), ErrBadJob)
	assert.ErrorIs(t, w.Process(ctx, encode(t, EmailJob{To: "a@b.co", Template: "missing"})), ErrBadJob)
}

func TestProcessSendFailureIsRetryable(t *testing.T) {
	boom := errors.New("mailgun down")
	w := &Worker{Sender: &fakeSender{err: boom}}

	err := w.Process(context.Background(), encode(t, EmailJob{To: "a@b.co", Subject: "Hi", Text: "x"}))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrBadJob)
}
