package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNotification(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	data := NewNotificationData("Bryan", "bryan@medico.test", "PRESCRIPTION",
		"Prescription Ready", "Your prescription is ready for pickup",
		WithTime(at), WithBrand("Medico", "Medico Health", "https://help.medico.test"))

	subject, text, html, err := Render(Notification, data)
	require.NoError(t, err)

	assert.Equal(t, "Prescription Ready", strings.TrimSpace(subject))
	assert.Contains(t, text, "Your prescription is ready for pickup")
	assert.Contains(t, text, "01 March 2025, 09:30")
	assert.Contains(t, text, "https://help.medico.test")
	assert.Contains(t, html, `<a href="https://help.medico.test">`)
	assert.Contains(t, html, "Medico Health")
}

func TestRenderDefaultsAndEscaping(t *testing.T) {
	data := NewNotificationData("", "x@medico.test", "CHAT", "New Message", "<script>alert(1)</script>")

	_, text, html, err := Render(Notification, data)
	require.NoError(t, err)
	assert.Contains(t, text, "Hi there,")
	assert.Contains(t, text, "Open Medico")
	assert.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "fb", defaultFn("fb", ""))
	assert.Equal(t, "fb", defaultFn("fb", nil))
	assert.Equal(t, "fb", defaultFn("fb", 0))
	assert.Equal(t, "v", defaultFn("fb", "v"))
	assert.Equal(t, 3, defaultFn("fb", 3))
}
