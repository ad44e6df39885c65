package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/slatesocial/site/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistration() *model.Registration {
	return &model.Registration{
		ID:        "r1",
		FullName:  "Lynn Hill",
		GymName:   "Nose Climbing",
		Email:     "lynn@example.com",
		CreatedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestEmailDevModeLogsOnly(t *testing.T) {
	svc := NewEmailService("re_key", "Slate <hi@slatesocial.com>", "aud", "team@slatesocial.com", "https://slatesocial.com", "Slate Social", true)
	assert.Nil(t, svc.client)

	ctx := context.Background()
	reg := sampleRegistration()
	require.NoError(t, svc.SendRegistrationConfirmation(ctx, reg))
	require.NoError(t, svc.SendRegistrationNotification(ctx, reg))
	require.NoError(t, svc.AddContact(ctx, reg))
}

func TestEmailNotConfigured(t *testing.T) {
	svc := NewEmailService("", "Slate <hi@slatesocial.com>", "", "team@slatesocial.com", "https://slatesocial.com", "Slate Social", false)

	err := svc.SendRegistrationConfirmation(context.Background(), sampleRegistration())
	assert.ErrorIs(t, err, errEmailNotConfigured)
	assert.ErrorIs(t, svc.AddContact(context.Background(), sampleRegistration()), errEmailNotConfigured)
}

func TestEmailNotificationDisabled(t *testing.T) {
	svc := NewEmailService("", "Slate <hi@slatesocial.com>", "", "", "https://slatesocial.com", "Slate Social", false)
	assert.NoError(t, svc.SendRegistrationNotification(context.Background(), sampleRegistration()))
}

func TestRegistrationTemplates(t *testing.T) {
	subject, body := registrationConfirmationTemplate("Lynn Hill", "Nose Climbing", "https://slatesocial.com/", "Slate Social")
	assert.Equal(t, "You're on the Slate Social beta list", subject)
	assert.True(t, strings.HasPrefix(body, "Hi Lynn,"))
	assert.Contains(t, body, "Nose Climbing")
	assert.Contains(t, body, "https://slatesocial.com/blog")

	reg := sampleRegistration()
	subject, body = registrationNotificationTemplate(reg, "Slate Social")
	assert.Equal(t, "[Slate Social] New beta registration: Nose Climbing", subject)
	assert.Contains(t, body, "Email: lynn@example.com")
	assert.Contains(t, body, "Date:  2025-03-14 09:30 UTC")
	assert.True(t, strings.HasSuffix(body, "(none)"))

	assert.Equal(t, "there", firstName("   "))
}
