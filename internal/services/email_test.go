package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timevents/internal/domain"
)

func TestEmailService_SendWelcomeMessage(t *testing.T) {
	ctx := context.Background()
	data := &domain.WelcomeMessageEmailData{Email: "alice@example.com", Username: "alice"}

	t.Run("success", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewEmailService(mailer, &fakeRenderer{}, discardLogger())
		require.NoError(t, svc.SendWelcomeMessage(ctx, data))
		assert.Equal(t, "alice@example.com", mailer.to)
		assert.Equal(t, "subject:welcome", mailer.subject)
		assert.Equal(t, "<p>welcome</p>", mailer.html)
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{}, discardLogger())
		assert.Error(t, svc.SendWelcomeMessage(ctx, nil))
	})

	t.Run("render error", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewEmailService(mailer, &fakeRenderer{err: errors.New("bad template")}, discardLogger())
		assert.Error(t, svc.SendWelcomeMessage(ctx, data))
		assert.Empty(t, mailer.to)
	})

	t.Run("send error", func(t *testing.T) {
		sendErr := errors.New("throttled")
		svc := NewEmailService(&fakeMailer{err: sendErr}, &fakeRenderer{}, discardLogger())
		assert.ErrorIs(t, svc.SendWelcomeMessage(ctx, data), sendErr)
	})
}
