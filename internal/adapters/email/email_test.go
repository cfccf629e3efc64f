package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timevents/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, MailerConfig{FromAddress: "no-reply@example.com", FromName: "Tim Events"}, discardLogger())

	err := m.Send(context.Background(), "alice@example.com", "Hello", "<p>hi</p>", "")
	require.NoError(t, err)

	require.NotNil(t, client.input)
	assert.Equal(t, "Tim Events <no-reply@example.com>", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"alice@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "Hello", aws.ToString(client.input.Message.Subject.Data))
	assert.Equal(t, "<p>hi</p>", aws.ToString(client.input.Message.Body.Html.Data))
	assert.Nil(t, client.input.Message.Body.Text)
}

func TestSESMailer_Send_error(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	m := newSESMailer(client, MailerConfig{FromAddress: "no-reply@example.com"}, discardLogger())

	err := m.Send(context.Background(), "alice@example.com", "Hello", "", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
	assert.Equal(t, "no-reply@example.com", aws.ToString(client.input.Source))
}

func TestNewMailer(t *testing.T) {
	m, err := NewMailer(MailerConfig{Provider: "noop"}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &noopMailer{}, m)
	assert.NoError(t, m.Send(context.Background(), "a@example.com", "s", "h", "t"))

	m, err = NewMailer(MailerConfig{Provider: "carrier-pigeon"}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &noopMailer{}, m)

	m, err = NewMailer(MailerConfig{Provider: "ses", SES: SESConfig{Region: "eu-west-1"}}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &sesMailer{}, m)

	_, err = NewMailer(MailerConfig{Provider: "ses"}, discardLogger())
	assert.Error(t, err)
}

func TestTemplateRenderer_Render_welcome(t *testing.T) {
	r := NewTemplateRenderer()
	subject, html, text, err := r.Render("welcome", &domain.WelcomeMessageEmailData{
		Email:     "alice@example.com",
		Username:  "alice",
		FirstName: "<Alice>",
	})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Tim Events, alice", subject)
	assert.Contains(t, html, "&lt;Alice&gt;", "html body must escape user input")
	assert.Contains(t, text, "Hi <Alice>,")
}

func TestTemplateRenderer_Render_falls_back_to_username(t *testing.T) {
	r := NewTemplateRenderer()
	_, _, text, err := r.Render("welcome", &domain.WelcomeMessageEmailData{Username: "bob"})
	require.NoError(t, err)
	assert.Contains(t, text, "Hi bob,")
}

func TestTemplateRenderer_Render_unknown(t *testing.T) {
	r := NewTemplateRenderer()
	_, _, _, err := r.Render("missing", nil)
	assert.Error(t, err)
}
