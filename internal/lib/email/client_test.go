package email

import (
	"bytes"
	"errors"
	"testing"

	"github.com/deppfellow/yamdb/internal/config"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "msg_1"}, nil
}

func TestRenderEveryTemplate(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			html, err := Render(name, data)
			require.NoError(t, err)
			for _, v := range data {
				assert.Contains(t, html, v)
			}
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	assert.Error(t, err)
}

func TestSendConfirmationCode(t *testing.T) {
	logger := zerolog.Nop()
	fake := &fakeSender{}
	c := &Client{emails: fake, from: "YaMDb <noreply@yamdb.local>", logger: &logger}

	require.NoError(t, c.SendConfirmationCode("alice@example.com", "alice", "12345678"))
	require.Len(t, fake.sent, 1)
	assert.Equal(t, []string{"alice@example.com"}, fake.sent[0].To)
	assert.Equal(t, "YaMDb <noreply@yamdb.local>", fake.sent[0].From)
	assert.Contains(t, fake.sent[0].Html, "12345678")
	assert.Contains(t, fake.sent[0].Html, "alice")
}

func TestSendWithoutSender(t *testing.T) {
	t.Run("dropped without logging the code", func(t *testing.T) {
		var out bytes.Buffer
		logger := zerolog.New(&out)
		c := &Client{logger: &logger}

		assert.NoError(t, c.SendConfirmationCode("alice@example.com", "alice", "48151623"))
		assert.Contains(t, out.String(), "dropping message")
		assert.NotContains(t, out.String(), "48151623")
	})

	t.Run("logged in local environment", func(t *testing.T) {
		var out bytes.Buffer
		logger := zerolog.New(&out)
		c := &Client{console: true, logger: &logger}

		assert.NoError(t, c.SendConfirmationCode("alice@example.com", "alice", "48151623"))
		assert.Contains(t, out.String(), `"ConfirmationCode":"48151623"`)
		assert.Contains(t, out.String(), `"to":"alice@example.com"`)
	})
}

func TestSendPropagatesProviderErrors(t *testing.T) {
	logger := zerolog.Nop()
	c := &Client{emails: &fakeSender{err: errors.New("quota exceeded")}, logger: &logger}
	err := c.SendConfirmationCode("alice@example.com", "alice", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestNewClientConsoleOnlyInLocal(t *testing.T) {
	logger := zerolog.Nop()

	local := NewClient(&config.Config{Primary: config.Primary{Env: "local"}}, &logger)
	assert.True(t, local.console)
	assert.Nil(t, local.emails)

	prod := NewClient(&config.Config{Primary: config.Primary{Env: "production"}}, &logger)
	assert.False(t, prod.console)
}
