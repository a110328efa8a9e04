package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutKeyLogsOnly(t *testing.T) {
	m := New("", "noreply@club.cl", "Club")
	_, ok := m.(logMailer)
	require.True(t, ok)
	assert.NoError(t, m.SendTemplate(context.Background(), Recipient{Address: "a@b.cl"}, "d-1", nil))
}

func newTestMailer(send func(rest.Request) (*rest.Response, error)) *sendgridMailer {
	m := New("SG.key", "noreply@club.cl", "Club").(*sendgridMailer)
	m.send = send
	return m
}

func TestSendTemplate_BuildsTemplatedRequest(t *testing.T) {
	var captured rest.Request
	m := newTestMailer(func(req rest.Request) (*rest.Response, error) {
		captured = req
		return &rest.Response{StatusCode: http.StatusAccepted}, nil
	})

	err := m.SendTemplate(context.Background(),
		Recipient{Name: "Ana", Address: "ana@club.cl"}, "d-123",
		map[string]any{"titulo": "Copa"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "https://api.sendgrid.com/v3/mail/send", captured.BaseURL)

	var body struct {
		TemplateID       string `json:"template_id"`
		Personalizations []struct {
			To   []struct{ Email string } `json:"to"`
			Data map[string]any          `json:"dynamic_template_data"`
		} `json:"personalizations"`
	}
	require.NoError(t, json.Unmarshal(captured.Body, &body))
	assert.Equal(t, "d-123", body.TemplateID)
	require.Len(t, body.Personalizations, 1)
	assert.Equal(t, "ana@club.cl", body.Personalizations[0].To[0].Email)
	assert.Equal(t, "Copa", body.Personalizations[0].Data["titulo"])
}

func TestSendTemplate_Errors(t *testing.T) {
	t.Run("status error", func(t *testing.T) {
		m := newTestMailer(func(rest.Request) (*rest.Response, error) {
			return &rest.Response{StatusCode: http.StatusBadRequest, Body: "bad"}, nil
		})
		err := m.SendTemplate(context.Background(), Recipient{Address: "a@b.cl"}, "d-1", nil)
		assert.ErrorContains(t, err, "status: 400")
	})

	t.Run("transport error", func(t *testing.T) {
		m := newTestMailer(func(rest.Request) (*rest.Response, error) {
			return nil, errors.New("dial tcp")
		})
		err := m.SendTemplate(context.Background(), Recipient{Address: "a@b.cl"}, "d-1", nil)
		assert.ErrorContains(t, err, "dial tcp")
	})

	t.Run("no template skips send", func(t *testing.T) {
		called := false
		m := newTestMailer(func(rest.Request) (*rest.Response, error) {
			called = true
			return nil, nil
		})
		assert.NoError(t, m.SendTemplate(context.Background(), Recipient{Address: "a@b.cl"}, "", nil))
		assert.False(t, called)
	})

	t.Run("empty recipient", func(t *testing.T) {
		m := newTestMailer(nil)
		assert.Error(t, m.SendTemplate(context.Background(), Recipient{}, "d-1", nil))
	})
}
