package mail

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestSendWelcome(t *testing.T) {
	d := &fakeDialer{}
	s := &EmailSender{From: "no-reply@callflex.ai", dialer: d}

	require.NoError(t, s.SendWelcome("owner@acme.com", "Acme <Plumbing>"))
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"owner@acme.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"no-reply@callflex.ai"}, m.GetHeader("From"))

	var raw bytes.Buffer
	_, err := m.WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "Acme &lt;Plumbing&gt;")
}

func TestSendWelcomeDialError(t *testing.T) {
	s := &EmailSender{From: "x@y.z", dialer: &fakeDialer{err: errors.New("connection refused")}}

	err := s.SendWelcome("a@b.com", "Biz")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
