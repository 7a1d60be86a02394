package testutil

import (
	"sync"
)

// SentEmail is one message recorded by Mailer.
type SentEmail struct {
	To   string
	Link string
}

// Mailer records confirmation emails instead of sending them.
type Mailer struct {
	mu   sync.Mutex
	Err  error
	sent []SentEmail
}

func (m *Mailer) SendConfirmationEmail(to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, SentEmail{To: to, Link: link})
	return nil
}

func (m *Mailer) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentEmail{}, m.sent...)
}

// Last returns the most recent message, or false when nothing was sent.
func (m *Mailer) Last() (SentEmail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return SentEmail{}, false
	}
	return m.sent[len(m.sent)-1], true
}
