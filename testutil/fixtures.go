package testutil

import (
	"context"
	"sync"

	"workhub-project/tasks-service/auth"
)

// RecordingMailer captures outgoing mail instead of talking to SMTP.
// FailWith makes every send return the given error, for breaker tests.
type RecordingMailer struct {
	mu       sync.Mutex
	Sent     []SentMail
	FailWith error
}

type SentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *RecordingMailer) SendEmail(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.Sent = append(m.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

// MemoryFileStorage keeps attachment bytes in a map keyed by path.
type MemoryFileStorage struct {
	mu    sync.Mutex
	Files map[string][]byte
}

func NewMemoryFileStorage() *MemoryFileStorage {
	return &MemoryFileStorage{Files: make(map[string][]byte)}
}

func (s *MemoryFileStorage) Store(fileName string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := "mem://" + fileName
	s.Files[path] = data
	return path, nil
}

func (s *MemoryFileStorage) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Files, path)
	return nil
}

// ContextFor builds a request context carrying the caller's claims.
func ContextFor(employeeID, organizationID, role string) context.Context {
	return auth.WithClaims(context.Background(), &auth.Claims{
		EmployeeID:     employeeID,
		OrganizationID: organizationID,
		Role:           role,
	})
}
