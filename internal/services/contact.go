package services

import (
	"database/sql"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/database"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
)

// ErrMessageNotFound indicates the requested message was not found.
var ErrMessageNotFound = errors.New("contact message not found")

// Notifier delivers a notification for a new contact message. Email
// delivery is an external collaborator; a nil Notifier disables it.
type Notifier interface {
	NotifyContact(msg *models.ContactMessage) error
}

// ContactService stores contact form submissions.
type ContactService struct {
	db       *database.DB
	notifier Notifier
}

// NewContactService creates a new ContactService instance.
func NewContactService(db *database.DB, notifier Notifier) *ContactService {
	return &ContactService{db: db, notifier: notifier}
}

// ContactInput carries a public form submission. Honeypot is the hidden
// field legitimate clients leave empty.
type ContactInput struct {
	Name     string
	Email    string
	Subject  string
	Body     string
	Honeypot string
}

// Submit stores a submission. A tripped honeypot flags the message as
// spam; the caller responds identically either way so bots learn nothing.
func (s *ContactService) Submit(in ContactInput) (*models.ContactMessage, error) {
	id := uuid.NewString()
	spam := in.Honeypot != ""

	_, err := s.db.Exec(
		`INSERT INTO contact_messages (id, name, email, subject, body, spam)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, in.Name, in.Email, in.Subject, in.Body, spam,
	)
	if err != nil {
		return nil, err
	}

	msg, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && !spam {
		if err := s.notifier.NotifyContact(msg); err != nil {
			log.Printf("contact notification failed: %v", err)
		}
	}
	return msg, nil
}

// GetByID retrieves a message by id.
func (s *ContactService) GetByID(id string) (*models.ContactMessage, error) {
	var m models.ContactMessage
	err := s.db.QueryRow(
		"SELECT id, name, email, subject, body, is_read, spam, created_at FROM contact_messages WHERE id = ?",
		id,
	).Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Read, &m.Spam, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns a page of messages, newest first. Spam is excluded unless
// requested.
func (s *ContactService) List(includeSpam bool, limit, offset int) ([]models.ContactMessage, int, error) {
	where := "1=1"
	if !includeSpam {
		where += " AND spam = FALSE"
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM contact_messages WHERE " + where).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(
		"SELECT id, name, email, subject, body, is_read, spam, created_at FROM contact_messages WHERE "+where+
			" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	msgs := make([]models.ContactMessage, 0)
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Read, &m.Spam, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		msgs = append(msgs, m)
	}
	return msgs, total, rows.Err()
}

// MarkRead flags a message as read.
func (s *ContactService) MarkRead(id string) error {
	res, err := s.db.Exec("UPDATE contact_messages SET is_read = TRUE WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// Delete removes a message.
func (s *ContactService) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM contact_messages WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// UnreadCount returns the number of unread non-spam messages.
func (s *ContactService) UnreadCount() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM contact_messages WHERE is_read = FALSE AND spam = FALSE").Scan(&n)
	return n, err
}
