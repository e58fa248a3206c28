package ingestion

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Source identifies where an ingestion event came from.
type Source string

const (
	// SourceEmailPush marks events produced from tribunal push notifications
	// delivered over the mail webhook.
	SourceEmailPush Source = "email_push"

	// SourceManual marks events produced by an operator replaying a payload
	// through the CLI.
	SourceManual Source = "manual"
)

// Event is an append-only audit record of one notification applied to a
// processo.  The processo's own Observacoes field stays user-authored; the
// machine trail lives here.
type Event struct {
	ID         string `json:"id"`
	ProcessoID string `json:"processo_id"`
	UserID     string `json:"user_id"`
	Source     Source `json:"source"`

	// Subject is the notification subject line as received.
	Subject string `json:"subject"`

	// MovementCount is how many movement rows the notification carried.
	MovementCount int `json:"movement_count"`

	// Excerpt is the first movement description, kept short for listings.
	Excerpt string `json:"excerpt"`

	// ReceivedAt is when the notification arrived at the webhook.
	ReceivedAt time.Time `json:"received_at"`

	CreatedAt time.Time `json:"created_at"`
}

const maxExcerptLen = 280

// truncateExcerpt caps the excerpt at maxExcerptLen bytes without splitting
// a rune.  Movement descriptions are Portuguese text, so a byte cut can land
// inside an accented character and produce invalid UTF-8.
func truncateExcerpt(s string) string {
	if len(s) <= maxExcerptLen {
		return s
	}
	cut := maxExcerptLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// NewEvent builds an audit record for one applied notification.
func NewEvent(processoID, userID string, source Source, subject string, movementCount int, excerpt string, receivedAt time.Time) *Event {
	excerpt = truncateExcerpt(excerpt)
	return &Event{
		ID:            uuid.New().String(),
		ProcessoID:    processoID,
		UserID:        userID,
		Source:        source,
		Subject:       subject,
		MovementCount: movementCount,
		Excerpt:       excerpt,
		ReceivedAt:    receivedAt.UTC(),
		CreatedAt:     time.Now().UTC(),
	}
}

//Personal.AI order the ending
