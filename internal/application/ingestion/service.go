package ingestion

import (
	"context"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/domain/user"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

// ProcessOutcome is what the webhook layer needs to shape its response.
type ProcessOutcome struct {
	// Processed is false when the message is not a tribunal notification.
	// That is an ignored outcome, not an error.
	Processed bool    `json:"processed"`
	Result    *Result `json:"result,omitempty"`
}

// Service runs the full ingestion pipeline for inbound messages: signature
// recognition, extraction, owner resolution, and reconciliation.
type Service struct {
	users      user.Repository
	reconciler *Reconciler
	logger     logging.Logger
}

// NewService creates the ingestion service.
func NewService(users user.Repository, reconciler *Reconciler, logger logging.Logger) *Service {
	return &Service{
		users:      users,
		reconciler: reconciler,
		logger:     logger,
	}
}

// ProcessEmail handles one inbound message.  ownerID may be empty, in which
// case the destination address is resolved against the user directory.
//
// Error taxonomy: a non-matching message yields Processed=false and no
// error; a matched message without a locatable process number yields
// CodeEmailUnparseable; an unresolvable destination yields
// CodeOwnerNotFound.  Store failures during reconciliation are reported
// inside Result, not as a returned error.
func (s *Service) ProcessEmail(ctx context.Context, msg EmailMessage, ownerID string) (*ProcessOutcome, error) {
	parsed := Parse(msg)
	if parsed == nil {
		if senderPattern.MatchString(msg.From) && subjectPattern.MatchString(msg.Subject) {
			return nil, errors.New(errors.CodeEmailUnparseable, "notification carries no process number")
		}
		s.logger.Debug("message ignored: not a tribunal notification",
			logging.String("from", msg.From))
		return &ProcessOutcome{Processed: false}, nil
	}

	if ownerID == "" {
		u, err := s.users.FindByEmail(ctx, user.NormalizeEmail(msg.To))
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to resolve owner")
		}
		if u == nil {
			return nil, errors.New(errors.CodeOwnerNotFound, "no user owns address "+msg.To)
		}
		ownerID = u.ID
	}

	res := s.reconciler.Reconcile(ctx, parsed, ownerID)
	return &ProcessOutcome{Processed: true, Result: res}, nil
}

//Personal.AI order the ending
