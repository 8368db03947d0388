package service

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
)

// AccessService maintains the flat person x application grant matrix.
type AccessService struct {
	Store    store.Store
	Recorder Recorder
}

func (s *AccessService) Matrix(ctx context.Context) ([]domain.AccessRow, error) {
	return s.Store.Access().ListAccessMatrix(ctx)
}

func (s *AccessService) Set(ctx context.Context, actor, personID, applicationID string, granted bool) error {
	if personID == "" || applicationID == "" {
		return fmt.Errorf("%w: personId and applicationId are required", ErrInvalidInput)
	}
	if err := s.Store.Access().SetAccess(ctx, personID, applicationID, granted); err != nil {
		return mapStoreErr(err)
	}

	verb := "revoked"
	if granted {
		verb = "granted"
	}
	if s.Recorder != nil {
		s.Recorder.Record(ctx, domain.AuditEntry{
			Description: fmt.Sprintf("%s application %s for person %s", verb, applicationID, personID),
			Kind:        domain.AuditUpdate,
			Table:       domain.TableAccess,
			Actor:       actor,
		})
	}
	return nil
}
