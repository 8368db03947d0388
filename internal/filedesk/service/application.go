package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
	"github.com/aussiebroadwan/filedesk/pkg/idx"
)

type ApplicationService struct {
	Store    store.Store
	Recorder Recorder
}

func (s *ApplicationService) List(ctx context.Context) ([]domain.Application, error) {
	return s.Store.Applications().ListApplications(ctx)
}

func (s *ApplicationService) Create(ctx context.Context, actor, name, endpoint, description string) (domain.Application, error) {
	a := domain.Application{
		ID:          idx.New().String(),
		Name:        strings.TrimSpace(name),
		Endpoint:    strings.TrimSpace(endpoint),
		Description: strings.TrimSpace(description),
	}
	if a.Name == "" || a.Endpoint == "" {
		return domain.Application{}, fmt.Errorf("%w: name and endpoint are required", ErrInvalidInput)
	}

	if err := s.Store.Applications().CreateApplication(ctx, a); err != nil {
		return domain.Application{}, err
	}
	if s.Recorder != nil {
		s.Recorder.Record(ctx, domain.AuditEntry{
			Description: fmt.Sprintf("registered application %q at %s", a.Name, a.Endpoint),
			Kind:        domain.AuditCreate,
			Table:       domain.TableApplications,
			Actor:       actor,
		})
	}
	return a, nil
}

func (s *ApplicationService) Delete(ctx context.Context, actor, id string) error {
	if err := s.Store.Applications().DeleteApplication(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	if s.Recorder != nil {
		s.Recorder.Record(ctx, domain.AuditEntry{
			Description: fmt.Sprintf("deleted application %s", id),
			Kind:        domain.AuditDelete,
			Table:       domain.TableApplications,
			Actor:       actor,
		})
	}
	return nil
}
