package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
	"github.com/aussiebroadwan/filedesk/pkg/idx"
)

type Directory struct {
	Units     []domain.Unit
	Personnel []domain.Person
}

// DirectoryService manages organisational units and their personnel.
// Mutations that run in a transaction also leave a failure entry in the
// audit log when the transaction is rolled back.
type DirectoryService struct {
	Store    store.Store
	Recorder Recorder
}

func (s *DirectoryService) audit(ctx context.Context, actor string, kind domain.AuditKind, table, format string, args ...any) {
	if s.Recorder == nil {
		return
	}
	s.Recorder.Record(ctx, domain.AuditEntry{
		Description: fmt.Sprintf(format, args...),
		Kind:        kind,
		Table:       table,
		Actor:       actor,
	})
}

// inTx runs fn in a transaction and audits the outcome either way.
func (s *DirectoryService) inTx(
	ctx context.Context,
	actor string,
	kind domain.AuditKind,
	table, what string,
	fn func(tx store.Tx) error,
) error {
	if err := s.Store.WithTx(ctx, fn); err != nil {
		s.audit(ctx, actor, domain.AuditFailure, table, "%s failed: %v", what, err)
		return mapStoreErr(err)
	}
	s.audit(ctx, actor, kind, table, "%s", what)
	return nil
}

func (s *DirectoryService) List(ctx context.Context) (Directory, error) {
	units, err := s.Store.Units().ListUnits(ctx)
	if err != nil {
		return Directory{}, err
	}
	people, err := s.Store.Personnel().ListPersonnel(ctx)
	if err != nil {
		return Directory{}, err
	}
	return Directory{Units: units, Personnel: people}, nil
}

func (s *DirectoryService) CreateUnit(ctx context.Context, actor, name string, parentID *string) (domain.Unit, error) {
	name, err := requireName(name)
	if err != nil {
		return domain.Unit{}, err
	}
	if parentID != nil && strings.TrimSpace(*parentID) == "" {
		parentID = nil
	}

	u := domain.Unit{ID: idx.New().String(), ParentID: parentID, Name: name}
	if err := s.Store.Units().CreateUnit(ctx, u); err != nil {
		return domain.Unit{}, mapStoreErr(err)
	}
	s.audit(ctx, actor, domain.AuditCreate, domain.TableUnits, "created unit %q", name)
	return u, nil
}

func (s *DirectoryService) RenameUnit(ctx context.Context, actor, id, name string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}
	return s.inTx(ctx, actor, domain.AuditRename, domain.TableUnits,
		fmt.Sprintf("renamed unit %s to %q", id, name),
		func(tx store.Tx) error {
			return tx.Units().RenameUnit(ctx, id, name)
		})
}

// DeleteUnit removes the unit's personnel and then the unit. Child units
// and their personnel follow by cascade.
func (s *DirectoryService) DeleteUnit(ctx context.Context, actor, id string) error {
	return s.inTx(ctx, actor, domain.AuditDelete, domain.TableUnits,
		fmt.Sprintf("deleted unit %s", id),
		func(tx store.Tx) error {
			if _, err := tx.Personnel().DeletePersonnelByUnit(ctx, id); err != nil {
				return err
			}
			return tx.Units().DeleteUnit(ctx, id)
		})
}

func (s *DirectoryService) AddPerson(ctx context.Context, actor, unitID, name, registryNo string) (domain.Person, error) {
	name, err := requireName(name)
	if err != nil {
		return domain.Person{}, err
	}
	registryNo = strings.TrimSpace(registryNo)
	if registryNo == "" {
		return domain.Person{}, fmt.Errorf("%w: registry number is required", ErrInvalidInput)
	}

	p := domain.Person{ID: idx.New().String(), UnitID: unitID, Name: name, RegistryNo: registryNo}
	if err := s.Store.Personnel().CreatePerson(ctx, p); err != nil {
		return domain.Person{}, mapStoreErr(err)
	}
	s.audit(ctx, actor, domain.AuditCreate, domain.TablePersonnel, "added %q (%s) to unit %s", name, registryNo, unitID)
	return p, nil
}

func (s *DirectoryService) UpdatePerson(ctx context.Context, actor, id, name, registryNo string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}
	registryNo = strings.TrimSpace(registryNo)
	if registryNo == "" {
		return fmt.Errorf("%w: registry number is required", ErrInvalidInput)
	}
	return s.inTx(ctx, actor, domain.AuditUpdate, domain.TablePersonnel,
		fmt.Sprintf("updated person %s to %q (%s)", id, name, registryNo),
		func(tx store.Tx) error {
			return tx.Personnel().UpdatePerson(ctx, id, name, registryNo)
		})
}

func (s *DirectoryService) DeletePerson(ctx context.Context, actor, id string) error {
	return s.inTx(ctx, actor, domain.AuditDelete, domain.TablePersonnel,
		fmt.Sprintf("deleted person %s", id),
		func(tx store.Tx) error {
			return tx.Personnel().DeletePerson(ctx, id)
		})
}
