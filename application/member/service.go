/*
Package member member use cases: join, rename and the member lists.

Names are unique. Join and Update check FindByName inside the same unit of work that
writes the member.
*/
package member

import (
	"context"

	"shop/domain/member"
	"shop/domain/shared"
	"shop/pkg/logger"

	"go.uber.org/zap"
)

// ApplicationService member commands and lookups
type ApplicationService struct {
	memberRepo member.Repository
	uow        shared.UnitOfWork
}

func NewApplicationService(memberRepo member.Repository, uow shared.UnitOfWork) *ApplicationService {
	return &ApplicationService{memberRepo: memberRepo, uow: uow}
}

// Join registers a member and returns its id. A name already in use is rejected.
func (s *ApplicationService) Join(ctx context.Context, name string, address member.Address) (int64, error) {
	var memberID int64

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.ensureNameFree(ctx, name, 0); err != nil {
			return err
		}
		m, err := member.NewMember(name, address)
		if err != nil {
			return err
		}
		if err := s.memberRepo.Save(ctx, m); err != nil {
			return err
		}
		memberID = m.ID()
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Info("Member joined",
		zap.Int64("member_id", memberID),
		zap.String("name", name),
	)
	return memberID, nil
}

// Update renames the member and returns it as stored
func (s *ApplicationService) Update(ctx context.Context, id int64, name string) (*member.Member, error) {
	var m *member.Member

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		m, err = s.memberRepo.FindOne(ctx, id)
		if err != nil {
			return err
		}
		if m.Name() == name {
			return nil
		}
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return err
		}
		if err := m.Rename(name); err != nil {
			return err
		}
		return s.memberRepo.Save(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Member updated",
		zap.Int64("member_id", id),
		zap.String("name", name),
	)
	return m, nil
}

// ensureNameFree fails when a member other than self already has name
func (s *ApplicationService) ensureNameFree(ctx context.Context, name string, self int64) error {
	existing, err := s.memberRepo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	for _, m := range existing {
		if m.ID() != self {
			return member.NewDuplicateNameError(name)
		}
	}
	return nil
}

func (s *ApplicationService) FindOne(ctx context.Context, id int64) (*member.Member, error) {
	var m *member.Member
	err := s.uow.ExecuteReadOnly(ctx, func(ctx context.Context) error {
		var err error
		m, err = s.memberRepo.FindOne(ctx, id)
		return err
	})
	return m, err
}

// FindMembers every member in id order
func (s *ApplicationService) FindMembers(ctx context.Context) ([]*member.Member, error) {
	var members []*member.Member
	err := s.uow.ExecuteReadOnly(ctx, func(ctx context.Context) error {
		var err error
		members, err = s.memberRepo.FindAll(ctx)
		return err
	})
	return members, err
}
