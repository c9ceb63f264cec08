package mysql

import (
	"context"
	"errors"
	"fmt"

	"shop/domain/member"
	"shop/infrastructure/persistence"
	"shop/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// MemberRepository GORM implementation of member.Repository
type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save inserts a new member and assigns its id, or updates name and address
func (r *MemberRepository) Save(ctx context.Context, m *member.Member) error {
	memberPO := po.FromMemberDomain(m)
	if m.ID() == 0 {
		if err := r.getDB(ctx).Create(memberPO).Error; err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
		m.AssignID(memberPO.ID)
		return nil
	}
	if err := r.getDB(ctx).Model(memberPO).Select("name", "city", "street", "zipcode").Updates(memberPO).Error; err != nil {
		return fmt.Errorf("failed to update member %d: %w", m.ID(), err)
	}
	return nil
}

func (r *MemberRepository) FindOne(ctx context.Context, id int64) (*member.Member, error) {
	var memberPO po.MemberPO
	if err := r.getDB(ctx).First(&memberPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.NewMemberNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find member %d: %w", id, err)
	}
	return memberPO.ToDomain(), nil
}

func (r *MemberRepository) FindAll(ctx context.Context) ([]*member.Member, error) {
	var memberPOs []po.MemberPO
	if err := r.getDB(ctx).Order("id").Find(&memberPOs).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	members := make([]*member.Member, len(memberPOs))
	for i := range memberPOs {
		members[i] = memberPOs[i].ToDomain()
	}
	return members, nil
}

// FindByName exact name match
func (r *MemberRepository) FindByName(ctx context.Context, name string) ([]*member.Member, error) {
	var memberPOs []po.MemberPO
	if err := r.getDB(ctx).Where("name = ?", name).Order("id").Find(&memberPOs).Error; err != nil {
		return nil, fmt.Errorf("failed to find members by name: %w", err)
	}
	members := make([]*member.Member, len(memberPOs))
	for i := range memberPOs {
		members[i] = memberPOs[i].ToDomain()
	}
	return members, nil
}

var _ member.Repository = (*MemberRepository)(nil)
