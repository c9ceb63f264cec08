package po

import (
	"time"

	"shop/domain/member"
)

// AddressPO embedded address columns, shared by members and deliveries
type AddressPO struct {
	City    string `gorm:"size:100"`
	Street  string `gorm:"size:255"`
	Zipcode string `gorm:"size:20"`
}

func FromAddress(a member.Address) AddressPO {
	return AddressPO{City: a.City(), Street: a.Street(), Zipcode: a.Zipcode()}
}

func (a AddressPO) ToDomain() member.Address {
	return member.NewAddress(a.City, a.Street, a.Zipcode)
}

// MemberPO members table
type MemberPO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:255;not null;index"`
	Address   AddressPO `gorm:"embedded"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (MemberPO) TableName() string {
	return "members"
}

func FromMemberDomain(m *member.Member) *MemberPO {
	return &MemberPO{
		ID:      m.ID(),
		Name:    m.Name(),
		Address: FromAddress(m.Address()),
	}
}

func (po *MemberPO) ToDomain() *member.Member {
	return member.RebuildFromDTO(member.ReconstructionDTO{
		ID:      po.ID,
		Name:    po.Name,
		Address: po.Address.ToDomain(),
	})
}
