package model

import "time"

// Member domain object defining a lab member
// swagger:model
type Member struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	DisplayName string    `json:"displayName"`
	Picture     *string   `json:"picture,omitempty"`
	Labs        []Lab     `gorm:"many2many:lab_members;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (m *Member) IsMemberOf(labID uint) bool {
	for _, lab := range m.Labs {
		if lab.ID == labID {
			return true
		}
	}
	return false
}
