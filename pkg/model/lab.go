package model

import "time"

// Lab domain object defining a lab
// swagger:model
type Lab struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"index;unique" json:"name"`
	Members   []Member  `gorm:"many2many:lab_members;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"members,omitempty"`
}
