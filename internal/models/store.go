package models

import "time"

type Store struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:60;not null" json:"name"`
	Email   string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Address string `gorm:"size:400" json:"address"`

	// Owner is checked to have role store_owner at assignment time only;
	// a later role change does not detach the store.
	OwnerID *uint `json:"owner_id"`
	Owner   *User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"owner,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
