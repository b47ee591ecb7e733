package models

import "time"

// Comment is a reply to a review. Deleting the review cascades to its comments.
type Comment struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	ReviewID uint      `json:"review_id" gorm:"not null"`
	Review   *Review   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID string    `json:"-" gorm:"type:varchar(36);not null"`
	Author   *User     `json:"author,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime"`
}
