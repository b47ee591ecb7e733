package models

import "time"

// Review is a user's single rated review of a title. The composite unique index
// on (title_id, author_id) is the authoritative guard against duplicates; the
// service layer only pre-checks it for a friendlier error.
type Review struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	TitleID  uint      `json:"title_id" gorm:"uniqueIndex:idx_reviews_title_author;not null"`
	Title    *Title    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID string    `json:"-" gorm:"uniqueIndex:idx_reviews_title_author;type:varchar(36);not null"`
	Author   *User     `json:"author,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Score    int       `json:"score" validate:"required,min=1,max=10"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime"`
}
