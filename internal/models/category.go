package models

// Category groups titles by kind (books, films, music, ...).
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(256);not null" validate:"required,max=256"`
	Slug string `json:"slug" gorm:"uniqueIndex;type:varchar(50);not null" validate:"required,max=50,slug"`
}
