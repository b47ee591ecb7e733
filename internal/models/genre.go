package models

// Genre is a free-form tag attached to titles through the genre_titles join table.
type Genre struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(256);not null" validate:"required,max=256"`
	Slug string `json:"slug" gorm:"uniqueIndex;type:varchar(50);not null" validate:"required,max=50,slug"`
}
