package models

// Title is a rateable work: a book, a film, an album.
//
// Deleting a Category keeps its titles and nulls their category reference.
// Rating is computed from reviews at query time and never stored.
type Title struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(256);not null" validate:"required,max=256"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	CategoryID  *uint     `json:"-"`
	Category    *Category `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Genres      []Genre   `json:"genre" gorm:"many2many:genre_titles;constraint:OnDelete:CASCADE"`
	Rating      *float64  `json:"rating" gorm:"-"`
}

// GenreTitle is the join row between a genre and a title. GORM manages it for
// the many2many association; the bulk importer writes it directly.
type GenreTitle struct {
	TitleID uint `json:"title_id" gorm:"primaryKey"`
	GenreID uint `json:"genre_id" gorm:"primaryKey"`
}

func (GenreTitle) TableName() string {
	return "genre_titles"
}
