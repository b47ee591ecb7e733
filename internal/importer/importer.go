// Package importer bulk-loads the relational schema from a directory of
// delimited text files, one file per entity. Existing rows are replaced.
package importer

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"ratings/internal/models"
)

const batchSize = 200

// Importer loads CSV fixtures straight through GORM, bypassing the service
// layer. Dependency order matters: users and the catalog come before reviews.
type Importer struct {
	db *gorm.DB
}

// New creates a new Importer.
func New(db *gorm.DB) *Importer {
	return &Importer{db: db}
}

// LoadDir imports every entity file from dir, replacing existing data.
func (im *Importer) LoadDir(dir string) error {
	steps := []struct {
		file string
		load func(rows []row) error
	}{
		{"users.csv", im.loadUsers},
		{"category.csv", im.loadCategories},
		{"genre.csv", im.loadGenres},
		{"titles.csv", im.loadTitles},
		{"genre_title.csv", im.loadGenreTitles},
		{"review.csv", im.loadReviews},
		{"comments.csv", im.loadComments},
	}

	for _, step := range steps {
		rows, err := readFile(filepath.Join(dir, step.file))
		if err != nil {
			return fmt.Errorf("import of %s failed: %w", step.file, err)
		}
		if err := step.load(rows); err != nil {
			return fmt.Errorf("import of %s failed: %w", step.file, err)
		}
		log.Printf("Imported %d rows from %s", len(rows), step.file)
	}
	return nil
}

// row maps normalized column names to raw cell values.
type row map[string]string

// readFile parses a CSV file into rows keyed by header name. Column names are
// normalized by stripping an "_id" suffix, matching fixture files that name
// foreign keys either way (author vs author_id).
func readFile(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header row")
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSuffix(strings.TrimSpace(col), "_id")
	}

	rows := make([]row, 0, len(records)-1)
	for _, record := range records[1:] {
		r := make(row, len(header))
		for i, col := range header {
			if i < len(record) {
				r[col] = record[i]
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func (r row) get(col string) (string, error) {
	v, ok := r[col]
	if !ok {
		return "", fmt.Errorf("missing column %q", col)
	}
	return v, nil
}

func (r row) getUint(col string) (uint, error) {
	v, err := r.get(col)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return uint(n), nil
}

func (r row) getInt(col string) (int, error) {
	v, err := r.get(col)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return n, nil
}

func (r row) getTime(col string) (time.Time, error) {
	v, err := r.get(col)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("column %q: %w", col, err)
	}
	return t, nil
}

// replace clears the model's table and bulk-inserts the new records.
func replace[T any](db *gorm.DB, records []T) error {
	var zero T
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&zero).Error; err != nil {
		return fmt.Errorf("failed to clear existing rows: %w", err)
	}
	if len(records) == 0 {
		return nil
	}
	if err := db.CreateInBatches(records, batchSize).Error; err != nil {
		return fmt.Errorf("failed to insert rows: %w", err)
	}
	return nil
}

func (im *Importer) loadUsers(rows []row) error {
	users := make([]models.User, 0, len(rows))
	for _, r := range rows {
		id, err := r.get("id")
		if err != nil {
			return err
		}
		username, err := r.get("username")
		if err != nil {
			return err
		}
		email, err := r.get("email")
		if err != nil {
			return err
		}
		role := models.RoleUser
		if raw := r["role"]; raw != "" {
			role, err = models.ParseRole(raw)
			if err != nil {
				return err
			}
		}
		users = append(users, models.User{
			ID:        id,
			Username:  username,
			Email:     email,
			Role:      role,
			Bio:       r["bio"],
			FirstName: r["first_name"],
			LastName:  r["last_name"],
			Confirmed: true,
		})
	}
	return replace(im.db, users)
}

func (im *Importer) loadCategories(rows []row) error {
	categories := make([]models.Category, 0, len(rows))
	for _, r := range rows {
		id, err := r.getUint("id")
		if err != nil {
			return err
		}
		name, err := r.get("name")
		if err != nil {
			return err
		}
		slug, err := r.get("slug")
		if err != nil {
			return err
		}
		categories = append(categories, models.Category{ID: id, Name: name, Slug: slug})
	}
	return replace(im.db, categories)
}

func (im *Importer) loadGenres(rows []row) error {
	genres := make([]models.Genre, 0, len(rows))
	for _, r := range rows {
		id, err := r.getUint("id")
		if err != nil {
			return err
		}
		name, err := r.get("name")
		if err != nil {
			return err
		}
		slug, err := r.get("slug")
		if err != nil {
			return err
		}
		genres = append(genres, models.Genre{ID: id, Name: name, Slug: slug})
	}
	return replace(im.db, genres)
}

func (im *Importer) loadTitles(rows []row) error {
	titles := make([]models.Title, 0, len(rows))
	for _, r := range rows {
		id, err := r.getUint("id")
		if err != nil {
			return err
		}
		name, err := r.get("name")
		if err != nil {
			return err
		}
		year, err := r.getInt("year")
		if err != nil {
			return err
		}
		title := models.Title{ID: id, Name: name, Year: year, Description: r["description"]}
		if raw := r["category"]; raw != "" {
			categoryID, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return fmt.Errorf("column \"category\": %w", err)
			}
			cid := uint(categoryID)
			title.CategoryID = &cid
		}
		titles = append(titles, title)
	}
	return replace(im.db, titles)
}

func (im *Importer) loadGenreTitles(rows []row) error {
	joins := make([]models.GenreTitle, 0, len(rows))
	for _, r := range rows {
		titleID, err := r.getUint("title")
		if err != nil {
			return err
		}
		genreID, err := r.getUint("genre")
		if err != nil {
			return err
		}
		joins = append(joins, models.GenreTitle{TitleID: titleID, GenreID: genreID})
	}
	return replace(im.db, joins)
}

func (im *Importer) loadReviews(rows []row) error {
	reviews := make([]models.Review, 0, len(rows))
	for _, r := range rows {
		id, err := r.getUint("id")
		if err != nil {
			return err
		}
		titleID, err := r.getUint("title")
		if err != nil {
			return err
		}
		text, err := r.get("text")
		if err != nil {
			return err
		}
		author, err := r.get("author")
		if err != nil {
			return err
		}
		score, err := r.getInt("score")
		if err != nil {
			return err
		}
		pubDate, err := r.getTime("pub_date")
		if err != nil {
			return err
		}
		reviews = append(reviews, models.Review{
			ID:       id,
			TitleID:  titleID,
			AuthorID: author,
			Text:     text,
			Score:    score,
			PubDate:  pubDate,
		})
	}
	return replace(im.db, reviews)
}

func (im *Importer) loadComments(rows []row) error {
	comments := make([]models.Comment, 0, len(rows))
	for _, r := range rows {
		id, err := r.getUint("id")
		if err != nil {
			return err
		}
		reviewID, err := r.getUint("review")
		if err != nil {
			return err
		}
		text, err := r.get("text")
		if err != nil {
			return err
		}
		author, err := r.get("author")
		if err != nil {
			return err
		}
		pubDate, err := r.getTime("pub_date")
		if err != nil {
			return err
		}
		comments = append(comments, models.Comment{
			ID:       id,
			ReviewID: reviewID,
			AuthorID: author,
			Text:     text,
			PubDate:  pubDate,
		})
	}
	return replace(im.db, comments)
}
