package mysql // import "github.com/storyworld/storyworld/store/mysql"

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/storyworld/storyworld/model"
	"github.com/storyworld/storyworld/store"
)

var createTableStatements = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id VARCHAR(36) NOT NULL,
		position INT NOT NULL,
		title VARCHAR(255) NOT NULL,
		author VARCHAR(255) NOT NULL,
		description TEXT,
		genre VARCHAR(64),
		age_group VARCHAR(16),
		cover_url VARCHAR(255),
		pdf_url VARCHAR(255),
		tags TEXT,
		views INT NOT NULL DEFAULT 0,
		likes INT NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id VARCHAR(36) NOT NULL,
		position INT NOT NULL,
		book_id VARCHAR(36) NOT NULL,
		author VARCHAR(255) NOT NULL,
		text TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (id)
	)`,
	// Duplicate (book_id, device_id) rows are legal, ratings are not
	// deduplicated per device.
	`CREATE TABLE IF NOT EXISTS feedback (
		id VARCHAR(36) NOT NULL,
		position INT NOT NULL,
		book_id VARCHAR(36) NOT NULL,
		rating INT NOT NULL,
		comment TEXT,
		device_id VARCHAR(128),
		created_at DATETIME NOT NULL,
		PRIMARY KEY (id)
	)`,
	`CREATE TABLE IF NOT EXISTS view_stats (
		id TINYINT NOT NULL,
		total_views INT NOT NULL DEFAULT 0,
		books TEXT,
		devices TEXT,
		PRIMARY KEY (id)
	)`,
}

// Adapter keeps the whole-snapshot persistence discipline of the file
// backend on top of MySQL: Save replaces every row of the collection
// inside one transaction.
type Adapter struct {
	conn *sql.DB
}

var _ store.Backend = (*Adapter)(nil)

// dsnWithParseTime makes sure DATETIME columns scan into time.Time,
// keeping any parameters the DSN already carries.
func dsnWithParseTime(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&parseTime=true"
	}
	return dsn + "?parseTime=true"
}

func NewAdapter(dsn string) (*Adapter, error) {
	conn, err := sql.Open("mysql", dsnWithParseTime(dsn))
	if err != nil {
		return nil, errors.Wrap(err, "mysql: could not get a connection")
	}
	conn.SetConnMaxLifetime(3 * time.Minute)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "mysql: could not establish a good connection")
	}

	for _, stmt := range createTableStatements {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return nil, errors.Wrap(err, "mysql: could not create tables")
		}
	}
	return &Adapter{conn: conn}, nil
}

func (a *Adapter) Close() error {
	return a.conn.Close()
}

func (a *Adapter) Load(name string, v any) error {
	switch name {
	case store.CollectionBooks:
		books, err := a.loadBooks()
		if err != nil {
			return err
		}
		if out, ok := v.(*[]*model.Book); ok && len(books) > 0 {
			*out = books
		}
	case store.CollectionComments:
		comments, err := a.loadComments()
		if err != nil {
			return err
		}
		if out, ok := v.(*[]*model.Comment); ok && len(comments) > 0 {
			*out = comments
		}
	case store.CollectionFeedback:
		feedback, err := a.loadFeedback()
		if err != nil {
			return err
		}
		if out, ok := v.(*[]*model.Feedback); ok && len(feedback) > 0 {
			*out = feedback
		}
	case store.CollectionViews:
		views, err := a.loadViews()
		if err != nil {
			return err
		}
		if out, ok := v.(**model.ViewStats); ok && views != nil {
			*out = views
		}
	default:
		return errors.Errorf("mysql: unknown collection %s", name)
	}
	return nil
}

func (a *Adapter) Save(name string, v any) error {
	tx, err := a.conn.Begin()
	if err != nil {
		return errors.Wrap(err, "mysql: could not begin transaction")
	}
	defer tx.Rollback()

	switch payload := v.(type) {
	case []*model.Book:
		err = saveBooks(tx, payload)
	case []*model.Comment:
		err = saveComments(tx, payload)
	case []*model.Feedback:
		err = saveFeedback(tx, payload)
	case *model.ViewStats:
		err = saveViews(tx, payload)
	default:
		return errors.Errorf("mysql: unknown payload for collection %s", name)
	}
	if err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "mysql: could not commit snapshot")
}

func (a *Adapter) loadBooks() ([]*model.Book, error) {
	rows, err := a.conn.Query(`SELECT id, title, author, description, genre, age_group,
		cover_url, pdf_url, tags, views, likes, created_at, updated_at
		FROM books ORDER BY position`)
	if err != nil {
		return nil, errors.Wrap(err, "mysql: could not list books")
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		b := &model.Book{}
		var tags string
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.Genre,
			&b.AgeGroup, &b.CoverURL, &b.PDFURL, &tags, &b.Views, &b.Likes,
			&b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "mysql: could not scan book row")
		}
		b.Tags = []string{}
		if tags != "" {
			if err := json.Unmarshal([]byte(tags), &b.Tags); err != nil {
				return nil, errors.Wrapf(err, "mysql: bad tags for book %s", b.ID)
			}
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func saveBooks(tx *sql.Tx, books []*model.Book) error {
	if _, err := tx.Exec(`DELETE FROM books`); err != nil {
		return errors.Wrap(err, "mysql: could not clear books")
	}
	stmt, err := tx.Prepare(`INSERT INTO books (id, position, title, author, description,
		genre, age_group, cover_url, pdf_url, tags, views, likes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "mysql: could not prepare book insert")
	}
	defer stmt.Close()

	for i, b := range books {
		tags, err := json.Marshal(b.Tags)
		if err != nil {
			return errors.Wrapf(err, "mysql: bad tags for book %s", b.ID)
		}
		if _, err := stmt.Exec(b.ID, i, b.Title, b.Author, b.Description, b.Genre,
			b.AgeGroup, b.CoverURL, b.PDFURL, string(tags), b.Views, b.Likes,
			b.CreatedAt, b.UpdatedAt); err != nil {
			return errors.Wrapf(err, "mysql: could not insert book %s", b.ID)
		}
	}
	return nil
}

func (a *Adapter) loadComments() ([]*model.Comment, error) {
	rows, err := a.conn.Query(`SELECT id, book_id, author, text, created_at
		FROM comments ORDER BY position`)
	if err != nil {
		return nil, errors.Wrap(err, "mysql: could not list comments")
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		c := &model.Comment{}
		if err := rows.Scan(&c.ID, &c.BookID, &c.Author, &c.Text, &c.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "mysql: could not scan comment row")
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func saveComments(tx *sql.Tx, comments []*model.Comment) error {
	if _, err := tx.Exec(`DELETE FROM comments`); err != nil {
		return errors.Wrap(err, "mysql: could not clear comments")
	}
	stmt, err := tx.Prepare(`INSERT INTO comments (id, position, book_id, author, text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "mysql: could not prepare comment insert")
	}
	defer stmt.Close()

	for i, c := range comments {
		if _, err := stmt.Exec(c.ID, i, c.BookID, c.Author, c.Text, c.CreatedAt); err != nil {
			return errors.Wrapf(err, "mysql: could not insert comment %s", c.ID)
		}
	}
	return nil
}

func (a *Adapter) loadFeedback() ([]*model.Feedback, error) {
	rows, err := a.conn.Query(`SELECT id, book_id, rating, comment, device_id, created_at
		FROM feedback ORDER BY position`)
	if err != nil {
		return nil, errors.Wrap(err, "mysql: could not list feedback")
	}
	defer rows.Close()

	var feedback []*model.Feedback
	for rows.Next() {
		f := &model.Feedback{}
		var device sql.NullString
		if err := rows.Scan(&f.ID, &f.BookID, &f.Rating, &f.Comment, &device, &f.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "mysql: could not scan feedback row")
		}
		f.DeviceID = device.String
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}

func saveFeedback(tx *sql.Tx, feedback []*model.Feedback) error {
	if _, err := tx.Exec(`DELETE FROM feedback`); err != nil {
		return errors.Wrap(err, "mysql: could not clear feedback")
	}
	stmt, err := tx.Prepare(`INSERT INTO feedback (id, position, book_id, rating, comment, device_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "mysql: could not prepare feedback insert")
	}
	defer stmt.Close()

	for i, f := range feedback {
		// An absent deviceId is stored as NULL, not as the empty string.
		device := sql.NullString{String: f.DeviceID, Valid: f.DeviceID != ""}
		if _, err := stmt.Exec(f.ID, i, f.BookID, f.Rating, f.Comment, device, f.CreatedAt); err != nil {
			return errors.Wrapf(err, "mysql: could not insert feedback %s", f.ID)
		}
	}
	return nil
}

func (a *Adapter) loadViews() (*model.ViewStats, error) {
	row := a.conn.QueryRow(`SELECT total_views, books, devices FROM view_stats WHERE id = 1`)

	views := model.NewViewStats()
	var books, devices string
	if err := row.Scan(&views.TotalViews, &books, &devices); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "mysql: could not load view stats")
	}
	if books != "" {
		if err := json.Unmarshal([]byte(books), &views.Books); err != nil {
			return nil, errors.Wrap(err, "mysql: bad view stats books")
		}
	}
	if devices != "" {
		if err := json.Unmarshal([]byte(devices), &views.Devices); err != nil {
			return nil, errors.Wrap(err, "mysql: bad view stats devices")
		}
	}
	return views, nil
}

func saveViews(tx *sql.Tx, views *model.ViewStats) error {
	books, err := json.Marshal(views.Books)
	if err != nil {
		return errors.Wrap(err, "mysql: bad view stats books")
	}
	devices, err := json.Marshal(views.Devices)
	if err != nil {
		return errors.Wrap(err, "mysql: bad view stats devices")
	}
	_, err = tx.Exec(`REPLACE INTO view_stats (id, total_views, books, devices) VALUES (1, ?, ?, ?)`,
		views.TotalViews, string(books), string(devices))
	return errors.Wrap(err, "mysql: could not save view stats")
}

// Ping verifies the connection is still alive, used by the healthcheck.
func (a *Adapter) Ping() error {
	return a.conn.Ping()
}
