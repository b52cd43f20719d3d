// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package documents persists the document corpus and journey registry
// in SQLite and serves the per-user lookups the engine consumes.
package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/screening-engine/pkg/types"
)

const (
	corpusDir = "corpus"
	dbFile    = "screening.db"
)

// Store manages the document and journey SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// NewStore opens or creates the database at dataDir/screening.db and
// creates the schema if it does not exist.
func NewStore(cfg types.DocumentStoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: cfg.DataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS journeys (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT,
			abstract TEXT,
			authors TEXT,
			year INTEGER,
			venue TEXT,
			doi TEXT,
			link TEXT,
			keywords TEXT,
			extended TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_user_id ON documents(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_journeys_user_id ON journeys(user_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// AddJourney inserts or replaces a journey record.
func (s *Store) AddJourney(ctx context.Context, j types.Journey) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO journeys (id, user_id, name, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id, name=excluded.name`,
		j.ID, j.UserID, j.Name, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting journey %s: %w", j.ID, err)
	}
	return nil
}

// JourneyExists reports whether a journey with the given ID is stored.
func (s *Store) JourneyExists(ctx context.Context, journeyID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM journeys WHERE id = ?`, journeyID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking journey %s: %w", journeyID, err)
	}
	return count > 0, nil
}

// ListJourneys returns all journeys for a user, sorted by ID.
func (s *Store) ListJourneys(ctx context.Context, userID string) ([]types.Journey, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name FROM journeys WHERE user_id = ? ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying journeys: %w", err)
	}
	defer rows.Close()

	var journeys []types.Journey
	for rows.Next() {
		var j types.Journey
		var name sql.NullString
		if err := rows.Scan(&j.ID, &j.UserID, &name); err != nil {
			return nil, fmt.Errorf("scanning journey: %w", err)
		}
		j.Name = name.String
		journeys = append(journeys, j)
	}
	return journeys, rows.Err()
}

// UpsertDocument inserts or replaces one document record.
func (s *Store) UpsertDocument(ctx context.Context, doc types.Document) error {
	authorsJSON, _ := json.Marshal(doc.Metadata.Authors)
	keywordsJSON, _ := json.Marshal(doc.Metadata.Keywords)
	extendedJSON, _ := json.Marshal(doc.Metadata.Extended)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, user_id, title, abstract, authors, year, venue, doi, link, keywords, extended)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			user_id=excluded.user_id, title=excluded.title, abstract=excluded.abstract,
			authors=excluded.authors, year=excluded.year, venue=excluded.venue,
			doi=excluded.doi, link=excluded.link, keywords=excluded.keywords,
			extended=excluded.extended`,
		doc.ID, doc.UserID, doc.Metadata.Title, doc.Metadata.Abstract,
		string(authorsJSON), doc.Metadata.Year, doc.Metadata.Venue,
		doc.Metadata.DOI, doc.Metadata.Link, string(keywordsJSON), string(extendedJSON),
	)
	if err != nil {
		return fmt.Errorf("upserting document %s: %w", doc.ID, err)
	}
	return nil
}

// DocumentsByIDs resolves documents by ID for one user, preserving the
// order of the requested ID list. IDs that do not resolve are omitted.
func (s *Store) DocumentsByIDs(ctx context.Context, ids []string, userID string) ([]types.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, abstract, authors, year, venue, doi, link, keywords, extended
		 FROM documents WHERE user_id = ? AND id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]types.Document)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		byID[doc.ID] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	docs := make([]types.Document, 0, len(byID))
	for _, id := range ids {
		if doc, ok := byID[id]; ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// ListDocuments returns all documents for a user, sorted by ID.
func (s *Store) ListDocuments(ctx context.Context, userID string) ([]types.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, abstract, authors, year, venue, doi, link, keywords, extended
		 FROM documents WHERE user_id = ? ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []types.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// scanDocument reads one document row, decoding the JSON list columns.
func scanDocument(rows *sql.Rows) (types.Document, error) {
	var (
		doc          types.Document
		title        sql.NullString
		abstract     sql.NullString
		authorsJSON  sql.NullString
		year         sql.NullInt64
		venue        sql.NullString
		doi          sql.NullString
		link         sql.NullString
		keywordsJSON sql.NullString
		extendedJSON sql.NullString
	)

	if err := rows.Scan(
		&doc.ID, &doc.UserID, &title, &abstract, &authorsJSON,
		&year, &venue, &doi, &link, &keywordsJSON, &extendedJSON,
	); err != nil {
		return types.Document{}, fmt.Errorf("scanning document row: %w", err)
	}

	doc.Metadata.Title = title.String
	doc.Metadata.Abstract = abstract.String
	doc.Metadata.Year = int(year.Int64)
	doc.Metadata.Venue = venue.String
	doc.Metadata.DOI = doi.String
	doc.Metadata.Link = link.String

	if authorsJSON.Valid {
		json.Unmarshal([]byte(authorsJSON.String), &doc.Metadata.Authors)
	}
	if keywordsJSON.Valid {
		json.Unmarshal([]byte(keywordsJSON.String), &doc.Metadata.Keywords)
	}
	if extendedJSON.Valid {
		json.Unmarshal([]byte(extendedJSON.String), &doc.Metadata.Extended)
	}
	return doc, nil
}
