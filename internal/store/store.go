// Package store provides the SQLite-backed cache of fetched catalog
// records and assembled samples, so that selection, manifest writing,
// download and search can run without re-fetching the catalog.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/HerwigLab/IsoTools2/internal/catalog"
	"github.com/HerwigLab/IsoTools2/internal/errors"
	"github.com/HerwigLab/IsoTools2/internal/sample"
)

// DB wraps the SQL database connection
type DB struct {
	*sql.DB
	path string
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Initialize creates and configures the database connection
func Initialize(path string) (*DB, error) {
	const op = errors.Op("store.Initialize")

	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000&_sync=NORMAL")
	if err != nil {
		return nil, errors.E(op, errors.KindDatabase, "failed to open database", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 10000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.E(op, errors.KindDatabase,
				fmt.Sprintf("failed to set pragma %s", pragma), err)
		}
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, errors.E(op, errors.KindDatabase, "failed to create tables", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{DB: db, path: path}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		file_accession TEXT PRIMARY KEY,
		experiment_accession TEXT NOT NULL,
		output_type TEXT,
		status TEXT,
		biosample_term_name TEXT,
		biosample_type TEXT,
		technical_replicate TEXT,
		platform TEXT,
		download_url TEXT
	);

	CREATE TABLE IF NOT EXISTS samples (
		position INTEGER PRIMARY KEY,
		sample_name TEXT NOT NULL UNIQUE,
		reads_accession TEXT NOT NULL UNIQUE,
		alignment_accession TEXT,
		experiment_accession TEXT NOT NULL,
		biosample_term_name TEXT,
		biosample_type TEXT,
		technical_replicate TEXT,
		platform TEXT,
		file_name TEXT NOT NULL,
		group_name TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_records_experiment ON records(experiment_accession);
	CREATE INDEX IF NOT EXISTS idx_records_output_type ON records(output_type);
	CREATE INDEX IF NOT EXISTS idx_samples_group ON samples(group_name);
	`

	_, err := db.Exec(schema)
	return err
}

// ReplaceRecords replaces the cached record set in one transaction.
// A fetch always supersedes the previous snapshot wholesale.
func (db *DB) ReplaceRecords(records []catalog.Record) error {
	const op = errors.Op("store.ReplaceRecords")

	tx, err := db.Begin()
	if err != nil {
		return errors.E(op, errors.KindDatabase, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return errors.E(op, errors.KindDatabase, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO records
		(file_accession, experiment_accession, output_type, status,
		 biosample_term_name, biosample_type, technical_replicate, platform, download_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.E(op, errors.KindDatabase, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.Exec(
			rec.File, rec.Experiment, rec.OutputType, rec.Status,
			rec.TermName, rec.BiosampleType, rec.TechnicalReplicate,
			nullString(rec.Platform), nullString(rec.DownloadURL),
		)
		if err != nil {
			return errors.E(op, errors.KindDatabase,
				fmt.Sprintf("inserting record %s", rec.File), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.E(op, errors.KindDatabase, err)
	}
	return nil
}

// Records returns all cached catalog records.
func (db *DB) Records() ([]catalog.Record, error) {
	const op = errors.Op("store.Records")

	rows, err := db.Query(`
		SELECT file_accession, experiment_accession, output_type, status,
		       biosample_term_name, biosample_type, technical_replicate,
		       platform, download_url
		FROM records
		ORDER BY rowid`)
	if err != nil {
		return nil, errors.E(op, errors.KindDatabase, err)
	}
	defer rows.Close()

	var records []catalog.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.E(op, errors.KindDatabase, err)
		}
		records = append(records, rec)
	}
	return records, errors.Wrap(op, rows.Err())
}

// RecordByFile looks up one record by its file accession.
func (db *DB) RecordByFile(accession string) (*catalog.Record, error) {
	const op = errors.Op("store.RecordByFile")

	row := db.QueryRow(`
		SELECT file_accession, experiment_accession, output_type, status,
		       biosample_term_name, biosample_type, technical_replicate,
		       platform, download_url
		FROM records
		WHERE file_accession = ?`, accession)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		// Keep ErrNoRows in the chain so callers can test for not-found.
		return nil, errors.E(op, errors.KindDatabase, err,
			fmt.Sprintf("record %s not found", accession))
	}
	if err != nil {
		return nil, errors.E(op, errors.KindDatabase, err)
	}
	return &rec, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(r rowScanner) (catalog.Record, error) {
	var rec catalog.Record
	var platform, downloadURL sql.NullString
	err := r.Scan(
		&rec.File, &rec.Experiment, &rec.OutputType, &rec.Status,
		&rec.TermName, &rec.BiosampleType, &rec.TechnicalReplicate,
		&platform, &downloadURL,
	)
	rec.Platform = platform.String
	rec.DownloadURL = downloadURL.String
	return rec, err
}

// ReplaceSamples replaces the assembled sample table, preserving table
// order via the position column. Missing alignment links are stored as
// NULL, never as a sentinel string.
func (db *DB) ReplaceSamples(samples []sample.Named) error {
	const op = errors.Op("store.ReplaceSamples")

	tx, err := db.Begin()
	if err != nil {
		return errors.E(op, errors.KindDatabase, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM samples`); err != nil {
		return errors.E(op, errors.KindDatabase, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO samples
		(position, sample_name, reads_accession, alignment_accession,
		 experiment_accession, biosample_term_name, biosample_type,
		 technical_replicate, platform, file_name, group_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.E(op, errors.KindDatabase, err)
	}
	defer stmt.Close()

	for i, s := range samples {
		_, err := stmt.Exec(
			i+1, s.SampleName, s.Reads, nullString(s.Alignment),
			s.Experiment, s.TermName, s.BiosampleType,
			s.TechnicalReplicate, s.Platform, s.FileName, s.Group,
		)
		if err != nil {
			return errors.E(op, errors.KindDatabase,
				fmt.Sprintf("inserting sample %s", s.SampleName), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.E(op, errors.KindDatabase, err)
	}
	return nil
}

// Samples returns the assembled samples in table order.
func (db *DB) Samples() ([]sample.Named, error) {
	const op = errors.Op("store.Samples")

	rows, err := db.Query(`
		SELECT sample_name, reads_accession, alignment_accession,
		       experiment_accession, biosample_term_name, biosample_type,
		       technical_replicate, platform, file_name, group_name
		FROM samples
		ORDER BY position`)
	if err != nil {
		return nil, errors.E(op, errors.KindDatabase, err)
	}
	defer rows.Close()

	var samples []sample.Named
	for rows.Next() {
		var s sample.Named
		var alignment sql.NullString
		err := rows.Scan(
			&s.SampleName, &s.Reads, &alignment,
			&s.Experiment, &s.TermName, &s.BiosampleType,
			&s.TechnicalReplicate, &s.Platform, &s.FileName, &s.Group,
		)
		if err != nil {
			return nil, errors.E(op, errors.KindDatabase, err)
		}
		s.Alignment = alignment.String
		samples = append(samples, s)
	}
	return samples, errors.Wrap(op, rows.Err())
}

// Stats contains store statistics for db info and the API.
type Stats struct {
	Path             string `json:"path"`
	Records          int    `json:"records"`
	ReadsRecords     int    `json:"reads_records"`
	AlignmentRecords int    `json:"alignment_records"`
	Samples          int    `json:"samples"`
	MissingLinks     int    `json:"missing_links"`
}

// Stats reports row counts for the cached tables.
func (db *DB) Stats() (*Stats, error) {
	const op = errors.Op("store.Stats")

	stats := &Stats{Path: db.path}
	queries := []struct {
		dest  *int
		query string
	}{
		{&stats.Records, `SELECT COUNT(*) FROM records`},
		{&stats.ReadsRecords, `SELECT COUNT(*) FROM records WHERE output_type = 'reads'`},
		{&stats.AlignmentRecords, `SELECT COUNT(*) FROM records WHERE output_type = 'alignments'`},
		{&stats.Samples, `SELECT COUNT(*) FROM samples`},
		{&stats.MissingLinks, `SELECT COUNT(*) FROM samples WHERE alignment_accession IS NULL`},
	}
	for _, q := range queries {
		if err := db.QueryRow(q.query).Scan(q.dest); err != nil {
			return nil, errors.E(op, errors.KindDatabase, err)
		}
	}
	return stats, nil
}

// nullString maps the empty string (the missing marker) to SQL NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
