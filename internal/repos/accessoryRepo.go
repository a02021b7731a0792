package repos

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oantby/homebridge-api/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

const initSchema = `
  CREATE TABLE IF NOT EXISTS accessory (
    aid INTEGER PRIMARY KEY,
    name TEXT,
    services TEXT,
    refresh_generation VARCHAR(36),
    unreachable INTEGER,
    last_update_time TIMESTAMP,
    last_update_attribute TEXT,
    last_write_outcome TEXT
  );

  DELETE FROM accessory;
`

// OpenDB opens the sqlite database at path (":memory:" for a throwaway one).
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("Error opening database (%s): %w", path, err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	return db, nil
}

type AccessoryRepo struct {
	logger *log.Logger
	db     *sql.DB
}

func NewAccessoryRepo(logger *log.Logger, db *sql.DB) (*AccessoryRepo, error) {

	_, err := db.Exec(initSchema)
	if err != nil {
		return nil, fmt.Errorf("Error initialising accessory schema: %w", err)
	}

	return &AccessoryRepo{logger: logger, db: db}, nil
}

// ReplaceAll records the accessories of a refresh. Accessories missing from
// the refresh are removed, known ones keep their reachability.
func (r *AccessoryRepo) ReplaceAll(generation string, accessories []models.AccessorySummary) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("Error starting accessory update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, acc := range accessories {
		_, err := tx.Exec(
			`INSERT INTO accessory 
      (aid, name, services, refresh_generation) 
     VALUES ($1, $2, $3, $4)
     ON CONFLICT(aid) DO UPDATE SET 
       name = excluded.name,
       services = excluded.services,
       refresh_generation = excluded.refresh_generation;`,
			acc.Aid,
			acc.Name,
			strings.Join(acc.Services, ","),
			generation,
		)
		if err != nil {
			return fmt.Errorf("Error adding accessory (%d): %w", acc.Aid, err)
		}
	}

	_, err = tx.Exec("DELETE FROM accessory WHERE refresh_generation != $1", generation)
	if err != nil {
		return fmt.Errorf("Error removing stale accessories: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("Error adding accessories: %w", err)
	}

	return nil
}

func (r *AccessoryRepo) MarkAccessoryAsUpdated(aid int, attribute string) error {
	_, err := r.db.Exec(`
    UPDATE accessory 
    SET unreachable = null,
        last_update_time = $1,
        last_update_attribute = $2,
        last_write_outcome = $3
    WHERE aid = $4
  `, time.Now(), attribute, models.WriteSucceeded.String(), aid)
	if err != nil {
		return fmt.Errorf("Error marking accessory (%d) as updated: %w", aid, err)
	}
	return nil
}

func (r *AccessoryRepo) SetAccessoryUnreachable(aid int, attribute string, outcome models.WriteOutcome) error {
	_, err := r.db.Exec(`
    UPDATE accessory 
    SET unreachable = true,
        last_update_time = $1,
        last_update_attribute = $2,
        last_write_outcome = $3
    WHERE aid = $4
  `, time.Now(), attribute, outcome.String(), aid)
	if err != nil {
		return fmt.Errorf("Error setting accessory (%d) to unreachable: %w", aid, err)
	}
	return nil
}

const statusColumns = `aid, name, refresh_generation, unreachable, last_update_time, last_update_attribute, last_write_outcome`

func scanStatus(scan func(dest ...any) error) (models.AccessoryStatus, error) {
	var (
		status      models.AccessoryStatus
		name        sql.NullString
		generation  sql.NullString
		unreachable sql.NullBool
		lastUpdate  sql.NullTime
		attribute   sql.NullString
		outcome     sql.NullString
	)
	if err := scan(&status.Aid, &name, &generation, &unreachable, &lastUpdate, &attribute, &outcome); err != nil {
		return models.AccessoryStatus{}, err
	}

	status.Name = name.String
	status.RefreshGeneration = generation.String
	status.Unreachable = unreachable.Valid && unreachable.Bool
	status.LastAttribute = attribute.String
	status.LastWriteOutcome = outcome.String
	if lastUpdate.Valid {
		status.LastUpdateTime = &lastUpdate.Time
	}
	return status, nil
}

func (r *AccessoryRepo) GetAccessoryStatus(aid int) (*models.AccessoryStatus, error) {
	row := r.db.QueryRow("SELECT "+statusColumns+" FROM accessory WHERE aid = $1", aid)
	status, err := scanStatus(row.Scan)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		} else {
			return nil, fmt.Errorf("Error reading status for accessory (%d): %w", aid, err)
		}
	}
	return &status, nil
}

func (r *AccessoryRepo) GetUnreachableAccessories() ([]models.AccessoryStatus, error) {
	rows, err := r.db.Query("SELECT " + statusColumns + " FROM accessory WHERE unreachable IS NOT NULL AND unreachable != 0 ORDER BY aid")
	if err != nil {
		return nil, fmt.Errorf("Error reading unreachable accessories: %w", err)
	}
	defer rows.Close()

	statuses := []models.AccessoryStatus{}

	for rows.Next() {
		status, err := scanStatus(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("Error reading unreachable accessories: %w", err)
		}
		statuses = append(statuses, status)
	}

	return statuses, rows.Err()
}
