package chartrepo

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/yanqian/kundali/internal/domain/chart"
	"github.com/yanqian/kundali/internal/domain/natal"
)

//go:embed sqlite_schema.sql
var sqliteSchema string

// SQLiteRepository implements chart.Repository on a local SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Save writes the person row and its planet rows in one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, record chart.Record) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	moment := record.Chart.Moment
	lagna := record.Chart.Lagna
	_, err = tx.ExecContext(ctx, `
		INSERT INTO person (
			id, owner, name, place_name, dob, tob, timezone, latitude, longitude, ayanamsa,
			birth_utc, julian_day_ut, julian_day_tt, ayanamsa_degrees, sidereal_time, obliquity,
			lagna_sign, lagna_degree, lagna_longitude, lagna_low_confidence, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		record.ID.String(), record.Owner, record.Name, record.Place,
		record.Birth.Date, record.Birth.Time, record.Birth.Timezone,
		record.Birth.Latitude, record.Birth.Longitude, ayanamsaName,
		formatTime(moment.UTC), moment.JulianDayUT, moment.JulianDayTT, moment.Ayanamsa, moment.SiderealTime, moment.Obliquity,
		string(lagna.Sign), lagna.Degree, lagna.Longitude, lagna.LowConfidence, formatTime(record.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO natal_planet (
			person_id, planet, sign, house, sidereal_longitude, degree_in_sign,
			nakshatra, nakshatra_pada, nakshatra_lord, is_retrograde, is_combust, dignity, speed
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
	`)
	if err != nil {
		return fmt.Errorf("prepare planets: %w", err)
	}
	defer stmt.Close()
	for _, p := range record.Chart.Planets {
		if _, err = stmt.ExecContext(ctx,
			record.ID.String(), string(p.Planet), string(p.Sign), p.House, p.Longitude, p.Degree,
			p.Nakshatra, p.Pada, string(p.NakshatraLord), p.Retrograde, p.Combust, string(p.Dignity), p.Speed,
		); err != nil {
			return fmt.Errorf("insert planet %s: %w", p.Planet, err)
		}
	}
	return tx.Commit()
}

// Get loads one chart owned by owner.
func (r *SQLiteRepository) Get(ctx context.Context, owner string, id uuid.UUID) (chart.Record, bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+personColumns+` FROM person WHERE id = ? AND owner = ?`, id.String(), owner)
	if err != nil {
		return chart.Record{}, false, err
	}
	records, err := scanSQLitePeople(rows)
	if err != nil {
		return chart.Record{}, false, err
	}
	if len(records) == 0 {
		return chart.Record{}, false, nil
	}
	if err := r.attachPlanets(ctx, records); err != nil {
		return chart.Record{}, false, err
	}
	return records[0], true, nil
}

// List returns the newest charts of owner.
func (r *SQLiteRepository) List(ctx context.Context, owner string, limit int) ([]chart.Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+personColumns+`
		FROM person
		WHERE owner = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, owner, limit)
	if err != nil {
		return nil, err
	}
	records, err := scanSQLitePeople(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachPlanets(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *SQLiteRepository) attachPlanets(ctx context.Context, records []chart.Record) error {
	if len(records) == 0 {
		return nil
	}
	args := make([]any, 0, len(records))
	index := make(map[string]int, len(records))
	for i, record := range records {
		args = append(args, record.ID.String())
		index[record.ID.String()] = i
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(records)), ",")
	rows, err := r.db.QueryContext(ctx, `
		SELECT person_id, planet, sign, house, sidereal_longitude, degree_in_sign,
			nakshatra, nakshatra_pada, nakshatra_lord, is_retrograde, is_combust, dignity, speed
		FROM natal_planet
		WHERE person_id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			personID, planet, sign, lord, dignity string
			reading                               natal.PlanetReading
		)
		if err := rows.Scan(
			&personID, &planet, &sign, &reading.House, &reading.Longitude, &reading.Degree,
			&reading.Nakshatra, &reading.Pada, &lord, &reading.Retrograde, &reading.Combust, &dignity, &reading.Speed,
		); err != nil {
			return err
		}
		reading.Planet = natal.Planet(planet)
		reading.Sign = natal.Sign(sign)
		reading.NakshatraLord = natal.Planet(lord)
		reading.Dignity = natal.Dignity(dignity)
		i := index[personID]
		records[i].Chart.Planets = append(records[i].Chart.Planets, reading)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range records {
		sortPlanets(records[i].Chart.Planets)
	}
	return nil
}

func scanSQLitePeople(rows *sql.Rows) ([]chart.Record, error) {
	defer rows.Close()
	var out []chart.Record
	for rows.Next() {
		var (
			record                         chart.Record
			id, lagnaSign, birthUTC, added string
		)
		moment := &record.Chart.Moment
		lagna := &record.Chart.Lagna
		if err := rows.Scan(
			&id, &record.Owner, &record.Name, &record.Place,
			&record.Birth.Date, &record.Birth.Time, &record.Birth.Timezone,
			&record.Birth.Latitude, &record.Birth.Longitude,
			&birthUTC, &moment.JulianDayUT, &moment.JulianDayTT, &moment.Ayanamsa, &moment.SiderealTime, &moment.Obliquity,
			&lagnaSign, &lagna.Degree, &lagna.Longitude, &lagna.LowConfidence, &added,
		); err != nil {
			return nil, err
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("person id %q: %w", id, err)
		}
		record.ID = parsed
		if moment.UTC, err = parseTime(birthUTC); err != nil {
			return nil, err
		}
		if record.CreatedAt, err = parseTime(added); err != nil {
			return nil, err
		}
		lagna.Sign = natal.Sign(lagnaSign)
		out = append(out, record)
	}
	return out, rows.Err()
}

// Timestamps are stored as fixed-width UTC text so they sort lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return t, nil
}

var _ chart.Repository = (*SQLiteRepository)(nil)
