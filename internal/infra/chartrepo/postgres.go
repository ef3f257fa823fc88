package chartrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/kundali/internal/domain/chart"
	"github.com/yanqian/kundali/internal/domain/natal"
)

// PostgresRepository implements chart.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Save writes the person row and its planet rows in one transaction.
func (r *PostgresRepository) Save(ctx context.Context, record chart.Record) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		moment := record.Chart.Moment
		lagna := record.Chart.Lagna
		_, err := tx.Exec(ctx, `
			INSERT INTO person (
				id, owner, name, place_name, dob, tob, timezone, latitude, longitude, ayanamsa,
				birth_utc, julian_day_ut, julian_day_tt, ayanamsa_degrees, sidereal_time, obliquity,
				lagna_sign, lagna_degree, lagna_longitude, lagna_low_confidence, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		`,
			record.ID, record.Owner, record.Name, record.Place,
			record.Birth.Date, record.Birth.Time, record.Birth.Timezone,
			record.Birth.Latitude, record.Birth.Longitude, ayanamsaName,
			moment.UTC, moment.JulianDayUT, moment.JulianDayTT, moment.Ayanamsa, moment.SiderealTime, moment.Obliquity,
			string(lagna.Sign), lagna.Degree, lagna.Longitude, lagna.LowConfidence, record.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert person: %w", err)
		}

		batch := &pgx.Batch{}
		for _, p := range record.Chart.Planets {
			batch.Queue(`
				INSERT INTO natal_planet (
					person_id, planet, sign, house, sidereal_longitude, degree_in_sign,
					nakshatra, nakshatra_pada, nakshatra_lord, is_retrograde, is_combust, dignity, speed
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
			`,
				record.ID, string(p.Planet), string(p.Sign), p.House, p.Longitude, p.Degree,
				p.Nakshatra, p.Pada, string(p.NakshatraLord), p.Retrograde, p.Combust, string(p.Dignity), p.Speed,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert planets: %w", err)
		}
		return nil
	})
}

// Get loads one chart owned by owner.
func (r *PostgresRepository) Get(ctx context.Context, owner string, id uuid.UUID) (chart.Record, bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+personColumns+` FROM person WHERE id = $1 AND owner = $2`, id, owner)
	record, err := scanPostgresPerson(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return chart.Record{}, false, nil
	}
	if err != nil {
		return chart.Record{}, false, err
	}
	planets, err := r.loadPlanets(ctx, []uuid.UUID{record.ID})
	if err != nil {
		return chart.Record{}, false, err
	}
	record.Chart.Planets = planets[record.ID]
	return record, true, nil
}

// List returns the newest charts of owner.
func (r *PostgresRepository) List(ctx context.Context, owner string, limit int) ([]chart.Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+personColumns+`
		FROM person
		WHERE owner = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`, owner, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		records []chart.Record
		ids     []uuid.UUID
	)
	for rows.Next() {
		record, err := scanPostgresPerson(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
		ids = append(ids, record.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	planets, err := r.loadPlanets(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Chart.Planets = planets[records[i].ID]
	}
	return records, nil
}

func (r *PostgresRepository) loadPlanets(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]natal.PlanetReading, error) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}
	rows, err := r.pool.Query(ctx, `
		SELECT person_id, planet, sign, house, sidereal_longitude, degree_in_sign,
			nakshatra, nakshatra_pada, nakshatra_lord, is_retrograde, is_combust, dignity, speed
		FROM natal_planet
		WHERE person_id = ANY($1::uuid[])
	`, keys)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]natal.PlanetReading, len(ids))
	for rows.Next() {
		var (
			personID                    uuid.UUID
			planet, sign, lord, dignity string
			reading                     natal.PlanetReading
		)
		if err := rows.Scan(
			&personID, &planet, &sign, &reading.House, &reading.Longitude, &reading.Degree,
			&reading.Nakshatra, &reading.Pada, &lord, &reading.Retrograde, &reading.Combust, &dignity, &reading.Speed,
		); err != nil {
			return nil, err
		}
		reading.Planet = natal.Planet(planet)
		reading.Sign = natal.Sign(sign)
		reading.NakshatraLord = natal.Planet(lord)
		reading.Dignity = natal.Dignity(dignity)
		out[personID] = append(out[personID], reading)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for id := range out {
		sortPlanets(out[id])
	}
	return out, nil
}

const personColumns = `id, owner, name, place_name, dob, tob, timezone, latitude, longitude,
	birth_utc, julian_day_ut, julian_day_tt, ayanamsa_degrees, sidereal_time, obliquity,
	lagna_sign, lagna_degree, lagna_longitude, lagna_low_confidence, created_at`

func scanPostgresPerson(row pgx.Row) (chart.Record, error) {
	var (
		record    chart.Record
		lagnaSign string
	)
	moment := &record.Chart.Moment
	lagna := &record.Chart.Lagna
	err := row.Scan(
		&record.ID, &record.Owner, &record.Name, &record.Place,
		&record.Birth.Date, &record.Birth.Time, &record.Birth.Timezone,
		&record.Birth.Latitude, &record.Birth.Longitude,
		&moment.UTC, &moment.JulianDayUT, &moment.JulianDayTT, &moment.Ayanamsa, &moment.SiderealTime, &moment.Obliquity,
		&lagnaSign, &lagna.Degree, &lagna.Longitude, &lagna.LowConfidence, &record.CreatedAt,
	)
	if err != nil {
		return chart.Record{}, err
	}
	lagna.Sign = natal.Sign(lagnaSign)
	moment.UTC = moment.UTC.UTC()
	record.CreatedAt = record.CreatedAt.UTC()
	return record, nil
}

var _ chart.Repository = (*PostgresRepository)(nil)
