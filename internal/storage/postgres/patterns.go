package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rotaworks/rota/internal/models"
)

func (s *Store) AddPattern(p models.ShiftPattern) (int64, error) {
	days, err := json.Marshal(p.Days)
	if err != nil {
		return 0, fmt.Errorf("failed to encode pattern days: %w", err)
	}
	var id int64
	err = s.db.QueryRow(`INSERT INTO shift_patterns (name, cycle_length, days) VALUES ($1, $2, $3) RETURNING id`,
		p.Name, p.CycleLength, string(days)).Scan(&id)
	return id, err
}

func (s *Store) GetPattern(id int64) (models.ShiftPattern, error) {
	row := s.db.QueryRow(`SELECT id, name, cycle_length, days FROM shift_patterns WHERE id = $1`, id)
	return scanPattern(row, id)
}

func (s *Store) GetPatternByName(name string) (models.ShiftPattern, error) {
	row := s.db.QueryRow(`SELECT id, name, cycle_length, days FROM shift_patterns WHERE name = $1`, name)
	return scanPattern(row, name)
}

func scanPattern(row *sql.Row, key any) (models.ShiftPattern, error) {
	var p models.ShiftPattern
	var days string
	err := row.Scan(&p.ID, &p.Name, &p.CycleLength, &days)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ShiftPattern{}, models.NotFound("pattern", key)
	}
	if err != nil {
		return models.ShiftPattern{}, err
	}
	if err := json.Unmarshal([]byte(days), &p.Days); err != nil {
		return models.ShiftPattern{}, fmt.Errorf("failed to decode days for pattern %v: %w", key, err)
	}
	return p, nil
}

func (s *Store) GetAllPatterns() ([]models.ShiftPattern, error) {
	rows, err := s.db.Query(`SELECT id, name, cycle_length, days FROM shift_patterns ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []models.ShiftPattern
	for rows.Next() {
		var p models.ShiftPattern
		var days string
		if err := rows.Scan(&p.ID, &p.Name, &p.CycleLength, &days); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(days), &p.Days); err != nil {
			return nil, fmt.Errorf("failed to decode days for pattern %d: %w", p.ID, err)
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

func (s *Store) UpdatePattern(p models.ShiftPattern) error {
	days, err := json.Marshal(p.Days)
	if err != nil {
		return fmt.Errorf("failed to encode pattern days: %w", err)
	}
	res, err := s.db.Exec(`UPDATE shift_patterns SET name = $1, cycle_length = $2, days = $3 WHERE id = $4`,
		p.Name, p.CycleLength, string(days), p.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "pattern", p.ID)
}

func (s *Store) DeletePattern(id int64) error {
	res, err := s.db.Exec(`DELETE FROM shift_patterns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "pattern", id)
}
