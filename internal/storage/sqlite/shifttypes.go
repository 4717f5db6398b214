package sqlite

import (
	"database/sql"
	"errors"

	"github.com/rotaworks/rota/internal/models"
)

func (s *Store) SaveShiftType(t models.ShiftTypeTiming) error {
	_, err := s.db.Exec(`
		INSERT INTO shift_types (label, start_time, end_time) VALUES (?, ?, ?)
		ON CONFLICT (label) DO UPDATE SET start_time = excluded.start_time, end_time = excluded.end_time`,
		t.Label, t.Start, t.End)
	return err
}

func (s *Store) GetShiftType(label string) (models.ShiftTypeTiming, error) {
	var t models.ShiftTypeTiming
	err := s.db.QueryRow(`SELECT label, start_time, end_time FROM shift_types WHERE label = ?`, label).
		Scan(&t.Label, &t.Start, &t.End)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ShiftTypeTiming{}, models.NotFound("shift type", label)
	}
	if err != nil {
		return models.ShiftTypeTiming{}, err
	}
	return t, nil
}

func (s *Store) GetAllShiftTypes() ([]models.ShiftTypeTiming, error) {
	rows, err := s.db.Query(`SELECT label, start_time, end_time FROM shift_types ORDER BY start_time, label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var timings []models.ShiftTypeTiming
	for rows.Next() {
		var t models.ShiftTypeTiming
		if err := rows.Scan(&t.Label, &t.Start, &t.End); err != nil {
			return nil, err
		}
		timings = append(timings, t)
	}
	return timings, rows.Err()
}

func (s *Store) DeleteShiftType(label string) error {
	res, err := s.db.Exec(`DELETE FROM shift_types WHERE label = ?`, label)
	if err != nil {
		return err
	}
	return requireRow(res, "shift type", label)
}
