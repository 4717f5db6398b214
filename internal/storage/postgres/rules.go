package postgres

import (
	"database/sql"
	"errors"

	"github.com/rotaworks/rota/internal/models"
)

const ruleCols = `id, driver_id, assignment_id, shift_type, cycle_day, weekday, start_time, end_time, priority, note`

func (s *Store) AddRule(r models.TimingRule) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
		INSERT INTO timing_rules (driver_id, assignment_id, shift_type, cycle_day, weekday, start_time, end_time, priority, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		r.DriverID, r.AssignmentID, r.ShiftType, r.CycleDay, r.Weekday, r.Start, r.End, r.Priority, r.Note).Scan(&id)
	return id, err
}

func (s *Store) GetRule(id int64) (models.TimingRule, error) {
	row := s.db.QueryRow(`SELECT `+ruleCols+` FROM timing_rules WHERE id = $1`, id)
	r, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TimingRule{}, models.NotFound("timing rule", id)
	}
	return r, err
}

func (s *Store) GetRulesForDriver(driverID int64) ([]models.TimingRule, error) {
	return s.queryRules(`SELECT `+ruleCols+` FROM timing_rules WHERE driver_id = $1 ORDER BY priority, id`, driverID)
}

func (s *Store) GetAllRules() ([]models.TimingRule, error) {
	return s.queryRules(`SELECT ` + ruleCols + ` FROM timing_rules ORDER BY driver_id, priority, id`)
}

func (s *Store) DeleteRule(id int64) error {
	res, err := s.db.Exec(`DELETE FROM timing_rules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "timing rule", id)
}

type ruleScanner interface {
	Scan(dest ...any) error
}

func scanRule(row ruleScanner) (models.TimingRule, error) {
	var r models.TimingRule
	var assignmentID sql.NullInt64
	var shiftType sql.NullString
	var cycleDay, weekday sql.NullInt64
	err := row.Scan(&r.ID, &r.DriverID, &assignmentID, &shiftType, &cycleDay, &weekday,
		&r.Start, &r.End, &r.Priority, &r.Note)
	if err != nil {
		return models.TimingRule{}, err
	}
	if assignmentID.Valid {
		r.AssignmentID = &assignmentID.Int64
	}
	if shiftType.Valid {
		r.ShiftType = &shiftType.String
	}
	if cycleDay.Valid {
		d := int(cycleDay.Int64)
		r.CycleDay = &d
	}
	if weekday.Valid {
		w := int(weekday.Int64)
		r.Weekday = &w
	}
	return r, nil
}

func (s *Store) queryRules(query string, args ...any) ([]models.TimingRule, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.TimingRule
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}
