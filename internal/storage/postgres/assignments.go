package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rotaworks/rota/internal/engine"
	"github.com/rotaworks/rota/internal/models"
)

const assignmentCols = `id, driver_id, pattern_id, start_date, end_date, predecessor_id`

func (s *Store) GetAssignment(id int64) (models.Assignment, error) {
	return getAssignment(s.db, id)
}

func (s *Store) GetAllAssignments() ([]models.Assignment, error) {
	return queryAssignments(s.db, `SELECT `+assignmentCols+` FROM assignments ORDER BY start_date, id`)
}

func (s *Store) GetAssignmentsForDriver(driverID int64) ([]models.Assignment, error) {
	return getAssignmentsForDriver(s.db, driverID)
}

func (s *Store) GetAssignmentsActiveOn(date string) ([]models.Assignment, error) {
	return queryAssignments(s.db, `
		SELECT `+assignmentCols+` FROM assignments
		WHERE start_date <= $1 AND (end_date IS NULL OR end_date >= $1)
		ORDER BY start_date, id`, date)
}

// InTx runs fn against a transaction-scoped assignment view, committing only
// if fn succeeds.
func (s *Store) InTx(fn func(engine.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&assignmentTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type assignmentTx struct {
	tx *sql.Tx
}

func (t *assignmentTx) GetAssignment(id int64) (models.Assignment, error) {
	return getAssignment(t.tx, id)
}

func (t *assignmentTx) GetAssignmentsForDriver(driverID int64) ([]models.Assignment, error) {
	return getAssignmentsForDriver(t.tx, driverID)
}

func (t *assignmentTx) InsertAssignment(a models.Assignment) (int64, error) {
	var id int64
	err := t.tx.QueryRow(`
		INSERT INTO assignments (driver_id, pattern_id, start_date, end_date, predecessor_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		a.DriverID, a.PatternID, a.StartDate, a.EndDate, a.PredecessorID).Scan(&id)
	return id, err
}

func (t *assignmentTx) UpdateAssignment(a models.Assignment) error {
	res, err := t.tx.Exec(`
		UPDATE assignments
		SET driver_id = $1, pattern_id = $2, start_date = $3, end_date = $4, predecessor_id = $5
		WHERE id = $6`,
		a.DriverID, a.PatternID, a.StartDate, a.EndDate, a.PredecessorID, a.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "assignment", a.ID)
}

func (t *assignmentTx) DeleteAssignment(id int64) error {
	res, err := t.tx.Exec(`DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "assignment", id)
}

func getAssignment(q querier, id int64) (models.Assignment, error) {
	row := q.QueryRow(`SELECT `+assignmentCols+` FROM assignments WHERE id = $1`, id)
	var a models.Assignment
	var endDate sql.NullString
	var predecessor sql.NullInt64
	err := row.Scan(&a.ID, &a.DriverID, &a.PatternID, &a.StartDate, &endDate, &predecessor)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Assignment{}, models.NotFound("assignment", id)
	}
	if err != nil {
		return models.Assignment{}, err
	}
	if endDate.Valid {
		a.EndDate = &endDate.String
	}
	if predecessor.Valid {
		a.PredecessorID = &predecessor.Int64
	}
	return a, nil
}

func getAssignmentsForDriver(q querier, driverID int64) ([]models.Assignment, error) {
	return queryAssignments(q, `
		SELECT `+assignmentCols+` FROM assignments
		WHERE driver_id = $1 ORDER BY start_date, id`, driverID)
}

func queryAssignments(q querier, query string, args ...any) ([]models.Assignment, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var a models.Assignment
		var endDate sql.NullString
		var predecessor sql.NullInt64
		if err := rows.Scan(&a.ID, &a.DriverID, &a.PatternID, &a.StartDate, &endDate, &predecessor); err != nil {
			return nil, err
		}
		if endDate.Valid {
			a.EndDate = &endDate.String
		}
		if predecessor.Valid {
			a.PredecessorID = &predecessor.Int64
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
