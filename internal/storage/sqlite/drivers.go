package sqlite

import (
	"database/sql"
	"errors"

	"github.com/rotaworks/rota/internal/models"
)

func (s *Store) AddDriver(d models.Driver) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO drivers (number, name) VALUES (?, ?)`, d.Number, d.Name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) GetDriver(id int64) (models.Driver, error) {
	row := s.db.QueryRow(`SELECT id, number, name FROM drivers WHERE id = ?`, id)
	return scanDriver(row, id)
}

func (s *Store) GetDriverByNumber(number string) (models.Driver, error) {
	row := s.db.QueryRow(`SELECT id, number, name FROM drivers WHERE number = ?`, number)
	return scanDriver(row, number)
}

func scanDriver(row *sql.Row, key any) (models.Driver, error) {
	var d models.Driver
	err := row.Scan(&d.ID, &d.Number, &d.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Driver{}, models.NotFound("driver", key)
	}
	if err != nil {
		return models.Driver{}, err
	}
	return d, nil
}

func (s *Store) GetAllDrivers() ([]models.Driver, error) {
	rows, err := s.db.Query(`SELECT id, number, name FROM drivers ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []models.Driver
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Number, &d.Name); err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (s *Store) UpdateDriver(d models.Driver) error {
	res, err := s.db.Exec(`UPDATE drivers SET number = ?, name = ? WHERE id = ?`, d.Number, d.Name, d.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "driver", d.ID)
}

func (s *Store) DeleteDriver(id int64) error {
	res, err := s.db.Exec(`DELETE FROM drivers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "driver", id)
}

// requireRow turns a zero-row update/delete into a typed NotFound.
func requireRow(res sql.Result, entity string, key any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NotFound(entity, key)
	}
	return nil
}
