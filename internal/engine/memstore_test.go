package engine

import (
	"sort"

	"github.com/rotaworks/rota/internal/models"
)

// memStore is an in-memory store used by the engine tests. InTx runs the
// callback directly against the store; the tests never rely on rollback.
type memStore struct {
	drivers     map[int64]models.Driver
	patterns    map[int64]models.ShiftPattern
	timings     map[string]models.ShiftTypeTiming
	assignments map[int64]models.Assignment
	rules       map[int64]models.TimingRule
	nextID      int64
}

func newMemStore() *memStore {
	return &memStore{
		drivers:     make(map[int64]models.Driver),
		patterns:    make(map[int64]models.ShiftPattern),
		timings:     make(map[string]models.ShiftTypeTiming),
		assignments: make(map[int64]models.Assignment),
		rules:       make(map[int64]models.TimingRule),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) addDriver(number string) models.Driver {
	d := models.Driver{ID: m.id(), Number: number}
	m.drivers[d.ID] = d
	return d
}

func (m *memStore) addPattern(name string, days ...string) models.ShiftPattern {
	p := models.ShiftPattern{ID: m.id(), Name: name, CycleLength: len(days), Days: days}
	m.patterns[p.ID] = p
	return p
}

func (m *memStore) addTiming(label, start, end string) {
	m.timings[label] = models.ShiftTypeTiming{Label: label, Start: start, End: end}
}

func (m *memStore) addAssignment(a models.Assignment) models.Assignment {
	a.ID = m.id()
	m.assignments[a.ID] = a
	return a
}

func (m *memStore) addRule(r models.TimingRule) models.TimingRule {
	r.ID = m.id()
	m.rules[r.ID] = r
	return r
}

func (m *memStore) GetDriver(id int64) (models.Driver, error) {
	d, ok := m.drivers[id]
	if !ok {
		return models.Driver{}, models.NotFound("driver", id)
	}
	return d, nil
}

func (m *memStore) GetPattern(id int64) (models.ShiftPattern, error) {
	p, ok := m.patterns[id]
	if !ok {
		return models.ShiftPattern{}, models.NotFound("pattern", id)
	}
	return p, nil
}

func (m *memStore) GetShiftType(label string) (models.ShiftTypeTiming, error) {
	t, ok := m.timings[label]
	if !ok {
		return models.ShiftTypeTiming{}, models.NotFound("shift type", label)
	}
	return t, nil
}

func (m *memStore) GetAllShiftTypes() ([]models.ShiftTypeTiming, error) {
	var out []models.ShiftTypeTiming
	for _, t := range m.timings {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (m *memStore) SaveShiftType(t models.ShiftTypeTiming) error {
	m.timings[t.Label] = t
	return nil
}

func (m *memStore) DeleteShiftType(label string) error {
	delete(m.timings, label)
	return nil
}

func (m *memStore) GetAllPatterns() ([]models.ShiftPattern, error) {
	var out []models.ShiftPattern
	for _, p := range m.patterns {
		out = append(out, p)
	}
	return out, nil
}

func (m *memStore) GetAllRules() ([]models.TimingRule, error) {
	var out []models.TimingRule
	for _, r := range m.rules {
		out = append(out, r)
	}
	return out, nil
}

func (m *memStore) GetAssignmentsActiveOn(date string) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range m.assignments {
		if a.StartDate > date {
			continue
		}
		if a.EndDate != nil && *a.EndDate < date {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) GetRulesForDriver(driverID int64) ([]models.TimingRule, error) {
	var out []models.TimingRule
	for _, r := range m.rules {
		if r.DriverID == driverID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) InTx(fn func(Tx) error) error {
	return fn(m)
}

func (m *memStore) GetAssignment(id int64) (models.Assignment, error) {
	a, ok := m.assignments[id]
	if !ok {
		return models.Assignment{}, models.NotFound("assignment", id)
	}
	return a, nil
}

func (m *memStore) GetAssignmentsForDriver(driverID int64) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range m.assignments {
		if a.DriverID == driverID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) InsertAssignment(a models.Assignment) (int64, error) {
	a.ID = m.id()
	m.assignments[a.ID] = a
	return a.ID, nil
}

func (m *memStore) UpdateAssignment(a models.Assignment) error {
	if _, ok := m.assignments[a.ID]; !ok {
		return models.NotFound("assignment", a.ID)
	}
	m.assignments[a.ID] = a
	return nil
}

func (m *memStore) DeleteAssignment(id int64) error {
	if _, ok := m.assignments[id]; !ok {
		return models.NotFound("assignment", id)
	}
	delete(m.assignments, id)
	return nil
}
