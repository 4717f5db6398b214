package engine

import (
	"time"

	"github.com/rotaworks/rota/internal/constants"
	"github.com/rotaworks/rota/internal/models"
)

// Timeline manages the date-ranged driver↔pattern assignments: creation with
// automatic truncation of earlier overlaps, ending, and removal with
// restoration of the truncated predecessor. Every mutation runs inside one
// storage transaction.
type Timeline struct {
	store TimelineStore
}

// NewTimeline creates a Timeline backed by the given store.
func NewTimeline(store TimelineStore) *Timeline {
	return &Timeline{store: store}
}

// Assign creates a new assignment for the driver. Any of the driver's
// assignments that started earlier and are still active at or after the new
// start date is truncated to end the day before; the latest-starting of those
// is recorded as the new assignment's predecessor so EndNow and Remove can
// reopen it later. Later-starting assignments are left alone: a caller is
// free to stack future-dated assignments that overlap each other.
func (t *Timeline) Assign(driverID, patternID int64, start time.Time, end *time.Time) (models.Assignment, error) {
	if _, err := t.store.GetDriver(driverID); err != nil {
		return models.Assignment{}, err
	}
	if _, err := t.store.GetPattern(patternID); err != nil {
		return models.Assignment{}, err
	}

	startDay := models.DateOnly(start)
	created := models.Assignment{
		DriverID:  driverID,
		PatternID: patternID,
		StartDate: startDay.Format(constants.DateFormat),
	}
	if end != nil {
		endDay := models.DateOnly(*end)
		if endDay.Before(startDay) {
			return models.Assignment{}, models.Invalid("end date %s is before start date %s",
				endDay.Format(constants.DateFormat), startDay.Format(constants.DateFormat))
		}
		s := endDay.Format(constants.DateFormat)
		created.EndDate = &s
	}

	err := t.store.InTx(func(tx Tx) error {
		existing, err := tx.GetAssignmentsForDriver(driverID)
		if err != nil {
			return err
		}

		cutoff := startDay.AddDate(0, 0, -1).Format(constants.DateFormat)
		var predecessor *models.Assignment
		for i := range existing {
			a := existing[i]
			if a.StartDate >= created.StartDate {
				continue
			}
			if a.EndDate != nil && *a.EndDate < created.StartDate {
				continue
			}
			truncated := cutoff
			a.EndDate = &truncated
			if err := tx.UpdateAssignment(a); err != nil {
				return err
			}
			if predecessor == nil || a.StartDate > predecessor.StartDate {
				p := a
				predecessor = &p
			}
		}
		if predecessor != nil {
			created.PredecessorID = &predecessor.ID
		}

		id, err := tx.InsertAssignment(created)
		if err != nil {
			return err
		}
		created.ID = id
		return nil
	})
	if err != nil {
		return models.Assignment{}, err
	}
	return created, nil
}

// EndNow closes an ongoing assignment as of today and reopens the assignment
// it truncated at creation time, if any. Ending an already-ended assignment
// fails with models.ErrAlreadyEnded.
func (t *Timeline) EndNow(assignmentID int64, now time.Time) (models.Assignment, error) {
	today := models.DateOnly(now).Format(constants.DateFormat)

	var ended models.Assignment
	err := t.store.InTx(func(tx Tx) error {
		a, err := tx.GetAssignment(assignmentID)
		if err != nil {
			return err
		}
		if a.EndDate != nil {
			return models.ErrAlreadyEnded
		}

		a.EndDate = &today
		if err := tx.UpdateAssignment(a); err != nil {
			return err
		}
		if err := t.restorePredecessor(tx, a); err != nil {
			return err
		}
		ended = a
		return nil
	})
	if err != nil {
		return models.Assignment{}, err
	}
	return ended, nil
}

// Remove deletes an assignment outright, first reopening its truncated
// predecessor by the same protocol EndNow uses.
func (t *Timeline) Remove(assignmentID int64) error {
	return t.store.InTx(func(tx Tx) error {
		a, err := tx.GetAssignment(assignmentID)
		if err != nil {
			return err
		}
		if err := t.restorePredecessor(tx, a); err != nil {
			return err
		}
		return tx.DeleteAssignment(a.ID)
	})
}

// restorePredecessor reopens the assignment that was auto-truncated when a
// was created. The stored predecessor id makes this an exact lookup; rows
// predating the id column fall back to the original adjacency heuristic:
// any sibling whose end date is the day before a's start date, latest start
// date winning ties. Either way the candidate is only reopened while its end
// date still sits on that boundary, so a predecessor that has since been
// ended for real stays ended.
func (t *Timeline) restorePredecessor(tx Tx, a models.Assignment) error {
	start, err := time.Parse(constants.DateFormat, a.StartDate)
	if err != nil {
		return models.Invalid("assignment %d has malformed start date %q", a.ID, a.StartDate)
	}
	boundary := start.AddDate(0, 0, -1).Format(constants.DateFormat)

	var candidate *models.Assignment
	if a.PredecessorID != nil {
		p, err := tx.GetAssignment(*a.PredecessorID)
		if err == nil {
			candidate = &p
		} else if !models.IsNotFound(err) {
			return err
		}
		// A predecessor deleted in the meantime just means nothing to restore.
	} else {
		siblings, err := tx.GetAssignmentsForDriver(a.DriverID)
		if err != nil {
			return err
		}
		for i := range siblings {
			s := siblings[i]
			if s.ID == a.ID || s.EndDate == nil || *s.EndDate != boundary {
				continue
			}
			if candidate == nil || s.StartDate > candidate.StartDate {
				candidate = &s
			}
		}
	}

	if candidate == nil || candidate.EndDate == nil || *candidate.EndDate != boundary {
		return nil
	}
	candidate.EndDate = nil
	return tx.UpdateAssignment(*candidate)
}
