package assignments

import (
	"github.com/dalemusser/danahub/internal/domain/models"
)

// Transition applies confirm to a single assignment.
//
//	Pending   → Confirmed(today), changed = true
//	Confirmed → unchanged,        changed = false (the date is not re-stamped)
//
// Confirming before the scheduled date fails with ErrNotYetDue, so a
// confirmed assignment's confirmation date is never earlier than its
// scheduled date.
func Transition(a models.Assignment, today models.Date) (models.Assignment, bool, error) {
	if a.Confirmation.IsConfirmed() {
		return a, false, nil
	}
	if today.Before(a.Date) {
		return a, false, ErrNotYetDue
	}
	a.Confirmation = models.Confirmed(today)
	return a, true, nil
}

// Confirm returns a copy of list where the assignment with the given id has
// been confirmed on today. Every other element is carried over unchanged.
// When the target is already confirmed the returned slice equals list.
func Confirm(list []models.Assignment, id int64, today models.Date) ([]models.Assignment, error) {
	i := indexOf(list, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	next, _, err := Transition(list[i], today)
	if err != nil {
		return nil, err
	}
	out := make([]models.Assignment, len(list))
	copy(out, list)
	out[i] = next
	return out, nil
}

// Remove returns a copy of list without the assignment with the given id,
// preserving order.
func Remove(list []models.Assignment, id int64) ([]models.Assignment, error) {
	i := indexOf(list, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	out := make([]models.Assignment, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...), nil
}

// Find returns the assignment with the given id.
func Find(list []models.Assignment, id int64) (models.Assignment, error) {
	i := indexOf(list, id)
	if i < 0 {
		return models.Assignment{}, ErrNotFound
	}
	return list[i], nil
}

func indexOf(list []models.Assignment, id int64) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
