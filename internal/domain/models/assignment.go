// internal/domain/models/assignment.go
package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Status is the confirmation state of an Assignment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// Confirmation is either Pending or Confirmed on a given day.
//
// The zero value is Pending. The confirmation day can only be read through
// ConfirmedOn, so a pending assignment has no "confirmed on" fact to show.
type Confirmation struct {
	confirmed bool
	on        Date
}

// Pending returns the initial confirmation state.
func Pending() Confirmation { return Confirmation{} }

// Confirmed returns the state of an assignment confirmed on the given day.
func Confirmed(on Date) Confirmation { return Confirmation{confirmed: true, on: on} }

func (c Confirmation) IsConfirmed() bool { return c.confirmed }

// ConfirmedOn returns the confirmation day and true, or false while pending.
func (c Confirmation) ConfirmedOn() (Date, bool) {
	if !c.confirmed {
		return Date{}, false
	}
	return c.on, true
}

func (c Confirmation) Status() Status {
	if c.confirmed {
		return StatusConfirmed
	}
	return StatusPending
}

func (c Confirmation) Equal(o Confirmation) bool {
	return c.confirmed == o.confirmed && c.on.Equal(o.on)
}

// Assignment is one family's scheduled fulfilment of a temple-dana pairing.
type Assignment struct {
	ID           int64
	TempleDana   TempleDana
	Family       Family
	Date         Date
	Confirmation Confirmation
}

// AssignmentInput is the scheduling form for a new Assignment. The store
// assigns the ID; the referenced temple, dana and family are resolved from
// reference data before the assignment is built.
type AssignmentInput struct {
	TempleID            int64  `json:"templeId" validate:"required,gt=0"`
	DanaID              int64  `json:"danaId" validate:"required,gt=0"`
	FamilyID            int64  `json:"familyId" validate:"required,gt=0"`
	MinNumberOfFamilies int    `json:"minNumberOfFamilies" validate:"gte=0"`
	Date                string `json:"date" validate:"required,datetime=2006-01-02"`
}

var (
	errMissingFamily  = errors.New("assignment has no family")
	errMissingPairing = errors.New("assignment has no temple or dana")
	errMissingDate    = errors.New("assignment has no date")
)

// Validate checks the structural shape of an assignment received from
// outside (API responses, store documents) or about to be written.
func (a Assignment) Validate() error {
	if a.Family.ID == 0 {
		return errMissingFamily
	}
	if a.TempleDana.Temple.ID == 0 || a.TempleDana.Dana.ID == 0 {
		return errMissingPairing
	}
	if a.Date.IsZero() {
		return errMissingDate
	}
	if on, ok := a.Confirmation.ConfirmedOn(); ok {
		if on.IsZero() {
			return fmt.Errorf("assignment %d is confirmed without a confirmation date", a.ID)
		}
		if on.Before(a.Date) {
			return fmt.Errorf("assignment %d confirmed on %s, before its date %s", a.ID, on, a.Date)
		}
	}
	return nil
}

// assignmentWire is the external API's JSON shape. isConfirmed is tri-state
// (true, false or null); only true means confirmed.
type assignmentWire struct {
	ID               int64      `json:"id"`
	TempleDana       TempleDana `json:"templeDana"`
	Family           Family     `json:"family"`
	Date             Date       `json:"date"`
	IsConfirmed      *bool      `json:"isConfirmed"`
	ConfirmationDate *Date      `json:"confirmationDate,omitempty"`
	Status           Status     `json:"status,omitempty"`
}

func (a Assignment) MarshalJSON() ([]byte, error) {
	w := assignmentWire{
		ID:         a.ID,
		TempleDana: a.TempleDana,
		Family:     a.Family,
		Date:       a.Date,
		Status:     a.Confirmation.Status(),
	}
	if on, ok := a.Confirmation.ConfirmedOn(); ok {
		yes := true
		w.IsConfirmed = &yes
		w.ConfirmationDate = &on
	}
	return json.Marshal(w)
}

func (a *Assignment) UnmarshalJSON(b []byte) error {
	var w assignmentWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*a = Assignment{
		ID:         w.ID,
		TempleDana: w.TempleDana,
		Family:     w.Family,
		Date:       w.Date,
	}
	if w.IsConfirmed != nil && *w.IsConfirmed {
		var on Date
		if w.ConfirmationDate != nil {
			on = *w.ConfirmationDate
		}
		a.Confirmation = Confirmed(on)
	}
	return nil
}
