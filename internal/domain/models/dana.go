// internal/domain/models/dana.go
package models

import (
	"fmt"
	"strings"
)

// DanaTime is the time-of-day category of a dana offering.
type DanaTime string

const (
	DanaMorning   DanaTime = "MORNING"
	DanaAfternoon DanaTime = "AFTERNOON"
	DanaEvening   DanaTime = "EVENING"
	DanaNight     DanaTime = "NIGHT"
)

// DanaTimes lists the categories in the order they occur during a day.
var DanaTimes = []DanaTime{DanaMorning, DanaAfternoon, DanaEvening, DanaNight}

// ParseDanaTime accepts a category in any letter case.
func ParseDanaTime(s string) (DanaTime, error) {
	t := DanaTime(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown dana time %q", s)
	}
	return t, nil
}

func (t DanaTime) Valid() bool {
	switch t {
	case DanaMorning, DanaAfternoon, DanaEvening, DanaNight:
		return true
	}
	return false
}

// Label is the human form shown in selects ("Morning").
func (t DanaTime) Label() string {
	if !t.Valid() {
		return string(t)
	}
	s := strings.ToLower(string(t))
	return strings.ToUpper(s[:1]) + s[1:]
}

// Dana is a named offering template.
type Dana struct {
	ID          int64    `bson:"dana_id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description" json:"description"`
	Time        DanaTime `bson:"time" json:"time"`
}

// DanaFields is the writable part of a Dana, as submitted by the dana form.
type DanaFields struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Time        DanaTime `json:"time" validate:"required,oneof=MORNING AFTERNOON EVENING NIGHT"`
}

// Fields returns the writable part of d.
func (d Dana) Fields() DanaFields {
	return DanaFields{Name: d.Name, Description: d.Description, Time: d.Time}
}
