package testutil

import (
	"time"

	"github.com/dalemusser/danahub/internal/domain/models"
)

// Fixed clock values used across tests.
var (
	// Today is after every sample assignment date.
	Today = models.NewDate(2025, time.July, 1)
	// Now is noon of Today in UTC.
	Now = time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)
)

// Clock returns a time source pinned to t.
func Clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Temple returns a temple fixture.
func Temple(id int64, name string) models.Temple {
	return models.Temple{
		ID:            id,
		Name:          name,
		Address:       name + " Temple Road",
		ContactNumber: "0112000000",
		Email:         "office@temple.lk",
	}
}

// Dana returns a dana fixture.
func Dana(id int64, name string, at models.DanaTime) models.Dana {
	return models.Dana{ID: id, Name: name, Description: name + " offering", Time: at}
}

// Family returns a family fixture.
func Family(id int64, name string) models.Family {
	return models.Family{ID: id, FamilyName: name, Address: "No 1, Main Street", Telephone: "0770000000"}
}

// Assignment returns a pending assignment of family at temple for dana.
func Assignment(id int64, family, temple, dana string, date models.Date) models.Assignment {
	return models.Assignment{
		ID: id,
		TempleDana: models.TempleDana{
			Temple:              Temple(id*10, temple),
			Dana:                Dana(id*10, dana, models.DanaMorning),
			MinNumberOfFamilies: 2,
		},
		Family: Family(id, family),
		Date:   date,
	}
}

// ThreeAssignments is the {1,2,3} collection used by list tests.
func ThreeAssignments() []models.Assignment {
	d := models.NewDate(2025, time.June, 20)
	return []models.Assignment{
		Assignment(1, "Perera Family", "Sri Vajiraramaya", "Morning Heel Dana", d),
		Assignment(2, "Silva Family", "Gangaramaya", "Buddha Pooja", d),
		Assignment(3, "Fernando Family", "Dipaduttaramaya", "Evening Gilanpasa", d),
	}
}
