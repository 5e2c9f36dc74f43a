package assignmentstore

import (
	"time"

	"github.com/dalemusser/danahub/internal/domain/models"
)

var (
	sampleMorningHeel = models.Dana{ID: 1, Name: "Morning Heel Dana", Description: "Early morning rice offering", Time: models.DanaMorning}
	sampleBuddhaPooja = models.Dana{ID: 2, Name: "Buddha Pooja", Description: "Midday alms offering", Time: models.DanaAfternoon}
)

// SampleAssignments is the starter data set loaded into the memory store
// when seed_sample_data is on: three pending assignments at three temples.
func SampleAssignments() []models.Assignment {
	return []models.Assignment{
		{
			ID: 1,
			TempleDana: models.TempleDana{
				Temple: models.Temple{
					ID: 1, Name: "Sri Vajiraramaya", Address: "Maligawatta Temple Road",
					ContactNumber: "0112695161", Email: "vajiraramaya@temple.lk", Website: "www.vajiraramaya.lk",
				},
				Dana:                sampleMorningHeel,
				MinNumberOfFamilies: 5,
			},
			Family: models.Family{ID: 1, FamilyName: "Perera Family", Address: "No 123, Temple Road, Maligawatta", Telephone: "0112695161"},
			Date:   models.NewDate(2025, time.June, 20),
		},
		{
			ID: 2,
			TempleDana: models.TempleDana{
				Temple: models.Temple{
					ID: 2, Name: "Gangaramaya", Address: "Dematagoda Temple Road",
					ContactNumber: "0112435127", Email: "gangaramaya@temple.lk", Website: "www.gangaramaya.lk",
				},
				Dana:                sampleBuddhaPooja,
				MinNumberOfFamilies: 4,
			},
			Family: models.Family{ID: 2, FamilyName: "Silva Family", Address: "No 456, Lake Road, Dematagoda", Telephone: "0112435127"},
			Date:   models.NewDate(2025, time.June, 21),
		},
		{
			ID: 3,
			TempleDana: models.TempleDana{
				Temple: models.Temple{
					ID: 3, Name: "Dipaduttaramaya", Address: "Maradana Temple Road",
					ContactNumber: "0112691378", Email: "dipaduttaramaya@temple.lk", Website: "www.dipaduttaramaya.lk",
				},
				Dana:                sampleMorningHeel,
				MinNumberOfFamilies: 3,
			},
			Family: models.Family{ID: 3, FamilyName: "Fernando Family", Address: "No 789, Station Road, Maradana", Telephone: "0112691378"},
			Date:   models.NewDate(2025, time.June, 22),
		},
	}
}
