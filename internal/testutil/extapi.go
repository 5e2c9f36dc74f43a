package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/dalemusser/danahub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// ExternalAPI is an in-memory stand-in for the temple API, served over
// httptest so handler tests exercise the real apiclient.
type ExternalAPI struct {
	URL string

	mu        sync.Mutex
	danas     []models.Dana
	families  []models.Family
	temples   []models.Temple
	nextID    int64
	failWrite bool
	writes    int
}

// NewExternalAPI starts a server seeded with two danas, three families and
// three temples. It is closed when the test ends.
func NewExternalAPI(t *testing.T) *ExternalAPI {
	t.Helper()
	api := &ExternalAPI{
		danas: []models.Dana{
			{ID: 1, Name: "Morning Heel Dana", Description: "Early morning rice offering", Time: models.DanaMorning},
			{ID: 2, Name: "Buddha Pooja", Description: "Midday alms offering", Time: models.DanaAfternoon},
		},
		families: []models.Family{
			{ID: 1, FamilyName: "Perera Family", Address: "No 123, Temple Road", Telephone: "0112695161"},
			{ID: 2, FamilyName: "Silva Family", Address: "No 456, Lake Road", Telephone: "0112435127"},
			{ID: 3, FamilyName: "Fernando Family", Address: "No 789, Station Road", Telephone: "0112691378"},
		},
		temples: []models.Temple{
			{ID: 1, Name: "Sri Vajiraramaya", Address: "Bambalapitiya"},
			{ID: 2, Name: "Gangaramaya", Address: "Hunupitiya Lake Road"},
			{ID: 3, Name: "Dipaduttaramaya", Address: "Kotahena"},
		},
		nextID: 100,
	}

	r := chi.NewRouter()
	r.Get("/danas", func(w http.ResponseWriter, _ *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		writeJSON(w, api.danas)
	})
	r.Post("/danas", api.write(func(w http.ResponseWriter, r *http.Request) {
		var f models.DanaFields
		_ = json.NewDecoder(r.Body).Decode(&f)
		api.nextID++
		d := models.Dana{ID: api.nextID, Name: f.Name, Description: f.Description, Time: f.Time}
		api.danas = append(api.danas, d)
		writeJSON(w, d)
	}))
	r.Put("/danas/{id}", api.write(func(w http.ResponseWriter, r *http.Request) {
		id := urlID(r)
		var f models.DanaFields
		_ = json.NewDecoder(r.Body).Decode(&f)
		for i := range api.danas {
			if api.danas[i].ID == id {
				api.danas[i] = models.Dana{ID: id, Name: f.Name, Description: f.Description, Time: f.Time}
				writeJSON(w, api.danas[i])
				return
			}
		}
		http.NotFound(w, r)
	}))
	r.Delete("/danas/{id}", api.write(func(w http.ResponseWriter, r *http.Request) {
		id := urlID(r)
		for i := range api.danas {
			if api.danas[i].ID == id {
				api.danas = append(api.danas[:i], api.danas[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		http.NotFound(w, r)
	}))

	r.Get("/families", func(w http.ResponseWriter, _ *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		writeJSON(w, api.families)
	})
	r.Post("/families", api.write(func(w http.ResponseWriter, r *http.Request) {
		var f models.FamilyFields
		_ = json.NewDecoder(r.Body).Decode(&f)
		api.nextID++
		fam := models.Family{ID: api.nextID, FamilyName: f.FamilyName, Address: f.Address, Telephone: f.Telephone}
		api.families = append(api.families, fam)
		writeJSON(w, fam)
	}))
	r.Put("/families/{id}", api.write(func(w http.ResponseWriter, r *http.Request) {
		id := urlID(r)
		var f models.FamilyFields
		_ = json.NewDecoder(r.Body).Decode(&f)
		for i := range api.families {
			if api.families[i].ID == id {
				api.families[i] = models.Family{ID: id, FamilyName: f.FamilyName, Address: f.Address, Telephone: f.Telephone}
				writeJSON(w, api.families[i])
				return
			}
		}
		http.NotFound(w, r)
	}))
	r.Delete("/families/{id}", api.write(func(w http.ResponseWriter, r *http.Request) {
		id := urlID(r)
		for i := range api.families {
			if api.families[i].ID == id {
				api.families = append(api.families[:i], api.families[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		http.NotFound(w, r)
	}))

	r.Get("/temples", func(w http.ResponseWriter, _ *http.Request) {
		api.mu.Lock()
		defer api.mu.Unlock()
		writeJSON(w, api.temples)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	api.URL = srv.URL
	return api
}

// FailWrites makes every subsequent write answer 500.
func (a *ExternalAPI) FailWrites(fail bool) {
	a.mu.Lock()
	a.failWrite = fail
	a.mu.Unlock()
}

// Writes counts the write requests received, failed ones included.
func (a *ExternalAPI) Writes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.writes
}

func (a *ExternalAPI) write(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.writes++
		if a.failWrite {
			http.Error(w, "database unavailable", http.StatusInternalServerError)
			return
		}
		h(w, r)
	}
}

func urlID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
