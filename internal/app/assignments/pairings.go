package assignments

import (
	"github.com/dalemusser/danahub/internal/domain/models"
)

// PairingView is a temple-dana pairing with the assignments that fulfil it.
// It is recomputed from the assignment collection on every call.
type PairingView struct {
	models.TempleDana
	Assignments []models.Assignment `json:"assignments"`
}

// Confirmed counts the confirmed assignments of the pairing.
func (p PairingView) Confirmed() int {
	n := 0
	for _, a := range p.Assignments {
		if a.Confirmation.IsConfirmed() {
			n++
		}
	}
	return n
}

// Shortfall is how many more families the advisory quota asks for.
// It is never negative; the quota is not a cap.
func (p PairingView) Shortfall() int {
	if d := p.MinNumberOfFamilies - len(p.Assignments); d > 0 {
		return d
	}
	return 0
}

// Pairings groups list by temple-dana pairing, ordered by the first
// appearance of each pairing. Within a pairing, assignments keep list order.
//
// When assignments of the same pairing carry different quotas, the first
// one seen wins.
func Pairings(list []models.Assignment) []PairingView {
	idx := make(map[models.PairingKey]int)
	var out []PairingView
	for _, a := range list {
		k := a.TempleDana.Key()
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, PairingView{TempleDana: a.TempleDana})
		}
		out[i].Assignments = append(out[i].Assignments, a)
	}
	return out
}
