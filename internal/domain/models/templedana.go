// internal/domain/models/templedana.go
package models

// TempleDana binds a temple to a dana offering it hosts, with an advisory
// quota of sponsoring families.
//
// The external API nests the pairing's assignments inside this object. That
// list is not kept here: it is derived from the canonical assignment
// collection (see assignments.Pairings), so it can never disagree with it.
type TempleDana struct {
	Temple              Temple `bson:"temple" json:"templeId"`
	Dana                Dana   `bson:"dana" json:"dana"`
	MinNumberOfFamilies int    `bson:"min_number_of_families" json:"minNumberOfFamilies"`
}

// PairingKey identifies a TempleDana.
type PairingKey struct {
	TempleID int64 `json:"templeId"`
	DanaID   int64 `json:"danaId"`
}

func (p TempleDana) Key() PairingKey {
	return PairingKey{TempleID: p.Temple.ID, DanaID: p.Dana.ID}
}
