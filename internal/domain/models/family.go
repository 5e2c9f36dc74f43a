// internal/domain/models/family.go
package models

// Family is a sponsoring household.
type Family struct {
	ID         int64  `bson:"family_id" json:"id"`
	FamilyName string `bson:"family_name" json:"familyName"`
	Address    string `bson:"address" json:"address"`
	Telephone  string `bson:"telephone" json:"telephone"`
}

// FamilyFields is the writable part of a Family, as submitted by the family form.
type FamilyFields struct {
	FamilyName string `json:"familyName" validate:"required"`
	Address    string `json:"address" validate:"required"`
	Telephone  string `json:"telephone" validate:"required"`
}

// Fields returns the writable part of f.
func (f Family) Fields() FamilyFields {
	return FamilyFields{FamilyName: f.FamilyName, Address: f.Address, Telephone: f.Telephone}
}
