// internal/domain/models/temple.go
package models

// Temple is read-only reference data served by the external API.
type Temple struct {
	ID            int64  `bson:"temple_id" json:"id"`
	Name          string `bson:"name" json:"name"`
	Address       string `bson:"address" json:"address"`
	ContactNumber string `bson:"contact_number" json:"contactNumber"`
	Email         string `bson:"email" json:"email"`
	Website       string `bson:"website" json:"website"`
}
