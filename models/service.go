package models

// ServiceCategory is a catalog entry referenced by bookings.
type ServiceCategory struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}
