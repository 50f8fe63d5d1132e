package models

// User is the directory record for a customer account.
type User struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Role  string `bson:"role" json:"role"` // "customer", "worker", "admin"
}
