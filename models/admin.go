package models

import "time"

// Admin is one entry of the `admin` collection. Password holds the bcrypt
// hash, never the plaintext.
type Admin struct {
	AdminID   string    `json:"adminId" bson:"adminid"`
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"-" bson:"password"`
	LastLogin time.Time `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
