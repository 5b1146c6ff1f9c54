package models

import "time"

const (
	MembershipBronze = "B"
	MembershipSilver = "S"
	MembershipGold   = "G"
)

// ValidMembership reports whether m is one of the known membership tiers.
func ValidMembership(m string) bool {
	return m == MembershipBronze || m == MembershipSilver || m == MembershipGold
}

// Customer is the store-facing profile attached one-to-one to a User.
// A Customer row is created automatically when the User registers.
type Customer struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Phone      string     `json:"phone"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Membership string     `gorm:"size:1;default:B" json:"membership"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
