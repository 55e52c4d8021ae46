package entity

import "time"

type MembershipStatus string

const (
	MembershipActive MembershipStatus = "active"
	MembershipLeft   MembershipStatus = "left"
)

// ClubMembership links a user to a club. Leaving flips the status instead of
// deleting the row, mirroring how registrations keep their history.
type ClubMembership struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint   `gorm:"not null;uniqueIndex:idx_membership_user_club"`
	User      User
	ClubID    string `gorm:"not null;type:uuid;uniqueIndex:idx_membership_user_club"`
	Club      Club
	Status    MembershipStatus `gorm:"type:varchar(20);not null;default:'active'"`
}
