package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the persisted account record. Email and PhoneNumber carry unique
// constraints; they are the backstop for the non-atomic duplicate pre-checks
// performed at registration time.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	PhoneNumber   string     `bun:"phone_number,notnull,unique" json:"phone_number,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// PendingRegistration is the ephemeral payload of an activation token. It is
// never persisted: created at registration, verified once at activation, then
// discarded. The password is already hashed by the time it is embedded.
type PendingRegistration struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	PhoneNumber  string `json:"phone_number"`
}

// ToUser materializes the pending registration as an insertable record.
func (p PendingRegistration) ToUser() *User {
	return &User{
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		PhoneNumber:  p.PhoneNumber,
	}
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
