package postgres

import (
	"database/sql"
	"strings"
	"time"
)

const profileColumns = "id, user_id, first_name, last_name, date_of_birth, about, profile_picture_url, instagram_url, gmv, gmv_proof_url, tier, completed, created_at, updated_at"

type profileTableModel struct {
	ID                string          `db:"id"`
	UserID            string          `db:"user_id"`
	FirstName         sql.NullString  `db:"first_name"`
	LastName          sql.NullString  `db:"last_name"`
	DateOfBirth       sql.NullTime    `db:"date_of_birth"`
	About             sql.NullString  `db:"about"`
	ProfilePictureURL sql.NullString  `db:"profile_picture_url"`
	InstagramURL      sql.NullString  `db:"instagram_url"`
	GMV               sql.NullFloat64 `db:"gmv"`
	GMVProofURL       sql.NullString  `db:"gmv_proof_url"`
	Tier              sql.NullString  `db:"tier"`
	Completed         bool            `db:"completed"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

type profileInsertModel struct {
	UserID            string   `db:"user_id"`
	FirstName         *string  `db:"first_name"`
	LastName          *string  `db:"last_name"`
	DateOfBirth       *string  `db:"date_of_birth"`
	About             *string  `db:"about"`
	ProfilePictureURL *string  `db:"profile_picture_url"`
	InstagramURL      *string  `db:"instagram_url"`
	GMV               *float64 `db:"gmv"`
	GMVProofURL       *string  `db:"gmv_proof_url"`
	Tier              *string  `db:"tier"`
	Completed         bool     `db:"completed"`
}

type tiktokAccountTableModel struct {
	ID        string         `db:"id"`
	ProfileID string         `db:"profile_id"`
	URL       string         `db:"url"`
	Niche     sql.NullString `db:"niche"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func trimNull(v sql.NullString) string {
	return strings.TrimSpace(v.String)
}
