package kyc

import "time"

type Record struct {
	ID                 string    `db:"id" json:"id"`
	UserID             string    `db:"user_id" json:"user_id"`
	BVN                string    `db:"bvn" json:"bvn"`
	FirstName          string    `db:"first_name" json:"first_name"`
	LastName           string    `db:"last_name" json:"last_name"`
	DateOfBirth        string    `db:"date_of_birth" json:"date_of_birth"`
	PhoneNumber        string    `db:"phone_number" json:"phone_number"`
	IdentificationType string    `db:"identification_type" json:"identification_type"`
	Status             string    `db:"status" json:"status"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

type SubmitRequest struct {
	BVN                string `json:"bvn" binding:"required"`
	IdentificationType string `json:"identificationType" binding:"required,oneof=NIN DRIVERS_LICENSE INTERNATIONAL_PASSPORT VOTERS_CARD"`
}
