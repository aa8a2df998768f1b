package domain

import "time"

// Listing is an apprenticeship opening published by a company. The ideal
// vector is optional per dimension; listings without one simply carry no
// compatibility signal.
type Listing struct {
	ID             string      `json:"id"`
	CompanyID      string      `json:"company_id"`
	CompanyName    string      `json:"company_name"`
	Title          string      `json:"title"`
	Field          string      `json:"field"`
	Canton         string      `json:"canton"`
	City           string      `json:"city"`
	SpotsAvailable int         `json:"spots_available"`
	Active         bool        `json:"active"`
	Ideal          IdealVector `json:"ideal_vector"`
	CreatedAt      time.Time   `json:"created_at"`
}
