package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProductCode identifies an insurance product line.
type ProductCode string

const (
	ProductCar    ProductCode = "CAR"
	ProductPet    ProductCode = "PET"
	ProductHealth ProductCode = "HEALTH"
)

var productNames = map[ProductCode]string{
	ProductCar:    "Car Insurance",
	ProductPet:    "Pet Insurance",
	ProductHealth: "Health Insurance",
}

// Name returns the human-readable product name. Unknown codes are returned unchanged.
func (c ProductCode) Name() string {
	if name, ok := productNames[c]; ok {
		return name
	}
	return string(c)
}

func (c ProductCode) String() string {
	return string(c)
}

// PolicyStatus is the lifecycle state of a policy. Only ACTIVE policies are surfaced.
type PolicyStatus string

const (
	PolicyStatusActive    PolicyStatus = "ACTIVE"
	PolicyStatusCancelled PolicyStatus = "CANCELLED"
	PolicyStatusExpired   PolicyStatus = "EXPIRED"
)

// Person is an insured person, looked up by PersonalID.
type Person struct {
	ID         int64
	PersonalID string
	Name       string
	Email      string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Policy is a single insurance contract owned by a person.
type Policy struct {
	ID          int64
	PersonID    int64
	ProductID   *int64
	ProductCode ProductCode
	StartDate   time.Time
	EndDate     *time.Time
	Status      PolicyStatus
	// MonthlyPrice keeps the stored scale, so 30.00 stays 30.00.
	MonthlyPrice decimal.Decimal
}

// IsActive reports whether the policy should be surfaced.
func (p *Policy) IsActive() bool {
	return p.Status == PolicyStatusActive
}

// PolicyDetails is the product-specific extension of a policy, one per policy.
// Only the field that matches ProductCode is expected to be populated.
type PolicyDetails struct {
	ID                  int64
	PolicyID            int64
	ProductCode         ProductCode
	VehicleRegistration *string
	Pet                 *Pet
	// HealthInfo is the raw jsonb health document; nil when the column is NULL.
	HealthInfo datatypes.JSON
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Pet is an insured animal referenced by pet policy details.
type Pet struct {
	ID              int64
	Name            string
	Species         string
	Breed           string
	BirthDate       *time.Time
	MicrochipNumber string
}

// VehicleInfo is the vehicle service's view of a registration number.
// It is fetched per request and never stored.
type VehicleInfo struct {
	RegistrationNumber string `json:"registrationNumber"`
	VIN                string `json:"vin"`
	Make               string `json:"make"`
	Model              string `json:"model"`
	Year               *int   `json:"year"`
	Color              string `json:"color"`
}
