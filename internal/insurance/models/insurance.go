package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Insurance is one assembled entry of a person's insurance overview.
// Details is nil when nothing product-specific could be attached.
type Insurance struct {
	ProductCode  ProductCode
	ProductName  string
	MonthlyPrice decimal.Decimal
	Details      Details
}

// Details is the closed set of product-specific payloads.
type Details interface {
	Type() ProductCode
}

// CarDetails projects VehicleInfo onto a car policy.
type CarDetails struct {
	RegistrationNumber string
	Make               string
	Model              string
	Year               *int
	Color              string
}

func (CarDetails) Type() ProductCode { return ProductCar }

// CarDetailsFromVehicle copies the vehicle attributes shown on a car policy.
func CarDetailsFromVehicle(v *VehicleInfo) *CarDetails {
	return &CarDetails{
		RegistrationNumber: v.RegistrationNumber,
		Make:               v.Make,
		Model:              v.Model,
		Year:               v.Year,
		Color:              v.Color,
	}
}

// PetDetails projects a Pet onto a pet policy.
type PetDetails struct {
	PetName         string
	Species         string
	Breed           string
	BirthDate       *time.Time
	MicrochipNumber string
}

func (PetDetails) Type() ProductCode { return ProductPet }

// HealthDetails is filled from the stored health document. Pointer fields
// distinguish "absent" from zero values.
type HealthDetails struct {
	PolicyNumber  *string
	CoverageType  *string
	PrimaryHolder *string
	Dependents    []string
	PlanType      *string
	StartDate     *string
	EndDate       *string
	ProviderName  *string
	NetworkType   *string

	AnnualDeductible   *float64
	OutOfPocketMax     *float64
	PrimaryCareCopay   *float64
	SpecialistCopay    *float64
	EmergencyRoomCopay *float64
	UrgentCareCopay    *float64

	HospitalCoinsurance     *int
	PrescriptionCoinsurance *int

	PreventiveCareCovered       *bool
	IncludesDental              *bool
	IncludesVision              *bool
	IncludesMentalHealth        *bool
	IncludesMaternity           *bool
	CoversPreexistingConditions *bool

	Notes *string
}

func (HealthDetails) Type() ProductCode { return ProductHealth }
