package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"insurance/internal/insurance/models"
)

const dateLayout = "2006-01-02"

// InsuranceResponse is one element of the customer insurance list.
type InsuranceResponse struct {
	ProductCode  string `json:"productCode"`
	ProductName  string `json:"productName"`
	MonthlyPrice Price  `json:"monthlyPrice"`
	Details      any    `json:"details,omitempty"`
}

// Price renders a decimal as a JSON number with its stored scale, so 30.00
// is written as 30.00 and not 30.
type Price struct {
	decimal.Decimal
}

func (p Price) MarshalJSON() ([]byte, error) {
	scale := -p.Exponent()
	if scale < 0 {
		scale = 0
	}
	return []byte(p.StringFixed(scale)), nil
}

type CarDetailsResponse struct {
	Type               string `json:"type"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	Make               string `json:"make,omitempty"`
	Model              string `json:"model,omitempty"`
	Year               *int   `json:"year,omitempty"`
	Color              string `json:"color,omitempty"`
}

type PetDetailsResponse struct {
	Type            string `json:"type"`
	PetName         string `json:"petName,omitempty"`
	Species         string `json:"species,omitempty"`
	Breed           string `json:"breed,omitempty"`
	BirthDate       string `json:"birthDate,omitempty"`
	MicrochipNumber string `json:"microchipNumber,omitempty"`
}

type HealthDetailsResponse struct {
	Type          string    `json:"type"`
	PolicyNumber  *string   `json:"policyNumber,omitempty"`
	CoverageType  *string   `json:"coverageType,omitempty"`
	PrimaryHolder *string   `json:"primaryHolder,omitempty"`
	Dependents    *[]string `json:"dependents,omitempty"`
	PlanType      *string   `json:"planType,omitempty"`
	StartDate     *string   `json:"startDate,omitempty"`
	EndDate       *string   `json:"endDate,omitempty"`
	ProviderName  *string   `json:"providerName,omitempty"`
	NetworkType   *string   `json:"networkType,omitempty"`

	AnnualDeductible   *float64 `json:"annualDeductible,omitempty"`
	OutOfPocketMax     *float64 `json:"outOfPocketMax,omitempty"`
	PrimaryCareCopay   *float64 `json:"primaryCareCopay,omitempty"`
	SpecialistCopay    *float64 `json:"specialistCopay,omitempty"`
	EmergencyRoomCopay *float64 `json:"emergencyRoomCopay,omitempty"`
	UrgentCareCopay    *float64 `json:"urgentCareCopay,omitempty"`

	HospitalCoinsurance     *int `json:"hospitalCoinsurance,omitempty"`
	PrescriptionCoinsurance *int `json:"prescriptionCoinsurance,omitempty"`

	PreventiveCareCovered       *bool `json:"preventiveCareCovered,omitempty"`
	IncludesDental              *bool `json:"includesDental,omitempty"`
	IncludesVision              *bool `json:"includesVision,omitempty"`
	IncludesMentalHealth        *bool `json:"includesMentalHealth,omitempty"`
	IncludesMaternity           *bool `json:"includesMaternity,omitempty"`
	CoversPreexistingConditions *bool `json:"coversPreexistingConditions,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

func toInsuranceResponses(insurances []models.Insurance) []InsuranceResponse {
	out := make([]InsuranceResponse, 0, len(insurances))
	for _, ins := range insurances {
		out = append(out, InsuranceResponse{
			ProductCode:  ins.ProductCode.String(),
			ProductName:  ins.ProductName,
			MonthlyPrice: Price{ins.MonthlyPrice},
			Details:      toDetailsResponse(ins.Details),
		})
	}
	return out
}

func toDetailsResponse(d models.Details) any {
	switch v := d.(type) {
	case *models.CarDetails:
		if v == nil {
			return nil
		}
		return toCarResponse(v)
	case *models.PetDetails:
		if v == nil {
			return nil
		}
		return &PetDetailsResponse{
			Type:            models.ProductPet.String(),
			PetName:         v.PetName,
			Species:         v.Species,
			Breed:           v.Breed,
			BirthDate:       formatDate(v.BirthDate),
			MicrochipNumber: v.MicrochipNumber,
		}
	case *models.HealthDetails:
		if v == nil {
			return nil
		}
		return &HealthDetailsResponse{
			Type:                        models.ProductHealth.String(),
			PolicyNumber:                v.PolicyNumber,
			CoverageType:                v.CoverageType,
			PrimaryHolder:               v.PrimaryHolder,
			Dependents:                  dependents(v.Dependents),
			PlanType:                    v.PlanType,
			StartDate:                   v.StartDate,
			EndDate:                     v.EndDate,
			ProviderName:                v.ProviderName,
			NetworkType:                 v.NetworkType,
			AnnualDeductible:            v.AnnualDeductible,
			OutOfPocketMax:              v.OutOfPocketMax,
			PrimaryCareCopay:            v.PrimaryCareCopay,
			SpecialistCopay:             v.SpecialistCopay,
			EmergencyRoomCopay:          v.EmergencyRoomCopay,
			UrgentCareCopay:             v.UrgentCareCopay,
			HospitalCoinsurance:         v.HospitalCoinsurance,
			PrescriptionCoinsurance:     v.PrescriptionCoinsurance,
			PreventiveCareCovered:       v.PreventiveCareCovered,
			IncludesDental:              v.IncludesDental,
			IncludesVision:              v.IncludesVision,
			IncludesMentalHealth:        v.IncludesMentalHealth,
			IncludesMaternity:           v.IncludesMaternity,
			CoversPreexistingConditions: v.CoversPreexistingConditions,
			Notes:                       v.Notes,
		}
	default:
		return nil
	}
}

func toCarResponse(v *models.CarDetails) *CarDetailsResponse {
	return &CarDetailsResponse{
		Type:               models.ProductCar.String(),
		RegistrationNumber: v.RegistrationNumber,
		Make:               v.Make,
		Model:              v.Model,
		Year:               v.Year,
		Color:              v.Color,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// dependents keeps an empty list distinct from an absent one.
func dependents(d []string) *[]string {
	if d == nil {
		return nil
	}
	return &d
}
