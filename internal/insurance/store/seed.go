package store

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"insurance/internal/insurance/models"
)

// SeedDemoData loads a small fixed dataset for running without a database.
// Person 199001011234 holds one policy of each product plus a cancelled one.
func SeedDemoData(s *InMemory) {
	now := time.Now().UTC()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	petBirth := time.Date(2019, 5, 20, 0, 0, 0, 0, time.UTC)
	reg := "ABC123"

	_ = s.AddPerson(&models.Person{ID: 1, PersonalID: "199001011234", Name: "Anna Svensson", Email: "anna@example.com", CreatedAt: now, UpdatedAt: now})
	_ = s.AddPerson(&models.Person{ID: 2, PersonalID: "198505051234", Name: "Erik Lind", CreatedAt: now, UpdatedAt: now})

	_ = s.AddPolicy(&models.Policy{ID: 1, PersonID: 1, ProductCode: models.ProductCar, StartDate: start, Status: models.PolicyStatusActive, MonthlyPrice: decimal.RequireFromString("30.00")})
	_ = s.AddPolicy(&models.Policy{ID: 2, PersonID: 1, ProductCode: models.ProductPet, StartDate: start, Status: models.PolicyStatusActive, MonthlyPrice: decimal.RequireFromString("10.00")})
	_ = s.AddPolicy(&models.Policy{ID: 3, PersonID: 1, ProductCode: models.ProductHealth, StartDate: start, Status: models.PolicyStatusActive, MonthlyPrice: decimal.RequireFromString("20.00")})
	_ = s.AddPolicy(&models.Policy{ID: 4, PersonID: 1, ProductCode: models.ProductCar, StartDate: start, Status: models.PolicyStatusCancelled, MonthlyPrice: decimal.RequireFromString("25.00")})

	_ = s.AddDetails(&models.PolicyDetails{ID: 1, PolicyID: 1, ProductCode: models.ProductCar, VehicleRegistration: &reg, CreatedAt: now, UpdatedAt: now})
	_ = s.AddDetails(&models.PolicyDetails{ID: 2, PolicyID: 2, ProductCode: models.ProductPet, Pet: &models.Pet{
		ID: 1, Name: "Bella", Species: "Dog", Breed: "Labrador", BirthDate: &petBirth, MicrochipNumber: "985112345678901",
	}, CreatedAt: now, UpdatedAt: now})
	_ = s.AddDetails(&models.PolicyDetails{ID: 3, PolicyID: 3, ProductCode: models.ProductHealth, HealthInfo: datatypes.JSON(
		`{"policyNumber":"HP-2024-001","coverageType":"FAMILY","primaryHolder":"Anna Svensson","dependents":["Lars Svensson"],"planType":"PPO","providerName":"Nordic Health","networkType":"NATIONAL","annualDeductible":500}`,
	), CreatedAt: now, UpdatedAt: now})
}
