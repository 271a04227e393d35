//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"insurance/internal/insurance/models"
	"insurance/internal/insurance/store"
	"insurance/pkg/platform/sentinel"
	"insurance/pkg/platform/tx"
	"insurance/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T(), store.Schema)
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	// Truncate in dependency order
	err := s.postgres.TruncateTables(ctx,
		"ifsw_schema.policy_details", "ifsw_schema.pets", "ifsw_schema.policies", "ifsw_schema.persons")
	s.Require().NoError(err)
	s.seed(ctx)
}

func (s *PostgresStoreSuite) seed(ctx context.Context) {
	stmts := []string{
		`INSERT INTO ifsw_schema.persons (id, personal_id, name) VALUES (1, '199001011234', 'Anna'), (2, '198505051234', NULL)`,
		`INSERT INTO ifsw_schema.policies (id, person_id, product_code, start_date, status, monthly_price) VALUES
			(1, 1, 'CAR', '2024-01-01', 'ACTIVE', 30.00),
			(2, 1, 'PET', '2024-01-01', 'ACTIVE', 10.50),
			(3, 1, 'HEALTH', '2024-01-01', 'ACTIVE', 20.00),
			(4, 1, 'CAR', '2023-01-01', 'CANCELLED', 25.00)`,
		`INSERT INTO ifsw_schema.pets (id, name, species, breed, birth_date) VALUES (1, 'Bella', 'Dog', 'Labrador', '2019-05-20')`,
		`INSERT INTO ifsw_schema.policy_details (policy_id, product_code, vehicle_registration, pet_id, health_info) VALUES
			(1, 'CAR', 'ABC123', NULL, NULL),
			(2, 'PET', NULL, 1, NULL),
			(3, 'HEALTH', NULL, NULL, '{"policyNumber":"HP-1","annualDeductible":500}')`,
	}
	for _, stmt := range stmts {
		_, err := s.postgres.DB.ExecContext(ctx, stmt)
		s.Require().NoError(err)
	}
}

func (s *PostgresStoreSuite) TestFindByPersonalID() {
	ctx := context.Background()

	p, err := s.store.FindByPersonalID(ctx, "199001011234")
	s.Require().NoError(err)
	s.Equal(int64(1), p.ID)
	s.Equal("Anna", p.Name)

	nameless, err := s.store.FindByPersonalID(ctx, "198505051234")
	s.Require().NoError(err)
	s.Empty(nameless.Name)

	_, err = s.store.FindByPersonalID(ctx, "missing")
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *PostgresStoreSuite) TestListActiveByPersonID() {
	policies, err := s.store.ListActiveByPersonID(context.Background(), 1)
	s.Require().NoError(err)
	s.Require().Len(policies, 3)
	s.Equal([]models.ProductCode{models.ProductCar, models.ProductPet, models.ProductHealth},
		[]models.ProductCode{policies[0].ProductCode, policies[1].ProductCode, policies[2].ProductCode})
	s.Equal("30.00", policies[0].MonthlyPrice.StringFixed(2))
	s.Equal(int32(-2), policies[0].MonthlyPrice.Exponent())
	s.Nil(policies[0].EndDate)

	none, err := s.store.ListActiveByPersonID(context.Background(), 2)
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *PostgresStoreSuite) TestFindByPolicyID() {
	ctx := context.Background()

	car, err := s.store.FindByPolicyID(ctx, 1)
	s.Require().NoError(err)
	s.Require().NotNil(car.VehicleRegistration)
	s.Equal("ABC123", *car.VehicleRegistration)
	s.Nil(car.Pet)
	s.Nil(car.HealthInfo)

	pet, err := s.store.FindByPolicyID(ctx, 2)
	s.Require().NoError(err)
	s.Require().NotNil(pet.Pet)
	s.Equal("Bella", pet.Pet.Name)
	s.Require().NotNil(pet.Pet.BirthDate)
	s.Equal("2019-05-20", pet.Pet.BirthDate.Format("2006-01-02"))

	health, err := s.store.FindByPolicyID(ctx, 3)
	s.Require().NoError(err)
	s.JSONEq(`{"policyNumber":"HP-1","annualDeductible":500}`, string(health.HealthInfo))

	_, err = s.store.FindByPolicyID(ctx, 4)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *PostgresStoreSuite) TestReadsJoinReadOnlyTransaction() {
	runner := tx.NewReadOnlyRunner(s.postgres.DB)
	err := runner.RunReadOnly(context.Background(), func(ctx context.Context) error {
		_, ok := tx.From(ctx)
		s.True(ok)
		p, err := s.store.FindByPersonalID(ctx, "199001011234")
		if err != nil {
			return err
		}
		_, err = s.store.ListActiveByPersonID(ctx, p.ID)
		return err
	})
	s.Require().NoError(err)
}
