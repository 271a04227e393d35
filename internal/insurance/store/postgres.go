package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"insurance/internal/insurance/models"
	"insurance/pkg/platform/tx"
)

const (
	findPersonByPersonalIDQuery = `
SELECT id, personal_id, name, email, phone, created_at, updated_at
FROM ifsw_schema.persons
WHERE personal_id = $1`

	listActivePoliciesQuery = `
SELECT id, person_id, product_id, product_code, start_date, end_date, status, monthly_price
FROM ifsw_schema.policies
WHERE person_id = $1 AND status = 'ACTIVE'
ORDER BY id`

	findDetailsByPolicyIDQuery = `
SELECT d.id, d.policy_id, d.product_code, d.vehicle_registration, d.health_info,
       d.created_at, d.updated_at,
       p.id, p.name, p.species, p.breed, p.birth_date, p.microchip_number
FROM ifsw_schema.policy_details d
LEFT JOIN ifsw_schema.pets p ON p.id = d.pet_id
WHERE d.policy_id = $1`
)

// PostgresStore reads persons, policies and policy details from PostgreSQL.
// Queries join the transaction carried in the context when there is one.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByPersonalID(ctx context.Context, personalID string) (*models.Person, error) {
	var (
		p                  models.Person
		name, email, phone sql.NullString
	)
	err := tx.QuerierFrom(ctx, s.db).QueryRowContext(ctx, findPersonByPersonalIDQuery, personalID).Scan(
		&p.ID, &p.PersonalID, &name, &email, &phone, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find person by personal id: %w", err)
	}
	p.Name = name.String
	p.Email = email.String
	p.Phone = phone.String
	return &p, nil
}

func (s *PostgresStore) ListActiveByPersonID(ctx context.Context, personID int64) ([]*models.Policy, error) {
	rows, err := tx.QuerierFrom(ctx, s.db).QueryContext(ctx, listActivePoliciesQuery, personID)
	if err != nil {
		return nil, fmt.Errorf("list active policies: %w", err)
	}
	defer rows.Close()

	policies := make([]*models.Policy, 0)
	for rows.Next() {
		var (
			p         models.Policy
			productID sql.NullInt64
			endDate   sql.NullTime
			code      string
			status    sql.NullString
			price     decimal.Decimal
		)
		if err := rows.Scan(&p.ID, &p.PersonID, &productID, &code, &p.StartDate, &endDate, &status, &price); err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		p.ProductCode = models.ProductCode(code)
		p.Status = models.PolicyStatus(status.String)
		p.MonthlyPrice = price
		if productID.Valid {
			id := productID.Int64
			p.ProductID = &id
		}
		if endDate.Valid {
			end := endDate.Time
			p.EndDate = &end
		}
		policies = append(policies, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate policies: %w", err)
	}
	return policies, nil
}

func (s *PostgresStore) FindByPolicyID(ctx context.Context, policyID int64) (*models.PolicyDetails, error) {
	var (
		d            models.PolicyDetails
		code         string
		registration sql.NullString
		healthInfo   *datatypes.JSON
		petID        sql.NullInt64
		petName      sql.NullString
		species      sql.NullString
		breed        sql.NullString
		birthDate    sql.NullTime
		microchip    sql.NullString
	)
	err := tx.QuerierFrom(ctx, s.db).QueryRowContext(ctx, findDetailsByPolicyIDQuery, policyID).Scan(
		&d.ID, &d.PolicyID, &code, &registration, &healthInfo, &d.CreatedAt, &d.UpdatedAt,
		&petID, &petName, &species, &breed, &birthDate, &microchip,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find policy details: %w", err)
	}

	d.ProductCode = models.ProductCode(code)
	if registration.Valid {
		reg := registration.String
		d.VehicleRegistration = &reg
	}
	// a NULL column leaves the pointer nil; otherwise datatypes.JSON scans the jsonb bytes
	if healthInfo != nil {
		d.HealthInfo = *healthInfo
	}
	if petID.Valid {
		d.Pet = &models.Pet{
			ID:              petID.Int64,
			Name:            petName.String,
			Species:         species.String,
			Breed:           breed.String,
			BirthDate:       nullDate(birthDate),
			MicrochipNumber: microchip.String,
		}
	}
	return &d, nil
}

// Health pings the database.
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func nullDate(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
