package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"insurance/internal/featureflag"
	insurancemetrics "insurance/internal/insurance/metrics"
	"insurance/internal/insurance/models"
	"insurance/pkg/domain"
	dErrors "insurance/pkg/domain-errors"
	"insurance/pkg/platform/sentinel"
	"insurance/pkg/platform/tx"
	"insurance/pkg/requestcontext"
)

type PersonStore interface {
	FindByPersonalID(ctx context.Context, personalID string) (*models.Person, error)
}

type PolicyStore interface {
	ListActiveByPersonID(ctx context.Context, personID int64) ([]*models.Policy, error)
}

type DetailsStore interface {
	FindByPolicyID(ctx context.Context, policyID int64) (*models.PolicyDetails, error)
}

type VehicleClient interface {
	Fetch(ctx context.Context, registrationNumber string) (*models.VehicleInfo, error)
}

type FeatureFlags interface {
	IsEnabled(ctx context.Context, key string, defaultValue bool) bool
}

// ReadTx runs fn inside a read-only snapshot when the backing store has one.
type ReadTx interface {
	RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

const defaultConcurrency = 4

var tracer = otel.Tracer("insurance/service")

// Service assembles a person's active insurances with product details.
type Service struct {
	persons     PersonStore
	policies    PolicyStore
	details     DetailsStore
	vehicles    VehicleClient
	flags       FeatureFlags
	tx          ReadTx
	logger      *slog.Logger
	metrics     *insurancemetrics.Metrics
	concurrency int
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *insurancemetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithFeatureFlags(flags FeatureFlags) Option {
	return func(s *Service) {
		s.flags = flags
	}
}

func WithReadTx(rt ReadTx) Option {
	return func(s *Service) {
		s.tx = rt
	}
}

// WithConcurrency bounds how many policies are enriched at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New constructs a Service.
func New(persons PersonStore, policies PolicyStore, details DetailsStore, vehicles VehicleClient, opts ...Option) *Service {
	s := &Service{
		persons:     persons,
		policies:    policies,
		details:     details,
		vehicles:    vehicles,
		tx:          tx.NoopRunner{},
		logger:      slog.Default(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// policyRecord pairs a policy with its details as read inside the snapshot.
type policyRecord struct {
	policy  *models.Policy
	details *models.PolicyDetails
}

// GetInsurancesByPersonalID returns the person's active policies in store
// order. The only failure a caller sees for a missing person is CodeNotFound;
// enrichment problems leave that entry's Details nil.
func (s *Service) GetInsurancesByPersonalID(ctx context.Context, personalID domain.PersonalID) ([]models.Insurance, error) {
	start := time.Now()
	defer s.metrics.ObserveLookup(start)

	ctx, span := tracer.Start(ctx, "insurance.GetInsurancesByPersonalID")
	defer span.End()

	records, err := s.loadRecords(ctx, personalID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.metrics.IncrementLookup(insurancemetrics.OutcomeNotFound)
		} else {
			s.metrics.IncrementLookup(insurancemetrics.OutcomeError)
			s.logger.ErrorContext(ctx, "insurance lookup failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
		return nil, err
	}
	span.SetAttributes(attribute.Int("insurance.policy_count", len(records)))

	insurances := make([]models.Insurance, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, rec := range records {
		g.Go(func() error {
			insurances[i] = s.assemble(gctx, rec)
			return nil
		})
	}
	// enrichment never fails the request
	_ = g.Wait()

	s.metrics.IncrementLookup(insurancemetrics.OutcomeFound)
	return insurances, nil
}

// loadRecords performs every store read inside one read-only transaction.
// Reads are sequential since a transaction cannot serve concurrent queries.
func (s *Service) loadRecords(ctx context.Context, personalID domain.PersonalID) ([]policyRecord, error) {
	var records []policyRecord
	err := s.tx.RunReadOnly(ctx, func(txCtx context.Context) error {
		person, err := s.persons.FindByPersonalID(txCtx, personalID.String())
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "Person not found with personal ID: "+personalID.String())
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
		}

		policies, err := s.policies.ListActiveByPersonID(txCtx, person.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load policies")
		}

		records = make([]policyRecord, 0, len(policies))
		for _, p := range policies {
			d, err := s.details.FindByPolicyID(txCtx, p.ID)
			if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load policy details")
			}
			records = append(records, policyRecord{policy: p, details: d})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) assemble(ctx context.Context, rec policyRecord) models.Insurance {
	ins := models.Insurance{
		ProductCode:  rec.policy.ProductCode,
		ProductName:  rec.policy.ProductCode.Name(),
		MonthlyPrice: rec.policy.MonthlyPrice,
	}
	if rec.details == nil {
		return ins
	}

	res := s.enrich(ctx, rec.policy.ProductCode, rec.details)
	if res.err != nil {
		s.logger.WarnContext(ctx, "policy enrichment failed",
			"request_id", requestcontext.RequestID(ctx),
			"policy_id", rec.policy.ID,
			"product_code", rec.policy.ProductCode.String(),
			"error", res.err,
		)
	}
	if res.result != "" {
		s.metrics.IncrementEnrichment(rec.policy.ProductCode.String(), res.result)
	}
	ins.Details = res.details
	return ins
}

// enrichment is the local outcome of building one policy's details. A
// non-nil err is logged by the caller and never leaves the service.
type enrichment struct {
	details models.Details
	result  string
	err     error
}

func (s *Service) enrich(ctx context.Context, code models.ProductCode, d *models.PolicyDetails) enrichment {
	switch code {
	case models.ProductCar:
		return s.enrichCar(ctx, d)
	case models.ProductPet:
		return enrichPet(d)
	case models.ProductHealth:
		return enrichHealth(d)
	default:
		return enrichment{}
	}
}

func (s *Service) enrichCar(ctx context.Context, d *models.PolicyDetails) enrichment {
	if d.VehicleRegistration == nil || strings.TrimSpace(*d.VehicleRegistration) == "" {
		return enrichment{result: insurancemetrics.EnrichSkipped}
	}
	if s.vehicles == nil || !s.vehicleEnrichmentEnabled(ctx) {
		return enrichment{result: insurancemetrics.EnrichDisabled}
	}
	info, err := s.vehicles.Fetch(ctx, *d.VehicleRegistration)
	if err != nil {
		return enrichment{result: insurancemetrics.EnrichFailed, err: err}
	}
	if info == nil {
		return enrichment{result: insurancemetrics.EnrichFailed, err: sentinel.ErrNotFound}
	}
	return enrichment{details: models.CarDetailsFromVehicle(info), result: insurancemetrics.EnrichOK}
}

func enrichPet(d *models.PolicyDetails) enrichment {
	if d.Pet == nil {
		return enrichment{result: insurancemetrics.EnrichSkipped}
	}
	return enrichment{
		details: &models.PetDetails{
			PetName:         d.Pet.Name,
			Species:         d.Pet.Species,
			Breed:           d.Pet.Breed,
			BirthDate:       d.Pet.BirthDate,
			MicrochipNumber: d.Pet.MicrochipNumber,
		},
		result: insurancemetrics.EnrichOK,
	}
}

func enrichHealth(d *models.PolicyDetails) enrichment {
	if len(d.HealthInfo) == 0 {
		return enrichment{result: insurancemetrics.EnrichSkipped}
	}
	details, err := mapHealthDocument(d.HealthInfo)
	if err != nil {
		return enrichment{details: &models.HealthDetails{}, result: insurancemetrics.EnrichFailed, err: err}
	}
	if details == nil {
		return enrichment{result: insurancemetrics.EnrichSkipped}
	}
	return enrichment{details: details, result: insurancemetrics.EnrichOK}
}

func (s *Service) vehicleEnrichmentEnabled(ctx context.Context) bool {
	if s.flags == nil {
		return true
	}
	return s.flags.IsEnabled(ctx, featureflag.VehicleEnrichment, true)
}

// GetVehicle looks up a vehicle directly. Every failure, including a blank
// registration, is reported as CodeNotFound.
func (s *Service) GetVehicle(ctx context.Context, registration string) (*models.CarDetails, error) {
	reg, err := domain.ParseRegistrationNumber(registration)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "Vehicle not found")
	}
	notFound := dErrors.New(dErrors.CodeNotFound, "Vehicle not found with registration number: "+reg.String())
	if s.vehicles == nil {
		return nil, notFound
	}

	ctx, span := tracer.Start(ctx, "insurance.GetVehicle")
	defer span.End()

	info, err := s.vehicles.Fetch(ctx, reg.String())
	if err != nil {
		s.logger.WarnContext(ctx, "vehicle lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"registration_number", reg.String(),
			"error", err,
		)
		notFound.Err = err
		return nil, notFound
	}
	if info == nil {
		return nil, notFound
	}
	return models.CarDetailsFromVehicle(info), nil
}
