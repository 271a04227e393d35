package handler

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"insurance/internal/insurance/models"
	"insurance/internal/insurance/service"
	"insurance/internal/insurance/store"
	"insurance/pkg/domain"
	"insurance/pkg/testutil"
)

type stubVehicles struct {
	info map[string]*models.VehicleInfo
	// enrichment calls Fetch from several goroutines
	calls atomic.Int32
}

func (s *stubVehicles) Fetch(_ context.Context, reg string) (*models.VehicleInfo, error) {
	s.calls.Add(1)
	if v, ok := s.info[reg]; ok {
		return v, nil
	}
	return nil, errors.New("vehicle service returned 404")
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func newRouter(t *testing.T) (http.Handler, *stubVehicles) {
	t.Helper()
	st := store.NewInMemory()
	birth := time.Date(2019, 5, 20, 0, 0, 0, 0, time.UTC)

	require.NoError(t, st.AddPerson(&models.Person{ID: 1, PersonalID: "199001011234"}))
	require.NoError(t, st.AddPerson(&models.Person{ID: 2, PersonalID: "200001011234"}))

	add := func(id int64, code models.ProductCode, price string) {
		require.NoError(t, st.AddPolicy(&models.Policy{
			ID: id, PersonID: 1, ProductCode: code, Status: models.PolicyStatusActive,
			MonthlyPrice: decimal.RequireFromString(price),
		}))
	}
	add(1, models.ProductCar, "30.00")
	add(2, models.ProductPet, "10.50")
	add(3, models.ProductHealth, "20.00")
	add(4, models.ProductCar, "15.00")

	require.NoError(t, st.AddDetails(&models.PolicyDetails{PolicyID: 1, ProductCode: models.ProductCar, VehicleRegistration: strPtr("ABC123")}))
	require.NoError(t, st.AddDetails(&models.PolicyDetails{PolicyID: 2, ProductCode: models.ProductPet, Pet: &models.Pet{
		Name: "Bella", Species: "Dog", Breed: "Labrador", BirthDate: &birth, MicrochipNumber: "985112345678901",
	}}))
	require.NoError(t, st.AddDetails(&models.PolicyDetails{PolicyID: 3, ProductCode: models.ProductHealth, HealthInfo: datatypes.JSON(
		`{"policyNumber":"HLTH123456","coverageType":"FAMILY","primaryHolder":"John Doe","dependents":["Jane Doe","Jimmy Doe"]}`,
	)}))
	require.NoError(t, st.AddDetails(&models.PolicyDetails{PolicyID: 4, ProductCode: models.ProductCar, VehicleRegistration: strPtr("GONE99")}))

	vehicles := &stubVehicles{info: map[string]*models.VehicleInfo{
		"ABC123": {RegistrationNumber: "ABC123", VIN: "YV1", Make: "Volvo", Model: "XC60", Year: intPtr(2020), Color: "Black"},
	}}
	svc := service.New(st, st, st, vehicles)

	r := chi.NewRouter()
	New(svc, nil).Register(r)
	return r, vehicles
}

func TestGetInsurances(t *testing.T) {
	router, _ := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/v1/insurances/customer/199001011234"))

	testutil.AssertStatusOK(t, rr)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `[
		{"productCode":"CAR","productName":"Car Insurance","monthlyPrice":30.00,
		 "details":{"type":"CAR","registrationNumber":"ABC123","make":"Volvo","model":"XC60","year":2020,"color":"Black"}},
		{"productCode":"PET","productName":"Pet Insurance","monthlyPrice":10.50,
		 "details":{"type":"PET","petName":"Bella","species":"Dog","breed":"Labrador","birthDate":"2019-05-20","microchipNumber":"985112345678901"}},
		{"productCode":"HEALTH","productName":"Health Insurance","monthlyPrice":20.00,
		 "details":{"type":"HEALTH","policyNumber":"HLTH123456","coverageType":"FAMILY","primaryHolder":"John Doe","dependents":["Jane Doe","Jimmy Doe"]}},
		{"productCode":"CAR","productName":"Car Insurance","monthlyPrice":15.00}
	]`, rr.Body.String())
}

func TestGetInsurancesKeepsPriceScale(t *testing.T) {
	router, _ := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/v1/insurances/customer/199001011234"))

	testutil.AssertStatusOK(t, rr)
	assert.Contains(t, rr.Body.String(), `"monthlyPrice":30.00`)
	assert.Contains(t, rr.Body.String(), `"monthlyPrice":10.50`)
}

func TestGetInsurancesEmptyList(t *testing.T) {
	router, _ := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/v1/insurances/customer/200001011234"))

	testutil.AssertStatusOK(t, rr)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetInsurancesUnknownPerson(t *testing.T) {
	router, vehicles := newRouter(t)
	fixed := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

	req := testutil.WithRequestTime(testutil.NewRequest(t, http.MethodGet, "/api/v1/insurances/customer/UNKNOWN"), fixed)
	rr := testutil.DoRequest(router, req)

	body := testutil.AssertNotFound(t, rr, "Person not found with personal ID: UNKNOWN")
	assert.Equal(t, "2024-06-01T08:30:00Z", body.Timestamp)
	assert.Zero(t, vehicles.calls.Load())
}

func TestGetInsurancesBlankPersonalID(t *testing.T) {
	router, _ := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/v1/insurances/customer/%20"))

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestGetInsurancesPaddedPersonalIDIsNotTrimmed(t *testing.T) {
	router, vehicles := newRouter(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/v1/insurances/customer/%20199001011234%20"))

	testutil.AssertNotFound(t, rr, "Person not found with personal ID:  199001011234 ")
	assert.Zero(t, vehicles.calls.Load())
}

func TestGetInsurancesKeepsEmptyDependents(t *testing.T) {
	st := store.NewInMemory()
	require.NoError(t, st.AddPerson(&models.Person{ID: 1, PersonalID: "P1"}))
	require.NoError(t, st.AddPolicy(&models.Policy{
		ID: 1, PersonID: 1, ProductCode: models.ProductHealth, Status: models.PolicyStatusActive,
		MonthlyPrice: decimal.RequireFromString("20.00"),
	}))
	require.NoError(t, st.AddDetails(&models.PolicyDetails{PolicyID: 1, ProductCode: models.ProductHealth,
		HealthInfo: datatypes.JSON(`{"policyNumber":"H1","dependents":[]}`)}))
	r := chi.NewRouter()
	New(service.New(st, st, st, &stubVehicles{}), nil).Register(r)

	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/api/v1/insurances/customer/P1"))

	testutil.AssertStatusOK(t, rr)
	assert.JSONEq(t, `[
		{"productCode":"HEALTH","productName":"Health Insurance","monthlyPrice":20.00,
		 "details":{"type":"HEALTH","policyNumber":"H1","dependents":[]}}
	]`, rr.Body.String())
}

func TestGetInsurancesIsIdempotent(t *testing.T) {
	router, _ := newRouter(t)
	path := "/api/v1/insurances/customer/199001011234"

	first := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, path))
	second := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, path))

	assert.Equal(t, first.Body.String(), second.Body.String())
}

type failingService struct{}

func (failingService) GetInsurancesByPersonalID(context.Context, domain.PersonalID) ([]models.Insurance, error) {
	return nil, errors.New("pq: connection refused")
}

func (failingService) GetVehicle(context.Context, string) (*models.CarDetails, error) {
	return nil, errors.New("boom")
}

func TestGetInsurancesInternalError(t *testing.T) {
	r := chi.NewRouter()
	New(failingService{}, nil).Register(r)

	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/api/v1/insurances/customer/199001011234"))

	testutil.AssertInternalError(t, rr)
	assert.NotContains(t, rr.Body.String(), "connection refused")
}

func TestGetVehicle(t *testing.T) {
	router, _ := newRouter(t)

	t.Run("found", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/v1/vehicles/ABC123"))
		testutil.AssertStatusOK(t, rr)
		assert.JSONEq(t, `{"type":"CAR","registrationNumber":"ABC123","make":"Volvo","model":"XC60","year":2020,"color":"Black"}`, rr.Body.String())
	})

	t.Run("unknown registration", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/v1/vehicles/GONE99"))
		testutil.AssertNotFound(t, rr, "Vehicle not found with registration number: GONE99")
	})

	t.Run("blank registration", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/v1/vehicles/%20"))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}
