package insurance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	GetLastResponseBody() []byte
}

// RegisterSteps registers insurance overview step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &insuranceSteps{tc: tc}

	ctx.Step(`^I request the insurances of customer "([^"]*)"$`, steps.requestInsurances)
	ctx.Step(`^the response should list (\d+) insurances?$`, steps.shouldListN)
	ctx.Step(`^insurance (\d+) should have product code "([^"]*)"$`, steps.insuranceHasProductCode)
	ctx.Step(`^insurance (\d+) should cost "([^"]*)" per month$`, steps.insuranceCosts)
	ctx.Step(`^insurance (\d+) should have "([^"]*)" details$`, steps.insuranceHasDetailsType)
	ctx.Step(`^insurance (\d+) should have no details$`, steps.insuranceHasNoDetails)
}

type insuranceSteps struct {
	tc TestContext
}

func (s *insuranceSteps) requestInsurances(ctx context.Context, personalID string) error {
	return s.tc.GET("/api/v1/insurances/customer/"+personalID, nil)
}

func (s *insuranceSteps) list() ([]map[string]json.RawMessage, error) {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &items); err != nil {
		return nil, fmt.Errorf("response is not a JSON array: %w", err)
	}
	return items, nil
}

func (s *insuranceSteps) item(n int) (map[string]json.RawMessage, error) {
	items, err := s.list()
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(items) {
		return nil, fmt.Errorf("insurance %d out of range, response has %d", n, len(items))
	}
	return items[n-1], nil
}

func (s *insuranceSteps) shouldListN(ctx context.Context, n int) error {
	items, err := s.list()
	if err != nil {
		return err
	}
	if len(items) != n {
		return fmt.Errorf("expected %d insurances, got %d", n, len(items))
	}
	return nil
}

func (s *insuranceSteps) insuranceHasProductCode(ctx context.Context, n int, code string) error {
	item, err := s.item(n)
	if err != nil {
		return err
	}
	var got string
	if err := json.Unmarshal(item["productCode"], &got); err != nil {
		return err
	}
	if got != code {
		return fmt.Errorf("expected product code %q, got %q", code, got)
	}
	return nil
}

// insuranceCosts compares the raw JSON number so the scale is checked too.
func (s *insuranceSteps) insuranceCosts(ctx context.Context, n int, price string) error {
	item, err := s.item(n)
	if err != nil {
		return err
	}
	if got := string(item["monthlyPrice"]); got != price {
		return fmt.Errorf("expected monthly price %s, got %s", price, got)
	}
	return nil
}

func (s *insuranceSteps) insuranceHasDetailsType(ctx context.Context, n int, detailsType string) error {
	item, err := s.item(n)
	if err != nil {
		return err
	}
	raw, ok := item["details"]
	if !ok {
		return fmt.Errorf("insurance %d has no details", n)
	}
	var details struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &details); err != nil {
		return err
	}
	if details.Type != detailsType {
		return fmt.Errorf("expected %q details, got %q", detailsType, details.Type)
	}
	return nil
}

func (s *insuranceSteps) insuranceHasNoDetails(ctx context.Context, n int) error {
	item, err := s.item(n)
	if err != nil {
		return err
	}
	if raw, ok := item["details"]; ok && !bytes.Equal(raw, []byte("null")) {
		return fmt.Errorf("expected no details on insurance %d, got %s", n, raw)
	}
	return nil
}
