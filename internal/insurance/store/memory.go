package store

import (
	"context"
	"fmt"
	"sync"

	"insurance/internal/insurance/models"
	"insurance/pkg/platform/sentinel"
)

// ErrNotFound is returned when a person or policy details record does not exist.
var ErrNotFound = sentinel.ErrNotFound

// InMemory holds persons, policies and policy details in maps. It backs local
// development and service tests; policies keep insertion order per person.
type InMemory struct {
	mu             sync.RWMutex
	persons        map[string]*models.Person
	policiesByUser map[int64][]*models.Policy
	details        map[int64]*models.PolicyDetails
}

// NewInMemory returns an empty store.
func NewInMemory() *InMemory {
	return &InMemory{
		persons:        make(map[string]*models.Person),
		policiesByUser: make(map[int64][]*models.Policy),
		details:        make(map[int64]*models.PolicyDetails),
	}
}

// AddPerson inserts or replaces a person keyed by PersonalID.
func (s *InMemory) AddPerson(p *models.Person) error {
	if p == nil || p.PersonalID == "" {
		return fmt.Errorf("person with personal ID is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.persons[p.PersonalID] = &cp
	return nil
}

// AddPolicy appends a policy to its owner's list.
func (s *InMemory) AddPolicy(p *models.Policy) error {
	if p == nil {
		return fmt.Errorf("policy is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.policiesByUser[p.PersonID] = append(s.policiesByUser[p.PersonID], &cp)
	return nil
}

// AddDetails inserts or replaces the details of a policy.
func (s *InMemory) AddDetails(d *models.PolicyDetails) error {
	if d == nil {
		return fmt.Errorf("policy details are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *d
	s.details[d.PolicyID] = &cp
	return nil
}

func (s *InMemory) FindByPersonalID(_ context.Context, personalID string) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.persons[personalID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemory) ListActiveByPersonID(_ context.Context, personID int64) ([]*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	policies := make([]*models.Policy, 0, len(s.policiesByUser[personID]))
	for _, p := range s.policiesByUser[personID] {
		if !p.IsActive() {
			continue
		}
		cp := *p
		policies = append(policies, &cp)
	}
	return policies, nil
}

func (s *InMemory) FindByPolicyID(_ context.Context, policyID int64) (*models.PolicyDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.details[policyID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	if d.Pet != nil {
		pet := *d.Pet
		cp.Pet = &pet
	}
	return &cp, nil
}
