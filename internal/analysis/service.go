// Package analysis persists named portfolio analyses so a working set of
// properties and settings can be reopened or exported later.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rentradar/rentradar/internal/sharecode"
)

// Service manages saved analyses on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new analysis service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save stores a named analysis state and returns its ID. An empty id
// creates a new analysis; a non-empty id updates the existing one.
func (s *Service) Save(ctx context.Context, id, name string, state sharecode.State) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("analysis name is required")
	}
	if id == "" {
		id = uuid.NewString()
	}

	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("marshaling state: %w", err)
	}
	if err := s.repo.Save(ctx, id, name, data); err != nil {
		return "", err
	}
	return id, nil
}

// Get retrieves an analysis and decodes its stored state.
func (s *Service) Get(ctx context.Context, id string) (*Analysis, sharecode.State, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, sharecode.State{}, err
	}

	var state sharecode.State
	if err := json.Unmarshal(a.State, &state); err != nil {
		return nil, sharecode.State{}, fmt.Errorf("decoding stored state: %w", err)
	}
	return a, state, nil
}

// List retrieves recent analyses, most recently updated first.
func (s *Service) List(ctx context.Context, limit int) ([]Summary, error) {
	return s.repo.List(ctx, limit)
}

// Delete removes a saved analysis.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
