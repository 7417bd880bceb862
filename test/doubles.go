// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"
	"sync"

	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
)

// ---------------------------------------------------------------------------
// SpySourceRepository
// ---------------------------------------------------------------------------

// SpySourceRepository implements repositories.SourceRepository as a
// configurable spy. Configure the response fields for the methods your test
// exercises, then inspect the call-tracking fields to verify behavior.
type SpySourceRepository struct {
	// --- identity ---
	SourceName string
	Token      string

	// --- ListProjects ---
	Projects []entities.Project
	ListErr  error

	// --- ListDeployKeys ---
	DeployKeys map[int64][]entities.DeployKey // project ID -> keys
	KeysErr    map[int64]error                // project ID -> fetch error
	// spy: project IDs whose keys were requested, in call order
	KeyFetches []int64
}

func (s *SpySourceRepository) Name() string {
	if s.SourceName == "" {
		return "spy"
	}
	return s.SourceName
}

func (s *SpySourceRepository) AuthToken() string { return s.Token }

func (s *SpySourceRepository) ListProjects(_ context.Context) ([]entities.Project, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.Projects, nil
}

func (s *SpySourceRepository) ListDeployKeys(
	_ context.Context,
	project entities.Project,
) ([]entities.DeployKey, error) {
	s.KeyFetches = append(s.KeyFetches, project.ID)
	if err, ok := s.KeysErr[project.ID]; ok {
		return nil, err
	}
	return s.DeployKeys[project.ID], nil
}

// ---------------------------------------------------------------------------
// SpyDestinationRepository
// ---------------------------------------------------------------------------

// SpyDestinationRepository implements repositories.DestinationRepository as a
// configurable spy. Outcomes are keyed by destination repo name (migrations)
// and key title (attachments); unmatched calls succeed. The spy is safe for
// the orchestrator's concurrent fan-out.
type SpyDestinationRepository struct {
	mutex sync.Mutex

	// --- ListOwners ---
	Owners    []entities.Owner
	OwnersErr error

	// --- MigrateRepository ---
	MigrateOutcomes map[string]entities.Outcome // repo name -> outcome
	MigrateErrs     map[string]error            // repo name -> transport error
	// spy: every request received
	MigrateRequests []entities.MigrationRequest

	// --- AttachDeployKey ---
	AttachOutcomes map[string]entities.Outcome // key title -> outcome
	AttachErrs     map[string]error            // key title -> transport error
	// spy: every key received
	AttachedKeys []entities.DeployKey
}

func (s *SpyDestinationRepository) ListOwners(_ context.Context) ([]entities.Owner, error) {
	if s.OwnersErr != nil {
		return nil, s.OwnersErr
	}
	return s.Owners, nil
}

func (s *SpyDestinationRepository) MigrateRepository(
	_ context.Context,
	request entities.MigrationRequest,
) (entities.Outcome, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.MigrateRequests = append(s.MigrateRequests, request)
	if err, ok := s.MigrateErrs[request.RepoName]; ok {
		return entities.Outcome{}, err
	}
	if outcome, ok := s.MigrateOutcomes[request.RepoName]; ok {
		return outcome, nil
	}
	return entities.Outcome{Status: entities.OutcomeSucceeded}, nil
}

func (s *SpyDestinationRepository) AttachDeployKey(
	_ context.Context,
	_, _ string,
	key entities.DeployKey,
) (entities.Outcome, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.AttachedKeys = append(s.AttachedKeys, key)
	if err, ok := s.AttachErrs[key.Title]; ok {
		return entities.Outcome{}, err
	}
	if outcome, ok := s.AttachOutcomes[key.Title]; ok {
		return outcome, nil
	}
	return entities.Outcome{Status: entities.OutcomeSucceeded}, nil
}

// ---------------------------------------------------------------------------
// SpyProgressReporter
// ---------------------------------------------------------------------------

// SpyProgressReporter records every progress event it receives.
type SpyProgressReporter struct {
	mutex sync.Mutex

	Starts     []int // totals passed to Start, in call order
	Increments int
	Stops      int
}

func (s *SpyProgressReporter) Start(total int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Starts = append(s.Starts, total)
}

func (s *SpyProgressReporter) Increment() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Increments++
}

func (s *SpyProgressReporter) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Stops++
}
