package entities

// OutcomeStatus classifies a single destination call.
type OutcomeStatus int

const (
	// OutcomeSucceeded means the destination created the repository or
	// attached the key.
	OutcomeSucceeded OutcomeStatus = iota
	// OutcomeAlreadyExists means the destination reported a conflict: the
	// target already exists. Treated as a terminal skip, never an error.
	OutcomeAlreadyExists
	// OutcomeFailed means any other non-2xx response.
	OutcomeFailed
)

// Outcome is the classified result of one destination call. StatusCode
// and StatusText are zero for OutcomeSucceeded; Message is only set for
// OutcomeFailed.
type Outcome struct {
	Status     OutcomeStatus
	StatusCode int
	StatusText string
	Message    string
}

// MigrationRequest carries everything the destination needs to import one
// repository from its source clone URL. Credentials are opaque
// pass-through values.
type MigrationRequest struct {
	CloneURL     string
	AuthUsername string
	AuthToken    string
	RepoName     string
	Description  string
	OwnerID      int64
	Public       bool
}

// MigrationResult aggregates one orchestration pass. In the project pass
// every input project lands in exactly one of the three buckets; in the
// deploy-key pass a project may appear in several buckets because the
// classification happens per key (see MigrateCommand.MigrateDeployKeys).
type MigrationResult struct {
	Succeeded []Project
	Skipped   []Project
	Failed    []Project
	Errors    []string
}

// Total returns the number of classified entries across all buckets.
func (result MigrationResult) Total() int {
	return len(result.Succeeded) + len(result.Skipped) + len(result.Failed)
}
