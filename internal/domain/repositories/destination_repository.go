package repositories

import (
	"context"

	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
)

// DestinationRepository abstracts the Gitea-style platform repositories
// are migrated to.
//
// MigrateRepository and AttachDeployKey return a classified Outcome for
// anything the destination answered, and an error only for failures that
// produced no response at all (request building, transport). Callers fold
// both shapes into the per-item failure bucket.
type DestinationRepository interface {
	// ListOwners returns the candidate destination namespaces: the
	// authenticated identity first, then its organizations in API order.
	// Fails with entities.ErrUpstreamUnavailable when either lookup fails.
	ListOwners(ctx context.Context) ([]entities.Owner, error)

	// MigrateRepository asks the destination to mirror-import one
	// repository from its source clone URL.
	MigrateRepository(ctx context.Context, request entities.MigrationRequest) (entities.Outcome, error)

	// AttachDeployKey adds one deploy key to an already-migrated
	// repository.
	AttachDeployKey(ctx context.Context, ownerLogin, repoName string, key entities.DeployKey) (entities.Outcome, error)
}
