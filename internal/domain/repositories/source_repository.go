package repositories

import (
	"context"

	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
)

// SourceRepository abstracts the platform repositories are migrated from
// (GitLab, GitHub, ...). It lists every project the supplied token can
// reach and fetches per-project deploy keys on demand.
type SourceRepository interface {
	// Name returns the provider identifier, e.g. "gitlab".
	Name() string

	// AuthToken returns the caller-supplied token. It is an opaque
	// pass-through value, embedded by the destination into clone URLs.
	AuthToken() string

	// ListProjects returns the complete, sorted project collection. It
	// fails with entities.ErrUpstreamUnavailable when the platform is
	// unreachable or answers with an error status.
	ListProjects(ctx context.Context) ([]entities.Project, error)

	// ListDeployKeys fetches the deploy keys of a single project.
	ListDeployKeys(ctx context.Context, project entities.Project) ([]entities.DeployKey, error)
}
