package commands

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
	"github.com/rios0rios0/gitmigrate/internal/domain/repositories"
)

// Migrate is the interface for the migration orchestrator.
type Migrate interface {
	MigrateProjects(ctx context.Context, projects []entities.Project, owner entities.Owner) entities.MigrationResult
	MigrateDeployKeys(ctx context.Context, projects []entities.Project, owner entities.Owner) entities.MigrationResult
}

// MigrateCommand drives the destination's import endpoint for a selected
// project list, classifies each outcome, and aggregates a final report.
// All fan-out is unbounded: one in-flight request per item, no batching,
// no cancellation once launched.
type MigrateCommand struct {
	source      repositories.SourceRepository
	destination repositories.DestinationRepository
	progress    repositories.ProgressReporter
	// authUsername pairs with the source token inside the clone URL the
	// destination uses to pull; "oauth2" for GitLab tokens.
	authUsername string
}

// NewMigrateCommand creates a new MigrateCommand. A nil progress reporter
// is replaced by a no-op implementation.
func NewMigrateCommand(
	source repositories.SourceRepository,
	destination repositories.DestinationRepository,
	progress repositories.ProgressReporter,
	authUsername string,
) *MigrateCommand {
	if progress == nil {
		progress = repositories.NopProgressReporter{}
	}
	return &MigrateCommand{
		source:       source,
		destination:  destination,
		progress:     progress,
		authUsername: authUsername,
	}
}

// DestinationRepoName derives the destination repository name from a
// slash-joined source path: the leading namespace segment is stripped and
// every remaining separator becomes a hyphen. One level of nesting is
// collapsed into a flat name without colliding across common top-level
// groups: "group/subgroup/project" -> "subgroup-project",
// "group/project" -> "project".
func DestinationRepoName(pathWithNamespace string) string {
	_, rest, found := strings.Cut(pathWithNamespace, "/")
	if !found {
		return pathWithNamespace
	}
	return strings.ReplaceAll(rest, "/", "-")
}

// MigrateProjects issues one import request per project, all concurrently,
// and waits for the full set before returning. Every input project lands
// in exactly one result bucket; the progress reporter sees one increment
// per settled request regardless of outcome.
func (it *MigrateCommand) MigrateProjects(
	ctx context.Context,
	projects []entities.Project,
	owner entities.Owner,
) entities.MigrationResult {
	var result entities.MigrationResult
	var resultLock sync.Mutex
	var pending sync.WaitGroup

	it.progress.Start(len(projects))
	defer it.progress.Stop()

	for _, project := range projects {
		pending.Add(1)
		go func(project entities.Project) {
			defer pending.Done()
			defer it.progress.Increment()

			repoName := DestinationRepoName(project.PathWithNamespace)
			outcome, err := it.destination.MigrateRepository(ctx, entities.MigrationRequest{
				CloneURL:     project.HTTPURLToRepo,
				AuthUsername: it.authUsername,
				AuthToken:    it.source.AuthToken(),
				RepoName:     repoName,
				Description:  project.Description,
				OwnerID:      owner.ID,
				Public:       project.Visibility == entities.VisibilityPublic,
			})

			resultLock.Lock()
			defer resultLock.Unlock()
			switch {
			case err != nil:
				result.Failed = append(result.Failed, project)
				result.Errors = append(result.Errors, fmt.Sprintf(
					"failed to migrate %s/%s from %s: %v",
					owner.Login, repoName, project.HTTPURLToRepo, err,
				))
			case outcome.Status == entities.OutcomeAlreadyExists:
				result.Skipped = append(result.Skipped, project)
			case outcome.Status == entities.OutcomeFailed:
				result.Failed = append(result.Failed, project)
				result.Errors = append(result.Errors, fmt.Sprintf(
					"failed to migrate %s/%s from %s: %d %s: %s",
					owner.Login, repoName, project.HTTPURLToRepo,
					outcome.StatusCode, outcome.StatusText, outcome.Message,
				))
			default:
				result.Succeeded = append(result.Succeeded, project)
			}
		}(project)
	}

	pending.Wait()
	return result
}

// MigrateDeployKeys copies deploy keys project by project. The outer loop
// is strictly sequential because each project's fan-out depends on its key
// fetch; the key attachments themselves share one unbounded fan-out that
// is joined only after the last project has been processed.
//
// Classification happens per key, folded into a project-indexed result: a
// project whose keys settle differently appears in more than one bucket.
// This intentionally diverges from MigrateProjects' one-bucket invariant.
func (it *MigrateCommand) MigrateDeployKeys(
	ctx context.Context,
	projects []entities.Project,
	owner entities.Owner,
) entities.MigrationResult {
	var result entities.MigrationResult
	var resultLock sync.Mutex
	var pending sync.WaitGroup

	it.progress.Start(len(projects))
	defer it.progress.Stop()

	for _, project := range projects {
		keys, err := it.source.ListDeployKeys(ctx, project)
		if err != nil {
			resultLock.Lock()
			result.Failed = append(result.Failed, project)
			result.Errors = append(result.Errors, fmt.Sprintf(
				"failed to fetch deploy keys for %s: %v",
				project.PathWithNamespace, err,
			))
			resultLock.Unlock()
			it.progress.Increment()
			continue
		}
		if len(keys) == 0 {
			it.progress.Increment()
			continue
		}

		repoName := DestinationRepoName(project.PathWithNamespace)
		for _, key := range keys {
			pending.Add(1)
			go func(project entities.Project, key entities.DeployKey) {
				defer pending.Done()

				outcome, attachErr := it.destination.AttachDeployKey(ctx, owner.Login, repoName, key)

				resultLock.Lock()
				defer resultLock.Unlock()
				switch {
				case attachErr != nil:
					result.Failed = append(result.Failed, project)
					result.Errors = append(result.Errors, fmt.Sprintf(
						"failed to attach key %q to %s/%s: %v",
						key.Title, owner.Login, repoName, attachErr,
					))
				case outcome.Status == entities.OutcomeAlreadyExists:
					result.Skipped = append(result.Skipped, project)
				case outcome.Status == entities.OutcomeFailed:
					result.Failed = append(result.Failed, project)
					result.Errors = append(result.Errors, fmt.Sprintf(
						"failed to attach key %q to %s/%s: %d %s: %s",
						key.Title, owner.Login, repoName,
						outcome.StatusCode, outcome.StatusText, outcome.Message,
					))
				default:
					result.Succeeded = append(result.Succeeded, project)
				}
			}(project, key)
		}

		// Progress counts projects processed, not individual keys.
		it.progress.Increment()
	}

	pending.Wait()
	return result
}
