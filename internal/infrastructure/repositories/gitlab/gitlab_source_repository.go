package gitlab

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
	"github.com/rios0rios0/gitmigrate/internal/domain/repositories"
)

const (
	providerName = "gitlab"
	perPage      = 100
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// GitLabSourceRepository implements repositories.SourceRepository for GitLab.
type GitLabSourceRepository struct {
	token  string
	client *gl.Client
}

// NewSourceRepository creates a new GitLab source for the given instance
// URL and token.
func NewSourceRepository(baseURL, token string) repositories.SourceRepository {
	client, err := gl.NewClient(token, gl.WithBaseURL(baseURL))
	if err != nil {
		logger.Warnf("Failed to build GitLab client for %q: %v", baseURL, err)
		// The nil client surfaces errClientNotInitialized on first use.
		return &GitLabSourceRepository{token: token, client: nil}
	}
	return &GitLabSourceRepository{
		token:  token,
		client: client,
	}
}

func (it *GitLabSourceRepository) Name() string      { return providerName }
func (it *GitLabSourceRepository) AuthToken() string { return it.token }

// ListProjects lists every project the token is a member of. Pagination
// follows the X-Next-Page response header surfaced by the client; an
// absent or invalid header ends the walk. The collection is sorted by
// namespaced display name before it is returned.
func (it *GitLabSourceRepository) ListProjects(ctx context.Context) ([]entities.Project, error) {
	if it.client == nil {
		return nil, &entities.UpstreamError{Op: "listing source projects", Cause: errClientNotInitialized}
	}

	var allProjects []entities.Project
	opts := &gl.ListProjectsOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		Membership:  gl.Ptr(true),
	}

	for {
		projects, resp, err := it.client.Projects.ListProjects(opts, gl.WithContext(ctx))
		if err != nil {
			return nil, &entities.UpstreamError{Op: "listing source projects", Cause: err}
		}

		for _, proj := range projects {
			namespacePath := ""
			if proj.Namespace != nil {
				namespacePath = proj.Namespace.Path
			}
			allProjects = append(allProjects, entities.Project{
				ID:                int64(proj.ID),
				Name:              proj.Name,
				NameWithNamespace: proj.NameWithNamespace,
				Path:              proj.Path,
				NamespacePath:     namespacePath,
				PathWithNamespace: proj.PathWithNamespace,
				HTTPURLToRepo:     proj.HTTPURLToRepo,
				Description:       proj.Description,
				Visibility:        string(proj.Visibility),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	entities.SortProjects(allProjects)
	return allProjects, nil
}

// ListDeployKeys fetches the deploy keys of one project. The read-only
// flag is the inverse of GitLab's can_push.
func (it *GitLabSourceRepository) ListDeployKeys(
	ctx context.Context,
	project entities.Project,
) ([]entities.DeployKey, error) {
	if it.client == nil {
		return nil, &entities.UpstreamError{Op: "listing deploy keys", Cause: errClientNotInitialized}
	}

	var allKeys []entities.DeployKey
	opts := &gl.ListProjectDeployKeysOptions{PerPage: perPage}

	for {
		keys, resp, err := it.client.DeployKeys.ListProjectDeployKeys(int(project.ID), opts, gl.WithContext(ctx))
		if err != nil {
			return nil, &entities.UpstreamError{Op: "listing deploy keys", Cause: err}
		}

		for _, key := range keys {
			allKeys = append(allKeys, entities.DeployKey{
				ID:       int64(key.ID),
				Title:    key.Title,
				Key:      key.Key,
				ReadOnly: !key.CanPush,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allKeys, nil
}
