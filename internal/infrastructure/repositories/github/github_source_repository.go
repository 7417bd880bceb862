package github

import (
	"context"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
	"github.com/rios0rios0/gitmigrate/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100
)

const publicBaseURL = "https://github.com"

// GitHubSourceRepository implements repositories.SourceRepository for
// GitHub.
type GitHubSourceRepository struct {
	token  string
	client *gh.Client
}

// NewSourceRepository creates a new GitHub source with the given token.
// Any base URL other than github.com is treated as a GitHub Enterprise
// instance.
func NewSourceRepository(baseURL, token string) repositories.SourceRepository {
	client := gh.NewClient(nil).WithAuthToken(token)
	if baseURL != "" && baseURL != publicBaseURL {
		if enterprise, err := client.WithEnterpriseURLs(baseURL, baseURL); err == nil {
			client = enterprise
		}
	}
	return &GitHubSourceRepository{
		token:  token,
		client: client,
	}
}

func (it *GitHubSourceRepository) Name() string      { return providerName }
func (it *GitHubSourceRepository) AuthToken() string { return it.token }

// ListProjects lists every repository the authenticated user can access,
// mapped into the flat namespace shape GitLab produces natively: the
// display name becomes "owner / name" and the namespace path is the owner
// login.
func (it *GitHubSourceRepository) ListProjects(ctx context.Context) ([]entities.Project, error) {
	var allProjects []entities.Project
	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		repos, resp, err := it.client.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, &entities.UpstreamError{Op: "listing source projects", Cause: err}
		}

		for _, repo := range repos {
			ownerLogin := ""
			if repo.Owner != nil {
				ownerLogin = repo.Owner.GetLogin()
			}
			visibility := repo.GetVisibility()
			if visibility == "" && !repo.GetPrivate() {
				visibility = entities.VisibilityPublic
			}
			allProjects = append(allProjects, entities.Project{
				ID:                repo.GetID(),
				Name:              repo.GetName(),
				NameWithNamespace: strings.ReplaceAll(repo.GetFullName(), "/", " / "),
				Path:              repo.GetName(),
				NamespacePath:     ownerLogin,
				PathWithNamespace: repo.GetFullName(),
				HTTPURLToRepo:     repo.GetCloneURL(),
				Description:       repo.GetDescription(),
				Visibility:        visibility,
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

// ListDeployKeys fetches the deploy keys of one repository.
func (it *GitHubSourceRepository) ListDeployKeys(
	ctx context.Context,
	project entities.Project,
) ([]entities.DeployKey, error) {
	var allKeys []entities.DeployKey
	opts := &gh.ListOptions{PerPage: perPage}

	for {
		keys, resp, err := it.client.Repositories.ListKeys(ctx, project.NamespacePath, project.Path, opts)
		if err != nil {
			return nil, &entities.UpstreamError{Op: "listing deploy keys", Cause: err}
		}

		for _, key := range keys {
			allKeys = append(allKeys, entities.DeployKey{
				ID:       key.GetID(),
				Title:    key.GetTitle(),
				Key:      key.GetKey(),
				ReadOnly: key.GetReadOnly(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allKeys, nil
}
