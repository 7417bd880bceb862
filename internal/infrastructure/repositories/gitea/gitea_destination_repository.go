package gitea

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
	"github.com/rios0rios0/gitmigrate/internal/domain/repositories"
)

const apiPrefix = "/api/v1"

// Conflict status codes are Gitea conventions, not protocol guarantees,
// so they are stored on the client rather than compared inline.
const (
	defaultRepoConflictStatus = http.StatusConflict            // repository already exists
	defaultKeyConflictStatus  = http.StatusUnprocessableEntity // key material already attached
)

// GiteaDestinationRepository implements repositories.DestinationRepository
// against Gitea's v1 API.
type GiteaDestinationRepository struct {
	baseURL string
	token   string
	client  *http.Client

	repoConflictStatus int
	keyConflictStatus  int
}

// NewDestinationRepository creates a new Gitea destination for the given
// instance URL and token.
func NewDestinationRepository(baseURL, token string) repositories.DestinationRepository {
	return &GiteaDestinationRepository{
		baseURL:            strings.TrimSuffix(baseURL, "/"),
		token:              token,
		client:             http.DefaultClient,
		repoConflictStatus: defaultRepoConflictStatus,
		keyConflictStatus:  defaultKeyConflictStatus,
	}
}

type giteaUser struct {
	ID       int64  `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type giteaOrganization struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type migrateRepoPayload struct {
	AuthUsername string `json:"auth_username"`
	AuthPassword string `json:"auth_password"`
	CloneAddr    string `json:"clone_addr"`
	Description  string `json:"description"`
	Mirror       bool   `json:"mirror"`
	Private      bool   `json:"private"`
	RepoName     string `json:"repo_name"`
	UID          int64  `json:"uid"`
}

type deployKeyPayload struct {
	Title    string `json:"title"`
	Key      string `json:"key"`
	ReadOnly bool   `json:"read_only"`
}

// giteaError is the standard error body shape of the Gitea API.
type giteaError struct {
	Message string `json:"message"`
}

// ListOwners fetches the authenticated identity and its organizations with
// two concurrent lookups and joins them identity first.
func (it *GiteaDestinationRepository) ListOwners(ctx context.Context) ([]entities.Owner, error) {
	var identity giteaUser
	var organizations []giteaOrganization

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return it.getJSON(groupCtx, "/user", &identity)
	})
	group.Go(func() error {
		return it.getJSON(groupCtx, "/user/orgs", &organizations)
	})
	if err := group.Wait(); err != nil {
		return nil, &entities.UpstreamError{Op: "listing destination owners", Cause: err}
	}

	owners := make([]entities.Owner, 0, len(organizations)+1)
	owners = append(owners, entities.Owner{
		ID:    identity.ID,
		Name:  identity.FullName,
		Login: identity.Login,
		Email: identity.Email,
	})
	for _, org := range organizations {
		owners = append(owners, entities.Owner{
			ID:    org.ID,
			Name:  org.FullName,
			Login: org.Username,
		})
	}
	return owners, nil
}

// MigrateRepository asks Gitea to mirror-import one repository. The new
// repository is private unless the source visibility was exactly "public".
func (it *GiteaDestinationRepository) MigrateRepository(
	ctx context.Context,
	request entities.MigrationRequest,
) (entities.Outcome, error) {
	payload := migrateRepoPayload{
		AuthUsername: request.AuthUsername,
		AuthPassword: request.AuthToken,
		CloneAddr:    request.CloneURL,
		Description:  request.Description,
		Mirror:       true,
		Private:      !request.Public,
		RepoName:     request.RepoName,
		UID:          request.OwnerID,
	}
	return it.postOutcome(ctx, "/repos/migrate", payload, it.repoConflictStatus)
}

// AttachDeployKey adds one deploy key to a migrated repository.
func (it *GiteaDestinationRepository) AttachDeployKey(
	ctx context.Context,
	ownerLogin, repoName string,
	key entities.DeployKey,
) (entities.Outcome, error) {
	payload := deployKeyPayload{
		Title:    key.Title,
		Key:      key.Key,
		ReadOnly: key.ReadOnly,
	}
	path := fmt.Sprintf("/repos/%s/%s/keys", ownerLogin, repoName)
	return it.postOutcome(ctx, path, payload, it.keyConflictStatus)
}

// postOutcome issues one POST and classifies the response: 2xx succeeded,
// the conflict status is a terminal skip, anything else failed with the
// destination's message attached.
func (it *GiteaDestinationRepository) postOutcome(
	ctx context.Context,
	path string,
	payload any,
	conflictStatus int,
) (entities.Outcome, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return entities.Outcome{}, fmt.Errorf("failed to encode request body: %w", err)
	}

	request, err := http.NewRequestWithContext(
		ctx, http.MethodPost, it.baseURL+apiPrefix+path, bytes.NewReader(body),
	)
	if err != nil {
		return entities.Outcome{}, fmt.Errorf("failed to build request: %w", err)
	}
	it.setHeaders(request)

	response, err := it.client.Do(request)
	if err != nil {
		return entities.Outcome{}, fmt.Errorf("failed to reach destination: %w", err)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode >= http.StatusOK && response.StatusCode < http.StatusMultipleChoices:
		return entities.Outcome{Status: entities.OutcomeSucceeded}, nil
	case response.StatusCode == conflictStatus:
		return entities.Outcome{
			Status:     entities.OutcomeAlreadyExists,
			StatusCode: response.StatusCode,
			StatusText: http.StatusText(response.StatusCode),
		}, nil
	default:
		return entities.Outcome{
			Status:     entities.OutcomeFailed,
			StatusCode: response.StatusCode,
			StatusText: http.StatusText(response.StatusCode),
			Message:    readErrorMessage(response.Body),
		}, nil
	}
}

// getJSON issues one GET and decodes a 2xx body into target.
func (it *GiteaDestinationRepository) getJSON(ctx context.Context, path string, target any) error {
	request, err := http.NewRequestWithContext(
		ctx, http.MethodGet, it.baseURL+apiPrefix+path, nil,
	)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	it.setHeaders(request)

	response, err := it.client.Do(request)
	if err != nil {
		return fmt.Errorf("failed to reach destination: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf(
			"destination answered %d %s for %s",
			response.StatusCode, http.StatusText(response.StatusCode), path,
		)
	}

	if decodeErr := json.NewDecoder(response.Body).Decode(target); decodeErr != nil {
		return fmt.Errorf("failed to decode response for %s: %w", path, decodeErr)
	}
	return nil
}

func (it *GiteaDestinationRepository) setHeaders(request *http.Request) {
	request.Header.Set("Authorization", "token "+it.token)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
}

// readErrorMessage extracts the "message" field of a Gitea error body,
// falling back to the raw body when it is not the standard shape.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(body)
	if err != nil {
		return ""
	}

	var parsed giteaError
	if unmarshalErr := json.Unmarshal(raw, &parsed); unmarshalErr == nil && parsed.Message != "" {
		return parsed.Message
	}
	return strings.TrimSpace(string(raw))
}
