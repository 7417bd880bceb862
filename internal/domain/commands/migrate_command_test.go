package commands_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitmigrate/internal/domain/commands"
	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
	testdoubles "github.com/rios0rios0/gitmigrate/test"
)

// --- helpers ---

func buildProject(id int64, pathWithNamespace string) entities.Project {
	return entities.Project{
		ID:                id,
		PathWithNamespace: pathWithNamespace,
		HTTPURLToRepo:     "https://gitlab.example.com/" + pathWithNamespace + ".git",
		Visibility:        "private",
	}
}

func buildOwner() entities.Owner {
	return entities.Owner{ID: 7, Login: "acme", Name: "Acme Inc."}
}

// --- tests ---

func TestDestinationRepoName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "nested group", path: "group/subgroup/project", expected: "subgroup-project"},
		{name: "flat group", path: "group/project", expected: "project"},
		{name: "deeply nested group", path: "group/a/b/project", expected: "a-b-project"},
		{name: "no namespace", path: "project", expected: "project"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, commands.DestinationRepoName(testCase.path))
		})
	}
}

func TestMigrateCommand_MigrateProjects(t *testing.T) {
	t.Parallel()

	t.Run("should place every project in exactly one bucket", func(t *testing.T) {
		t.Parallel()

		// given
		projects := []entities.Project{
			buildProject(1, "group/alpha"),
			buildProject(2, "group/beta"),
			buildProject(3, "group/gamma"),
		}
		destination := &testdoubles.SpyDestinationRepository{
			MigrateOutcomes: map[string]entities.Outcome{
				"beta":  {Status: entities.OutcomeAlreadyExists, StatusCode: http.StatusConflict},
				"gamma": {Status: entities.OutcomeFailed, StatusCode: http.StatusInternalServerError},
			},
		}
		command := commands.NewMigrateCommand(
			&testdoubles.SpySourceRepository{Token: "src-token"}, destination, nil, "oauth2",
		)

		// when
		result := command.MigrateProjects(context.Background(), projects, buildOwner())

		// then
		assert.Equal(t, len(projects), result.Total())
		assert.Len(t, result.Succeeded, 1)
		assert.Len(t, result.Skipped, 1)
		assert.Len(t, result.Failed, 1)
	})

	t.Run("should treat a conflict as a skip, never an error", func(t *testing.T) {
		t.Parallel()

		// given
		projects := []entities.Project{buildProject(1, "group/alpha")}
		destination := &testdoubles.SpyDestinationRepository{
			MigrateOutcomes: map[string]entities.Outcome{
				"alpha": {Status: entities.OutcomeAlreadyExists, StatusCode: http.StatusConflict},
			},
		}
		command := commands.NewMigrateCommand(
			&testdoubles.SpySourceRepository{}, destination, nil, "oauth2",
		)

		// when
		result := command.MigrateProjects(context.Background(), projects, buildOwner())

		// then
		assert.Len(t, result.Skipped, 1)
		assert.Empty(t, result.Failed)
		assert.Empty(t, result.Errors)
	})

	t.Run("should aggregate mixed outcomes end to end", func(t *testing.T) {
		t.Parallel()

		// given
		created := buildProject(1, "group/alpha")
		conflicting := buildProject(2, "group/beta")
		failing := buildProject(3, "group/gamma")
		destination := &testdoubles.SpyDestinationRepository{
			MigrateOutcomes: map[string]entities.Outcome{
				"beta": {Status: entities.OutcomeAlreadyExists, StatusCode: http.StatusConflict},
				"gamma": {
					Status:     entities.OutcomeFailed,
					StatusCode: http.StatusInternalServerError,
					StatusText: "Internal Server Error",
					Message:    "disk quota",
				},
			},
		}
		command := commands.NewMigrateCommand(
			&testdoubles.SpySourceRepository{}, destination, nil, "oauth2",
		)

		// when
		result := command.MigrateProjects(
			context.Background(),
			[]entities.Project{created, conflicting, failing},
			buildOwner(),
		)

		// then
		assert.Equal(t, []entities.Project{created}, result.Succeeded)
		assert.Equal(t, []entities.Project{conflicting}, result.Skipped)
		assert.Equal(t, []entities.Project{failing}, result.Failed)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "disk quota")
		assert.Contains(t, result.Errors[0], "500")
	})

	t.Run("should report transport failures as item failures", func(t *testing.T) {
		t.Parallel()

		// given
		projects := []entities.Project{buildProject(1, "group/alpha")}
		destination := &testdoubles.SpyDestinationRepository{
			MigrateErrs: map[string]error{
				"alpha": errors.New("connection refused"),
			},
		}
		command := commands.NewMigrateCommand(
			&testdoubles.SpySourceRepository{}, destination, nil, "oauth2",
		)

		// when
		result := command.MigrateProjects(context.Background(), projects, buildOwner())

		// then
		assert.Len(t, result.Failed, 1)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "connection refused")
	})

	t.Run("should pass credentials and derived names to the destination", func(t *testing.T) {
		t.Parallel()

		// given
		project := buildProject(1, "group/subgroup/project")
		project.Visibility = "public"
		project.Description = "a migrated project"
		destination := &testdoubles.SpyDestinationRepository{}
		command := commands.NewMigrateCommand(
			&testdoubles.SpySourceRepository{Token: "src-token"}, destination, nil, "oauth2",
		)

		// when
		command.MigrateProjects(context.Background(), []entities.Project{project}, buildOwner())

		// then
		require.Len(t, destination.MigrateRequests, 1)
		request := destination.MigrateRequests[0]
		assert.Equal(t, "subgroup-project", request.RepoName)
		assert.Equal(t, "oauth2", request.AuthUsername)
		assert.Equal(t, "src-token", request.AuthToken)
		assert.Equal(t, "a migrated project", request.Description)
		assert.Equal(t, int64(7), request.OwnerID)
		assert.True(t, request.Public)
	})

	t.Run("should notify progress once per project regardless of outcome", func(t *testing.T) {
		t.Parallel()

		// given
		projects := []entities.Project{
			buildProject(1, "group/alpha"),
			buildProject(2, "group/beta"),
			buildProject(3, "group/gamma"),
		}
		destination := &testdoubles.SpyDestinationRepository{
			MigrateOutcomes: map[string]entities.Outcome{
				"beta":  {Status: entities.OutcomeAlreadyExists},
				"gamma": {Status: entities.OutcomeFailed, StatusCode: http.StatusBadGateway},
			},
		}
		progress := &testdoubles.SpyProgressReporter{}
		command := commands.NewMigrateCommand(
			&testdoubles.SpySourceRepository{}, destination, progress, "oauth2",
		)

		// when
		command.MigrateProjects(context.Background(), projects, buildOwner())

		// then
		assert.Equal(t, []int{3}, progress.Starts)
		assert.Equal(t, 3, progress.Increments)
		assert.Equal(t, 1, progress.Stops)
	})

	t.Run("should start and stop progress even for an empty batch", func(t *testing.T) {
		t.Parallel()

		// given
		progress := &testdoubles.SpyProgressReporter{}
		command := commands.NewMigrateCommand(
			&testdoubles.SpySourceRepository{},
			&testdoubles.SpyDestinationRepository{},
			progress,
			"oauth2",
		)

		// when
		result := command.MigrateProjects(context.Background(), nil, buildOwner())

		// then
		assert.Zero(t, result.Total())
		assert.Equal(t, []int{0}, progress.Starts)
		assert.Zero(t, progress.Increments)
		assert.Equal(t, 1, progress.Stops)
	})
}

func TestMigrateCommand_MigrateDeployKeys(t *testing.T) {
	t.Parallel()

	t.Run("should fetch keys project by project and attach them all", func(t *testing.T) {
		t.Parallel()

		// given
		first := buildProject(1, "group/alpha")
		second := buildProject(2, "group/beta")
		source := &testdoubles.SpySourceRepository{
			DeployKeys: map[int64][]entities.DeployKey{
				1: {{ID: 10, Title: "ci"}, {ID: 11, Title: "deploy"}},
				2: {{ID: 20, Title: "backup"}},
			},
		}
		destination := &testdoubles.SpyDestinationRepository{}
		command := commands.NewMigrateCommand(source, destination, nil, "oauth2")

		// when
		result := command.MigrateDeployKeys(
			context.Background(), []entities.Project{first, second}, buildOwner(),
		)

		// then
		assert.Equal(t, []int64{1, 2}, source.KeyFetches)
		assert.Len(t, destination.AttachedKeys, 3)
		assert.Len(t, result.Succeeded, 3)
		assert.Empty(t, result.Errors)
	})

	t.Run("should record a fetch failure and keep processing", func(t *testing.T) {
		t.Parallel()

		// given
		broken := buildProject(1, "group/alpha")
		healthy := buildProject(2, "group/beta")
		source := &testdoubles.SpySourceRepository{
			KeysErr: map[int64]error{1: errors.New("timeout")},
			DeployKeys: map[int64][]entities.DeployKey{
				2: {{ID: 20, Title: "backup"}},
			},
		}
		destination := &testdoubles.SpyDestinationRepository{}
		progress := &testdoubles.SpyProgressReporter{}
		command := commands.NewMigrateCommand(source, destination, progress, "oauth2")

		// when
		result := command.MigrateDeployKeys(
			context.Background(), []entities.Project{broken, healthy}, buildOwner(),
		)

		// then
		assert.Equal(t, []entities.Project{broken}, result.Failed)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "timeout")
		assert.Len(t, result.Succeeded, 1)
		assert.Equal(t, 2, progress.Increments)
	})

	t.Run("should skip projects without keys entirely", func(t *testing.T) {
		t.Parallel()

		// given
		project := buildProject(1, "group/alpha")
		source := &testdoubles.SpySourceRepository{}
		destination := &testdoubles.SpyDestinationRepository{}
		progress := &testdoubles.SpyProgressReporter{}
		command := commands.NewMigrateCommand(source, destination, progress, "oauth2")

		// when
		result := command.MigrateDeployKeys(
			context.Background(), []entities.Project{project}, buildOwner(),
		)

		// then
		assert.Zero(t, result.Total())
		assert.Empty(t, destination.AttachedKeys)
		assert.Equal(t, 1, progress.Increments)
		assert.Equal(t, 1, progress.Stops)
	})

	t.Run("should classify per key, so one project can land in several buckets", func(t *testing.T) {
		t.Parallel()

		// given
		project := buildProject(1, "group/alpha")
		source := &testdoubles.SpySourceRepository{
			DeployKeys: map[int64][]entities.DeployKey{
				1: {{ID: 10, Title: "fresh"}, {ID: 11, Title: "existing"}},
			},
		}
		destination := &testdoubles.SpyDestinationRepository{
			AttachOutcomes: map[string]entities.Outcome{
				"existing": {Status: entities.OutcomeAlreadyExists, StatusCode: http.StatusUnprocessableEntity},
			},
		}
		command := commands.NewMigrateCommand(source, destination, nil, "oauth2")

		// when
		result := command.MigrateDeployKeys(
			context.Background(), []entities.Project{project}, buildOwner(),
		)

		// then
		assert.Equal(t, []entities.Project{project}, result.Succeeded)
		assert.Equal(t, []entities.Project{project}, result.Skipped)
		assert.Empty(t, result.Failed)
		assert.Empty(t, result.Errors)
	})

	t.Run("should count progress per project, not per key", func(t *testing.T) {
		t.Parallel()

		// given
		project := buildProject(1, "group/alpha")
		source := &testdoubles.SpySourceRepository{
			DeployKeys: map[int64][]entities.DeployKey{
				1: {{Title: "a"}, {Title: "b"}, {Title: "c"}},
			},
		}
		progress := &testdoubles.SpyProgressReporter{}
		command := commands.NewMigrateCommand(
			source, &testdoubles.SpyDestinationRepository{}, progress, "oauth2",
		)

		// when
		command.MigrateDeployKeys(context.Background(), []entities.Project{project}, buildOwner())

		// then
		assert.Equal(t, []int{1}, progress.Starts)
		assert.Equal(t, 1, progress.Increments)
		assert.Equal(t, 1, progress.Stops)
	})
}
