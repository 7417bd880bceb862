package gitcheck

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
)

// CloneURLVerifier confirms a clone URL answers an ls-remote before the
// destination is asked to pull from it. Repositories that fail the check
// are excluded from the migration fan-out.
type CloneURLVerifier struct {
	username string
	token    string
}

// NewCloneURLVerifier creates a verifier that authenticates with the
// given username/token pair; with an empty token the listing is
// anonymous.
func NewCloneURLVerifier(username, token string) *CloneURLVerifier {
	return &CloneURLVerifier{username: username, token: token}
}

// Verify lists the remote's references and reports any transport or
// authentication failure.
func (it *CloneURLVerifier) Verify(ctx context.Context, cloneURL string) error {
	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{cloneURL},
	})

	opts := &git.ListOptions{}
	if it.token != "" {
		opts.Auth = &githttp.BasicAuth{Username: it.username, Password: it.token}
	}

	if _, err := remote.ListContext(ctx, opts); err != nil {
		return fmt.Errorf("failed to reach %q: %w", cloneURL, err)
	}
	return nil
}
