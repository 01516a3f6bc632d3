// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package repository

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/utils/v4"

	"github.com/homelab/homelab/osenv"
)

// TokenStore persists the GitHub token.
type TokenStore interface {
	// Token returns the stored token, or a NotFound error.
	Token() (string, error)

	// SetToken replaces the stored token.
	SetToken(token string) error
}

// NewFileTokenStore returns a TokenStore over path; empty selects the
// default location. The HOMELAB_GITHUB_TOKEN environment variable
// overrides whatever is stored.
func NewFileTokenStore(path string) TokenStore {
	if path == "" {
		path = filepath.Join(osenv.DataHome(), "github-token")
	}
	return &fileTokenStore{path: path}
}

type fileTokenStore struct {
	path string
}

// Token implements TokenStore.
func (s *fileTokenStore) Token() (string, error) {
	if token := os.Getenv(osenv.HomelabGitHubTokenEnvKey); token != "" {
		return token, nil
	}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", errors.NotFoundf("github token")
	} else if err != nil {
		return "", errors.Trace(err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetToken implements TokenStore.
func (s *fileTokenStore) SetToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(utils.AtomicWriteFile(s.path, []byte(token+"\n"), 0600))
}
