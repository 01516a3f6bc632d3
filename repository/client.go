// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package repository is a small GitHub REST client covering what the
// console needs: token validation, repository listing and branch
// listing for wiring website deployments to a source repository.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"gopkg.in/httprequest.v1"
)

var logger = loggo.GetLogger("homelab.repository")

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// reposPerPage is the page size used when listing; GitHub's maximum.
const reposPerPage = 100

// maxPages bounds repository listing for accounts with very large
// numbers of repositories.
const maxPages = 10

// Transport defines a type for making the actual request.
type Transport interface {
	Do(*http.Request) (*http.Response, error)
}

// Config holds the client configuration.
type Config struct {
	// BaseURL may point at a GitHub Enterprise instance; empty
	// selects the public API.
	BaseURL string

	// Token is the personal access token sent with every request.
	Token string

	// Transport is the underlying HTTP transport; nil selects a
	// default with a sane timeout.
	Transport Transport
}

// Client talks to the GitHub REST API.
type Client struct {
	client httprequest.Client
}

// NewClient returns a client for the given configuration.
func NewClient(config Config) *Client {
	base := config.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	transport := config.Transport
	if transport == nil {
		transport = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		client: httprequest.Client{
			BaseURL: base,
			Doer: &authTransport{
				token:     config.Token,
				transport: transport,
			},
			UnmarshalError: unmarshalError,
		},
	}
}

// authTransport decorates every request with the token and the API
// version headers.
type authTransport struct {
	token     string
	transport Transport
}

// Do implements httprequest.Doer.
func (t *authTransport) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	logger.Tracef("%s %s", req.Method, req.URL)
	return t.transport.Do(req)
}

// githubError is the error body GitHub returns.
type githubError struct {
	Message string `json:"message"`
}

// unmarshalError maps GitHub's error responses onto the errors
// taxonomy so callers can switch on IsUnauthorized/IsNotFound.
func unmarshalError(resp *http.Response) error {
	var ghErr githubError
	if body, err := io.ReadAll(resp.Body); err == nil {
		_ = json.Unmarshal(body, &ghErr)
	}
	msg := ghErr.Message
	if msg == "" {
		msg = resp.Status
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return errors.Unauthorizedf("github: %s", msg)
	case http.StatusForbidden:
		// Rate limiting arrives as 403 with a telltale header.
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return errors.QuotaLimitExceededf("github rate limit: %s", msg)
		}
		return errors.Forbiddenf("github: %s", msg)
	case http.StatusNotFound:
		return errors.NotFoundf("github: %s", msg)
	}
	return errors.Errorf("github: %s (%s)", msg, resp.Status)
}

// User is the authenticated GitHub user.
type User struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

// Repository is one GitHub repository.
type Repository struct {
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Description   string    `json:"description"`
	Private       bool      `json:"private"`
	DefaultBranch string    `json:"default_branch"`
	CloneURL      string    `json:"clone_url"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Branch is one branch of a repository.
type Branch struct {
	Name      string `json:"name"`
	Protected bool   `json:"protected"`
}

// ValidateToken checks the configured token and returns the user it
// authenticates.
func (c *Client) ValidateToken(ctx context.Context) (User, error) {
	var user User
	if err := c.client.Get(ctx, "/user", &user); err != nil {
		return User{}, errors.Trace(err)
	}
	logger.Debugf("token valid for %q", user.Login)
	return user, nil
}

// Repositories lists the repositories the token can reach, most
// recently updated first.
func (c *Client) Repositories(ctx context.Context) ([]Repository, error) {
	var all []Repository
	for page := 1; page <= maxPages; page++ {
		url := fmt.Sprintf("/user/repos?sort=updated&per_page=%d&page=%d", reposPerPage, page)
		var repos []Repository
		if err := c.client.Get(ctx, url, &repos); err != nil {
			return nil, errors.Trace(err)
		}
		all = append(all, repos...)
		if len(repos) < reposPerPage {
			break
		}
	}
	return all, nil
}

// Branches lists the branches of a repository given as "owner/name".
func (c *Client) Branches(ctx context.Context, fullName string) ([]Branch, error) {
	var branches []Branch
	url := fmt.Sprintf("/repos/%s/branches?per_page=%d", fullName, reposPerPage)
	if err := c.client.Get(ctx, url, &branches); err != nil {
		return nil, errors.Trace(err)
	}
	return branches, nil
}
