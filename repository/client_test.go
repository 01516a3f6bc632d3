// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package repository_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/homelab/homelab/repository"
)

type clientSuite struct {
	testing.IsolationSuite

	mux    *http.ServeMux
	server *httptest.Server
}

var _ = gc.Suite(&clientSuite{})

func (s *clientSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)
	s.AddCleanup(func(*gc.C) { s.server.Close() })
}

func (s *clientSuite) client(token string) *repository.Client {
	return repository.NewClient(repository.Config{
		BaseURL: s.server.URL,
		Token:   token,
	})
}

func (s *clientSuite) TestValidateToken(c *gc.C) {
	s.mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		c.Check(r.Header.Get("Authorization"), gc.Equals, "Bearer sekrit")
		c.Check(r.Header.Get("Accept"), gc.Equals, "application/vnd.github+json")
		json.NewEncoder(w).Encode(map[string]string{"login": "hacker", "name": "A Hacker"})
	})
	user, err := s.client("sekrit").ValidateToken(context.Background())
	c.Assert(err, jc.ErrorIsNil)
	c.Check(user.Login, gc.Equals, "hacker")
}

func (s *clientSuite) TestValidateTokenUnauthorized(c *gc.C) {
	s.mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	})
	_, err := s.client("bad").ValidateToken(context.Background())
	c.Assert(err, jc.Satisfies, errors.IsUnauthorized)
	c.Assert(err, gc.ErrorMatches, ".*Bad credentials.*")
}

func (s *clientSuite) TestRateLimited(c *gc.C) {
	s.mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "API rate limit exceeded"})
	})
	_, err := s.client("t").ValidateToken(context.Background())
	c.Assert(err, jc.Satisfies, errors.IsQuotaLimitExceeded)
}

func (s *clientSuite) TestRepositoriesPaginates(c *gc.C) {
	s.mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		page := r.URL.Query().Get("page")
		c.Check(r.URL.Query().Get("per_page"), gc.Equals, "100")
		var repos []map[string]interface{}
		switch page {
		case "1":
			for i := 0; i < 100; i++ {
				repos = append(repos, map[string]interface{}{
					"name":      fmt.Sprintf("repo%03d", i),
					"full_name": fmt.Sprintf("hacker/repo%03d", i),
				})
			}
		case "2":
			repos = append(repos, map[string]interface{}{
				"name":      "last",
				"full_name": "hacker/last",
			})
		default:
			c.Errorf("unexpected page %q", page)
		}
		json.NewEncoder(w).Encode(repos)
	})
	repos, err := s.client("t").Repositories(context.Background())
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(repos, gc.HasLen, 101)
	c.Check(repos[100].FullName, gc.Equals, "hacker/last")
}

func (s *clientSuite) TestBranches(c *gc.C) {
	s.mux.HandleFunc("/repos/hacker/blog/branches", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"name": "main", "protected": true},
			{"name": "dev", "protected": false},
		})
	})
	branches, err := s.client("t").Branches(context.Background(), "hacker/blog")
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(branches, gc.HasLen, 2)
	c.Check(branches[0].Name, gc.Equals, "main")
	c.Check(branches[0].Protected, jc.IsTrue)
}

func (s *clientSuite) TestBranchesNotFound(c *gc.C) {
	s.mux.HandleFunc("/repos/hacker/gone/branches", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
	})
	_, err := s.client("t").Branches(context.Background(), "hacker/gone")
	c.Assert(err, jc.Satisfies, errors.IsNotFound)
}
