// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dovito/dovito-edu/internal/config"
	"github.com/dovito/dovito-edu/internal/server"
	"github.com/dovito/dovito-edu/internal/session"
	"github.com/dovito/dovito-edu/internal/testutil"
)

const promptsYAML = `
- title: Blog outline
  content: Outline a blog post about {topic}
  category: Writing
  tags: [blog, " outline ", ""]
  featured: true
  sortOrder: 2
- title: Tweet
  content: Write a tweet
  category: Social
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadPromptFile(t *testing.T) {
	inputs, err := readPromptFile(writeFile(t, "prompts.yaml", promptsYAML))
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	assert.Equal(t, "Blog outline", inputs[0].Title)
	assert.Equal(t, int64(1), inputs[0].Featured)
	assert.Equal(t, int64(2), inputs[0].SortOrder)
	assert.Equal(t, []string{"blog", " outline ", ""}, inputs[0].Tags)
	assert.Equal(t, int64(0), inputs[1].Featured)

	_, err = readPromptFile(writeFile(t, "bad.yaml", "title: [unterminated"))
	assert.Error(t, err)

	_, err = readPromptFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

type cli struct {
	t           *testing.T
	url         string
	sessionFile string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("DOVITO_REDIS_URL", "")

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	testutil.CreateUser(t, db, "admin@example.com", "admin-password", true)

	sm, err := session.New(session.Options{IsDev: true})
	require.NoError(t, err)

	srv := httptest.NewServer(server.New(server.Deps{
		Config: &config.Config{
			Env:           "development",
			SessionSecret: config.DevSessionSecret,
			UploadsDir:    t.TempDir(),
		},
		DB:       db,
		Sessions: sm,
		Logger:   testutil.TestLoggerSilent(),
	}))
	t.Cleanup(srv.Close)

	return &cli{t: t, url: srv.URL, sessionFile: filepath.Join(t.TempDir(), "session.json")}
}

// run executes one CLI invocation, as a fresh process would.
func (c *cli) run(stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	full := append([]string{"-server", c.url, "-session-file", c.sessionFile, "-redis", ""}, args...)
	err := run(context.Background(), full, strings.NewReader(stdin), &out)
	return out.String(), err
}

func TestCommands(t *testing.T) {
	t.Setenv("DOVITO_PASSWORD", "")
	c := newCLI(t)

	_, err := c.run("", "me")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	_, err = c.run("wrong\n", "login", "admin@example.com")
	require.Error(t, err)
	assert.NoFileExists(t, c.sessionFile)

	out, err := c.run("admin-password\n", "login", "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Signed in as admin@example.com\n", out)
	assert.FileExists(t, c.sessionFile)

	// later invocations reuse the saved session
	out, err = c.run("", "me")
	require.NoError(t, err)
	assert.Contains(t, out, "admin=true")

	out, err = c.run("", "prompts", "import", writeFile(t, "prompts.yaml", promptsYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "created "))

	out, err = c.run("", "prompts", "list", "-featured", "true")
	require.NoError(t, err)
	assert.Contains(t, out, "Blog outline")
	assert.NotContains(t, out, "Tweet")

	_, err = c.run("", "prompts", "list", "-featured", "maybe")
	assert.Error(t, err)

	out, err = c.run("", "prompts", "import", writeFile(t, "bad.yaml", "- title: Only a title\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 prompts failed")
	assert.Contains(t, out, "Only a title")

	out, err = c.run("", "tools", "list", "-search", "nothing")
	require.NoError(t, err)
	assert.Equal(t, "ID  NAME  CATEGORY  PRICING\n", out)

	out, err = c.run("", "upload", writeFile(t, "intro.html", "<h1>Intro</h1>"))
	require.NoError(t, err)
	assert.Contains(t, out, "/uploads/workshops/")

	_, err = c.run("", "upload", writeFile(t, "notes.txt", "plain"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Only HTML files are allowed")

	out, err = c.run("", "workshops", "list")
	require.NoError(t, err)
	assert.Equal(t, "ID  TITLE  SESSIONS\n", out)

	out, err = c.run("", "sessions", "list", "no-such-workshop")
	require.NoError(t, err)
	assert.Equal(t, "ID  TITLE  CONTENT\n", out)

	out, err = c.run("", "schema", "prompts")
	require.NoError(t, err)
	assert.Contains(t, out, `"title"`)

	out, err = c.run("", "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out\n", out)
	assert.NoFileExists(t, c.sessionFile)
}

func TestDispatchErrors(t *testing.T) {
	c := newCLI(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", nil, "missing command"},
		{"unknown command", []string{"deploy"}, `unknown command "deploy"`},
		{"missing subcommand", []string{"tools"}, "tools: missing subcommand"},
		{"unknown subcommand", []string{"workshops", "rm"}, `workshops: unknown subcommand "rm"`},
		{"login usage", []string{"login"}, "usage: login <email>"},
		{"upload usage", []string{"upload"}, "usage: upload <file.html>"},
		{"sessions usage", []string{"sessions", "list"}, "usage: sessions list <workshop-id>"},
		{"schema usage", []string{"schema"}, "usage: schema <"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.run("", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("DOVITO_TEST_URL", "")
	assert.Equal(t, "fallback", envOr("DOVITO_TEST_URL", "fallback"))
	t.Setenv("DOVITO_TEST_URL", "http://edu.example.com")
	assert.Equal(t, "http://edu.example.com", envOr("DOVITO_TEST_URL", "fallback"))
}
