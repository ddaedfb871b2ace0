// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/dovito/dovito-edu/internal/cache"
	"github.com/dovito/dovito-edu/internal/client"
	"github.com/dovito/dovito-edu/internal/schema"
)

type app struct {
	client      *client.Client
	jar         http.CookieJar
	baseURL     *url.URL
	sessionFile string
	stdin       io.Reader
	out         io.Writer
}

func newApp(ctx context.Context, serverURL, sessionFile, redisURL string, stdin io.Reader, out io.Writer) (*app, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parsing server URL: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	a := &app{jar: jar, baseURL: u, sessionFile: sessionFile, stdin: stdin, out: out}
	if err := a.loadSession(); err != nil {
		return nil, err
	}

	// With Redis, catalog lookups are shared across invocations.
	responses, err := cache.New(ctx, cache.Config{
		RedisURL:   redisURL,
		Prefix:     "dovitoctl:",
		DefaultTTL: client.DefaultCacheTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	a.client, err = client.New(serverURL,
		client.WithHTTPClient(&http.Client{Jar: jar, Timeout: time.Minute}),
		client.WithCache(responses),
	)
	if err != nil {
		_ = responses.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) close() {
	_ = a.client.Close()
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		return a.logout(ctx)
	case "me":
		return a.me(ctx)
	case "tools":
		return a.sub(ctx, "tools", rest, map[string]func(context.Context, []string) error{
			"list": a.listTools,
		})
	case "prompts":
		return a.sub(ctx, "prompts", rest, map[string]func(context.Context, []string) error{
			"list":   a.listPrompts,
			"import": a.importPrompts,
		})
	case "workshops":
		return a.sub(ctx, "workshops", rest, map[string]func(context.Context, []string) error{
			"list": a.listWorkshops,
		})
	case "sessions":
		return a.sub(ctx, "sessions", rest, map[string]func(context.Context, []string) error{
			"list": a.listSessions,
		})
	case "upload":
		return a.upload(ctx, rest)
	case "schema":
		return a.schema(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) sub(ctx context.Context, name string, args []string, cmds map[string]func(context.Context, []string) error) error {
	if len(args) == 0 {
		return fmt.Errorf("%s: missing subcommand", name)
	}
	fn, ok := cmds[args[0]]
	if !ok {
		return fmt.Errorf("%s: unknown subcommand %q", name, args[0])
	}
	return fn(ctx, args[1:])
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: login <email>")
	}
	password := os.Getenv("DOVITO_PASSWORD")
	if password == "" {
		line, err := bufio.NewReader(a.stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	user, err := a.client.Login(ctx, args[0], password)
	if err != nil {
		return err
	}
	if err := a.saveSession(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "Signed in as %s\n", user.Email)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	if err := os.Remove(a.sessionFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	_, _ = fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *app) me(ctx context.Context) error {
	me, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	name := ""
	if me.Name != nil {
		name = *me.Name
	}
	_, _ = fmt.Fprintf(a.out, "%s\t%s\t%s\tadmin=%t\n", me.ID, me.Email, name, me.IsAdmin)
	return nil
}

func (a *app) listTools(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tools list", flag.ContinueOnError)
	category := fs.String("category", "", "Only this category")
	search := fs.String("search", "", "Case-insensitive text search")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tools, err := a.client.ListAITools(ctx, client.CatalogFilter{Category: *category, Search: *search})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICING")
	for _, t := range tools {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Category, t.Pricing)
	}
	return tw.Flush()
}

func (a *app) listPrompts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("prompts list", flag.ContinueOnError)
	category := fs.String("category", "", "Only this category")
	featured := fs.String("featured", "", "true or false")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := client.CatalogFilter{Category: *category}
	if *featured != "" {
		b, err := strconv.ParseBool(*featured)
		if err != nil {
			return fmt.Errorf("invalid -featured %q", *featured)
		}
		filter.Featured = &b
	}

	prompts, err := a.client.ListPrompts(ctx, filter)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tFEATURED")
	for _, p := range prompts {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", p.ID, p.Title, p.Category, p.Featured == 1)
	}
	return tw.Flush()
}

// promptFile is one entry of a prompts import file.
type promptFile struct {
	Title     string   `yaml:"title"`
	Content   string   `yaml:"content"`
	Category  string   `yaml:"category"`
	Tags      []string `yaml:"tags"`
	Featured  bool     `yaml:"featured"`
	SortOrder int64    `yaml:"sortOrder"`
}

func readPromptFile(path string) ([]schema.PromptInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []promptFile
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	inputs := make([]schema.PromptInput, 0, len(entries))
	for _, e := range entries {
		in := schema.PromptInput{
			Title:     e.Title,
			Content:   e.Content,
			Category:  e.Category,
			Tags:      e.Tags,
			SortOrder: e.SortOrder,
		}
		if e.Featured {
			in.Featured = 1
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func (a *app) importPrompts(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: prompts import <file.yaml>")
	}
	inputs, err := readPromptFile(args[0])
	if err != nil {
		return err
	}

	var failed int
	for i, in := range inputs {
		p, err := a.client.CreatePrompt(ctx, in)
		if err != nil {
			failed++
			_, _ = fmt.Fprintf(a.out, "#%d %q: %v\n", i+1, in.Title, err)
			continue
		}
		_, _ = fmt.Fprintf(a.out, "created %s %q\n", p.ID, p.Title)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d prompts failed", failed, len(inputs))
	}
	return nil
}

func (a *app) listWorkshops(ctx context.Context, _ []string) error {
	workshops, err := a.client.ListWorkshops(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tSESSIONS")
	for _, w := range workshops {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\n", w.ID, w.Title, w.SessionCount)
	}
	return tw.Flush()
}

func (a *app) listSessions(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: sessions list <workshop-id>")
	}
	sessions, err := a.client.ListWorkshopSessions(ctx, args[0])
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tCONTENT")
	for _, s := range sessions {
		content := ""
		if s.HTMLContentURL != nil {
			content = *s.HTMLContentURL
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Title, content)
	}
	return tw.Flush()
}

func (a *app) upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: upload <file.html>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	stored, err := a.client.UploadHTML(ctx, filepath.Base(args[0]), f)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(a.out, "%s (%d bytes)\n", stored.Path, stored.Size)
	return nil
}

func (a *app) schema(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: schema <%s>", strings.Join(schema.Resources(), "|"))
	}
	fields, err := a.client.Schema(ctx, args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(fields)
}

// savedCookie is the on-disk form of a session cookie.
type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".dovitoctl-session"
	}
	return filepath.Join(dir, "dovitoctl", "session.json")
}

func (a *app) loadSession() error {
	data, err := os.ReadFile(a.sessionFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading session: %w", err)
	}

	var saved []savedCookie
	if err := json.Unmarshal(data, &saved); err != nil {
		// stale format; sign in again
		return nil
	}
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, c := range saved {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	a.jar.SetCookies(a.baseURL, cookies)
	return nil
}

func (a *app) saveSession() error {
	var saved []savedCookie
	for _, c := range a.jar.Cookies(a.baseURL) {
		saved = append(saved, savedCookie{Name: c.Name, Value: c.Value})
	}
	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(a.sessionFile), 0o700); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return os.WriteFile(a.sessionFile, data, 0o600)
}
