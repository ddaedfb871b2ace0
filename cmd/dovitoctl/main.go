// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command dovitoctl is an admin CLI for a Dovito EDU server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const usage = `dovitoctl - Dovito EDU admin CLI

Usage: dovitoctl [-server URL] <command> [arguments]

Commands:
  login <email>                 Sign in (password read from DOVITO_PASSWORD or stdin)
  logout                        End the saved session
  me                            Show the signed-in user
  tools list [-category -search]
  prompts list [-category -featured]
  prompts import <file.yaml>    Create prompts from a YAML list
  workshops list
  sessions list <workshop-id>
  upload <file.html>            Upload a workshop deck
  schema <resource>             Show an admin form schema

Environment Variables:
  DOVITO_URL                    Server URL (default: http://localhost:5000)
  DOVITO_PASSWORD               Password for login
  DOVITO_REDIS_URL              Share the response cache through Redis
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("dovitoctl", flag.ContinueOnError)
	serverURL := fs.String("server", envOr("DOVITO_URL", "http://localhost:5000"), "Server URL")
	sessionFile := fs.String("session-file", defaultSessionFile(), "Where the session cookie is kept")
	redisURL := fs.String("redis", os.Getenv("DOVITO_REDIS_URL"), "Redis URL for the response cache (optional)")
	fs.Usage = func() { _, _ = fmt.Fprint(fs.Output(), usage) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	app, err := newApp(ctx, *serverURL, *sessionFile, *redisURL, stdin, stdout)
	if err != nil {
		return err
	}
	defer app.close()

	return app.dispatch(ctx, fs.Args())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
