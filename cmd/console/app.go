package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yukikurage/etams/internal/client"
	"github.com/yukikurage/etams/internal/config"
	"github.com/yukikurage/etams/internal/session"
	"github.com/yukikurage/etams/internal/validation"
	"go.uber.org/zap"
)

var errNotLoggedIn = errors.New("not logged in; run 'etams login' first")

// app is the state shared by every command of one console invocation.
type app struct {
	ctx    context.Context
	cfg    config.ConsoleConfig
	client *client.Client
	log    *zap.Logger
	in     *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

func newApp(ctx context.Context, cfg config.ConsoleConfig, log *zap.Logger, in io.Reader, out io.Writer) (*app, error) {
	sess, err := session.Load(cfg.SessionFile)
	if err != nil {
		return nil, err
	}

	return &app{
		ctx:    ctx,
		cfg:    cfg,
		client: client.New(cfg, sess, log),
		log:    log,
		in:     bufio.NewReader(in),
		out:    out,
		now:    time.Now,
	}, nil
}

// flagSet returns a flag set that reports parse errors instead of exiting.
func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) requireLogin() error {
	if !a.client.Session().IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}

func (a *app) requireAdmin() error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if !a.client.Session().Admin {
		return errors.New("this command requires an administrator")
	}
	return nil
}

func (a *app) saveSession() error {
	return session.Save(a.cfg.SessionFile, a.client.Session())
}

// prompt reads one line from the console input.
func (a *app) prompt(label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// describeError renders err for the terminal. Field failures are listed one per line.
func describeError(err error) string {
	if fields, ok := client.ValidationErrors(err); ok {
		return "validation failed\n" + formatFieldErrors(fields)
	}

	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		msg := client.UserMessage(err)
		if msg == client.MessageUnexpected && httpErr.Message != "" {
			return msg + " (" + httpErr.Message + ")"
		}
		return msg
	}

	return err.Error()
}

func formatFieldErrors(errs validation.Errors) string {
	var b strings.Builder
	for _, field := range errs.Fields() {
		for _, line := range strings.Split(validation.Errors{field: errs[field]}.Error(), "; ") {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
