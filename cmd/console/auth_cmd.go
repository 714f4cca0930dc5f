package main

import (
	"errors"
	"os"

	"github.com/yukikurage/etams/internal/session"
	"go.uber.org/zap"
)

func (a *app) loginCommand(args []string) error {
	fs := a.flagSet("login")
	username := fs.String("username", "", "Username (required)")
	password := fs.String("password", os.Getenv("ETAMS_PASSWORD"), "Password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		return errors.New("--username is required")
	}
	if *password == "" {
		value, err := a.prompt("Password")
		if err != nil {
			return err
		}
		*password = value
	}

	resp, err := a.client.Login(a.ctx, *username, *password)
	if err != nil {
		return err
	}
	if err := a.saveSession(); err != nil {
		return err
	}

	role := "employee"
	if resp.Admin {
		role = "administrator"
	}
	a.printf("Logged in as %s (%s)\n", resp.Username, role)
	return nil
}

func (a *app) logoutCommand(args []string) error {
	if a.client.Session().IsAuthenticated() {
		if err := a.client.Logout(a.ctx); err != nil {
			a.log.Debug("server logout failed", zap.Error(err))
		}
	}
	if err := session.Clear(a.cfg.SessionFile); err != nil {
		return err
	}
	a.printf("Logged out\n")
	return nil
}

func (a *app) whoamiCommand(args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	me, err := a.client.Me(a.ctx)
	if err != nil {
		return err
	}

	table := NewTableWriter("Field", "Value")
	table.AddRow("Name", me.FullName())
	table.AddRow("Username", me.Username)
	table.AddRow("Email", me.Email)
	table.AddRow("Role", me.Role)
	table.AddRow("Admin", yesNo(me.Admin))
	table.Print(a.out)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
