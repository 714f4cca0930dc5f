package main

func registerCommands(r *CommandRegistry, a *app) {
	r.Register(&Command{
		Name:        "login",
		Description: "Sign in and remember the session",
		Usage:       "etams login --username <name> [--password <password>]",
		Examples: []string{
			"etams login --username admin",
			"ETAMS_PASSWORD=secret etams login --username admin",
		},
		Run: a.loginCommand,
	})

	r.Register(&Command{
		Name:        "logout",
		Description: "Sign out and forget the session",
		Usage:       "etams logout",
		Run:         a.logoutCommand,
	})

	r.Register(&Command{
		Name:        "whoami",
		Description: "Show the signed-in employee",
		Usage:       "etams whoami",
		Run:         a.whoamiCommand,
	})

	r.Register(&Command{
		Name:        "dashboard",
		Description: "Show dashboard, task, or employee metrics",
		Usage:       "etams dashboard [--view dashboard|tasks|employees]",
		Examples: []string{
			"etams dashboard",
			"etams dashboard --view tasks",
		},
		Run: a.dashboardCommand,
	})

	r.Register(&Command{
		Name:        "employees",
		Description: "List, search, and manage employees",
		Usage:       "etams employees <list|show|create|update|delete|password> [arguments] [flags]",
		Examples: []string{
			"etams employees list --search smith",
			"etams employees create --first Ada --last Lovelace --email ada@example.com --username ada --role Engineer --password 'S3cure!pw'",
			"etams employees update 4 --role Lead",
			"etams employees password 4 --password 'N3w!secret'",
			"etams employees delete 4",
		},
		Run: a.employeesCommand,
	})

	r.Register(&Command{
		Name:        "tasks",
		Description: "List and manage tasks",
		Usage:       "etams tasks <list|show|create|update|delete> [arguments] [flags]",
		Examples: []string{
			"etams tasks list",
			"etams tasks list --employee 4",
			"etams tasks create --title 'Write report' --status PENDING --deadline 12/31/2030 --assignee 4",
			"etams tasks update 7 --status COMPLETED",
			"etams tasks delete 7",
		},
		Run: a.tasksCommand,
	})

	r.Register(&Command{
		Name:        "report",
		Description: "Show the overdue or activity report",
		Usage:       "etams report <overdue|activity> [--start MM/DD/YYYY] [--end MM/DD/YYYY]",
		Examples: []string{
			"etams report overdue",
			"etams report activity --start 01/01/2024 --end 01/31/2024",
		},
		Run: a.reportCommand,
	})

	r.Register(&Command{
		Name:        "generate",
		Description: "Draft tasks from free text (administrators only)",
		Usage:       "etams generate [--save] <text>",
		Examples: []string{
			"etams generate 'Prepare the Q3 report by 09/30 and book the offsite'",
			"etams generate --save 'Clean up the staging environment'",
		},
		Run: a.generateCommand,
	})

	r.Register(&Command{
		Name:        "version",
		Description: "Show version information",
		Usage:       "etams version",
		Run: func(args []string) error {
			a.printf("etams %s (commit %s, built %s)\n", r.version.Version, r.version.Commit, r.version.Date)
			return nil
		},
	})

	r.Register(&Command{
		Name:        "help",
		Description: "Show help information",
		Usage:       "etams help [command]",
		Run: func(args []string) error {
			r.PrintHelp(r.out)
			return nil
		},
	})
}
