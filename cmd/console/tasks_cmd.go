package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/yukikurage/etams/internal/dateformat"
	"github.com/yukikurage/etams/internal/dto"
	"github.com/yukikurage/etams/internal/models"
	"github.com/yukikurage/etams/internal/reports"
	"github.com/yukikurage/etams/internal/validation"
)

func (a *app) tasksCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("missing subcommand (list, show, create, update, delete)")
	}

	sub, subArgs := args[0], args[1:]
	switch sub {
	case "list":
		return a.tasksList(subArgs)
	case "show":
		return a.tasksShow(subArgs)
	case "create":
		return a.tasksCreate(subArgs)
	case "update":
		return a.tasksUpdate(subArgs)
	case "delete":
		return a.tasksDelete(subArgs)
	default:
		return fmt.Errorf("unknown subcommand: %s", sub)
	}
}

func (a *app) tasksList(args []string) error {
	fs := a.flagSet("tasks list")
	employeeID := fs.Uint64("employee", 0, "Only tasks assigned to this employee")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	var (
		tasks []dto.TaskDTO
		err   error
	)
	if *employeeID != 0 {
		tasks, err = a.client.ListTasksByEmployee(a.ctx, *employeeID)
	} else {
		tasks, err = a.client.ListTasks(a.ctx)
	}
	if err != nil {
		return err
	}

	a.printTasks(tasks, "No tasks found")
	return nil
}

func (a *app) printTasks(tasks []dto.TaskDTO, empty string) {
	if len(tasks) == 0 {
		a.printf("%s\n", empty)
		return
	}

	table := NewTableWriter("ID", "Title", "Status", "Deadline", "Assignee")
	for _, t := range tasks {
		assignee := t.AssigneeName()
		if assignee == "" {
			assignee = "-"
		}
		table.AddRow(idString(t.ID), t.Title, reports.StatusLabel(t.Status), dateformat.ToDisplay(t.Deadline), assignee)
	}
	table.Print(a.out)
}

func (a *app) tasksShow(args []string) error {
	id, _, err := splitID(args, "task")
	if err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	t, err := a.client.GetTask(a.ctx, id)
	if err != nil {
		return err
	}

	assignee := t.AssigneeName()
	if assignee == "" {
		assignee = "-"
	}
	table := NewTableWriter("Field", "Value")
	table.AddRow("ID", idString(t.ID))
	table.AddRow("Title", t.Title)
	table.AddRow("Description", t.Description)
	table.AddRow("Status", reports.StatusLabel(t.Status))
	table.AddRow("Deadline", dateformat.ToDisplay(t.Deadline))
	table.AddRow("Assignee", assignee)
	table.AddRow("Created", t.CreatedAt)
	table.AddRow("Updated", t.UpdatedAt)
	table.Print(a.out)
	return nil
}

// taskFlags binds the editable task fields to fs. Deadlines are entered as MM/DD/YYYY.
type taskFlags struct {
	title, description, status, deadline, assignee *string
}

func bindTaskFlags(fs *flag.FlagSet) taskFlags {
	return taskFlags{
		title:       fs.String("title", "", "Title"),
		description: fs.String("description", "", "Description"),
		status:      fs.String("status", "", "UNASSIGNED, PENDING, IN_PROGRESS or COMPLETED"),
		deadline:    fs.String("deadline", "", "Deadline (MM/DD/YYYY)"),
		assignee:    fs.String("assignee", "", "Assigned employee ID; empty or 0 for none"),
	}
}

// taskDraft is a task as edited in the console, with the deadline in display format.
type taskDraft struct {
	title, description string
	status             models.TaskStatus
	deadline           string
	assignee           any
}

func draftFromTask(t dto.TaskDTO) taskDraft {
	d := taskDraft{
		title:       t.Title,
		description: t.Description,
		status:      t.Status,
		deadline:    dateformat.ToDisplay(t.Deadline),
	}
	if id := t.AssigneeID(); id != nil {
		d.assignee = *id
	}
	return d
}

// apply copies the flags that were set onto d and reports whether the deadline changed.
func (f taskFlags) apply(fs *flag.FlagSet, d *taskDraft) (deadlineSet bool) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "title":
			d.title = *f.title
		case "description":
			d.description = *f.description
		case "status":
			d.status = models.TaskStatus(*f.status)
		case "deadline":
			d.deadline = *f.deadline
			deadlineSet = true
		case "assignee":
			d.assignee = *f.assignee
		}
	})
	return deadlineSet
}

func (d taskDraft) validate(now time.Time, pastDeadlineAllowed bool) validation.Errors {
	return validation.ValidateTaskForm(validation.TaskForm{
		Title:               d.title,
		Description:         d.description,
		Status:              d.status,
		Deadline:            d.deadline,
		AssignedEmployeeID:  d.assignee,
		PastDeadlineAllowed: pastDeadlineAllowed,
	}, now)
}

func (d taskDraft) toDTO() dto.TaskDTO {
	return dto.TaskDTO{
		Title:              d.title,
		Description:        d.description,
		Status:             d.status,
		Deadline:           dateformat.ToStorage(d.deadline),
		AssignedEmployeeID: validation.NormalizeAssignee(d.assignee),
	}
}

func (a *app) tasksCreate(args []string) error {
	fs := a.flagSet("tasks create")
	flags := bindTaskFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	draft := taskDraft{status: models.TaskStatusUnassigned}
	flags.apply(fs, &draft)
	if errs := draft.validate(a.now(), false); !errs.Valid() {
		return errs
	}

	created, err := a.client.CreateTask(a.ctx, draft.toDTO())
	if err != nil {
		return err
	}
	a.printf("Created task %s (%s)\n", idString(created.ID), created.Title)
	return nil
}

func (a *app) tasksUpdate(args []string) error {
	id, rest, err := splitID(args, "task")
	if err != nil {
		return err
	}
	fs := a.flagSet("tasks update")
	flags := bindTaskFlags(fs)
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	current, err := a.client.GetTask(a.ctx, id)
	if err != nil {
		return err
	}
	draft := draftFromTask(*current)
	deadlineSet := flags.apply(fs, &draft)

	// A stored deadline that has since passed may be kept as is.
	if errs := draft.validate(a.now(), !deadlineSet); !errs.Valid() {
		return errs
	}

	updated, err := a.client.UpdateTask(a.ctx, id, draft.toDTO())
	if err != nil {
		return err
	}
	a.printf("Updated task %s (%s)\n", idString(updated.ID), updated.Title)
	return nil
}

func (a *app) tasksDelete(args []string) error {
	id, _, err := splitID(args, "task")
	if err != nil {
		return err
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}

	if err := a.client.DeleteTask(a.ctx, id); err != nil {
		return err
	}
	a.printf("Deleted task %d\n", id)
	return nil
}
