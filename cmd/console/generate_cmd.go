package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/yukikurage/etams/internal/dateformat"
	"github.com/yukikurage/etams/internal/dto"
	"github.com/yukikurage/etams/internal/models"
)

func (a *app) generateCommand(args []string) error {
	fs := a.flagSet("generate")
	save := fs.Bool("save", false, "Create the drafted tasks as unassigned tasks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}

	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		return errors.New("text is required")
	}

	drafts, err := a.client.GenerateTasks(a.ctx, text)
	if err != nil {
		return err
	}

	table := NewTableWriter("#", "Title", "Deadline", "Description")
	for i, d := range drafts {
		table.AddRow(strconv.Itoa(i+1), d.Title, dateformat.ToDisplay(d.Deadline), d.Description)
	}
	table.Print(a.out)

	if !*save {
		return nil
	}

	created := 0
	for _, d := range drafts {
		_, err := a.client.CreateTask(a.ctx, dto.TaskDTO{
			Title:       d.Title,
			Description: d.Description,
			Status:      models.TaskStatusUnassigned,
			Deadline:    d.Deadline,
		})
		if err != nil {
			a.printf("Skipped %q: %s\n", d.Title, describeError(err))
			continue
		}
		created++
	}
	a.printf("Created %d of %d drafted tasks\n", created, len(drafts))
	return nil
}
