package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/yukikurage/etams/internal/dto"
	"github.com/yukikurage/etams/internal/reports"
	"github.com/yukikurage/etams/internal/validation"
)

func (a *app) employeesCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("missing subcommand (list, show, create, update, delete, password)")
	}

	sub, subArgs := args[0], args[1:]
	switch sub {
	case "list", "search":
		return a.employeesList(subArgs)
	case "show":
		return a.employeesShow(subArgs)
	case "create":
		return a.employeesCreate(subArgs)
	case "update":
		return a.employeesUpdate(subArgs)
	case "delete":
		return a.employeesDelete(subArgs)
	case "password":
		return a.employeesPassword(subArgs)
	default:
		return fmt.Errorf("unknown subcommand: %s", sub)
	}
}

func (a *app) employeesList(args []string) error {
	fs := a.flagSet("employees list")
	search := fs.String("search", "", "Only employees whose name contains this text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	employees, err := a.client.ListEmployees(a.ctx)
	if err != nil {
		return err
	}
	if *search != "" {
		employees = reports.FilterByName(employees, *search)
	}
	reports.SortByLastName(employees)

	if len(employees) == 0 {
		a.printf("No employees found\n")
		return nil
	}

	table := NewTableWriter("ID", "Name", "Username", "Email", "Role", "Admin", "Tasks")
	for _, e := range employees {
		table.AddRow(idString(e.ID), e.FullName(), e.Username, e.Email, e.Role, yesNo(e.Admin), countString(e.TaskCount))
	}
	table.Print(a.out)
	return nil
}

func (a *app) employeesShow(args []string) error {
	id, _, err := splitID(args, "employee")
	if err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	e, err := a.client.GetEmployee(a.ctx, id)
	if err != nil {
		return err
	}

	table := NewTableWriter("Field", "Value")
	table.AddRow("ID", idString(e.ID))
	table.AddRow("Name", e.FullName())
	table.AddRow("Username", e.Username)
	table.AddRow("Email", e.Email)
	table.AddRow("Role", e.Role)
	table.AddRow("Admin", yesNo(e.Admin))
	table.AddRow("Created", e.CreatedAt)
	table.AddRow("Updated", e.UpdatedAt)
	table.Print(a.out)
	return nil
}

// employeeFlags binds the editable employee fields to fs.
type employeeFlags struct {
	firstName, lastName, email, username, role, password *string
	admin                                                *bool
}

func bindEmployeeFlags(fs *flag.FlagSet) employeeFlags {
	return employeeFlags{
		firstName: fs.String("first", "", "First name"),
		lastName:  fs.String("last", "", "Last name"),
		email:     fs.String("email", "", "Email address"),
		username:  fs.String("username", "", "Username"),
		role:      fs.String("role", "", "Role"),
		password:  fs.String("password", "", "Password"),
		admin:     fs.Bool("admin", false, "Grant administrator rights"),
	}
}

// apply copies the flags that were set onto employee.
func (f employeeFlags) apply(fs *flag.FlagSet, employee *dto.EmployeeDTO) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "first":
			employee.FirstName = *f.firstName
		case "last":
			employee.LastName = *f.lastName
		case "email":
			employee.Email = *f.email
		case "username":
			employee.Username = *f.username
		case "role":
			employee.Role = *f.role
		case "admin":
			employee.Admin = *f.admin
		case "password":
			password := *f.password
			employee.Password = &password
		}
	})
}

func employeeForm(employee dto.EmployeeDTO) validation.EmployeeForm {
	form := validation.EmployeeForm{
		FirstName: employee.FirstName,
		LastName:  employee.LastName,
		Email:     employee.Email,
		Username:  employee.Username,
		Role:      employee.Role,
	}
	if employee.Password != nil {
		form.Password = *employee.Password
	}
	return form
}

func (a *app) employeesCreate(args []string) error {
	fs := a.flagSet("employees create")
	flags := bindEmployeeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}

	var employee dto.EmployeeDTO
	flags.apply(fs, &employee)
	if errs := validation.ValidateEmployeeForm(employeeForm(employee), true); !errs.Valid() {
		return errs
	}

	created, err := a.client.CreateEmployee(a.ctx, employee)
	if err != nil {
		return err
	}
	a.printf("Created employee %s (%s)\n", idString(created.ID), created.FullName())
	return nil
}

func (a *app) employeesUpdate(args []string) error {
	id, rest, err := splitID(args, "employee")
	if err != nil {
		return err
	}
	fs := a.flagSet("employees update")
	flags := bindEmployeeFlags(fs)
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}

	current, err := a.client.GetEmployee(a.ctx, id)
	if err != nil {
		return err
	}
	employee := *current
	employee.Password = nil
	flags.apply(fs, &employee)
	if employee.Password != nil && *employee.Password == "" {
		employee.Password = nil
	}

	if errs := validation.ValidateEmployeeForm(employeeForm(employee), false); !errs.Valid() {
		return errs
	}

	updated, err := a.client.UpdateEmployee(a.ctx, id, employee)
	if err != nil {
		return err
	}
	a.printf("Updated employee %s (%s)\n", idString(updated.ID), updated.FullName())
	return nil
}

func (a *app) employeesDelete(args []string) error {
	id, _, err := splitID(args, "employee")
	if err != nil {
		return err
	}
	if err := a.requireAdmin(); err != nil {
		return err
	}

	if err := a.client.DeleteEmployee(a.ctx, id); err != nil {
		return err
	}
	a.printf("Deleted employee %d; their tasks are now unassigned\n", id)
	return nil
}

func (a *app) employeesPassword(args []string) error {
	id, rest, err := splitID(args, "employee")
	if err != nil {
		return err
	}
	fs := a.flagSet("employees password")
	password := fs.String("password", "", "New password (prompted when omitted)")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	if *password == "" {
		value, err := a.prompt("New password")
		if err != nil {
			return err
		}
		*password = value
	}
	if errs := validation.ValidatePassword(*password); !errs.Valid() {
		return errs
	}

	if err := a.client.UpdatePassword(a.ctx, id, *password); err != nil {
		return err
	}
	a.printf("Password updated\n")
	return nil
}

func idString(id *uint64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatUint(*id, 10)
}

func countString(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
