package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/etams/internal/database"
	"github.com/yukikurage/etams/internal/metrics"
	"github.com/yukikurage/etams/internal/models"
	"github.com/yukikurage/etams/internal/reports"
	"github.com/yukikurage/etams/internal/repository"
	"github.com/yukikurage/etams/internal/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const strongPassword = "Str0ng!pass"

var fixedNow = time.Date(2025, time.March, 7, 10, 0, 0, 0, time.Local)

type fakeGenerator struct {
	tasks []GeneratedTask
	err   error
}

func (f *fakeGenerator) GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error) {
	return f.tasks, f.err
}

type ServiceTestSuite struct {
	suite.Suite
	db           *gorm.DB
	employeeRepo repository.EmployeeRepository
	taskRepo     repository.TaskRepository
	tokens       *TokenService
	auth         *AuthService
	employees    *EmployeeService
	tasks        *TaskService
	metrics      *MetricsService
	generator    *fakeGenerator
}

func (suite *ServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	suite.Require().NoError(database.AutoMigrate(db))

	suite.db = db
	suite.employeeRepo = repository.NewEmployeeRepository(db)
	suite.taskRepo = repository.NewTaskRepository(db)
	suite.tokens = NewTokenService("test-secret", "etams-test", time.Hour)
	suite.auth = NewAuthService(suite.employeeRepo, suite.tokens)
	suite.employees = NewEmployeeService(suite.employeeRepo)
	suite.generator = &fakeGenerator{}
	suite.tasks = NewTaskService(suite.taskRepo, suite.employeeRepo, suite.generator)
	suite.tasks.now = func() time.Time { return fixedNow }
	suite.metrics = NewMetricsService(suite.employeeRepo, suite.taskRepo)
	suite.metrics.now = func() time.Time { return fixedNow }
}

func (suite *ServiceTestSuite) TearDownTest() {
	sqlDB, _ := suite.db.DB()
	sqlDB.Close()
}

func (suite *ServiceTestSuite) createEmployee(username string, admin bool) *models.Employee {
	employee, err := suite.employees.CreateEmployee(EmployeeInput{
		FirstName: strings.ToUpper(username[:1]) + username[1:],
		LastName:  "Tester",
		Email:     username + "@example.com",
		Username:  username,
		Role:      "Engineer",
		Admin:     admin,
		Password:  strongPassword,
	})
	suite.Require().NoError(err)
	return employee
}

func (suite *ServiceTestSuite) insertTask(title string, status models.TaskStatus, deadline string, assignee *uint64) *models.Task {
	parsed, err := time.ParseInLocation("2006-01-02", deadline, time.Local)
	suite.Require().NoError(err)
	task := &models.Task{Title: title, Status: status, Deadline: &parsed, AssignedEmployeeID: assignee}
	suite.Require().NoError(suite.taskRepo.Create(task))
	return task
}

func validationErrors(t assert.TestingT, err error) validation.Errors {
	var errs validation.Errors
	if !assert.True(t, errors.As(err, &errs), "expected validation.Errors, got %v", err) {
		return nil
	}
	return errs
}

// Auth

func (suite *ServiceTestSuite) TestLogin() {
	employee := suite.createEmployee("ada", true)

	_, err := suite.auth.Login(LoginInput{Username: " ", Password: "x"})
	suite.ErrorIs(err, ErrMissingCredentials)

	_, err = suite.auth.Login(LoginInput{Username: "nobody", Password: strongPassword})
	suite.ErrorIs(err, ErrUserNotFound)

	_, err = suite.auth.Login(LoginInput{Username: "ada", Password: "wrong"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	result, err := suite.auth.Login(LoginInput{Username: "ada", Password: strongPassword})
	suite.Require().NoError(err)
	suite.Equal(employee.ID, result.Employee.ID)

	claims, err := suite.tokens.Parse(result.Token)
	suite.Require().NoError(err)
	id, err := claims.EmployeeID()
	suite.Require().NoError(err)
	suite.Equal(employee.ID, id)
	suite.True(claims.Admin)
	suite.Equal("ada", claims.Username)
}

func (suite *ServiceTestSuite) TestEnsureAdmin() {
	suite.Require().NoError(suite.auth.EnsureAdmin("root", strongPassword, zap.NewNop()))
	suite.Require().NoError(suite.auth.EnsureAdmin("other", strongPassword, zap.NewNop()))

	count, err := suite.employeeRepo.Count()
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	admin, err := suite.employeeRepo.FindByUsername("root")
	suite.Require().NoError(err)
	suite.True(admin.Admin)
}

// Employees

func (suite *ServiceTestSuite) TestCreateEmployee_Validation() {
	_, err := suite.employees.CreateEmployee(EmployeeInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Username: "ada", Role: "Engineer",
		Password: "weak",
	})
	errs := validationErrors(suite.T(), err)
	suite.True(errs.Has(validation.FieldPassword, validation.RuleMinLength))
	suite.True(errs.Has(validation.FieldPassword, validation.RuleUppercase))

	suite.createEmployee("ada", false)
	_, err = suite.employees.CreateEmployee(EmployeeInput{
		FirstName: "Ada", LastName: "Byron", Email: "ada@example.com", Username: "ada", Role: "Engineer",
		Password: strongPassword,
	})
	errs = validationErrors(suite.T(), err)
	suite.True(errs.Has(validation.FieldUsername, validation.RuleTaken))
	suite.True(errs.Has(validation.FieldEmail, validation.RuleTaken))
}

func (suite *ServiceTestSuite) TestUpdateEmployee_KeepsPasswordWhenBlank() {
	employee := suite.createEmployee("ada", false)
	originalHash := employee.PasswordHash

	updated, err := suite.employees.UpdateEmployee(employee.ID, EmployeeInput{
		FirstName: "Ada", LastName: "King", Email: "ada@example.com", Username: "ada", Role: "Countess",
	})
	suite.Require().NoError(err)
	suite.Equal("King", updated.LastName)
	suite.Equal(originalHash, updated.PasswordHash)

	_, err = suite.employees.UpdateEmployee(employee.ID, EmployeeInput{
		FirstName: "Ada", LastName: "King", Email: "ada@example.com", Username: "ada", Role: "Countess",
		Password: "lowercaseonly",
	})
	errs := validationErrors(suite.T(), err)
	suite.True(errs.Has(validation.FieldPassword, validation.RuleUppercase))

	_, err = suite.employees.UpdateEmployee(9999, EmployeeInput{})
	suite.ErrorIs(err, ErrEmployeeNotFound)
}

func (suite *ServiceTestSuite) TestUpdatePassword() {
	employee := suite.createEmployee("ada", false)

	err := suite.employees.UpdatePassword(employee.ID, "short")
	validationErrors(suite.T(), err)

	suite.Require().NoError(suite.employees.UpdatePassword(employee.ID, "N3w!password"))
	reloaded, err := suite.employeeRepo.FindByID(employee.ID)
	suite.Require().NoError(err)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(reloaded.PasswordHash), []byte("N3w!password")))
}

func (suite *ServiceTestSuite) TestListEmployees_TaskCounts() {
	ada := suite.createEmployee("ada", false)
	suite.createEmployee("grace", false)
	suite.insertTask("a", models.TaskStatusPending, "2025-04-01", &ada.ID)

	list, err := suite.employees.ListEmployees(nil)
	suite.Require().NoError(err)
	suite.Equal(int64(2), list.Total)
	suite.Equal(1, list.TaskCounts[ada.ID])
}

func (suite *ServiceTestSuite) TestDeleteEmployee() {
	employee := suite.createEmployee("ada", false)
	suite.Require().NoError(suite.employees.DeleteEmployee(employee.ID))
	suite.ErrorIs(suite.employees.DeleteEmployee(employee.ID), ErrEmployeeNotFound)
}

func (suite *ServiceTestSuite) TestCreateEmployee_DeletedEmployeeKeepsUsernameAndEmail() {
	employee := suite.createEmployee("ada", false)
	suite.Require().NoError(suite.employees.DeleteEmployee(employee.ID))

	_, err := suite.employees.CreateEmployee(EmployeeInput{
		FirstName: "Ada", LastName: "Byron", Email: "ada@example.com", Username: "ada", Role: "Engineer",
		Password: strongPassword,
	})
	errs := validationErrors(suite.T(), err)
	suite.True(errs.Has(validation.FieldUsername, validation.RuleTaken))
	suite.True(errs.Has(validation.FieldEmail, validation.RuleTaken))

	other := suite.createEmployee("grace", false)
	_, err = suite.employees.UpdateEmployee(other.ID, EmployeeInput{
		FirstName: "Grace", LastName: "Tester", Email: "ada@example.com", Username: "grace", Role: "Engineer",
	})
	errs = validationErrors(suite.T(), err)
	suite.True(errs.Has(validation.FieldEmail, validation.RuleTaken))
	suite.False(errs.Has(validation.FieldUsername, validation.RuleTaken))
}

// Tasks

func (suite *ServiceTestSuite) TestCreateTask_CrossFieldRules() {
	ada := suite.createEmployee("ada", false)

	_, err := suite.tasks.CreateTask(TaskInput{
		Title: "Review", Status: models.TaskStatusPending, Deadline: "2025-03-10",
	})
	errs := validationErrors(suite.T(), err)
	suite.True(errs.Has(validation.FieldStatus, validation.RuleStatusForUnassigned))
	suite.True(errs.Has(validation.FieldAssignedEmployeeID, validation.RuleAssignedEmployeeRequired))

	_, err = suite.tasks.CreateTask(TaskInput{
		Title: "Review", Status: models.TaskStatusUnassigned, Deadline: "2025-03-10", AssignedEmployeeID: float64(ada.ID),
	})
	errs = validationErrors(suite.T(), err)
	suite.True(errs.Has(validation.FieldStatus, validation.RuleStatusForAssignedEmployee))
	suite.True(errs.Has(validation.FieldAssignedEmployeeID, validation.RuleAssignedEmployeeMismatch))
}

func (suite *ServiceTestSuite) TestCreateTask_UnknownAssigneeAndPastDeadline() {
	_, err := suite.tasks.CreateTask(TaskInput{
		Title: "Review", Status: models.TaskStatusPending, Deadline: "2025-03-06", AssignedEmployeeID: float64(4242),
	})
	errs := validationErrors(suite.T(), err)
	suite.True(errs.Has(validation.FieldAssignedEmployeeID, validation.RuleUnknownEmployee))
	suite.True(errs.Has(validation.FieldDeadline, validation.RulePastDate))
}

func (suite *ServiceTestSuite) TestCreateTask_Success() {
	ada := suite.createEmployee("ada", false)

	task, err := suite.tasks.CreateTask(TaskInput{
		Title: "  Review  ", Description: "Quarterly review", Status: models.TaskStatusPending,
		Deadline: "2025-03-07", AssignedEmployeeID: fmt.Sprint(ada.ID),
	})
	suite.Require().NoError(err)
	suite.Equal("Review", task.Title)
	suite.Require().NotNil(task.AssignedEmployee)
	suite.Equal("Ada", task.AssignedEmployee.FirstName)
	suite.Equal("2025-03-07", task.Deadline.Format("2006-01-02"))

	unassigned, err := suite.tasks.CreateTask(TaskInput{
		Title: "Backlog", Status: models.TaskStatusUnassigned, Deadline: "2025-04-01", AssignedEmployeeID: float64(0),
	})
	suite.Require().NoError(err)
	suite.Nil(unassigned.AssignedEmployeeID)
}

func (suite *ServiceTestSuite) TestUpdateTask_UnchangedPastDeadlineAllowed() {
	ada := suite.createEmployee("ada", false)
	task := suite.insertTask("Review", models.TaskStatusPending, "2025-03-01", &ada.ID)
	admin := Actor{EmployeeID: 1, Admin: true}

	updated, err := suite.tasks.UpdateTask(admin, task.ID, TaskInput{
		Title: "Review", Status: models.TaskStatusInProgress, Deadline: "2025-03-01", AssignedEmployeeID: float64(ada.ID),
	})
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusInProgress, updated.Status)

	_, err = suite.tasks.UpdateTask(admin, task.ID, TaskInput{
		Title: "Review", Status: models.TaskStatusInProgress, Deadline: "2025-03-02", AssignedEmployeeID: float64(ada.ID),
	})
	errs := validationErrors(suite.T(), err)
	suite.True(errs.Has(validation.FieldDeadline, validation.RulePastDate))

	_, err = suite.tasks.UpdateTask(admin, 9999, TaskInput{})
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *ServiceTestSuite) TestUpdateTask_NonAdminRestrictions() {
	ada := suite.createEmployee("ada", false)
	grace := suite.createEmployee("grace", false)
	adas := suite.insertTask("Ada's", models.TaskStatusPending, "2025-04-01", &ada.ID)
	graces := suite.insertTask("Grace's", models.TaskStatusPending, "2025-04-01", &grace.ID)
	actor := Actor{EmployeeID: ada.ID}

	_, err := suite.tasks.UpdateTask(actor, graces.ID, TaskInput{
		Title: "x", Status: models.TaskStatusCompleted, Deadline: "2025-04-01", AssignedEmployeeID: float64(grace.ID),
	})
	suite.ErrorIs(err, ErrTaskPermissionDenied)

	_, err = suite.tasks.UpdateTask(actor, adas.ID, TaskInput{
		Title: "x", Status: models.TaskStatusPending, Deadline: "2025-04-01", AssignedEmployeeID: float64(grace.ID),
	})
	suite.ErrorIs(err, ErrTaskPermissionDenied)

	updated, err := suite.tasks.UpdateTask(actor, adas.ID, TaskInput{
		Title: "Ada's", Status: models.TaskStatusCompleted, Deadline: "2025-04-01", AssignedEmployeeID: float64(ada.ID),
	})
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusCompleted, updated.Status)
}

func (suite *ServiceTestSuite) TestListTasks_NonAdminSeesOwnTasks() {
	ada := suite.createEmployee("ada", false)
	suite.insertTask("mine", models.TaskStatusPending, "2025-04-01", &ada.ID)
	suite.insertTask("open", models.TaskStatusUnassigned, "2025-04-01", nil)

	all, total, err := suite.tasks.ListTasks(Actor{Admin: true}, nil)
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Len(all, 2)

	mine, _, err := suite.tasks.ListTasks(Actor{EmployeeID: ada.ID}, nil)
	suite.Require().NoError(err)
	suite.Require().Len(mine, 1)
	suite.Equal("mine", mine[0].Title)

	byEmployee, err := suite.tasks.ListTasksByEmployee(ada.ID)
	suite.Require().NoError(err)
	suite.Len(byEmployee, 1)

	_, err = suite.tasks.ListTasksByEmployee(9999)
	suite.ErrorIs(err, ErrEmployeeNotFound)
}

func (suite *ServiceTestSuite) TestDeleteTask() {
	task := suite.insertTask("a", models.TaskStatusUnassigned, "2025-04-01", nil)
	suite.Require().NoError(suite.tasks.DeleteTask(task.ID))
	suite.ErrorIs(suite.tasks.DeleteTask(task.ID), ErrTaskNotFound)
}

func (suite *ServiceTestSuite) TestGenerateTasks() {
	suite.generator.tasks = []GeneratedTask{
		{Title: " Write report ", Deadline: "2025-03-20"},
		{Title: "Old", Deadline: "2025-03-01"},
		{Title: "Garbled", Deadline: "next week"},
		{Title: "   "},
	}

	drafts, err := suite.tasks.GenerateTasks(context.Background(), GenerateTasksInput{Text: "notes"})
	suite.Require().NoError(err)
	suite.Require().Len(drafts, 3)
	suite.Equal("Write report", drafts[0].Title)
	suite.Equal("2025-03-20", drafts[0].Deadline)
	suite.Empty(drafts[1].Deadline)
	suite.Empty(drafts[2].Deadline)
	for _, draft := range drafts {
		suite.Equal(models.TaskStatusUnassigned, draft.Status)
	}

	_, err = suite.tasks.GenerateTasks(context.Background(), GenerateTasksInput{Text: "  "})
	suite.ErrorIs(err, ErrEmptyGenerationText)

	suite.generator.tasks = nil
	_, err = suite.tasks.GenerateTasks(context.Background(), GenerateTasksInput{Text: "notes"})
	suite.ErrorIs(err, ErrAINoTasksGenerated)

	unconfigured := NewTaskService(suite.taskRepo, suite.employeeRepo, nil)
	_, err = unconfigured.GenerateTasks(context.Background(), GenerateTasksInput{Text: "notes"})
	suite.ErrorIs(err, ErrAIServiceNotConfigured)
}

// Metrics

func (suite *ServiceTestSuite) TestDashboard() {
	ada := suite.createEmployee("ada", false)
	suite.createEmployee("grace", true)
	suite.insertTask("late", models.TaskStatusPending, "2025-03-06", &ada.ID)
	suite.insertTask("done", models.TaskStatusCompleted, "2025-03-01", &ada.ID)
	suite.insertTask("open", models.TaskStatusUnassigned, "2025-03-20", nil)

	dashboard, err := suite.metrics.Dashboard(Actor{Admin: true})
	suite.Require().NoError(err)
	value := func(label string) int {
		v, ok := metrics.Value(dashboard, label)
		suite.Require().True(ok, label)
		return v
	}
	suite.Equal(2, value(metrics.LabelTotalEmployees))
	suite.Equal(3, value(metrics.LabelTotalTasks))
	suite.Equal(1, value(metrics.LabelUnassignedTasks))
	suite.Equal(1, value(metrics.LabelOverdueTasks))

	employeeMetrics, err := suite.metrics.Employees()
	suite.Require().NoError(err)
	admins, _ := metrics.Value(employeeMetrics, metrics.LabelAdmins)
	suite.Equal(1, admins)

	own, err := suite.metrics.Tasks(Actor{EmployeeID: ada.ID})
	suite.Require().NoError(err)
	total, _ := metrics.Value(own, metrics.LabelTotalTasks)
	suite.Equal(2, total)

	overdue, err := suite.metrics.OverdueReport(Actor{Admin: true})
	suite.Require().NoError(err)
	suite.Require().Len(overdue.Tasks, 1)
	suite.Equal("late", overdue.Tasks[0].Title)

	activity, err := suite.metrics.ActivityReport(Actor{Admin: true}, "", "")
	suite.Require().NoError(err)
	suite.Len(activity.Tasks, 3)

	_, err = suite.metrics.ActivityReport(Actor{Admin: true}, "03/01/2025", "")
	suite.Error(err)

	empty, err := suite.metrics.OverdueReport(Actor{EmployeeID: 9999})
	suite.Require().NoError(err)
	suite.Equal(reports.NoOverdueMessage, empty.Message)
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func TestTokenService_Rejects(t *testing.T) {
	tokens := NewTokenService("secret", "etams", time.Minute)
	employee := &models.Employee{ID: 7, Username: "ada"}

	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := tokens.Issue(employee)
	require.NoError(t, err)
	_, err = tokens.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenService("secret", "someone-else", time.Hour)
	foreign, err := other.Issue(employee)
	require.NoError(t, err)
	_, err = tokens.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongKey := NewTokenService("other-secret", "etams", time.Hour)
	forged, err := wrongKey.Issue(employee)
	require.NoError(t, err)
	_, err = tokens.Parse(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAIService_GenerateTasksFromText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"`+
			"```json\\n[{\\\"title\\\":\\\"Write report\\\",\\\"description\\\":\\\"Q1\\\",\\\"deadline\\\":\\\"2025-03-20\\\"}]\\n```"+
			`"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	ai := NewAIServiceWithBaseURL("test-key", server.URL)
	tasks, err := ai.GenerateTasksFromText(context.Background(), "write the Q1 report by the 20th")

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write report", tasks[0].Title)
	assert.Equal(t, "2025-03-20", tasks[0].Deadline)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "[]", stripCodeFence("```json\n[]\n```"))
	assert.Equal(t, "[]", stripCodeFence("```\n[]```"))
	assert.Equal(t, "[1]", stripCodeFence("  [1] "))
}
