package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/etams/internal/constants"
	"github.com/yukikurage/etams/internal/handlers"
	"github.com/yukikurage/etams/internal/middleware"
	"github.com/yukikurage/etams/internal/services"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Employee *handlers.EmployeeHandler
	Task     *handlers.TaskHandler
	Metrics  *handlers.MetricsHandler
}

// New wires every route. Reads need any authenticated employee; employee
// mutations, task deletion, and AI drafting need an administrator.
func New(h Handlers, tokens *services.TokenService, accounts middleware.EmployeeLookup, store sessions.Store, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	requireAuth := middleware.RequireAuth(tokens, accounts, log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Employee task management API is running",
		})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", requireAuth, h.Auth.GetCurrentUser)
	}

	api := r.Group("/api")
	api.Use(requireAuth)

	employees := api.Group("/employees")
	{
		employees.GET("", h.Employee.ListEmployees)
		employees.GET("/:id", h.Employee.GetEmployee)
		employees.POST("", middleware.RequireAdmin(), h.Employee.CreateEmployee)
		employees.PUT("/:id", middleware.RequireAdmin(), h.Employee.UpdateEmployee)
		employees.DELETE("/:id", middleware.RequireAdmin(), h.Employee.DeleteEmployee)
		employees.PUT("/:id/password", middleware.RequireSelfOrAdmin(), h.Employee.UpdatePassword)
	}

	tasks := api.Group("/tasks")
	{
		tasks.GET("", h.Task.ListTasks)
		tasks.POST("", h.Task.CreateTask)
		tasks.POST("/generate", middleware.RequireAdmin(), h.Task.GenerateTasks)
		tasks.GET("/user/:employeeId", h.Task.ListTasksByEmployee)
		tasks.GET("/:id", middleware.RequireTaskAccess(), h.Task.GetTask)
		tasks.PUT("/:id", middleware.RequireTaskAccess(), h.Task.UpdateTask)
		tasks.DELETE("/:id", middleware.RequireAdmin(), middleware.RequireTaskAccess(), h.Task.DeleteTask)
	}

	metricsGroup := api.Group("/metrics")
	{
		metricsGroup.GET("/dashboard", h.Metrics.Dashboard)
		metricsGroup.GET("/tasks", h.Metrics.Tasks)
		metricsGroup.GET("/employees", h.Metrics.Employees)
	}

	reportsGroup := api.Group("/reports")
	{
		reportsGroup.GET("/overdue", h.Metrics.OverdueReport)
		reportsGroup.GET("/activity", h.Metrics.ActivityReport)
	}

	return r
}
