package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/etams/internal/constants"
	"github.com/yukikurage/etams/internal/database"
	"github.com/yukikurage/etams/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRequireTaskAccess(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))
	database.SetDB(db)

	employee := models.Employee{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Username: "ada", Role: "Engineer", PasswordHash: "x"}
	require.NoError(t, db.Create(&employee).Error)
	task := models.Task{Title: "Write docs", Status: models.TaskStatusPending, AssignedEmployeeID: &employee.ID}
	require.NoError(t, db.Create(&task).Error)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-Test-User") != "" {
			c.Set(constants.ContextKeyUserID, employee.ID)
		}
	})
	r.GET("/tasks/:id", RequireTaskAccess(), func(c *gin.Context) {
		loaded, ok := GetTask(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"title": loaded.Title, "assignee": loaded.AssignedEmployee.Username})
	})

	tests := []struct {
		name   string
		path   string
		authed bool
		status int
	}{
		{"loads task", "/tasks/1", true, http.StatusOK},
		{"unknown task", "/tasks/42", true, http.StatusNotFound},
		{"bad id", "/tasks/x", true, http.StatusBadRequest},
		{"unauthenticated", "/tasks/1", false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authed {
				req.Header.Set("X-Test-User", "1")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"title":"Write docs","assignee":"ada"}`, w.Body.String())
			}
		})
	}
}
