package middleware

import (
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/etams/internal/constants"
	apierrors "github.com/yukikurage/etams/internal/errors"
	"github.com/yukikurage/etams/internal/models"
	"github.com/yukikurage/etams/internal/services"
	"go.uber.org/zap"
)

// EmployeeLookup loads the current record of an authenticated employee.
type EmployeeLookup interface {
	GetEmployee(id uint64) (*models.Employee, error)
}

// RequireAuth accepts a bearer token or, failing that, the login session.
// The employee is reloaded on every request, so deleted accounts are rejected
// and the admin flag always reflects the stored record.
func RequireAuth(tokens *services.TokenService, employees EmployeeLookup, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		var (
			employeeID uint64
			ok         bool
		)

		if tokenString := extractToken(c); tokenString != "" {
			claims, err := tokens.Parse(tokenString)
			if err == nil {
				employeeID, err = claims.EmployeeID()
			}
			if err != nil {
				log.Warn("invalid bearer token", zap.Error(err), zap.String("path", c.FullPath()))
				apierrors.Unauthorized(c, "Invalid or expired token")
				c.Abort()
				return
			}
			ok = true
		} else {
			employeeID, ok = asEmployeeID(sessions.Default(c).Get(constants.ContextKeyUserID))
		}

		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		employee, err := employees.GetEmployee(employeeID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				log.Info("credentials for removed employee", zap.Uint64("employee_id", employeeID))
				apierrors.Unauthorized(c, "Account no longer exists")
				c.Abort()
				return
			}
			_ = c.Error(err)
			apierrors.InternalError(c, "Failed to load account")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, employee.ID)
		c.Set(constants.ContextKeyUsername, employee.Username)
		c.Set(constants.ContextKeyIsAdmin, employee.Admin)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return asEmployeeID(userID)
}

func asEmployeeID(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// IsAdmin reports whether the current user is an administrator
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(constants.ContextKeyIsAdmin)
}

// CurrentActor returns the authenticated employee as a service actor
func CurrentActor(c *gin.Context) (services.Actor, bool) {
	userID, ok := GetUserID(c)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{EmployeeID: userID, Admin: IsAdmin(c)}, true
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
