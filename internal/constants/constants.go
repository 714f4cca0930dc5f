package constants

const (
	// ContextKeyUserID holds the authenticated employee ID in the gin context and the session.
	ContextKeyUserID = "user_id"
	// ContextKeyUsername holds the authenticated username.
	ContextKeyUsername = "username"
	// ContextKeyIsAdmin holds the admin flag of the authenticated employee.
	ContextKeyIsAdmin = "is_admin"
	// ContextKeyRequestID holds the request ID assigned by the request logger.
	ContextKeyRequestID = "request_id"
	// ContextKeyTask holds the task loaded by the task access middleware.
	ContextKeyTask = "task"

	SessionCookieName = "etams_session"
	HeaderRequestID   = "X-Request-ID"
	HeaderTotalCount  = "X-Total-Count"

	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	MinPasswordLength = 8

	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
	MaxNameLength        = 50

	MaxAIGeneratedTasks = 20
)
