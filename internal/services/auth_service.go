package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/etams/internal/models"
	"github.com/yukikurage/etams/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrMissingCredentials   = errors.New("username and password are required")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	employeeRepo repository.EmployeeRepository
	tokens       *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(employeeRepo repository.EmployeeRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		tokens:       tokens,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is the authenticated employee and the bearer token issued for it.
type LoginResult struct {
	Employee *models.Employee
	Token    string
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}

	employee, err := s.employeeRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(employee)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Employee: employee, Token: token}, nil
}

// GetEmployee retrieves an employee by ID.
func (s *AuthService) GetEmployee(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return employee, nil
}

// EnsureAdmin creates an admin account with the given credentials when the
// employee table is empty. It does nothing otherwise.
func (s *AuthService) EnsureAdmin(username, password string, log *zap.Logger) error {
	if username == "" || password == "" {
		return nil
	}

	count, err := s.employeeRepo.Count()
	if err != nil {
		return fmt.Errorf("failed to count employees: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.Employee{
		FirstName:    "System",
		LastName:     "Administrator",
		Email:        username + "@localhost",
		Username:     username,
		PasswordHash: hashed,
		Role:         "Administrator",
		Admin:        true,
	}
	if err := s.employeeRepo.Create(admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	log.Info("bootstrap admin created", zap.String("username", username))
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrFailedToHashPassword
	}
	return string(hashed), nil
}
