package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adam-ctrlc/gotrabahu/internal/auth"
	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var userCounter int64

// CreateUser inserts a user with a hashed password.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User, password string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err, "hashing test password")
	user.PasswordHash = hash

	if user.BirthDate.IsZero() {
		user.BirthDate = time.Date(1995, 5, 15, 0, 0, 0, 0, time.UTC)
	}
	if user.Gender == "" {
		user.Gender = models.GenderOther
	}

	require.NoError(t, db.Create(user).Error, "creating test user %s", user.Username)
}

// CreateAndLoginUser creates a user and logs them in through the API.
func CreateAndLoginUser(t *testing.T, ts *TestServer, role models.UserRole, tokens int) (string, *models.User) {
	t.Helper()

	username := fmt.Sprintf("%s_%d", role, atomic.AddInt64(&userCounter, 1))
	const password = "password123"

	user := &models.User{
		Username:  username,
		Role:      role,
		FirstName: "Test",
		LastName:  "User",
		Tokens:    tokens,
	}
	CreateUser(t, ts.DB, user, password)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: %s", body)

	env := ParseEnvelope(t, body)
	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &loginResp))
	require.NotEmpty(t, loginResp.Token, "login token must not be empty")

	return loginResp.Token, user
}

// CreateAndLoginEmployer creates an employer account.
func CreateAndLoginEmployer(t *testing.T, ts *TestServer) (string, *models.User) {
	return CreateAndLoginUser(t, ts, models.UserRoleEmployer, 0)
}

// CreateAndLoginEmployee creates a worker with the given token balance.
func CreateAndLoginEmployee(t *testing.T, ts *TestServer, tokens int) (string, *models.User) {
	return CreateAndLoginUser(t, ts, models.UserRoleEmployee, tokens)
}

// CreateAndLoginAdmin creates an admin account.
func CreateAndLoginAdmin(t *testing.T, ts *TestServer) (string, *models.User) {
	return CreateAndLoginUser(t, ts, models.UserRoleAdmin, 0)
}

// CreateJob inserts a job owned by the employer.
func CreateJob(t *testing.T, db *gorm.DB, employerID string) *models.Job {
	t.Helper()

	job := &models.Job{
		EmployerID:    employerID,
		Title:         "Warehouse Helper",
		Description:   "Loading and sorting parcels",
		Location:      "Cebu City",
		Salary:        "600/day",
		Company:       "Acme Logistics",
		Contact:       "0917-000-0000",
		MaxApplicants: 20,
		Type:          models.JobTypePartTime,
		LifeCycle:     models.JobLifeCycleActive,
		Duration:      time.Now().AddDate(0, 1, 0),
	}
	require.NoError(t, db.Create(job).Error, "creating test job")
	return job
}

// PlanID returns the catalog id for a plan code.
func PlanID(t *testing.T, db *gorm.DB, code models.SubscriptionPlanCode) string {
	t.Helper()

	var plan models.Subscription
	require.NoError(t, db.First(&plan, "plan = ?", code).Error, "plan %s must be seeded", code)
	return plan.ID
}

// UserTokens reads the user's current balance straight from the database.
func UserTokens(t *testing.T, db *gorm.DB, userID string) int {
	t.Helper()

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	return user.Tokens
}

// GiveActiveSubscription attaches an active subscription of the given plan.
func GiveActiveSubscription(t *testing.T, db *gorm.DB, userID string, code models.SubscriptionPlanCode) {
	t.Helper()

	sub := &models.UserSubscription{
		UserID:         userID,
		SubscriptionID: PlanID(t, db, code),
		Status:         models.SubscriptionStatusActive,
	}
	require.NoError(t, db.Create(sub).Error)
}
