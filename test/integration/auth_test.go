package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"github.com/adam-ctrlc/gotrabahu/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerBody(username, role string) map[string]interface{} {
	return map[string]interface{}{
		"username":   username,
		"password":   "password123",
		"role":       role,
		"first_name": "Juan",
		"last_name":  "Dela Cruz",
		"birth_date": "1995-05-15",
		"phone":      "0917-123-4567",
		"address":    "123 Mabini St",
		"city":       "Manila",
		"gender":     "male",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("juan_d", "employee"))
	require.Equal(t, http.StatusCreated, res.StatusCode, "register should succeed: %s", body)

	env := helpers.ParseEnvelope(t, body)
	assert.True(t, env.Success)

	var user models.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "juan_d", user.Username)
	assert.Equal(t, models.UserRoleEmployee, user.Role)
	assert.Zero(t, user.Tokens, "new accounts start with no tokens")

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": "juan_d",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed: %s", body)

	env = helpers.ParseEnvelope(t, body)
	var loginResp struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
		Role      string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &loginResp))
	assert.NotEmpty(t, loginResp.Token)
	assert.Equal(t, "Bearer", loginResp.TokenType)
	assert.Equal(t, "employee", loginResp.Role)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("maria_s", "employee"))
	require.Equal(t, http.StatusCreated, res.StatusCode, "first register should succeed: %s", body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("maria_s", "employer"))
	assert.Equal(t, http.StatusConflict, res.StatusCode, "duplicate username should conflict: %s", body)

	env := helpers.ParseEnvelope(t, body)
	assert.False(t, env.Success)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("wannabe", "admin"))
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, "admin self-registration must be rejected: %s", body)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := helpers.NewTestServer(t)
	_, user := helpers.CreateAndLoginEmployee(t, ts, 0)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": user.Username,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, "wrong password must fail: %s", body)

	env := helpers.ParseEnvelope(t, body)
	assert.False(t, env.Success)
}

func TestMeRequiresAuth(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestMeReturnsProfileAggregates(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, user := helpers.CreateAndLoginEmployee(t, ts, 3)

	_, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "apply should succeed: %s", body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "me should succeed: %s", body)

	env := helpers.ParseEnvelope(t, body)
	var profile struct {
		User struct {
			ID     string `json:"id"`
			Tokens int    `json:"token"`
		} `json:"user"`
		TotalApplications int64   `json:"total_applications"`
		AverageRating     float64 `json:"average_rating"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, user.ID, profile.User.ID)
	assert.Equal(t, 2, profile.User.Tokens, "one token spent on the application")
	assert.EqualValues(t, 1, profile.TotalApplications)
	assert.Zero(t, profile.AverageRating)
}

func TestChangePassword(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, user := helpers.CreateAndLoginEmployee(t, ts, 0)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/auth/change-password", token, map[string]interface{}{
		"current_password": "password123",
		"new_password":     "newpassword456",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "change password should succeed: %s", body)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": user.Username,
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, "old password must stop working")

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": user.Username,
		"password": "newpassword456",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, "new password must work")
}

func TestUpdateProfileOwnOnly(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, user := helpers.CreateAndLoginEmployee(t, ts, 0)
	_, other := helpers.CreateAndLoginEmployee(t, ts, 0)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/auth/update/"+user.ID, token, map[string]interface{}{
		"city": "Davao",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "own profile update should succeed: %s", body)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/auth/update/"+other.ID, token, map[string]interface{}{
		"city": "Davao",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, "updating someone else's profile must be forbidden")
}
