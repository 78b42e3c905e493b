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

// hireAndEnd sets up an ended job with an accepted worker and returns the
// employer token, job and worker.
func hireAndEnd(t *testing.T, ts *helpers.TestServer) (string, *models.Job, *models.User) {
	t.Helper()

	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)
	employeeToken, employee := helpers.CreateAndLoginEmployee(t, ts, 2)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", employeeToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "apply: %s", body)

	var app models.Application
	require.NoError(t, ts.DB.Where("job_id = ? AND user_id = ?", job.ID, employee.ID).First(&app).Error)
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/user-applied/"+app.ID, employerToken,
		map[string]interface{}{"status": "accepted"})
	require.Equal(t, http.StatusOK, res.StatusCode, "accept: %s", body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/end", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "end: %s", body)

	return employerToken, job, employee
}

func ratePath(jobID, userID string) string {
	return "/api/v1/jobs/user-applied/rate/" + jobID + "/" + userID
}

func TestRateHiredWorker(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employerToken, job, employee := hireAndEnd(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, ratePath(job.ID, employee.ID), employerToken,
		map[string]interface{}{"rating": 5})
	require.Equal(t, http.StatusCreated, res.StatusCode, "rate: %s", body)

	env := helpers.ParseEnvelope(t, body)
	var rating models.Rating
	require.NoError(t, json.Unmarshal(env.Data, &rating))
	assert.Equal(t, 5, rating.Rating)
	assert.Equal(t, employee.ID, rating.UserID)
}

func TestRateBeforeJobEnds(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)
	employeeToken, employee := helpers.CreateAndLoginEmployee(t, ts, 2)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", employeeToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "apply: %s", body)

	var app models.Application
	require.NoError(t, ts.DB.Where("job_id = ? AND user_id = ?", job.ID, employee.ID).First(&app).Error)
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/user-applied/"+app.ID, employerToken,
		map[string]interface{}{"status": "accepted"})
	require.Equal(t, http.StatusOK, res.StatusCode, "accept: %s", body)

	res, body = ts.SendRequest(t, http.MethodPost, ratePath(job.ID, employee.ID), employerToken,
		map[string]interface{}{"rating": 4})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "rating requires an ended job: %s", body)

	env := helpers.ParseEnvelope(t, body)
	assert.Contains(t, env.Message, "not ended")
}

func TestRateUnhiredWorker(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)
	_, stranger := helpers.CreateAndLoginEmployee(t, ts, 0)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/end", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "end: %s", body)

	res, body = ts.SendRequest(t, http.MethodPost, ratePath(job.ID, stranger.ID), employerToken,
		map[string]interface{}{"rating": 3})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "rating requires an accepted application: %s", body)

	env := helpers.ParseEnvelope(t, body)
	assert.Contains(t, env.Message, "not hired")
}

func TestRateTwice(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employerToken, job, employee := hireAndEnd(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, ratePath(job.ID, employee.ID), employerToken,
		map[string]interface{}{"rating": 5})
	require.Equal(t, http.StatusCreated, res.StatusCode, "first rating: %s", body)

	res, body = ts.SendRequest(t, http.MethodPost, ratePath(job.ID, employee.ID), employerToken,
		map[string]interface{}{"rating": 1})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "second rating for the pair must fail: %s", body)
}

func TestRatingScoreBounds(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employerToken, job, employee := hireAndEnd(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, ratePath(job.ID, employee.ID), employerToken,
		map[string]interface{}{"rating": 6})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, "score above 5 must fail validation: %s", body)

	res, body = ts.SendRequest(t, http.MethodPost, ratePath(job.ID, employee.ID), employerToken,
		map[string]interface{}{"rating": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode, "score below 1 must fail validation: %s", body)
}

func TestUpdateAndDeleteRating(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employerToken, job, employee := hireAndEnd(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, ratePath(job.ID, employee.ID), employerToken,
		map[string]interface{}{"rating": 2})
	require.Equal(t, http.StatusCreated, res.StatusCode, "create: %s", body)

	res, body = ts.SendRequest(t, http.MethodPut, ratePath(job.ID, employee.ID), employerToken,
		map[string]interface{}{"rating": 4})
	require.Equal(t, http.StatusOK, res.StatusCode, "update: %s", body)

	res, body = ts.SendRequest(t, http.MethodGet, ratePath(job.ID, employee.ID), employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "get: %s", body)
	env := helpers.ParseEnvelope(t, body)
	var rating models.Rating
	require.NoError(t, json.Unmarshal(env.Data, &rating))
	assert.Equal(t, 4, rating.Rating)

	res, body = ts.SendRequest(t, http.MethodDelete, ratePath(job.ID, employee.ID), employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "delete: %s", body)

	// An unrated pair reads back as null, the normal first-time state.
	res, body = ts.SendRequest(t, http.MethodGet, ratePath(job.ID, employee.ID), employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "get after delete: %s", body)
	env = helpers.ParseEnvelope(t, body)
	assert.True(t, env.Success)
	assert.Equal(t, "null", string(env.Data))
	assert.Contains(t, env.Message, "No rating found")
}

func TestGetRatingForUnknownJob(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)

	res, body := ts.SendRequest(t, http.MethodGet,
		ratePath("00000000-0000-0000-0000-000000000000", employer.ID), employerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, "unknown job stays a 404: %s", body)
}

func TestRatingOwnerGate(t *testing.T) {
	ts := helpers.NewTestServer(t)
	_, job, employee := hireAndEnd(t, ts)
	otherEmployerToken, _ := helpers.CreateAndLoginEmployer(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, ratePath(job.ID, employee.ID), otherEmployerToken,
		map[string]interface{}{"rating": 5})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, "only the posting employer rates: %s", body)
}
