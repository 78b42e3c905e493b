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

func jobBody() map[string]interface{} {
	return map[string]interface{}{
		"title":       "Delivery Rider",
		"description": "Deliver parcels around the city",
		"location":    "Quezon City",
		"salary":      "700/day",
		"company":     "Acme Express",
		"contact":     "0917-555-0101",
		"type":        "part_time",
		"duration":    "2026-12-31",
	}
}

func TestCreateJobAsEmployer(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, employer := helpers.CreateAndLoginEmployer(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs", token, jobBody())
	require.Equal(t, http.StatusCreated, res.StatusCode, "create job: %s", body)

	env := helpers.ParseEnvelope(t, body)
	var job models.Job
	require.NoError(t, json.Unmarshal(env.Data, &job))
	assert.Equal(t, employer.ID, job.EmployerID)
	assert.Equal(t, models.JobLifeCycleActive, job.LifeCycle)
	assert.Equal(t, 20, job.MaxApplicants, "default applicant cap")
}

func TestCreateJobForbiddenForEmployee(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginEmployee(t, ts, 0)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs", token, jobBody())
	assert.Equal(t, http.StatusForbidden, res.StatusCode, "employees cannot post jobs: %s", body)
}

func TestJobListScopedForEmployer(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, employer := helpers.CreateAndLoginEmployer(t, ts)
	otherToken, other := helpers.CreateAndLoginEmployer(t, ts)
	helpers.CreateJob(t, ts.DB, employer.ID)
	helpers.CreateJob(t, ts.DB, other.ID)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/jobs", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "list: %s", body)

	env := helpers.ParseEnvelope(t, body)
	var jobs []models.Job
	require.NoError(t, json.Unmarshal(env.Data, &jobs))
	require.Len(t, jobs, 1, "employers see only their own postings")
	assert.Equal(t, employer.ID, jobs[0].EmployerID)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs", otherToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	env = helpers.ParseEnvelope(t, body)
	require.NoError(t, json.Unmarshal(env.Data, &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, other.ID, jobs[0].EmployerID)
}

func TestJobListVisibleToEmployees(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginEmployee(t, ts, 0)
	_, employer := helpers.CreateAndLoginEmployer(t, ts)
	helpers.CreateJob(t, ts.DB, employer.ID)
	helpers.CreateJob(t, ts.DB, employer.ID)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/jobs", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "list: %s", body)

	env := helpers.ParseEnvelope(t, body)
	var jobs []models.Job
	require.NoError(t, json.Unmarshal(env.Data, &jobs))
	assert.Len(t, jobs, 2, "employees see every posting")
}

func TestUpdateJobOwnerOnly(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, employer := helpers.CreateAndLoginEmployer(t, ts)
	otherToken, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/jobs/"+job.ID, token, map[string]interface{}{
		"title": "Warehouse Lead",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "owner update: %s", body)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/jobs/"+job.ID, otherToken, map[string]interface{}{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, "non-owner update must be forbidden")
}

func TestEndJobCascadesAppliedToDone(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	appliedToken, applied := helpers.CreateAndLoginEmployee(t, ts, 2)
	acceptedToken, accepted := helpers.CreateAndLoginEmployee(t, ts, 2)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", appliedToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "apply 1: %s", body)
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", acceptedToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "apply 2: %s", body)

	var acceptedApp models.Application
	require.NoError(t, ts.DB.Where("job_id = ? AND user_id = ?", job.ID, accepted.ID).First(&acceptedApp).Error)
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/user-applied/"+acceptedApp.ID, employerToken,
		map[string]interface{}{"status": "accepted"})
	require.Equal(t, http.StatusOK, res.StatusCode, "accept: %s", body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/end", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "end: %s", body)

	var endedJob models.Job
	require.NoError(t, ts.DB.First(&endedJob, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobLifeCycleEnded, endedJob.LifeCycle)

	var appliedApp models.Application
	require.NoError(t, ts.DB.Where("job_id = ? AND user_id = ?", job.ID, applied.ID).First(&appliedApp).Error)
	assert.Equal(t, models.ApplicationStatusDone, appliedApp.Status, "applied rows cascade to done")

	require.NoError(t, ts.DB.First(&acceptedApp, "id = ?", acceptedApp.ID).Error)
	assert.Equal(t, models.ApplicationStatusAccepted, acceptedApp.Status, "accepted rows are untouched")
}

func TestEndJobIsIdempotent(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/end", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "first end: %s", body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/end", employerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, "second end is a no-op success: %s", body)

	var endedJob models.Job
	require.NoError(t, ts.DB.First(&endedJob, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobLifeCycleEnded, endedJob.LifeCycle)
}

func TestJobDetailForEmployee(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, employee := helpers.CreateAndLoginEmployee(t, ts, 2)
	_, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "apply: %s", body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/"+job.ID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "detail: %s", body)

	env := helpers.ParseEnvelope(t, body)
	var detail struct {
		Job            models.Job          `json:"job"`
		OwnApplication *models.Application `json:"own_application"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, job.ID, detail.Job.ID)
	require.NotNil(t, detail.OwnApplication, "employee sees their own application on the job")
	assert.Equal(t, employee.ID, detail.OwnApplication.UserID)
}

func TestEmployerHistoryCounts(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	e1Token, _ := helpers.CreateAndLoginEmployee(t, ts, 2)
	e2Token, e2 := helpers.CreateAndLoginEmployee(t, ts, 2)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", e1Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "apply 1: %s", body)
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", e2Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "apply 2: %s", body)

	var app models.Application
	require.NoError(t, ts.DB.Where("job_id = ? AND user_id = ?", job.ID, e2.ID).First(&app).Error)
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/user-applied/"+app.ID, employerToken,
		map[string]interface{}{"status": "accepted"})
	require.Equal(t, http.StatusOK, res.StatusCode, "accept: %s", body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/history", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "history: %s", body)

	env := helpers.ParseEnvelope(t, body)
	var rows []struct {
		ID              string `json:"id"`
		ApplicantsCount int    `json:"applicants_count"`
		HiredCount      int    `json:"hired_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].ApplicantsCount)
	assert.Equal(t, 1, rows[0].HiredCount)
}
