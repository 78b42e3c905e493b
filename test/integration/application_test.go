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

func TestApplyConsumesTokenAndWritesLedger(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, employee := helpers.CreateAndLoginEmployee(t, ts, 5)
	_, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "apply should succeed: %s", body)

	assert.Equal(t, 4, helpers.UserTokens(t, ts.DB, employee.ID))

	var entries []models.TokenEntry
	require.NoError(t, ts.DB.Where("user_id = ?", employee.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, models.TokenReasonApplyDebit, entries[0].Reason)
	assert.Equal(t, -1, entries[0].Delta)
	assert.Equal(t, 4, entries[0].BalanceAfter)
}

func TestApplyWithZeroTokensFails(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, employee := helpers.CreateAndLoginEmployee(t, ts, 0)
	_, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", token, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "apply with no tokens must fail: %s", body)

	env := helpers.ParseEnvelope(t, body)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "no tokens left")

	var count int64
	ts.DB.Model(&models.Application{}).Where("user_id = ?", employee.ID).Count(&count)
	assert.Zero(t, count, "no application row may exist after a failed charge")
}

func TestApplyWithUnlimitedSubscriptionSkipsCharge(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, employee := helpers.CreateAndLoginEmployee(t, ts, 0)
	helpers.GiveActiveSubscription(t, ts.DB, employee.ID, models.PlanUnlimitedToken)

	_, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unlimited user applies with zero balance: %s", body)

	assert.Equal(t, 0, helpers.UserTokens(t, ts.DB, employee.ID))

	var entries int64
	ts.DB.Model(&models.TokenEntry{}).Where("user_id = ?", employee.ID).Count(&entries)
	assert.Zero(t, entries, "unlimited applications never touch the ledger")
}

func TestUnlimitedSubscriptionDoesNotWaiveAcceptDebit(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employeeToken, employee := helpers.CreateAndLoginEmployee(t, ts, 5)
	helpers.GiveActiveSubscription(t, ts.DB, employee.ID, models.PlanUnlimitedToken)
	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	app := applyAndGetApplication(t, ts, employeeToken, job.ID, employee.ID)
	require.Equal(t, 5, helpers.UserTokens(t, ts.DB, employee.ID), "only the apply charge is waived")

	// Accepting charges the hire token regardless of the plan.
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/user-applied/"+app.ID, employerToken,
		map[string]interface{}{"status": "accepted"})
	require.Equal(t, http.StatusOK, res.StatusCode, "accept: %s", body)
	assert.Equal(t, 4, helpers.UserTokens(t, ts.DB, employee.ID))

	// And leaving accepted refunds it.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/user-applied/"+app.ID, employerToken,
		map[string]interface{}{"status": "rejected"})
	require.Equal(t, http.StatusOK, res.StatusCode, "reject: %s", body)
	assert.Equal(t, 5, helpers.UserTokens(t, ts.DB, employee.ID))

	var entries []models.TokenEntry
	require.NoError(t, ts.DB.Where("user_id = ?", employee.ID).Order("created_at ASC").Find(&entries).Error)
	require.Len(t, entries, 2)
	assert.Equal(t, models.TokenReasonAcceptDebit, entries[0].Reason)
	assert.Equal(t, models.TokenReasonStatusRefund, entries[1].Reason)
}

func TestDuplicateApply(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginEmployee(t, ts, 5)
	_, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "first apply: %s", body)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", token, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "second apply must fail: %s", body)

	env := helpers.ParseEnvelope(t, body)
	assert.Contains(t, env.Message, "already applied")
}

func TestApplyToEndedJob(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginEmployee(t, ts, 5)
	_, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)
	require.NoError(t, ts.DB.Model(job).Update("life_cycle", models.JobLifeCycleEnded).Error)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", token, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "apply to ended job must fail: %s", body)
}

func TestCancelDoesNotRefundAndReapplyDoesNotRecharge(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, employee := helpers.CreateAndLoginEmployee(t, ts, 5)
	_, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "apply: %s", body)
	require.Equal(t, 4, helpers.UserTokens(t, ts.DB, employee.ID))

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/cancel-apply", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "cancel: %s", body)
	assert.Equal(t, 4, helpers.UserTokens(t, ts.DB, employee.ID), "cancelling never refunds")

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "re-apply restores the row: %s", body)
	assert.Equal(t, 4, helpers.UserTokens(t, ts.DB, employee.ID), "restoring a withdrawn application is free")

	// Still exactly one row for the pair, restored rather than recreated.
	var count int64
	ts.DB.Unscoped().Model(&models.Application{}).
		Where("job_id = ? AND user_id = ?", job.ID, employee.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	var app models.Application
	require.NoError(t, ts.DB.Where("job_id = ? AND user_id = ?", job.ID, employee.ID).First(&app).Error)
	assert.Equal(t, models.ApplicationStatusApplied, app.Status)

	// Restoring is free, but applying still requires a positive balance.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/cancel-apply", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "second cancel: %s", body)
	require.NoError(t, ts.DB.Model(&models.User{}).Where("id = ?", employee.ID).Update("tokens", 0).Error)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", token, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "re-apply with empty balance must fail: %s", body)
	env := helpers.ParseEnvelope(t, body)
	assert.Contains(t, env.Message, "no tokens left")

	var gone models.Application
	err := ts.DB.Where("job_id = ? AND user_id = ?", job.ID, employee.ID).First(&gone).Error
	assert.Error(t, err, "the withdrawn row stays withdrawn when the balance gate fails")
}

func TestCancelWithoutApplication(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, _ := helpers.CreateAndLoginEmployee(t, ts, 5)
	_, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/cancel-apply", token, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "cancel without applying must fail: %s", body)
}

func applyAndGetApplication(t *testing.T, ts *helpers.TestServer, token, jobID, userID string) *models.Application {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/apply", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "apply: %s", body)

	var app models.Application
	require.NoError(t, ts.DB.Where("job_id = ? AND user_id = ?", jobID, userID).First(&app).Error)
	return &app
}

func TestAcceptRejectTokenReconciliation(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employeeToken, employee := helpers.CreateAndLoginEmployee(t, ts, 2)
	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	app := applyAndGetApplication(t, ts, employeeToken, job.ID, employee.ID)
	require.Equal(t, 1, helpers.UserTokens(t, ts.DB, employee.ID), "apply spends one")

	// Accept spends a second token.
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/user-applied/"+app.ID, employerToken,
		map[string]interface{}{"status": "accepted"})
	require.Equal(t, http.StatusOK, res.StatusCode, "accept: %s", body)
	assert.Equal(t, 0, helpers.UserTokens(t, ts.DB, employee.ID))

	// Rejecting the accepted worker refunds it.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/user-applied/"+app.ID, employerToken,
		map[string]interface{}{"status": "rejected"})
	require.Equal(t, http.StatusOK, res.StatusCode, "reject: %s", body)
	assert.Equal(t, 1, helpers.UserTokens(t, ts.DB, employee.ID))

	// Accepting again spends it again.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/user-applied/"+app.ID, employerToken,
		map[string]interface{}{"status": "accepted"})
	require.Equal(t, http.StatusOK, res.StatusCode, "re-accept: %s", body)
	assert.Equal(t, 0, helpers.UserTokens(t, ts.DB, employee.ID))

	var entries []models.TokenEntry
	require.NoError(t, ts.DB.Where("user_id = ?", employee.ID).Order("created_at ASC").Find(&entries).Error)
	require.Len(t, entries, 4)
	reasons := []models.TokenEntryReason{entries[0].Reason, entries[1].Reason, entries[2].Reason, entries[3].Reason}
	assert.Equal(t, []models.TokenEntryReason{
		models.TokenReasonApplyDebit,
		models.TokenReasonAcceptDebit,
		models.TokenReasonStatusRefund,
		models.TokenReasonAcceptDebit,
	}, reasons)
}

func TestAcceptFailsWhenApplicantHasNoTokens(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employeeToken, employee := helpers.CreateAndLoginEmployee(t, ts, 1)
	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	app := applyAndGetApplication(t, ts, employeeToken, job.ID, employee.ID)
	require.Equal(t, 0, helpers.UserTokens(t, ts.DB, employee.ID), "apply drained the balance")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/user-applied/"+app.ID, employerToken,
		map[string]interface{}{"status": "accepted"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "accept must fail on empty balance: %s", body)

	env := helpers.ParseEnvelope(t, body)
	assert.Contains(t, env.Message, "insufficient tokens")

	var app2 models.Application
	require.NoError(t, ts.DB.First(&app2, "id = ?", app.ID).Error)
	assert.Equal(t, models.ApplicationStatusApplied, app2.Status, "status unchanged when the charge fails")
}

func TestUpdateStatusRequiresJobOwner(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employeeToken, employee := helpers.CreateAndLoginEmployee(t, ts, 2)
	_, employer := helpers.CreateAndLoginEmployer(t, ts)
	otherEmployerToken, _ := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	app := applyAndGetApplication(t, ts, employeeToken, job.ID, employee.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/user-applied/"+app.ID, otherEmployerToken,
		map[string]interface{}{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, "only the posting employer may move applicants: %s", body)
}

func TestDoneIsTerminal(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employeeToken, employee := helpers.CreateAndLoginEmployee(t, ts, 2)
	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	app := applyAndGetApplication(t, ts, employeeToken, job.ID, employee.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID+"/end", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "end job: %s", body)

	var done models.Application
	require.NoError(t, ts.DB.First(&done, "id = ?", app.ID).Error)
	require.Equal(t, models.ApplicationStatusDone, done.Status)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/jobs/user-applied/"+app.ID, employerToken,
		map[string]interface{}{"status": "accepted"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "done rows never move again: %s", body)
}

func TestListAppliedScopedByRole(t *testing.T) {
	ts := helpers.NewTestServer(t)
	employeeToken, employee := helpers.CreateAndLoginEmployee(t, ts, 5)
	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	applyAndGetApplication(t, ts, employeeToken, job.ID, employee.ID)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/user-applied", employeeToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "employee list: %s", body)
	env := helpers.ParseEnvelope(t, body)
	var apps []models.Application
	require.NoError(t, json.Unmarshal(env.Data, &apps))
	assert.Len(t, apps, 1)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/jobs/user-applied", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "employer list: %s", body)
	env = helpers.ParseEnvelope(t, body)
	require.NoError(t, json.Unmarshal(env.Data, &apps))
	assert.Len(t, apps, 1, "employer sees applications on their own jobs")
}

func TestTokenLedgerEndpoint(t *testing.T) {
	ts := helpers.NewTestServer(t)
	token, employee := helpers.CreateAndLoginEmployee(t, ts, 5)
	_, employer := helpers.CreateAndLoginEmployer(t, ts)
	job := helpers.CreateJob(t, ts.DB, employer.ID)

	applyAndGetApplication(t, ts, token, job.ID, employee.ID)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/token-ledger", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "ledger: %s", body)

	env := helpers.ParseEnvelope(t, body)
	var entries []models.TokenEntry
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, models.TokenReasonApplyDebit, entries[0].Reason)
}
