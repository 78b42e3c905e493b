package models

type UserRole string
type Gender string
type JobLifeCycle string
type JobType string
type ApplicationStatus string
type SubscriptionPlanCode string
type SubscriptionStatus string
type TokenEntryReason string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleEmployer UserRole = "employer"
	UserRoleEmployee UserRole = "employee"

	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"

	JobLifeCycleActive JobLifeCycle = "active"
	JobLifeCycleEnded  JobLifeCycle = "ended"

	JobTypeFullTime JobType = "full_time"
	JobTypePartTime JobType = "part_time"
	JobTypeOrder    JobType = "order"

	ApplicationStatusApplied  ApplicationStatus = "applied"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
	ApplicationStatusDone     ApplicationStatus = "done"

	PlanTwentyToken    SubscriptionPlanCode = "20_token"
	PlanUnlimitedToken SubscriptionPlanCode = "unlimited_token"

	SubscriptionStatusPending  SubscriptionStatus = "pending"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"

	TokenReasonApplyDebit   TokenEntryReason = "apply_debit"
	TokenReasonAcceptDebit  TokenEntryReason = "accept_debit"
	TokenReasonStatusRefund TokenEntryReason = "status_refund"
	TokenReasonAdminGrant   TokenEntryReason = "admin_grant"
)

// applicationTransitions is the single source of truth for employer-driven
// status changes. "done" is terminal; it is only ever written by the
// job-ending cascade.
var applicationTransitions = map[ApplicationStatus]map[ApplicationStatus]bool{
	ApplicationStatusApplied:  {ApplicationStatusAccepted: true, ApplicationStatusRejected: true},
	ApplicationStatusAccepted: {ApplicationStatusApplied: true, ApplicationStatusRejected: true},
	ApplicationStatusRejected: {ApplicationStatusApplied: true, ApplicationStatusAccepted: true},
	ApplicationStatusDone:     {},
}

// CanTransitionApplication reports whether an employer may move an
// application from old to new. Writing the current status back is a no-op
// and always allowed.
func CanTransitionApplication(old, new ApplicationStatus) bool {
	if old == new {
		return true
	}
	allowed, ok := applicationTransitions[old]
	if !ok {
		return false
	}
	return allowed[new]
}

// CanTransitionJob reports whether the job life cycle may change. The only
// real transition is active -> ended; ended is terminal.
func CanTransitionJob(old, new JobLifeCycle) bool {
	return old == JobLifeCycleActive && new == JobLifeCycleEnded
}

func ValidUserRole(r UserRole) bool {
	switch r {
	case UserRoleAdmin, UserRoleEmployer, UserRoleEmployee:
		return true
	}
	return false
}
