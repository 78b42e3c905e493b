package apperrors

import "net/http"

// Predefined domain errors for the job-board business rules. Every rule
// violation is reported at the point of the operation that would break it.

// --- auth / users ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid username or password",
	http.StatusUnauthorized,
)

var ErrUsernameTaken = New(
	CodeAlreadyExists,
	"auth",
	"Username is already taken",
	http.StatusConflict,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// --- jobs ---

var ErrJobNotFound = New(
	CodeNotFound,
	"job",
	"Job not found",
	http.StatusNotFound,
)

var ErrJobEnded = New(
	CodeRuleViolation,
	"job",
	"This job is already ended",
	http.StatusBadRequest,
)

var ErrNotJobOwner = New(
	CodeForbidden,
	"job",
	"You are not the owner of this job",
	http.StatusForbidden,
)

// --- applications / tokens ---

var ErrInsufficientTokens = New(
	CodeRuleViolation,
	"tokens",
	"You have no tokens left to apply for jobs. Please subscribe to get more tokens.",
	http.StatusBadRequest,
)

var ErrAcceptInsufficientTokens = New(
	CodeRuleViolation,
	"tokens",
	"User has insufficient tokens to be accepted for this job.",
	http.StatusBadRequest,
)

var ErrDuplicateApplication = New(
	CodeRuleViolation,
	"application",
	"You have already applied for this job",
	http.StatusBadRequest,
)

var ErrApplicationNotFound = New(
	CodeNotFound,
	"application",
	"Application not found",
	http.StatusNotFound,
)

var ErrNotApplied = New(
	CodeRuleViolation,
	"application",
	"You have not applied for this job",
	http.StatusBadRequest,
)

var ErrInvalidTransition = New(
	CodeInvalidStatus,
	"application",
	"Status transition is not allowed",
	http.StatusBadRequest,
)

// --- ratings ---

var ErrJobNotEnded = New(
	CodeRuleViolation,
	"rating",
	"Job is not ended yet",
	http.StatusBadRequest,
)

var ErrNotHired = New(
	CodeRuleViolation,
	"rating",
	"User was not hired for this job",
	http.StatusBadRequest,
)

var ErrRatingAlreadyExists = New(
	CodeRuleViolation,
	"rating",
	"Rating already exists for this user. Use update instead.",
	http.StatusBadRequest,
)

var ErrRatingNotFound = New(
	CodeNotFound,
	"rating",
	"Rating not found",
	http.StatusNotFound,
)

// --- subscriptions ---

var ErrPlanNotFound = New(
	CodeNotFound,
	"subscription",
	"Subscription plan not found",
	http.StatusNotFound,
)

var ErrSubscriptionNotFound = New(
	CodeNotFound,
	"subscription",
	"User subscription not found or not authorized to update",
	http.StatusNotFound,
)

// --- comments ---

var ErrCommentNotFound = New(
	CodeNotFound,
	"comment",
	"Comment not found or you are not the owner of the comment",
	http.StatusNotFound,
)
