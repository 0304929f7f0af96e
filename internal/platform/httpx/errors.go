package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	accountservice "mission-tracker/backend/internal/account/service"
	authservice "mission-tracker/backend/internal/auth/service"
	expensedomain "mission-tracker/backend/internal/expense/domain"
	"mission-tracker/backend/internal/logger"
	membershipdomain "mission-tracker/backend/internal/membership/domain"
	missiondomain "mission-tracker/backend/internal/mission/domain"
	outreachdomain "mission-tracker/backend/internal/outreach/domain"
	"mission-tracker/backend/internal/security"
)

// ErrorBody is the JSON error envelope. Code is a stable machine-readable
// identifier; Message is for humans and never leaks internals.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type mapping struct {
	status int
	code   string
}

var errorTable = []struct {
	err error
	mapping
}{
	{authservice.ErrInvalidEmail, mapping{http.StatusBadRequest, "invalid_email"}},
	{authservice.ErrWeakPassword, mapping{http.StatusBadRequest, "weak_password"}},
	{authservice.ErrFullNameRequired, mapping{http.StatusBadRequest, "full_name_required"}},
	{authservice.ErrInvalidCredentials, mapping{http.StatusUnauthorized, "invalid_credentials"}},
	{security.ErrTokenExpired, mapping{http.StatusUnauthorized, "token_expired"}},
	{security.ErrTokenInvalid, mapping{http.StatusUnauthorized, "token_invalid"}},
	{security.ErrTokenTypeMismatch, mapping{http.StatusUnauthorized, "token_type_mismatch"}},
	{authservice.ErrInactiveUser, mapping{http.StatusForbidden, "inactive_user"}},
	{authservice.ErrAccountAccessDenied, mapping{http.StatusForbidden, "account_access_denied"}},
	{authservice.ErrUserNotFound, mapping{http.StatusNotFound, "user_not_found"}},
	{accountservice.ErrAccountNotFound, mapping{http.StatusNotFound, "account_not_found"}},
	{accountservice.ErrMembershipNotFound, mapping{http.StatusNotFound, "membership_not_found"}},
	{accountservice.ErrAccountNameRequired, mapping{http.StatusBadRequest, "account_name_required"}},
	{missiondomain.ErrMissionNotFound, mapping{http.StatusNotFound, "mission_not_found"}},
	{missiondomain.ErrAssignmentNotFound, mapping{http.StatusNotFound, "assignment_not_found"}},
	{missiondomain.ErrInvalidMissionRole, mapping{http.StatusBadRequest, "invalid_mission_role"}},
	{missiondomain.ErrInvalidMission, mapping{http.StatusBadRequest, "invalid_mission"}},
	{outreachdomain.ErrOutreachNotFound, mapping{http.StatusNotFound, "outreach_not_found"}},
	{outreachdomain.ErrInvalidOutreach, mapping{http.StatusBadRequest, "invalid_outreach"}},
	{expensedomain.ErrExpenseNotFound, mapping{http.StatusNotFound, "expense_not_found"}},
	{expensedomain.ErrInvalidExpense, mapping{http.StatusBadRequest, "invalid_expense"}},
	{authservice.ErrEmailAlreadyRegistered, mapping{http.StatusConflict, "email_already_registered"}},
	{membershipdomain.ErrDuplicateMembership, mapping{http.StatusConflict, "duplicate_membership"}},
}

// Error writes err as the JSON error envelope with the status mapped from the
// service sentinel. Unrecognized errors become an opaque 500; the cause is
// logged, not returned.
func Error(c *gin.Context, err error) {
	for _, entry := range errorTable {
		if errors.Is(err, entry.err) {
			c.AbortWithStatusJSON(entry.status, ErrorBody{Code: entry.code, Message: err.Error()})
			return
		}
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{Code: "validation_failed", Message: ve.Error()})
		return
	}
	logger.FromContext(c.Request.Context()).Error("request failed",
		"method", c.Request.Method, "path", c.FullPath(), "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{
		Code:    "internal_error",
		Message: "something went wrong",
	})
}

// ValidationError marks a request-shape problem that should surface as 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalid returns a ValidationError with the given message.
func Invalid(msg string) error { return &ValidationError{Msg: msg} }

// BadRequest writes a 400 with the given message, for binding failures.
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{Code: "validation_failed", Message: msg})
}
