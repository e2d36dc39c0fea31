package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pupr-presensi/presensi-backend-go/internal/domain/attendance"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/auth"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/employee"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/master/unit"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/report"
	"github.com/pupr-presensi/presensi-backend-go/internal/domain/user"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/export"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/jwt"
	"github.com/pupr-presensi/presensi-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrNotAdmin):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound), errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrCurrentPasswordMismatch):
		ValidationError(w, map[string]string{"current_password": err.Error()})
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNIPExists):
		Conflict(w, "NIP already registered")
	case errors.Is(err, employee.ErrUnitNotFound), errors.Is(err, unit.ErrUnitNotFound):
		NotFound(w, "Unit not found")
	case errors.Is(err, employee.ErrEmployeeHasEntries):
		Conflict(w, "Employee still has attendance entries")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "Attendance session not found")
	case errors.Is(err, attendance.ErrInvalidStatus):
		ValidationError(w, map[string]string{"status": "status must be one of HADIR, IZIN, SAKIT, DL, TK"})
	case errors.Is(err, attendance.ErrUnknownEmployee):
		ValidationError(w, map[string]string{"employee_ids": err.Error()})
	case errors.Is(err, attendance.ErrDuplicateEmployee):
		ValidationError(w, map[string]string{"employee_ids": err.Error()})

	// Export and report errors
	case errors.Is(err, export.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported export format", map[string]string{"format": "format must be csv, xlsx or pdf"})
	case errors.Is(err, report.ErrUnknownView):
		BadRequest(w, "Unknown report view", map[string]string{"view": "view must be 'employee' or 'unit'"})

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
