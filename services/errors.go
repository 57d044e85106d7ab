package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed         = errors.New("validation failed")
	ErrInvalidSector            = errors.New("unknown sector")
	ErrInvalidHour              = errors.New("hour is outside the competition rounds")
	ErrNegativeCatch            = errors.New("fish count and weight must be non-negative")
	ErrEntryLocked              = errors.New("entry is locked and can no longer be changed")
	ErrInvalidStatusTransition  = errors.New("invalid entry status transition")
	ErrCompetitorInactive       = errors.New("competitor is deactivated")
	ErrCompetitionNotRunning    = errors.New("competition is not running")
	ErrHoursTotalInvalid        = errors.New("hours total must be positive")
	ErrCurrentHourOutOfRange    = errors.New("current hour is outside the configured rounds")
	ErrCompetitorHasEntries     = errors.New("competitor has judged entries and can only be deactivated")
	ErrPasswordTooShort         = errors.New("password is too short")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrAdminLockRequired        = errors.New("only an admin can lock this entry")
	ErrOfflineReconcileRequired = errors.New("offline entries require admin reconciliation")

	// Ошибки конфликтов
	ErrBoxConflict       = errors.New("box number is already taken in this sector")
	ErrUserEmailConflict = errors.New("email address is already in use")

	// Ошибки, специфичные для сущностей
	ErrCompetitorNotFound = errors.New("competitor not found")
	ErrEntryNotFound      = errors.New("entry not found")
	ErrBigCatchNotFound   = errors.New("big catch not found")
	ErrSettingsNotFound   = errors.New("settings not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrStandingNotFound   = errors.New("standing not found")

	// Ошибки аутентификации и авторизации
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
)
