package services

import "errors"

// Общие ошибки сервисного слоя, используемые и в HTTP-маппинге.
var (
	// Ресурс не найден
	ErrNotFound            = errors.New("requested resource not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrTeamNotFound        = errors.New("team not found")
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrSiteNotFound        = errors.New("site not found")
	ErrNotInTeam           = errors.New("user does not belong to any team in this competition")
	ErrNoPendingRequest    = errors.New("team has no pending request to resolve")

	// Конфликты и бизнес-правила
	ErrAlreadyInTeam         = errors.New("user is already a member of this team")
	ErrAlreadyInCompetition  = errors.New("user is already registered for this competition")
	ErrTeamFull              = errors.New("team already has the maximum number of members")
	ErrInvalidTeamCode       = errors.New("invalid team code")
	ErrTeamNameRequired      = errors.New("team name is required")
	ErrDuplicateNameRequest  = errors.New("requested name matches the current or already requested name")
	ErrDuplicateSiteRequest  = errors.New("requested site matches the current or already requested site")
	ErrTeamAlreadyRegistered = errors.New("team is already registered")

	// Авторизация
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")
	ErrCrossCoachJoin     = errors.New("joining a team of another coach is not allowed")

	// Пакетные операции
	ErrEmptyBatch   = errors.New("at least one team id is required")
	ErrBatchOverlap = errors.New("team ids appear in both approve and reject lists")

	// Аутентификация
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrPasswordTooShort       = errors.New("password is too short")
)

// ErrorKind группирует ошибки по виду для вызывающей стороны.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindConflict     ErrorKind = "CONFLICT"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindInvalidBatch ErrorKind = "INVALID_BATCH"
	KindInternal     ErrorKind = "INTERNAL"
)

// KindOf сопоставляет ошибке сервисного слоя её вид.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTeamNotFound),
		errors.Is(err, ErrCompetitionNotFound),
		errors.Is(err, ErrSiteNotFound),
		errors.Is(err, ErrNotInTeam),
		errors.Is(err, ErrNoPendingRequest),
		errors.Is(err, ErrInvalidTeamCode):
		return KindNotFound
	case errors.Is(err, ErrAlreadyInTeam),
		errors.Is(err, ErrAlreadyInCompetition),
		errors.Is(err, ErrTeamFull),
		errors.Is(err, ErrDuplicateNameRequest),
		errors.Is(err, ErrDuplicateSiteRequest),
		errors.Is(err, ErrTeamAlreadyRegistered),
		errors.Is(err, ErrAuthEmailTaken):
		return KindConflict
	case errors.Is(err, ErrForbiddenOperation),
		errors.Is(err, ErrCrossCoachJoin):
		return KindForbidden
	case errors.Is(err, ErrEmptyBatch),
		errors.Is(err, ErrBatchOverlap):
		return KindInvalidBatch
	default:
		return KindInternal
	}
}
