package services

import (
	"errors"
	"fmt"
)

// Корни таксономии ошибок. Конкретные ошибки оборачивают их через %w,
// обработчики проверяют их через errors.Is.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrNotFound         = errors.New("requested resource not found")
	ErrConflict         = errors.New("operation conflicts with current state")
)

// Ошибки валидации
var (
	ErrTournamentIDRequired  = fmt.Errorf("%w: tournamentId is required", ErrValidationFailed)
	ErrTeamNameRequired      = fmt.Errorf("%w: team name is required", ErrValidationFailed)
	ErrMatchIDRequired       = fmt.Errorf("%w: matchId is required", ErrValidationFailed)
	ErrMatchTeamsRequired    = fmt.Errorf("%w: tournamentId, teamAId and teamBId are required", ErrValidationFailed)
	ErrScoresRequired        = fmt.Errorf("%w: scoreA and scoreB are required", ErrValidationFailed)
	ErrInvalidScore          = fmt.Errorf("%w: score must be a finite number", ErrValidationFailed)
	ErrInvalidScheduledTime  = fmt.Errorf("%w: scheduledTime is not a valid date/time", ErrValidationFailed)
	ErrInvalidLegs           = fmt.Errorf("%w: legs must be 1 or 2", ErrValidationFailed)
	ErrNotEnoughParticipants = fmt.Errorf("%w: at least two registered teams are required", ErrValidationFailed)
	ErrFormatRequired        = fmt.Errorf("%w: format is required", ErrValidationFailed)
	ErrFormatUnsupported     = fmt.Errorf("%w: unsupported format, use one of: json, xml, html", ErrValidationFailed)
)

// Ошибки "не найдено"
var (
	ErrTournamentNotFound = fmt.Errorf("%w: tournament not found", ErrNotFound)
	ErrTeamNotFound       = fmt.Errorf("%w: team not found", ErrNotFound)
	ErrMatchNotFound      = fmt.Errorf("%w: match not found", ErrNotFound)

	// ErrTeamReferenceNotFound - матч ссылается на несуществующую команду.
	// Проблема во входных данных, поэтому отдаётся как 400.
	ErrTeamReferenceNotFound = fmt.Errorf("%w: one of the teams was not found", ErrNotFound)
)

// Конфликты
var (
	ErrTeamNameConflict = fmt.Errorf("%w: team name is already in use", ErrConflict)
	ErrResultMissing    = fmt.Errorf("%w: match has no result to remove", ErrConflict)
)
