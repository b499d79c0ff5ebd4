package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed       = errors.New("validation failed")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrInvalidDivision        = errors.New("unknown division")
	ErrInvalidSeed            = errors.New("team seed must be positive")
	ErrInvalidHandicap        = errors.New("player handicap must not be negative")
	ErrInvalidMatchType       = errors.New("unknown match type")
	ErrInvalidSession         = errors.New("session must be AM or PM")
	ErrInvalidHoleNumber      = errors.New("hole number must be between 1 and 18")
	ErrInvalidStrokeCount     = errors.New("stroke count must be positive")
	ErrInvalidRound           = errors.New("round number must be positive")
	ErrMatchNotThreeWay       = errors.New("match has no third team")
	ErrMatchLocked            = errors.New("match is completed; scores are locked until cleared")
	ErrInvalidStatusChange    = errors.New("invalid match status transition")
	ErrSameTeamsInMatch       = errors.New("a match cannot feature the same team twice")
	ErrStablefordCardRequired = errors.New("no stableford card for player and round")

	// Conflicts
	ErrTeamSeedTaken   = errors.New("seed already taken in this division")
	ErrTeamNameTaken   = errors.New("team name is already in use")
	ErrEmailTaken      = errors.New("email address is already in use")
	ErrCardAlreadyOpen = errors.New("stableford card already exists for this player and round")

	// Authentication and authorization
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrMatchNotFound  = errors.New("match not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrCourseNotFound = errors.New("course not found")
)
