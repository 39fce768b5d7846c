package services

import "errors"

// Errors shared across services and the HTTP error mapping.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")

	// Authentication and authorization.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrUserInactive       = errors.New("user account is disabled")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Conflicts.
	ErrUserEmailConflict         = errors.New("email address is already in use")
	ErrTeamNameConflict          = errors.New("team name is already in use")
	ErrChampionshipNameConflict  = errors.New("championship name already exists")
	ErrEnrollmentConflict        = errors.New("team is already enrolled in this championship")
	ErrVenueNameConflict         = errors.New("venue name already exists")
	ErrSportNameConflict         = errors.New("sport name already exists")
	ErrCategoryNameConflict      = errors.New("category name already exists")
	ErrPlayerAlreadyOnTeam       = errors.New("user is already registered as a player on a team")
	ErrMatchAlreadyHasResult     = errors.New("match already has a recorded result")
	ErrMatchHasNoResult          = errors.New("match has no result to correct")
	ErrFixtureExists             = errors.New("fixture has already been generated for this championship")
	ErrRosterLocked              = errors.New("roster cannot change once the fixture exists")
	ErrRosterTooSmall            = errors.New("at least two enrolled teams are required to generate a fixture")
	ErrChampionshipNotPending    = errors.New("championship is not in a state that allows this operation")
	ErrInvalidStatusTransition   = errors.New("invalid championship status transition")
	ErrChampionshipDatesRequired = errors.New("championship start date is required")
	ErrInvalidDateRange          = errors.New("championship end date must be after start date")

	// Entity lookups; more specific than ErrNotFound for handler mapping.
	ErrUserNotFound         = errors.New("user not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrSportNotFound        = errors.New("sport not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrVenueNotFound        = errors.New("venue not found")
	ErrChampionshipNotFound = errors.New("championship not found")
	ErrMatchDayNotFound     = errors.New("match day not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrStandingNotFound     = errors.New("standings row not found")
	ErrIncidentNotFound     = errors.New("incident not found")

	ErrNegativeGoals = errors.New("goals cannot be negative")
)
