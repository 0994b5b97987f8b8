package domain

import "errors"

var (
	// ErrNoQuestionsForLevel is returned when a level has no stored questions at all.
	ErrNoQuestionsForLevel = errors.New("no questions found for this level")
	// ErrNoValidAnswer is returned when every question at a level has an empty answer name.
	ErrNoValidAnswer = errors.New("no question at this level has a valid answer")
	// ErrQuestionNotFound indicates a question ID that does not exist.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrHintCount rejects authoring with other than exactly three hints.
	ErrHintCount = errors.New("a question must have exactly three hints")
	// ErrUnknownElement rejects a (name, symbol) pair absent from the periodic table.
	ErrUnknownElement = errors.New("name and symbol do not match a known chemical element")
	// ErrDuplicateElement rejects a name or symbol already used by another question.
	ErrDuplicateElement = errors.New("an element with this name or symbol already exists")

	// ErrSessionNotFound is returned when a game session ID is unknown or expired.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrSessionFinished rejects play actions on a session past its last round.
	ErrSessionFinished = errors.New("game session already finished")
	// ErrWrongPhase rejects an action issued outside its round phase.
	ErrWrongPhase = errors.New("action not allowed in the current round phase")

	// ErrRankingNotFound indicates a ranking entry ID that does not exist.
	ErrRankingNotFound = errors.New("ranking entry not found")
	// ErrUnknownLevelTag rejects a ranking submission with a level tag outside the three bands.
	ErrUnknownLevelTag = errors.New("unknown level tag")
	// ErrMissingPlayer rejects a ranking submission or rename without a player name.
	ErrMissingPlayer = errors.New("player name is required")

	// ErrAdminNotFound indicates an administrator ID that does not exist.
	ErrAdminNotFound = errors.New("administrator not found")
	// ErrDuplicateEmail rejects registration with an email already in use.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSelfDeletion forbids administrators from deleting their own account.
	ErrSelfDeletion = errors.New("administrators cannot delete their own account")
	// ErrProtectedAccount is returned when a non super admin attempts a deletion.
	ErrProtectedAccount = errors.New("protected account")
	// ErrPermissionDenied is returned for mutating actions the requester may not perform.
	ErrPermissionDenied = errors.New("permission denied")
)
