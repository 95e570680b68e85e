package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDisabled     = errors.New("account is disabled")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrScenarioNotFound    = errors.New("scenario not found")
	ErrBehaviorNotFound    = errors.New("behavior not found")
	ErrDocumentNotFound    = errors.New("knowledge document not found")
	ErrSessionNotFound     = errors.New("training session not found")
	ErrSessionNotActive    = errors.New("training session is not active")
	ErrSessionEvaluated    = errors.New("session already has an evaluation")
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrChallengeInactive   = errors.New("challenge not active or already ended")
	ErrNotParticipating    = errors.New("user is not participating in this challenge")
	ErrTeamNotFound        = errors.New("team not found")
	ErrTeamFull            = errors.New("team has reached its member cap")
	ErrTeamPrivate         = errors.New("team is private")
	ErrAlreadyTeamMember   = errors.New("user is already a member of this team")
	ErrNotTeamMember       = errors.New("user is not a member of this team")
	ErrCaptainCannotLeave  = errors.New("captain must transfer or delete the team before leaving")
	ErrMissingAIKey        = errors.New("AI API key is not configured")
	ErrMissingTTSKey       = errors.New("TTS API key is not configured")
	ErrEmptyText           = errors.New("text is required")
	ErrInvalidURL          = errors.New("invalid URL")
	ErrUnreachableURL      = errors.New("could not fetch URL after retries")
	ErrEmptyAIResponse     = errors.New("AI returned no choices")
)
