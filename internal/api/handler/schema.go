package handler

import "github.com/stargazers/stargazing-api/internal/core/domain"

// --- Auth ---

type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// loginRequest accepts either a username or an email in Identifier. Email is
// kept as an alias for clients that post {email, password}.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password" validate:"required"`
}

func (r loginRequest) identifier() string {
	switch {
	case r.Identifier != "":
		return r.Identifier
	case r.Username != "":
		return r.Username
	default:
		return r.Email
	}
}

type sessionResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Users ---

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Role     *string `json:"role"`
}

type deletedUserResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// --- Events ---

type createEventRequest struct {
	EventName         string `json:"eventName"`
	EventDate         string `json:"eventDate"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	Location          string `json:"location"`
	Description       string `json:"description"`
	ParticipantsLimit int    `json:"participantsLimit"`
}

type updateEventRequest struct {
	EventName         *string `json:"eventName"`
	EventDate         *string `json:"eventDate"`
	StartTime         *string `json:"startTime"`
	EndTime           *string `json:"endTime"`
	Location          *string `json:"location"`
	Description       *string `json:"description"`
	ParticipantsLimit *int    `json:"participantsLimit" validate:"omitempty,gt=0"`
}

type deletedEventResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

// errorResponse documents the error envelope rendered by the central handler.
type errorResponse struct {
	Error string `json:"error"`
}
