package domain

// Event is a stargazing session listed on the public site.
type Event struct {
	ID                int    `json:"id"`
	EventName         string `json:"eventName"`
	EventDate         string `json:"eventDate"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	Location          string `json:"location"`
	Description       string `json:"description"`
	ParticipantsLimit int    `json:"participantsLimit"`
}

// EventPatch carries the optional fields of an event update.
type EventPatch struct {
	EventName         *string
	EventDate         *string
	StartTime         *string
	EndTime           *string
	Location          *string
	Description       *string
	ParticipantsLimit *int
}

// Apply copies the set fields of p onto e.
func (p EventPatch) Apply(e *Event) {
	if p.EventName != nil {
		e.EventName = *p.EventName
	}
	if p.EventDate != nil {
		e.EventDate = *p.EventDate
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.ParticipantsLimit != nil {
		e.ParticipantsLimit = *p.ParticipantsLimit
	}
}
