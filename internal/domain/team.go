package domain

import "time"

// Team is a participant-formed group within one event.
type Team struct {
	ID        int32     `json:"id"`
	EventID   int32     `json:"event_id"`
	Name      string    `json:"name"`
	CreatedBy int32     `json:"created_by"`
	CreatedOn time.Time `json:"created_on"`
}

type TeamMembership struct {
	TeamID   int32     `json:"team_id"`
	UserID   int32     `json:"user_id"`
	JoinedOn time.Time `json:"joined_on"`
}
