package domain

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Validation bounds for player fields.
const (
	MinFullNameLen = 2
	MaxFullNameLen = 100
	MinCountryLen  = 2
	MaxCountryLen  = 50
	MaxTeamLen     = 100
	MaxLeagueLen   = 100
	MinAge         = 0
	MaxAge         = 120
	MinMarketValue = 0
	MaxMarketValue = 10_000_000_000 // 10 billion USD
)

// PlayingStatus is the enumerated playing status of a player.
type PlayingStatus string

const (
	StatusActive    PlayingStatus = "active"
	StatusRetired   PlayingStatus = "retired"
	StatusFreeAgent PlayingStatus = "free_agent"
)

// IsValid checks if the status is one of the known values.
func (s PlayingStatus) IsValid() bool {
	return s == StatusActive || s == StatusRetired || s == StatusFreeAgent
}

// Player is a football player record. ScoutingReport is written only by the
// background worker after a scouting task completes; the synchronous
// create/update path never touches it.
type Player struct {
	ID             int64         `json:"id"`
	FullName       string        `json:"full_name"`
	Country        string        `json:"country"`
	Status         PlayingStatus `json:"status"`
	CurrentTeam    *string       `json:"current_team,omitempty"`
	League         *string       `json:"league,omitempty"`
	Age            int           `json:"age"`
	MarketValue    *int64        `json:"market_value,omitempty"`
	ScoutingReport *string       `json:"scouting_report,omitempty"`
}

// PlayerInput is the create/update payload. Age and MarketValue are pointers
// so that zero values survive the required/optional distinction.
type PlayerInput struct {
	FullName    string        `json:"full_name" binding:"required"`
	Country     string        `json:"country" binding:"required"`
	Status      PlayingStatus `json:"status" binding:"required"`
	CurrentTeam *string       `json:"current_team"`
	League      *string       `json:"league"`
	Age         *int          `json:"age" binding:"required"`
	MarketValue *int64        `json:"market_value"`
}

// Validate checks all field bounds and returns a ValidationError carrying
// field-level detail, or nil if the input is well formed.
func (in *PlayerInput) Validate() error {
	fields := map[string]string{}

	if l := len(in.FullName); l < MinFullNameLen || l > MaxFullNameLen {
		fields["full_name"] = fmt.Sprintf("must be %d-%d characters", MinFullNameLen, MaxFullNameLen)
	}
	if l := len(in.Country); l < MinCountryLen || l > MaxCountryLen {
		fields["country"] = fmt.Sprintf("must be %d-%d characters", MinCountryLen, MaxCountryLen)
	}
	if !in.Status.IsValid() {
		fields["status"] = "must be one of: active, retired, free_agent"
	}
	if in.CurrentTeam != nil && len(*in.CurrentTeam) > MaxTeamLen {
		fields["current_team"] = fmt.Sprintf("must be at most %d characters", MaxTeamLen)
	}
	if in.League != nil && len(*in.League) > MaxLeagueLen {
		fields["league"] = fmt.Sprintf("must be at most %d characters", MaxLeagueLen)
	}
	if in.Age == nil {
		fields["age"] = "is required"
	} else if *in.Age < MinAge || *in.Age > MaxAge {
		fields["age"] = fmt.Sprintf("must be between %d and %d", MinAge, MaxAge)
	}
	if in.MarketValue != nil && (*in.MarketValue < MinMarketValue || *in.MarketValue > MaxMarketValue) {
		fields["market_value"] = fmt.Sprintf("must be between %d and %d", MinMarketValue, MaxMarketValue)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

var titleCaser = cases.Title(language.Und)

// Normalize title-cases the free-text name fields, matching the storage
// convention ("lionel messi" -> "Lionel Messi").
func (in *PlayerInput) Normalize() {
	in.FullName = titleCaser.String(in.FullName)
	in.Country = titleCaser.String(in.Country)
	if in.CurrentTeam != nil {
		t := titleCaser.String(*in.CurrentTeam)
		in.CurrentTeam = &t
	}
	if in.League != nil {
		l := titleCaser.String(*in.League)
		in.League = &l
	}
}

// ToPlayer builds a Player from validated input. The scouting report is
// always absent on this path.
func (in *PlayerInput) ToPlayer() *Player {
	return &Player{
		FullName:    in.FullName,
		Country:     in.Country,
		Status:      in.Status,
		CurrentTeam: in.CurrentTeam,
		League:      in.League,
		Age:         *in.Age,
		MarketValue: in.MarketValue,
	}
}

// PaginatedPlayers is the list response shape.
type PaginatedPlayers struct {
	Data  []Player `json:"data"`
	Total int64    `json:"total"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Pages int      `json:"pages"`
}
