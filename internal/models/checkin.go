package models

import "time"

// MoodScore is the ordinal mood rating attached to a check-in (1-4)
type MoodScore int

const (
	MoodLow     MoodScore = 1
	MoodOkay    MoodScore = 2
	MoodGood    MoodScore = 3
	MoodExcited MoodScore = 4
)

// Valid reports whether the mood score is within the supported range
func (m MoodScore) Valid() bool {
	return m >= MoodLow && m <= MoodExcited
}

// Intent is the declared reason for being out tonight
type Intent string

const (
	IntentParty  Intent = "party"
	IntentChill  Intent = "chill"
	IntentSocial Intent = "social"
	IntentFlirt  Intent = "flirt"
	IntentMusic  Intent = "music"
)

// Valid reports whether the intent is one of the enumerated values
func (i Intent) Valid() bool {
	switch i {
	case IntentParty, IntentChill, IntentSocial, IntentFlirt, IntentMusic:
		return true
	}
	return false
}

// RelationshipStatus is an optional anonymous demographic tag
type RelationshipStatus string

const (
	RelationshipSingle      RelationshipStatus = "single"
	RelationshipTaken       RelationshipStatus = "taken"
	RelationshipComplicated RelationshipStatus = "complicated"
)

// Valid reports whether the relationship status is one of the enumerated values
func (r RelationshipStatus) Valid() bool {
	switch r {
	case RelationshipSingle, RelationshipTaken, RelationshipComplicated:
		return true
	}
	return false
}

// OnsIntent is the optional "open to a casual encounter" answer
type OnsIntent string

const (
	OnsOpen  OnsIntent = "open"
	OnsMaybe OnsIntent = "maybe"
	OnsNo    OnsIntent = "no"
)

// Valid reports whether the ons intent is one of the enumerated values
func (o OnsIntent) Valid() bool {
	switch o {
	case OnsOpen, OnsMaybe, OnsNo:
		return true
	}
	return false
}

// Gender is an optional anonymous demographic tag
type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderNonBinary Gender = "nonbinary"
)

// Valid reports whether the gender is one of the enumerated values
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderNonBinary:
		return true
	}
	return false
}

// AgeBand is an optional anonymous age bracket
type AgeBand string

const (
	AgeBand18To25 AgeBand = "18_25"
	AgeBand26To35 AgeBand = "26_35"
	AgeBand36To45 AgeBand = "36_45"
	AgeBand46Plus AgeBand = "46_plus"
)

// Valid reports whether the age band is one of the enumerated values
func (a AgeBand) Valid() bool {
	switch a {
	case AgeBand18To25, AgeBand26To35, AgeBand36To45, AgeBand46Plus:
		return true
	}
	return false
}

// CheckInEvent is an immutable fact: a user reported being at a venue.
// Demographic fields are optional; nil means the question was not answered
// and the event is excluded from that field's ratio entirely.
type CheckInEvent struct {
	ID        string    `json:"id" db:"id"`
	VenueID   string    `json:"venue_id" db:"venue_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Mood   MoodScore `json:"mood" db:"mood"`
	Intent Intent    `json:"intent" db:"intent"`

	RelationshipStatus *RelationshipStatus `json:"relationship_status,omitempty" db:"relationship_status"`
	OnsIntent          *OnsIntent          `json:"ons_intent,omitempty" db:"ons_intent"`
	Gender             *Gender             `json:"gender,omitempty" db:"gender"`
	AgeBand            *AgeBand            `json:"age_band,omitempty" db:"age_band"`
}

// CheckInRequest is the payload for submitting a manual check-in
type CheckInRequest struct {
	VenueID string `json:"venue_id" binding:"required"`
	UserID  string `json:"user_id"`

	Mood   MoodScore `json:"mood" binding:"required"`
	Intent Intent    `json:"intent" binding:"required"`

	RelationshipStatus *RelationshipStatus `json:"relationship_status,omitempty"`
	OnsIntent          *OnsIntent          `json:"ons_intent,omitempty"`
	Gender             *Gender             `json:"gender,omitempty"`
	AgeBand            *AgeBand            `json:"age_band,omitempty"`
}

// CheckinProfile holds the stored per-user defaults used when the smart
// check-in engine submits on the user's behalf
type CheckinProfile struct {
	UserID             string              `json:"user_id"`
	Intent             Intent              `json:"intent"`
	RelationshipStatus *RelationshipStatus `json:"relationship_status,omitempty"`
	OnsIntent          *OnsIntent          `json:"ons_intent,omitempty"`
	Gender             *Gender             `json:"gender,omitempty"`
	AgeBand            *AgeBand            `json:"age_band,omitempty"`
}
