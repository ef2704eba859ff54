package domain

import "time"

// ObituaryDates groups the life and service dates. Birth and death are
// required; funeral and visitation are optional.
type ObituaryDates struct {
	BirthDate      time.Time  `json:"birthDate"`
	DeathDate      time.Time  `json:"deathDate"`
	FuneralDate    *time.Time `json:"funeralDate,omitempty"`
	VisitationDate *time.Time `json:"visitationDate,omitempty"`
}

// ObituaryLocation describes a venue (funeral home or graveyard).
type ObituaryLocation struct {
	Venue   string `json:"venue"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// AuthorRef is the slice of the authoring user joined onto obituary reads.
type AuthorRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}

type Obituary struct {
	ID                string
	Title             string
	FirstName         string
	LastName          string
	MaidenName        string
	FeaturedImage     string
	Description       string
	Dates             ObituaryDates
	FuneralLocation   *ObituaryLocation
	GraveyardLocation *ObituaryLocation
	SurvivedBy        []string
	Predeceased       []string
	AuthorID          string
	Author            *AuthorRef // populated on reads
	IsPublished       bool
	ViewCount         int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
