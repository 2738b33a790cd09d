package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5

	AnonymousName = "Anonymous"
)

type Review struct {
	ID        string    `json:"id"`
	VenueID   string    `json:"venueId"`
	Author    Owner     `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}
