package entity

import "time"

type Book struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	AuthorID           string    `json:"author"`
	ISBN               string    `json:"isbn"`
	Category           string    `json:"category"`
	AvailabilityStatus bool      `json:"availability_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
