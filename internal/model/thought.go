package model

import (
	"time"
)

// Thought is something a user wanted to get off their chest, optionally
// paired with an antidote
type Thought struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Antidote   *string    `json:"antidote,omitempty"`
	InsertedAt *time.Time `json:"insertedAt,omitempty"`
}

// ThoughtDTO is the wire shape of a thought submitted by a client.
//
// InsertedAt is taken as-is when present, so clients can backdate entries.
type ThoughtDTO struct {
	ID         string     `json:"id,omitempty" form:"id" validate:"omitempty,uuid" doc:"Optional client-chosen UUID" example:"5d1f3c2e-8a8b-4d7e-9a51-0f3b7c2d9e11"`
	Text       string     `json:"text" form:"text" validate:"required" doc:"What is on your chest" example:"I forgot to water the plants"`
	Antidote   *string    `json:"antidote,omitempty" form:"antidote" doc:"What makes it better; empty means none" example:"Set a reminder"`
	InsertedAt *time.Time `json:"insertedAt,omitempty" form:"insertedAt" doc:"When the thought happened; defaults to now" example:"2024-05-01T09:30:00Z"`
}

// ToModel maps the DTO to the entity to persist. An empty antidote becomes
// absent and a missing timestamp becomes now.
func (d ThoughtDTO) ToModel(now time.Time) Thought {
	t := Thought{
		ID:   d.ID,
		Text: d.Text,
	}

	if d.Antidote != nil && *d.Antidote != "" {
		antidote := *d.Antidote
		t.Antidote = &antidote
	}

	insertedAt := now
	if d.InsertedAt != nil && !d.InsertedAt.IsZero() {
		insertedAt = *d.InsertedAt
	}
	t.InsertedAt = &insertedAt

	return t
}

// ThoughtListView is the context handed to the index view
type ThoughtListView struct {
	Title           string
	Thoughts        []Thought
	ValidationError string
}

// ThoughtListResponse is used for JSON responses with multiple thoughts
type ThoughtListResponse struct {
	Thoughts []Thought `json:"thoughts" doc:"List of thoughts"`
}

// PageView is the context of static pages
type PageView struct {
	Title string
}
