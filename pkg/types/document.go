// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DocumentMetadata holds the bibliographic fields of a stored document.
type DocumentMetadata struct {
	// Title is the document title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the document abstract. Documents without an abstract
	// are skipped by screening.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year.
	Year int `json:"year" yaml:"year"`

	// Venue is the journal, conference, or publisher.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// DOI is the document's persistent identifier.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Link is a resolvable URL for the document.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`

	// Keywords are the source-supplied keywords, distinct from keywords
	// extracted during screening.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Extended holds source-specific metadata that has no dedicated field.
	Extended map[string]string `json:"extended,omitempty" yaml:"extended,omitempty"`
}

// Document is a corpus entry owned by one user.
type Document struct {
	// ID identifies the document within the store.
	ID string `json:"id" yaml:"id"`

	// UserID is the owning user. Lookups are always scoped to an owner.
	UserID string `json:"user_id" yaml:"user_id"`

	Metadata DocumentMetadata `json:"metadata" yaml:"metadata"`
}

// Journey is a user's bounded unit of work in which processes run.
type Journey struct {
	ID     string `json:"id" yaml:"id"`
	UserID string `json:"user_id" yaml:"user_id"`
	Name   string `json:"name" yaml:"name"`
}

// Semantics holds the topic, entity, and keyword lists extracted from
// one abstract.
type Semantics struct {
	Topics   []string `json:"topics" yaml:"topics"`
	Entities []string `json:"entities" yaml:"entities"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}
