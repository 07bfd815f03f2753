// Package types - Diff DTOs for POST /v1/quotes/diff
package types

// DiffRequest is the public request for POST /v1/quotes/diff: the order as it
// was quoted and the order after an edit
type DiffRequest struct {
	Before QuoteRequest `json:"before"`
	After  QuoteRequest `json:"after"`

	// IncludeUnchanged lists documents whose charges did not move
	IncludeUnchanged bool `json:"include_unchanged,omitempty"`
}

// DiffResponse is the public response for POST /v1/quotes/diff
type DiffResponse struct {
	Metadata MetadataDTO `json:"metadata"`

	Before DiffSideDTO `json:"before"`
	After  DiffSideDTO `json:"after"`
	Delta  DeltaDTO    `json:"delta"`

	// Fields are the breakdown amounts that moved
	Fields []FieldChangeDTO `json:"fields"`

	// Changes are document-level changes
	Changes []ChangeDTO `json:"changes"`

	// Reasons explain why the total moved
	Reasons []ReasonDTO `json:"reasons,omitempty"`

	Summary string `json:"summary"`
}

// DiffSideDTO summarizes one side of the diff
type DiffSideDTO struct {
	Total        string `json:"total"`
	Tier         string `json:"tier"`
	DeliveryDate string `json:"delivery_date"`
	Documents    int    `json:"documents"`
}

// DeltaDTO is the difference between the two sides
type DeltaDTO struct {
	// Total as signed decimal string (e.g., "+45.68")
	Total         string `json:"total"`
	Percent       string `json:"percent"`
	DateShiftDays int    `json:"date_shift_days"`
	Added         int    `json:"added"`
	Removed       int    `json:"removed"`
	Changed       int    `json:"changed"`
}

// FieldChangeDTO is one moved breakdown amount
type FieldChangeDTO struct {
	Name   string `json:"name"`
	Before string `json:"before"`
	After  string `json:"after"`
	Delta  string `json:"delta"`
}

// ChangeDTO is one document-level change
type ChangeDTO struct {
	// Type: "added", "removed", "modified", "unchanged"
	Type string `json:"type"`

	// Document is the document id, or "#n" for documents without one
	Document string `json:"document"`

	Before string `json:"before,omitempty"`
	After  string `json:"after,omitempty"`
	Delta  string `json:"delta"`
}

// ReasonDTO explains part of the total movement
type ReasonDTO struct {
	Category string `json:"category"`
	What     string `json:"what"`
	Impact   string `json:"impact"`
}
