package models

// Item is the core aggregate for this bounded context. ID is assigned by the
// item store at append time and is never reused.
type Item struct {
	ID   int64
	Name ItemName
}
