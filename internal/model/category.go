package model

// Category groups documents for filing purposes.
// Names are unique; the uniqueness constraint lives in the database.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
