// Package entity defines data structures shared by the web layer.
package entity

// Msg is the standard JSON response envelope.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// UserPage is the JSON payload of the paginated directory listing.
type UserPage struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
	Users   any   `json:"users"`
}
