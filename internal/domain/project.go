package domain

// Project is a remote tracker project. Work item ids are scoped to it.
type Project struct {
	ID          string
	Name        string
	Description string
	State       string
}
