package domain

import "context"

const (
	DefaultPage    = 1
	DefaultPerPage = 15
	MaxPerPage     = 1000

	SortAsc  = "asc"
	SortDesc = "desc"

	// SortCreatedAt is the fallback ordering field for every entity.
	SortCreatedAt = "created_at"
)

// SearchInput is what a caller asks for. Zero Page/PerPage mean the defaults;
// PerPage above MaxPerPage is rejected.
type SearchInput struct {
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	Sort    string `json:"sort,omitempty"`
	SortDir string `json:"sort_dir,omitempty"`
	Filter  string `json:"filter,omitempty"`
}

// SearchOutput is one page of a search. Sort and SortDir report the ordering
// that was applied, which differs from the input when the input was unusable.
type SearchOutput[T any] struct {
	Items       []T    `json:"items"`
	Total       int    `json:"total"`
	CurrentPage int    `json:"current_page"`
	PerPage     int    `json:"per_page"`
	Sort        string `json:"sort"`
	SortDir     string `json:"sort_dir"`
	Filter      string `json:"filter"`
}

// Page is the shape returned to API consumers.
type Page[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	LastPage    int `json:"last_page"`
}

// Repository is the contract every storage backend implements for entity T
// created from props P.
type Repository[T any, P any] interface {
	// Create builds an unsaved entity with a fresh id and timestamps.
	Create(props P) *T
	Insert(ctx context.Context, entity *T) (*T, error)
	FindByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, entity *T) (*T, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, input SearchInput) (SearchOutput[T], error)
}
