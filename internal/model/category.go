package model

type GetListCategoryRequest struct {
	IncludeNominees bool `json:"include_nominees"`
}

type GetListCategoryResponse struct {
	Categories []Category `json:"categories"`
}

type GetCategoryRequest struct {
	Slug string `json:"slug"`
}

type GetCategoryResponse struct {
	Category Category `json:"category"`
}

type GetAllCategoryRequest struct{}

type GetAllCategoryResponse struct {
	Categories []Category `json:"categories"`
}

// Voting times are RFC3339 strings, an empty string means no bound.
type CreateCategoryRequest struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
	VotingStart  string `json:"voting_start"`
	VotingEnd    string `json:"voting_end"`
}

type CreateCategoryResponse struct {
	Category Category `json:"category"`
}

// Nil fields are left unchanged.
type UpdateCategoryRequest struct {
	ID           string  `json:"id"`
	Slug         *string `json:"slug"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
	VotingStart  *string `json:"voting_start"`
	VotingEnd    *string `json:"voting_end"`
}

type UpdateCategoryResponse struct{}

type DeleteCategoryRequest struct {
	ID string `json:"id"`
}

type DeleteCategoryResponse struct{}
