package model

type CreateNomineeRequest struct {
	CategoryID   string `json:"category_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
}

type CreateNomineeResponse struct {
	Nominee Nominee `json:"nominee"`
}

type UpdateNomineeRequest struct {
	ID           string  `json:"id"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"image_url"`
	DisplayOrder *int    `json:"display_order"`
}

type UpdateNomineeResponse struct{}

type DeleteNomineeRequest struct {
	ID string `json:"id"`
}

type DeleteNomineeResponse struct{}
