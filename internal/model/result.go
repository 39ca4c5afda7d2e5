package model

type GetResultsRequest struct {
	CategorySlug string `json:"category_slug"`
}

type GetResultsResponse struct {
	Categories []CategoryResult `json:"categories"`
}
