package model

type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type Category struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	VotingStart  string    `json:"voting_start,omitempty"`
	VotingEnd    string    `json:"voting_end,omitempty"`
	Nominees     []Nominee `json:"nominees,omitempty"`
}

type Nominee struct {
	ID           string `json:"id"`
	CategoryID   string `json:"category_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
}

type Vote struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	CategoryID string `json:"category_id"`
	NomineeID  string `json:"nominee_id"`
	IsFinal    bool   `json:"is_final"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type Ballot struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	IsFinal     bool   `json:"is_final"`
	SubmittedAt string `json:"submitted_at,omitempty"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type BallotSummary struct {
	Ballot
	VoteCount int64 `json:"vote_count"`
}

type NomineeResult struct {
	Nominee
	Votes int64 `json:"votes"`
}

type CategoryResult struct {
	Category
	TotalVotes int64           `json:"total_votes"`
	Results    []NomineeResult `json:"results"`
}

type CategoryStatistic struct {
	CategoryID string `json:"category_id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	VoteCount  int64  `json:"vote_count"`
}
