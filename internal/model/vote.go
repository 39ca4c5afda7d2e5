package model

type GetVotingStatusRequest struct{}

type GetVotingStatusResponse struct {
	State           string `json:"state"`
	Now             string `json:"now"`
	Deadline        string `json:"deadline"`
	LiveVotingStart string `json:"live_voting_start"`
	LockEnabled     bool   `json:"lock_enabled"`
	IsAdmin         bool   `json:"is_admin"`
	CanVote         bool   `json:"can_vote"`
}

type VoteItem struct {
	CategoryID string `json:"category_id"`
	NomineeID  string `json:"nominee_id"`
}

type VoteFailure struct {
	CategoryID string `json:"category_id"`
	NomineeID  string `json:"nominee_id"`
	Code       int    `json:"code"`
	Reason     string `json:"reason"`
	Error      string `json:"error"`
}

type SubmitVoteRequest struct {
	CategoryID string `json:"category_id"`
	NomineeID  string `json:"nominee_id"`
}

type SubmitVoteResponse struct {
	Vote Vote `json:"vote"`
}

type SubmitVotesRequest struct {
	Votes []VoteItem `json:"votes"`
}

type SubmitVotesResponse struct {
	Votes    []Vote        `json:"votes"`
	Failures []VoteFailure `json:"failures"`
}

type GetMyVotesRequest struct {
	CategoryID string `json:"category_id"`
}

type GetMyVotesResponse struct {
	Votes []Vote `json:"votes"`
}
