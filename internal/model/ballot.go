package model

type GetMyBallotRequest struct{}

type GetMyBallotResponse struct {
	// Ballot is nil until the first vote.
	Ballot *Ballot `json:"ballot"`
	State  string  `json:"state"`
}

type FinalizeBallotRequest struct{}

type FinalizeBallotResponse struct {
	Ballot Ballot `json:"ballot"`
}

type GetListBallotRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetListBallotResponse struct {
	Ballots []BallotSummary `json:"ballots"`
}

type GetStatisticRequest struct{}

type GetStatisticResponse struct {
	TotalUsers      int64               `json:"total_users"`
	TotalBallots    int64               `json:"total_ballots"`
	FinalizedBallot int64               `json:"finalized_ballots"`
	TotalVotes      int64               `json:"total_votes"`
	Categories      []CategoryStatistic `json:"categories"`
}
