package errorx

import "net/http"

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	TooManyRequests  Code = 100010

	// Voting eligibility codes
	VotingEnded  Code = 500001
	VotingLocked Code = 500002
	NoPermission Code = 500003

	// Ballot state codes
	BallotFinalized   Code = 500101
	AlreadyFinalized  Code = 500102
	NoVotesToFinalize Code = 500103

	// Vote validation codes
	InvalidNominee   Code = 500201
	CategoryInactive Code = 500202

	// Result codes
	ResultsUnavailable Code = 500301
)

var reasons = map[Code]string{
	Unknown.Code:       "UNKNOWN",
	BadRequest:         "BAD_REQUEST",
	BadResponse:        "BAD_RESPONSE",
	PermissionDenied:   "PERMISSION_DENIED",
	NotFound:           "NOT_FOUND",
	Unauthenticated:    "UNAUTHENTICATED",
	AlreadyExists:      "ALREADY_EXISTS",
	Internal:           "INTERNAL",
	Unavailable:        "UNAVAILABLE",
	TooManyRequests:    "TOO_MANY_REQUESTS",
	VotingEnded:        "VOTING_ENDED",
	VotingLocked:       "VOTING_LOCKED",
	NoPermission:       "NO_PERMISSION",
	BallotFinalized:    "BALLOT_FINALIZED",
	AlreadyFinalized:   "ALREADY_FINALIZED",
	NoVotesToFinalize:  "NO_VOTES_TO_FINALIZE",
	InvalidNominee:     "INVALID_NOMINEE",
	CategoryInactive:   "CATEGORY_INACTIVE",
	ResultsUnavailable: "RESULTS_UNAVAILABLE",
}

// Reason returns the machine-readable name of the code.
func (c Code) Reason() string {
	if r, ok := reasons[c]; ok {
		return r
	}

	return reasons[Unknown.Code]
}

func (c Code) HTTPStatus() int {
	switch c {
	case BadRequest, InvalidNominee, CategoryInactive:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case PermissionDenied, NoPermission, VotingEnded, VotingLocked, ResultsUnavailable:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case AlreadyExists, BallotFinalized, AlreadyFinalized, NoVotesToFinalize:
		return http.StatusConflict
	case TooManyRequests:
		return http.StatusTooManyRequests
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
