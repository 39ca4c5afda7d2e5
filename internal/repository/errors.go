package repository

import "errors"

var (
	ErrBallotFinalized  = errors.New("ballot is finalized")
	ErrAlreadyFinalized = errors.New("ballot is already finalized")
	ErrNoVotes          = errors.New("no votes to finalize")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInactive = errors.New("category is inactive")
	ErrInvalidNominee   = errors.New("nominee does not belong to category")
)
