package model

import (
	"database/sql"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/internal/repository"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/enum"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return t.Time.UTC().Format(DefaultTimeLayout)
}

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	u := User{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		Role:      enum.ToString(user.Role),
		CreatedAt: user.CreatedAt.UTC().Format(DefaultTimeLayout),
	}

	if includeSensitive {
		u.Email = user.Email
	}

	return u
}

func ConvertNominee(nominee *entity.Nominee) Nominee {
	if nominee == nil {
		return Nominee{}
	}

	return Nominee{
		ID:           nominee.ID,
		CategoryID:   nominee.CategoryID,
		Name:         nominee.Name,
		Description:  nominee.Description,
		ImageURL:     nominee.ImageURL,
		DisplayOrder: nominee.DisplayOrder,
	}
}

func ConvertCategory(category *entity.Category) Category {
	if category == nil {
		return Category{}
	}

	c := Category{
		ID:           category.ID,
		Slug:         category.Slug,
		Name:         category.Name,
		Description:  category.Description,
		DisplayOrder: category.DisplayOrder,
		IsActive:     category.IsActive,
		VotingStart:  ConvertNullTime(category.VotingStart),
		VotingEnd:    ConvertNullTime(category.VotingEnd),
	}

	for i := range category.Nominees {
		c.Nominees = append(c.Nominees, ConvertNominee(&category.Nominees[i]))
	}

	return c
}

func ConvertVote(vote *entity.Vote) Vote {
	if vote == nil {
		return Vote{}
	}

	return Vote{
		ID:         vote.ID,
		UserID:     vote.UserID,
		CategoryID: vote.CategoryID,
		NomineeID:  vote.NomineeID,
		IsFinal:    vote.IsFinal,
		CreatedAt:  vote.CreatedAt.UTC().Format(DefaultTimeLayout),
		UpdatedAt:  vote.UpdatedAt.UTC().Format(DefaultTimeLayout),
	}
}

func ConvertBallot(ballot *entity.Ballot) Ballot {
	if ballot == nil {
		return Ballot{}
	}

	return Ballot{
		ID:          ballot.ID,
		UserID:      ballot.UserID,
		IsFinal:     ballot.IsFinal,
		SubmittedAt: ConvertNullTime(ballot.SubmittedAt),
		DisplayName: ballot.DisplayName,
		AvatarURL:   ballot.AvatarURL,
		CreatedAt:   ballot.CreatedAt.UTC().Format(DefaultTimeLayout),
		UpdatedAt:   ballot.UpdatedAt.UTC().Format(DefaultTimeLayout),
	}
}

func ConvertBallotSummary(summary *repository.BallotSummary) BallotSummary {
	if summary == nil {
		return BallotSummary{}
	}

	return BallotSummary{
		Ballot:    ConvertBallot(&summary.Ballot),
		VoteCount: summary.VoteCount,
	}
}
