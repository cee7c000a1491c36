package services

import (
	"context"
	"fmt"

	"wingman_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

// FeedLimit caps the number of candidates returned per feed request
const FeedLimit = 20

// FeedService assembles the candidate pool a delegate swipes through on an
// owner's behalf
type FeedService struct {
	Dynamo      DynamoAPI
	Delegations *DelegationService
	Swipes      *SwipeService
	Photos      *PhotoService
}

// FeedCandidate is one swipeable profile with its ordered photos. Only the
// public fields are projected; email and account metadata never leave the
// profile row.
type FeedCandidate struct {
	UserID            string         `json:"userId"`
	Name              string         `json:"name"`
	Age               int            `json:"age,omitempty"`
	Year              string         `json:"year,omitempty"`
	Major             string         `json:"major,omitempty"`
	Gender            string         `json:"gender,omitempty"`
	LookingFor        string         `json:"lookingFor,omitempty"`
	PersonalityAnswer string         `json:"personalityAnswer,omitempty"`
	Photos            []models.Photo `json:"photos,omitempty"`
}

// GetFeed returns up to FeedLimit candidate profiles for delegateID acting
// for ownerID. The same guards as the swipe ledger apply: no self-feed, and
// an active delegation is required. Candidates exclude the owner, the
// delegate, anyone the ledger already covers, and incomplete profiles.
func (fs *FeedService) GetFeed(ctx context.Context, ownerID, delegateID string) ([]FeedCandidate, error) {
	if delegateID == ownerID {
		return nil, ErrSelfSwipe
	}

	authorized, err := fs.Delegations.HasActiveDelegation(ctx, ownerID, delegateID)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, ErrNotAuthorized
	}

	swiped, err := fs.Swipes.GetSwipedTargets(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	items, err := fs.Dynamo.ScanItems(ctx, models.ProfilesTable, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to scan profiles: %w", err)
	}

	var profiles []models.Profile
	if err := attributevalue.UnmarshalListOfMaps(items, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profiles: %w", err)
	}

	candidates := make([]FeedCandidate, 0, FeedLimit)
	for _, p := range profiles {
		if p.UserID == ownerID || p.UserID == delegateID {
			continue
		}
		if swiped[p.UserID] {
			continue
		}
		if !p.IsComplete() {
			continue
		}

		candidate := FeedCandidate{
			UserID:            p.UserID,
			Name:              p.Name,
			Age:               p.Age,
			Year:              p.Year,
			Major:             p.Major,
			Gender:            p.Gender,
			LookingFor:        p.LookingFor,
			PersonalityAnswer: p.PersonalityAnswer,
		}
		if fs.Photos != nil {
			candidate.Photos, _ = fs.Photos.GetPhotosForUser(ctx, p.UserID)
		}
		candidates = append(candidates, candidate)
		if len(candidates) == FeedLimit {
			break
		}
	}
	return candidates, nil
}
