package services

import (
	"context"
	"fmt"
	"sort"

	"wingman_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchService reads the materialized match rows and enriches them for display
type MatchService struct {
	Dynamo      DynamoAPI
	Delegations *DelegationService
	Profiles    *ProfileService
	Swipes      *SwipeService
}

// GetMatchesForOwner lists ownerID's matches, newest first, with the
// counterpart's public profile, photos and the recorded right-swipe tag.
// The requester must be the owner or one of their active delegates.
func (ms *MatchService) GetMatchesForOwner(ctx context.Context, ownerID, requesterID string) ([]models.MatchWithProfile, error) {
	if requesterID != ownerID {
		authorized, err := ms.Delegations.HasActiveDelegation(ctx, ownerID, requesterID)
		if err != nil {
			return nil, err
		}
		if !authorized {
			return nil, ErrForbidden
		}
	}

	matches, err := ms.getMatchRows(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var tags map[string]string
	if ms.Swipes != nil {
		tags, _ = ms.Swipes.GetRightSwipeTags(ctx, ownerID)
	}

	enriched := make([]models.MatchWithProfile, 0, len(matches))
	for _, m := range matches {
		counterpartID := m.UserB
		if counterpartID == ownerID {
			counterpartID = m.UserA
		}

		entry := models.MatchWithProfile{
			MatchID:   m.MatchID,
			MatchedAt: m.CreatedAt,
			Profile:   models.PublicProfile{UserID: counterpartID},
			Tag:       tags[counterpartID],
		}
		if ms.Profiles != nil {
			if profile, err := ms.Profiles.GetPublicProfile(ctx, counterpartID); err == nil {
				entry.Profile = *profile
			}
			if ms.Profiles.Photos != nil {
				entry.Photos, _ = ms.Profiles.Photos.GetPhotosForUser(ctx, counterpartID)
			}
		}
		enriched = append(enriched, entry)
	}

	sort.Slice(enriched, func(i, j int) bool {
		return enriched[i].MatchedAt > enriched[j].MatchedAt
	})
	return enriched, nil
}

// getMatchRows queries both sides of the ordered pair key
func (ms *MatchService) getMatchRows(ctx context.Context, userID string) ([]models.Match, error) {
	expressionValues := map[string]types.AttributeValue{
		":id": &types.AttributeValueMemberS{Value: userID},
	}

	asA, err := ms.Dynamo.QueryItems(ctx, models.MatchesTable, "userA = :id", expressionValues, nil, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	asB, err := ms.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, models.MatchUserBIndex, "userB = :id", expressionValues, nil, 100)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches index: %w", err)
	}

	var matches []models.Match
	if err := attributevalue.UnmarshalListOfMaps(append(asA, asB...), &matches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
	}
	return matches, nil
}
