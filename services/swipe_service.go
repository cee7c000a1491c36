package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"wingman_server/models"
	"wingman_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// MatchNotifier pushes realtime match events; implemented by the socket hub
type MatchNotifier interface {
	NotifyMatch(userA, userB, matchID string)
}

// SwipeService records delegate decisions in the append-only swipe ledger
// and derives matches from reciprocal right swipes
type SwipeService struct {
	Dynamo      DynamoAPI
	Delegations *DelegationService
	Notifier    MatchNotifier
}

// SwipeResult reports what a RecordSwipe call did
type SwipeResult struct {
	AlreadySwiped bool `json:"alreadySwiped"`
	Matched       bool `json:"matched"`
}

// RecordSwipe stores one decision made by delegateID on ownerID's behalf.
// Rejections are checked in order: the three self-swipe variants, then the
// delegation gate. A duplicate (owner, target) pair is a soft success. A
// newly inserted right swipe triggers match detection synchronously.
func (s *SwipeService) RecordSwipe(ctx context.Context, ownerID, delegateID, targetID, direction, tag string) (*SwipeResult, error) {
	if delegateID == ownerID {
		return nil, ErrSelfSwipe
	}
	if targetID == ownerID {
		return nil, ErrOwnerIsTarget
	}
	if targetID == delegateID {
		return nil, ErrDelegateIsTarget
	}
	if direction != models.SwipeDirectionLeft && direction != models.SwipeDirectionRight {
		return nil, ErrInvalidDirection
	}

	authorized, err := s.Delegations.HasActiveDelegation(ctx, ownerID, delegateID)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, ErrNotAuthorized
	}

	swipe := models.Swipe{
		OwnerID:    ownerID,
		TargetID:   targetID,
		DelegateID: delegateID,
		Direction:  direction,
		Tag:        tag,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	err = s.Dynamo.PutItemIfAbsent(ctx, models.SwipesTable, swipe, "attribute_not_exists(ownerId)")
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			// The ledger already holds a decision for this pair
			return &SwipeResult{AlreadySwiped: true}, nil
		}
		return nil, err
	}

	result := &SwipeResult{}
	if direction == models.SwipeDirectionRight {
		result.Matched, err = s.checkAndCreateMatch(ctx, ownerID, targetID)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// checkAndCreateMatch looks for the reciprocal right swipe and, if present,
// materializes the canonical match row. Reports true when the pair is
// matched, whether or not this call created the row: two reciprocal swipes
// landing concurrently may both reach the put, and the loser's rejected
// duplicate means someone else already made the pair real.
func (s *SwipeService) checkAndCreateMatch(ctx context.Context, ownerID, targetID string) (bool, error) {
	reciprocal, err := s.getSwipe(ctx, targetID, ownerID)
	if err != nil {
		return false, err
	}
	if reciprocal == nil || reciprocal.Direction != models.SwipeDirectionRight {
		return false, nil
	}

	a, b := utils.CanonicalPair(ownerID, targetID)
	match := models.Match{
		UserA:     a,
		UserB:     b,
		MatchID:   uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	err = s.Dynamo.PutItemIfAbsent(ctx, models.MatchesTable, match, "attribute_not_exists(userA)")
	if err != nil && !errors.Is(err, ErrConditionFailed) {
		return false, fmt.Errorf("failed to create match: %w", err)
	}
	if err == nil {
		log.Printf("Match created: %s and %s", a, b)
		if s.Notifier != nil {
			s.Notifier.NotifyMatch(a, b, match.MatchID)
		}
	}
	return true, nil
}

// GetSwipedTargets returns every target ownerID's ledger already covers
func (s *SwipeService) GetSwipedTargets(ctx context.Context, ownerID string) (map[string]bool, error) {
	keyCondition := "ownerId = :ownerId"
	expressionValues := map[string]types.AttributeValue{
		":ownerId": &types.AttributeValueMemberS{Value: ownerID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.SwipesTable, keyCondition, expressionValues, nil, 500)
	if err != nil {
		return nil, fmt.Errorf("failed to query swipes: %w", err)
	}

	swiped := make(map[string]bool, len(items))
	for _, item := range items {
		var swipe models.Swipe
		if err := attributevalue.UnmarshalMap(item, &swipe); err != nil {
			continue
		}
		swiped[swipe.TargetID] = true
	}
	return swiped, nil
}

// GetRightSwipeTags maps ownerID's right-swiped targets to the tag recorded
// at swipe time
func (s *SwipeService) GetRightSwipeTags(ctx context.Context, ownerID string) (map[string]string, error) {
	keyCondition := "ownerId = :ownerId"
	expressionValues := map[string]types.AttributeValue{
		":ownerId": &types.AttributeValueMemberS{Value: ownerID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.SwipesTable, keyCondition, expressionValues, nil, 500)
	if err != nil {
		return nil, fmt.Errorf("failed to query swipes: %w", err)
	}

	tags := make(map[string]string)
	for _, item := range items {
		var swipe models.Swipe
		if err := attributevalue.UnmarshalMap(item, &swipe); err != nil {
			continue
		}
		if swipe.Direction == models.SwipeDirectionRight {
			tags[swipe.TargetID] = swipe.Tag
		}
	}
	return tags, nil
}

func (s *SwipeService) getSwipe(ctx context.Context, ownerID, targetID string) (*models.Swipe, error) {
	key := map[string]types.AttributeValue{
		"ownerId":  &types.AttributeValueMemberS{Value: ownerID},
		"targetId": &types.AttributeValueMemberS{Value: targetID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.SwipesTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var swipe models.Swipe
	if err := attributevalue.UnmarshalMap(item, &swipe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal swipe: %w", err)
	}
	return &swipe, nil
}
