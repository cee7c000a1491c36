package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"wingman_server/models"
	"wingman_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// InviteTTL is how long an issued code stays redeemable
const InviteTTL = 10 * time.Minute

// InviteService issues and redeems the single-use codes that convert into
// delegations
type InviteService struct {
	Dynamo      DynamoAPI
	Delegations *DelegationService
	Profiles    *ProfileService

	// Now is swappable in tests; defaults to time.Now
	Now func() time.Time
}

func (s *InviteService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// IssueInvite creates a fresh single-use code for ownerID, expiring in ten
// minutes. Stale codes of the same issuer are soft-expired first so they
// stop counting as redeemable.
func (s *InviteService) IssueInvite(ctx context.Context, ownerID string) (*models.InviteCode, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerId is required")
	}

	s.expireStaleCodes(ctx, ownerID)

	now := s.now().UTC()
	invite := models.InviteCode{
		Code:      utils.GenerateInviteCode(),
		OwnerID:   ownerID,
		ExpiresAt: now.Add(InviteTTL).Format(time.RFC3339),
		MaxUses:   1,
		Uses:      0,
		CreatedAt: now.Format(time.RFC3339),
	}

	// Guard against the astronomically unlikely code collision
	err := s.Dynamo.PutItemIfAbsent(ctx, models.InviteCodesTable, invite, "attribute_not_exists(code)")
	if errors.Is(err, ErrConditionFailed) {
		invite.Code = utils.GenerateInviteCode()
		err = s.Dynamo.PutItemIfAbsent(ctx, models.InviteCodesTable, invite, "attribute_not_exists(code)")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store invite code: %w", err)
	}

	log.Printf("Invite issued for %s, expires %s", ownerID, invite.ExpiresAt)
	return &invite, nil
}

// RedeemInvite converts a code into an active delegation for redeemerID.
// Cases are checked in order: unknown code, expired, exhausted, self
// redemption. The use is then claimed with an atomic conditional increment
// before the delegation is written, so two concurrent redeemers of a
// single-use code can never both end up with a delegation.
func (s *InviteService) RedeemInvite(ctx context.Context, code, redeemerID string) (*models.PublicProfile, error) {
	invite, err := s.getInvite(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, ErrNotFound
	}

	expiresAt, err := time.Parse(time.RFC3339, invite.ExpiresAt)
	if err != nil || s.now().After(expiresAt) {
		return nil, ErrInviteExpired
	}
	if invite.Uses >= invite.MaxUses {
		return nil, ErrInviteExhausted
	}
	if invite.OwnerID == redeemerID {
		return nil, ErrSelfRedemption
	}

	if err := s.claimUse(ctx, invite); err != nil {
		if errors.Is(err, ErrConditionFailed) {
			// Lost the race for the last use
			return nil, ErrInviteExhausted
		}
		return nil, err
	}

	if _, err := s.Delegations.UpsertDelegation(ctx, invite.OwnerID, redeemerID); err != nil {
		return nil, err
	}

	owner := &models.PublicProfile{UserID: invite.OwnerID}
	if s.Profiles != nil {
		if profile, err := s.Profiles.GetPublicProfile(ctx, invite.OwnerID); err == nil {
			owner = profile
		}
	}

	log.Printf("Invite %s redeemed by %s for owner %s", invite.Code, redeemerID, invite.OwnerID)
	return owner, nil
}

// claimUse atomically increments uses while uses < maxUses
func (s *InviteService) claimUse(ctx context.Context, invite *models.InviteCode) error {
	updateExpression := "SET uses = uses + :one"
	conditionExpression := "uses < maxUses"
	key := map[string]types.AttributeValue{
		"code": &types.AttributeValueMemberS{Value: invite.Code},
	}
	expressionValues := map[string]types.AttributeValue{
		":one": &types.AttributeValueMemberN{Value: "1"},
	}

	_, err := s.Dynamo.UpdateItemWithCondition(ctx, models.InviteCodesTable, updateExpression, conditionExpression, key, expressionValues, nil)
	return err
}

// expireStaleCodes marks the issuer's expired unused codes as used so they
// do not linger as "still redeemable". Pure housekeeping: expiry alone
// already makes them unredeemable, so failures here only get logged.
func (s *InviteService) expireStaleCodes(ctx context.Context, ownerID string) {
	keyCondition := "ownerId = :ownerId"
	expressionValues := map[string]types.AttributeValue{
		":ownerId": &types.AttributeValueMemberS{Value: ownerID},
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.InviteCodesTable, models.InviteOwnerIndex, keyCondition, expressionValues, nil, 100)
	if err != nil {
		log.Printf("Failed to query stale invites for %s: %v", ownerID, err)
		return
	}

	now := s.now()
	for _, item := range items {
		var invite models.InviteCode
		if err := attributevalue.UnmarshalMap(item, &invite); err != nil {
			continue
		}
		expiresAt, err := time.Parse(time.RFC3339, invite.ExpiresAt)
		if err != nil || now.Before(expiresAt) || invite.Uses >= invite.MaxUses {
			continue
		}

		updateExpression := "SET uses = :maxUses"
		conditionExpression := "uses < maxUses"
		key := map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: invite.Code},
		}
		values := map[string]types.AttributeValue{
			":maxUses": &types.AttributeValueMemberN{Value: strconv.Itoa(invite.MaxUses)},
		}
		if _, err := s.Dynamo.UpdateItemWithCondition(ctx, models.InviteCodesTable, updateExpression, conditionExpression, key, values, nil); err != nil && !errors.Is(err, ErrConditionFailed) {
			log.Printf("Failed to soft-expire invite %s: %v", invite.Code, err)
		}
	}
}

func (s *InviteService) getInvite(ctx context.Context, code string) (*models.InviteCode, error) {
	if code == "" {
		return nil, nil
	}
	key := map[string]types.AttributeValue{
		"code": &types.AttributeValueMemberS{Value: code},
	}
	item, err := s.Dynamo.GetItem(ctx, models.InviteCodesTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var invite models.InviteCode
	if err := attributevalue.UnmarshalMap(item, &invite); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invite: %w", err)
	}
	return &invite, nil
}
