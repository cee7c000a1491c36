package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"wingman_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// DelegationService tracks owner -> delegate relationships and is the
// single authorization gate for all proxy actions
type DelegationService struct {
	Dynamo   DynamoAPI
	Profiles *ProfileService
}

// DelegationList is the two-sided view of a user's delegations
type DelegationList struct {
	Delegates []models.DelegationWithProfile `json:"delegates"` // user is the owner
	Owners    []models.DelegationWithProfile `json:"owners"`    // user is the delegate
}

// UpsertDelegation creates or reactivates the delegation for the
// (owner, delegate) pair. The pair is the table key, so repeated
// redemptions collapse into one row.
func (s *DelegationService) UpsertDelegation(ctx context.Context, ownerID, delegateID string) (*models.Delegation, error) {
	delegation := models.Delegation{
		OwnerID:      ownerID,
		DelegateID:   delegateID,
		DelegationID: uuid.NewString(),
		Status:       models.DelegationStatusActive,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	// Reuse the existing delegationId so revocation links stay stable
	if existing, err := s.getDelegation(ctx, ownerID, delegateID); err != nil {
		return nil, err
	} else if existing != nil {
		delegation.DelegationID = existing.DelegationID
		delegation.CreatedAt = existing.CreatedAt
	}

	if err := s.Dynamo.PutItem(ctx, models.DelegationsTable, delegation); err != nil {
		return nil, fmt.Errorf("failed to upsert delegation: %w", err)
	}

	log.Printf("Delegation active: %s -> %s", ownerID, delegateID)
	return &delegation, nil
}

// HasActiveDelegation reports whether delegateID may currently act for ownerID
func (s *DelegationService) HasActiveDelegation(ctx context.Context, ownerID, delegateID string) (bool, error) {
	delegation, err := s.getDelegation(ctx, ownerID, delegateID)
	if err != nil {
		return false, err
	}
	return delegation != nil && delegation.Status == models.DelegationStatusActive, nil
}

// ListDelegations returns the active delegations on both sides of userID,
// each joined with the counterparty's public profile
func (s *DelegationService) ListDelegations(ctx context.Context, userID string) (*DelegationList, error) {
	asOwner, err := s.queryActive(ctx, "", "ownerId = :id", userID)
	if err != nil {
		return nil, err
	}
	asDelegate, err := s.queryActive(ctx, models.DelegateIDIndex, "delegateId = :id", userID)
	if err != nil {
		return nil, err
	}

	list := &DelegationList{
		Delegates: make([]models.DelegationWithProfile, 0, len(asOwner)),
		Owners:    make([]models.DelegationWithProfile, 0, len(asDelegate)),
	}
	for _, d := range asOwner {
		list.Delegates = append(list.Delegates, s.withProfile(ctx, d, d.DelegateID))
	}
	for _, d := range asDelegate {
		list.Owners = append(list.Owners, s.withProfile(ctx, d, d.OwnerID))
	}
	return list, nil
}

// RevokeDelegation transitions a delegation to revoked. Only the owner may
// revoke; revoking an already-revoked delegation is a no-op.
func (s *DelegationService) RevokeDelegation(ctx context.Context, delegationID, requesterID string) error {
	delegation, err := s.getDelegationByID(ctx, delegationID)
	if err != nil {
		return err
	}
	if delegation == nil {
		return ErrNotFound
	}
	if delegation.OwnerID != requesterID {
		return ErrForbidden
	}
	if delegation.Status == models.DelegationStatusRevoked {
		return nil
	}

	updateExpression := "SET #s = :status"
	key := map[string]types.AttributeValue{
		"ownerId":    &types.AttributeValueMemberS{Value: delegation.OwnerID},
		"delegateId": &types.AttributeValueMemberS{Value: delegation.DelegateID},
	}
	expressionValues := map[string]types.AttributeValue{
		":status": &types.AttributeValueMemberS{Value: models.DelegationStatusRevoked},
	}
	expressionNames := map[string]string{"#s": "status"}

	if _, err := s.Dynamo.UpdateItem(ctx, models.DelegationsTable, updateExpression, key, expressionValues, expressionNames); err != nil {
		return fmt.Errorf("failed to revoke delegation: %w", err)
	}

	log.Printf("Delegation revoked: %s -> %s", delegation.OwnerID, delegation.DelegateID)
	return nil
}

func (s *DelegationService) getDelegation(ctx context.Context, ownerID, delegateID string) (*models.Delegation, error) {
	key := map[string]types.AttributeValue{
		"ownerId":    &types.AttributeValueMemberS{Value: ownerID},
		"delegateId": &types.AttributeValueMemberS{Value: delegateID},
	}
	item, err := s.Dynamo.GetItem(ctx, models.DelegationsTable, key)
	if err != nil {
		if err == ErrItemNotFound {
			return nil, nil
		}
		return nil, err
	}

	var delegation models.Delegation
	if err := attributevalue.UnmarshalMap(item, &delegation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delegation: %w", err)
	}
	return &delegation, nil
}

func (s *DelegationService) getDelegationByID(ctx context.Context, delegationID string) (*models.Delegation, error) {
	keyCondition := "delegationId = :id"
	expressionValues := map[string]types.AttributeValue{
		":id": &types.AttributeValueMemberS{Value: delegationID},
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.DelegationsTable, models.DelegationIDIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to query delegation index: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	var delegation models.Delegation
	if err := attributevalue.UnmarshalMap(items[0], &delegation); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delegation: %w", err)
	}
	return &delegation, nil
}

func (s *DelegationService) queryActive(ctx context.Context, indexName, keyCondition, id string) ([]models.Delegation, error) {
	expressionValues := map[string]types.AttributeValue{
		":id": &types.AttributeValueMemberS{Value: id},
	}

	var items []map[string]types.AttributeValue
	var err error
	if indexName == "" {
		items, err = s.Dynamo.QueryItems(ctx, models.DelegationsTable, keyCondition, expressionValues, nil, 100)
	} else {
		items, err = s.Dynamo.QueryItemsWithIndex(ctx, models.DelegationsTable, indexName, keyCondition, expressionValues, nil, 100)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query delegations: %w", err)
	}

	var delegations []models.Delegation
	if err := attributevalue.UnmarshalListOfMaps(items, &delegations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delegations: %w", err)
	}

	active := delegations[:0]
	for _, d := range delegations {
		if d.Status == models.DelegationStatusActive {
			active = append(active, d)
		}
	}
	return active, nil
}

func (s *DelegationService) withProfile(ctx context.Context, d models.Delegation, counterpartyID string) models.DelegationWithProfile {
	entry := models.DelegationWithProfile{
		DelegationID: d.DelegationID,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
		Profile:      models.PublicProfile{UserID: counterpartyID},
	}
	if s.Profiles != nil {
		if profile, err := s.Profiles.GetPublicProfile(ctx, counterpartyID); err == nil {
			entry.Profile = *profile
		}
	}
	return entry
}
