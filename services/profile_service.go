package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"wingman_server/models"
	"wingman_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type ProfileService struct {
	Dynamo DynamoAPI
	Photos *PhotoService
}

// ResolveOrCreateProfile maps a verified external identity onto a profile
// row. The netid is derived from the email local part; one netid can back
// only one account, so a netid already bound to a different userId fails
// with ErrNetIDTaken and writes nothing.
func (ps *ProfileService) ResolveOrCreateProfile(ctx context.Context, userID, email string) (*models.Profile, error) {
	netid := utils.NetIDFromEmail(email)
	if userID == "" || netid == "" {
		return nil, fmt.Errorf("userId and a valid email are required")
	}

	existing, err := ps.getProfileByNetID(ctx, netid)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.UserID != userID {
		log.Printf("netid %s already bound to another account, rejecting %s", netid, userID)
		return nil, ErrNetIDTaken
	}

	// The netid lookup misses when the email local part changed; the row
	// keyed by userId is still the same account
	if existing == nil {
		existing, err = ps.getProfileByID(ctx, userID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	profile := models.Profile{
		UserID:    userID,
		NetID:     netid,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if existing != nil {
		// Keep everything the user already filled in
		profile = *existing
		profile.NetID = netid
		profile.Email = strings.ToLower(strings.TrimSpace(email))
	}

	if err := ps.Dynamo.PutItem(ctx, models.ProfilesTable, profile); err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return &profile, nil
}

// GetProfile fetches a profile with its ordered photos
func (ps *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, []models.Photo, error) {
	profile, err := ps.getProfileByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	var photos []models.Photo
	if ps.Photos != nil {
		photos, err = ps.Photos.GetPhotosForUser(ctx, userID)
		if err != nil {
			return nil, nil, err
		}
	}
	return profile, photos, nil
}

// ProfileUpdate carries the editable profile fields
type ProfileUpdate struct {
	Name              string `json:"name"`
	Age               int    `json:"age"`
	Year              string `json:"year"`
	Major             string `json:"major"`
	Gender            string `json:"gender"`
	LookingFor        string `json:"lookingFor"`
	PersonalityAnswer string `json:"personalityAnswer"`
}

var validYears = map[string]bool{
	"Freshman":  true,
	"Sophomore": true,
	"Junior":    true,
	"Senior":    true,
	"Graduate":  true,
	"Other":     true,
}

// Validate checks the update's shape before any write
func (u ProfileUpdate) Validate() error {
	if u.Name == "" || len(u.Name) > 80 {
		return fmt.Errorf("name is required and must be at most 80 characters")
	}
	if u.Age < 17 || u.Age > 99 {
		return fmt.Errorf("age must be between 17 and 99")
	}
	if !validYears[u.Year] {
		return fmt.Errorf("year must be one of Freshman, Sophomore, Junior, Senior, Graduate, Other")
	}
	if u.Major == "" || len(u.Major) > 100 {
		return fmt.Errorf("major is required and must be at most 100 characters")
	}
	if u.Gender == "" || u.LookingFor == "" {
		return fmt.Errorf("gender and lookingFor are required")
	}
	if len(u.PersonalityAnswer) > 300 {
		return fmt.Errorf("personalityAnswer must be at most 300 characters")
	}
	return nil
}

// UpdateProfile applies an onboarding/edit update to an existing profile
func (ps *ProfileService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.Profile, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	updateExpression := "SET #n = :name, age = :age, #y = :year, major = :major, gender = :gender, lookingFor = :lookingFor, personalityAnswer = :personality"
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	expressionValues := map[string]types.AttributeValue{
		":name":        &types.AttributeValueMemberS{Value: update.Name},
		":age":         &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", update.Age)},
		":year":        &types.AttributeValueMemberS{Value: update.Year},
		":major":       &types.AttributeValueMemberS{Value: update.Major},
		":gender":      &types.AttributeValueMemberS{Value: update.Gender},
		":lookingFor":  &types.AttributeValueMemberS{Value: update.LookingFor},
		":personality": &types.AttributeValueMemberS{Value: update.PersonalityAnswer},
	}
	expressionNames := map[string]string{
		"#n": "name",
		"#y": "year",
	}

	attrs, err := ps.Dynamo.UpdateItem(ctx, models.ProfilesTable, updateExpression, key, expressionValues, expressionNames)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	var profile models.Profile
	if err := attributevalue.UnmarshalMap(attrs, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated profile: %w", err)
	}
	return &profile, nil
}

// GetPublicProfile returns the shareable fields for a user, ErrNotFound if absent
func (ps *ProfileService) GetPublicProfile(ctx context.Context, userID string) (*models.PublicProfile, error) {
	profile, err := ps.getProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	public := profile.Public()
	return &public, nil
}

func (ps *ProfileService) getProfileByID(ctx context.Context, userID string) (*models.Profile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := ps.Dynamo.GetItem(ctx, models.ProfilesTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var profile models.Profile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// getProfileByNetID looks up a profile through the netid GSI; nil when unbound
func (ps *ProfileService) getProfileByNetID(ctx context.Context, netid string) (*models.Profile, error) {
	keyCondition := "netid = :netid"
	expressionValues := map[string]types.AttributeValue{
		":netid": &types.AttributeValueMemberS{Value: netid},
	}

	items, err := ps.Dynamo.QueryItemsWithIndex(ctx, models.ProfilesTable, models.NetIDIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to query netid index: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	var profile models.Profile
	if err := attributevalue.UnmarshalMap(items[0], &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}
