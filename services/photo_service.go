package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"wingman_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// PhotoService manages the five ordered photo slots on a profile. Bytes
// live in S3 behind presigned URLs; only slot metadata is stored here.
type PhotoService struct {
	Dynamo DynamoAPI

	// ReadURL resolves a storage path to a fetchable URL. Wired to the S3
	// presigner in main; left nil in tests.
	ReadURL func(key string) (string, error)
}

// NewStoragePath builds the S3 object key for a fresh upload
func NewStoragePath(userID string, position int, fileName string) string {
	ext := "jpg"
	if i := strings.LastIndex(fileName, "."); i >= 0 && i < len(fileName)-1 {
		ext = fileName[i+1:]
	}
	return fmt.Sprintf("profile-photos/%s/%d-%s.%s", userID, position, uuid.NewString()[:8], ext)
}

// SavePhoto records photo metadata at a slot, replacing whatever occupied it
func (s *PhotoService) SavePhoto(ctx context.Context, userID string, position int, storagePath, promptText string) (*models.Photo, error) {
	if position < 0 || position >= models.MaxPhotoSlots {
		return nil, fmt.Errorf("position must be between 0 and %d", models.MaxPhotoSlots-1)
	}

	// Drop the old slot row so a replaced photo's metadata never lingers
	existing, err := s.getPhoto(ctx, userID, position)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		key := map[string]types.AttributeValue{
			"userId":   &types.AttributeValueMemberS{Value: userID},
			"position": &types.AttributeValueMemberN{Value: strconv.Itoa(position)},
		}
		if err := s.Dynamo.DeleteItem(ctx, models.PhotosTable, key); err != nil {
			return nil, err
		}
	}

	photo := models.Photo{
		UserID:      userID,
		Position:    position,
		StoragePath: storagePath,
		PromptText:  promptText,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Dynamo.PutItem(ctx, models.PhotosTable, photo); err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}
	return &photo, nil
}

// PhotoPlacement is one slot assignment in a reorder request
type PhotoPlacement struct {
	StoragePath string `json:"storagePath"`
	Position    int    `json:"position"`
	PromptText  string `json:"promptText,omitempty"`
}

// ReorderPhotos rewrites slot positions and prompt text. Every referenced
// storage path must already belong to userID, otherwise nothing is changed.
func (s *PhotoService) ReorderPhotos(ctx context.Context, userID string, placements []PhotoPlacement) error {
	current, err := s.GetPhotosForUser(ctx, userID)
	if err != nil {
		return err
	}

	owned := make(map[string]models.Photo, len(current))
	for _, p := range current {
		owned[p.StoragePath] = p
	}
	for _, placement := range placements {
		if placement.Position < 0 || placement.Position >= models.MaxPhotoSlots {
			return fmt.Errorf("position must be between 0 and %d", models.MaxPhotoSlots-1)
		}
		if _, ok := owned[placement.StoragePath]; !ok {
			return ErrForbidden
		}
	}

	// Clear current slots, then rewrite from the placements
	for _, p := range current {
		key := map[string]types.AttributeValue{
			"userId":   &types.AttributeValueMemberS{Value: userID},
			"position": &types.AttributeValueMemberN{Value: strconv.Itoa(p.Position)},
		}
		if err := s.Dynamo.DeleteItem(ctx, models.PhotosTable, key); err != nil {
			return err
		}
	}
	for _, placement := range placements {
		photo := owned[placement.StoragePath]
		photo.Position = placement.Position
		photo.PromptText = placement.PromptText
		if err := s.Dynamo.PutItem(ctx, models.PhotosTable, photo); err != nil {
			return fmt.Errorf("failed to reorder photo: %w", err)
		}
	}
	return nil
}

// GetPhotosForUser returns a user's photos ordered by slot position, with
// presigned read URLs when a resolver is wired
func (s *PhotoService) GetPhotosForUser(ctx context.Context, userID string) ([]models.Photo, error) {
	keyCondition := "userId = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.PhotosTable, keyCondition, expressionValues, nil, int32(models.MaxPhotoSlots))
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}

	var photos []models.Photo
	if err := attributevalue.UnmarshalListOfMaps(items, &photos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal photos: %w", err)
	}

	sort.Slice(photos, func(i, j int) bool { return photos[i].Position < photos[j].Position })

	if s.ReadURL != nil {
		for i := range photos {
			if url, err := s.ReadURL(photos[i].StoragePath); err == nil {
				photos[i].URL = url
			}
		}
	}
	return photos, nil
}

func (s *PhotoService) getPhoto(ctx context.Context, userID string, position int) (*models.Photo, error) {
	key := map[string]types.AttributeValue{
		"userId":   &types.AttributeValueMemberS{Value: userID},
		"position": &types.AttributeValueMemberN{Value: strconv.Itoa(position)},
	}
	item, err := s.Dynamo.GetItem(ctx, models.PhotosTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var photo models.Photo
	if err := attributevalue.UnmarshalMap(item, &photo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal photo: %w", err)
	}
	return &photo, nil
}
