package models

// MaxPhotoSlots is the number of ordered photo slots per profile
const MaxPhotoSlots = 5

// Photo is one ordered photo slot on a profile. The table key is
// (userId, position), so uploading to an occupied slot replaces it.
type Photo struct {
	UserID      string `dynamodbav:"userId" json:"userId"`     // PK
	Position    int    `dynamodbav:"position" json:"position"` // SK, 0-4
	StoragePath string `dynamodbav:"storagePath" json:"storagePath"`
	PromptText  string `dynamodbav:"promptText,omitempty" json:"promptText,omitempty"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	URL         string `dynamodbav:"-" json:"url,omitempty"` // presigned, never stored
}

// PhotosTable is the DynamoDB table name for profile photos
const PhotosTable = "Photos"
