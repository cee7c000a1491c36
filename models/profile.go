package models

// Profile defines the structure for user profiles
type Profile struct {
	UserID            string `dynamodbav:"userId" json:"userId"`
	NetID             string `dynamodbav:"netid" json:"netid"`
	Email             string `dynamodbav:"email" json:"email"`
	Name              string `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Age               int    `dynamodbav:"age,omitempty" json:"age,omitempty"`
	Year              string `dynamodbav:"year,omitempty" json:"year,omitempty"`
	Major             string `dynamodbav:"major,omitempty" json:"major,omitempty"`
	Gender            string `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	LookingFor        string `dynamodbav:"lookingFor,omitempty" json:"lookingFor,omitempty"`
	PersonalityAnswer string `dynamodbav:"personalityAnswer,omitempty" json:"personalityAnswer,omitempty"`
	CreatedAt         string `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// PublicProfile is the subset of profile fields shared with counterparties
type PublicProfile struct {
	UserID string `dynamodbav:"userId" json:"userId"`
	NetID  string `dynamodbav:"netid" json:"netid"`
	Name   string `dynamodbav:"name,omitempty" json:"name,omitempty"`
}

// IsComplete reports whether onboarding is done. Completeness is derived,
// not stored: a profile is complete iff its name is non-empty.
func (p Profile) IsComplete() bool {
	return p.Name != ""
}

// Public returns the shareable view of the profile
func (p Profile) Public() PublicProfile {
	return PublicProfile{UserID: p.UserID, NetID: p.NetID, Name: p.Name}
}

// ProfilesTable is the DynamoDB table name for user profiles
const ProfilesTable = "Profiles"

// NetIDIndex is the GSI used to look up a profile by netid
const NetIDIndex = "netid-index"
