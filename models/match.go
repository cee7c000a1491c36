package models

// Match is a derived fact: the unordered pair of users with reciprocal
// right swipes, stored as an ordered pair (UserA < UserB lexicographically)
// so exactly one row can exist per pair.
type Match struct {
	UserA     string `dynamodbav:"userA" json:"userA"` // PK, smaller id
	UserB     string `dynamodbav:"userB" json:"userB"` // SK, larger id
	MatchID   string `dynamodbav:"matchId" json:"matchId"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// MatchWithProfile is a match enriched with the counterpart's public
// profile, photos and the right-swipe tag recorded for them
type MatchWithProfile struct {
	MatchID   string        `json:"matchId"`
	MatchedAt string        `json:"matchedAt"`
	Profile   PublicProfile `json:"profile"`
	Photos    []Photo       `json:"photos,omitempty"`
	Tag       string        `json:"tag,omitempty"`
}

// MatchesTable is the DynamoDB table name for matches
const MatchesTable = "Matches"

// MatchUserBIndex is the GSI keyed by userB, for listing matches from
// either side of the pair
const MatchUserBIndex = "userB-index"
