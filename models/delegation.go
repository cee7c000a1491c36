package models

const (
	DelegationStatusActive  = "active"
	DelegationStatusRevoked = "revoked"
)

// Delegation represents an owner -> delegate relationship. The table key is
// the (ownerId, delegateId) pair, so a second redemption by the same
// delegate overwrites rather than duplicates. Rows are never deleted;
// revocation is a status transition.
type Delegation struct {
	OwnerID      string `dynamodbav:"ownerId" json:"ownerId"`           // PK
	DelegateID   string `dynamodbav:"delegateId" json:"delegateId"`     // SK
	DelegationID string `dynamodbav:"delegationId" json:"delegationId"` // GSI key for revocation lookups
	Status       string `dynamodbav:"status" json:"status"`             // "active" or "revoked"
	CreatedAt    string `dynamodbav:"createdAt" json:"createdAt"`
}

// DelegationWithProfile joins a delegation with the counterparty's public profile
type DelegationWithProfile struct {
	DelegationID string        `json:"delegationId"`
	Status       string        `json:"status"`
	CreatedAt    string        `json:"createdAt"`
	Profile      PublicProfile `json:"profile"`
}

// DelegationsTable is the DynamoDB table name for delegations
const DelegationsTable = "Delegations"

// DelegationIDIndex is the GSI keyed by delegationId
const DelegationIDIndex = "delegationId-index"

// DelegateIDIndex is the GSI keyed by delegateId (listing owners for a delegate)
const DelegateIDIndex = "delegateId-index"
