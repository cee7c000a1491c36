package models

// InviteCode is a short-lived single-use token that converts into a
// delegation when redeemed
type InviteCode struct {
	Code      string `dynamodbav:"code" json:"code"` // PK
	OwnerID   string `dynamodbav:"ownerId" json:"ownerId"`
	ExpiresAt string `dynamodbav:"expiresAt" json:"expiresAt"`
	MaxUses   int    `dynamodbav:"maxUses" json:"maxUses"`
	Uses      int    `dynamodbav:"uses" json:"uses"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// InviteCodesTable is the DynamoDB table name for invite codes
const InviteCodesTable = "InviteCodes"

// InviteOwnerIndex is the GSI keyed by ownerId, used to soft-expire an
// issuer's stale codes
const InviteOwnerIndex = "ownerId-index"
