package models

const (
	SwipeDirectionLeft  = "left"
	SwipeDirectionRight = "right"
)

// Swipe is one decision made by a delegate on an owner's behalf. The table
// key is (ownerId, targetId), so the ledger holds at most one decision per
// pair. Rows are immutable once written.
type Swipe struct {
	OwnerID    string `dynamodbav:"ownerId" json:"ownerId"`   // PK
	TargetID   string `dynamodbav:"targetId" json:"targetId"` // SK
	DelegateID string `dynamodbav:"delegateId" json:"delegateId"`
	Direction  string `dynamodbav:"direction" json:"direction"` // "left" or "right"
	Tag        string `dynamodbav:"tag,omitempty" json:"tag,omitempty"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// SwipesTable is the DynamoDB table name for the swipe ledger
const SwipesTable = "Swipes"
