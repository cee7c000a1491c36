package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"wingman_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// tableKeys mirrors the key schemas the real tables use
var tableKeys = map[string][]string{
	models.ProfilesTable:    {"userId"},
	models.DelegationsTable: {"ownerId", "delegateId"},
	models.InviteCodesTable: {"code"},
	models.SwipesTable:      {"ownerId", "targetId"},
	models.MatchesTable:     {"userA", "userB"},
	models.PhotosTable:      {"userId", "position"},
}

// fakeDynamo is an in-memory DynamoAPI. It stores marshalled attribute maps
// per table and interprets the narrow set of expressions the services use:
// "attr = :val" key conditions, "SET a = :v" assignments, the
// "uses = uses + :one" increment and the "uses < maxUses" condition.
type fakeDynamo struct {
	tables map[string]map[string]map[string]types.AttributeValue

	// failOn makes the named operation return an error, for fault paths
	failOn map[string]error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		tables: make(map[string]map[string]map[string]types.AttributeValue),
		failOn: make(map[string]error),
	}
}

func (f *fakeDynamo) table(name string) map[string]map[string]types.AttributeValue {
	if f.tables[name] == nil {
		f.tables[name] = make(map[string]map[string]types.AttributeValue)
	}
	return f.tables[name]
}

func attrString(av types.AttributeValue) string {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return v.Value
	}
	return ""
}

func (f *fakeDynamo) keyFor(tableName string, item map[string]types.AttributeValue) string {
	parts := make([]string, 0, 2)
	for _, attr := range tableKeys[tableName] {
		parts = append(parts, attrString(item[attr]))
	}
	return strings.Join(parts, "|")
}

// mustPut seeds an item directly, bypassing conditions
func (f *fakeDynamo) mustPut(tableName string, item interface{}) {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		panic(err)
	}
	f.table(tableName)[f.keyFor(tableName, marshaled)] = marshaled
}

func (f *fakeDynamo) itemCount(tableName string) int {
	return len(f.tables[tableName])
}

func (f *fakeDynamo) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if err := f.failOn["GetItem"]; err != nil {
		return nil, err
	}
	item, ok := f.table(tableName)[f.keyFor(tableName, key)]
	if !ok {
		return nil, ErrItemNotFound
	}
	return copyItem(item), nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, tableName string, item interface{}) error {
	if err := f.failOn["PutItem"]; err != nil {
		return err
	}
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	f.table(tableName)[f.keyFor(tableName, marshaled)] = marshaled
	return nil
}

func (f *fakeDynamo) PutItemIfAbsent(ctx context.Context, tableName string, item interface{}, conditionExpression string) error {
	if err := f.failOn["PutItemIfAbsent"]; err != nil {
		return err
	}
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	key := f.keyFor(tableName, marshaled)
	if _, exists := f.table(tableName)[key]; exists {
		return ErrConditionFailed
	}
	f.table(tableName)[key] = marshaled
	return nil
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, tableName, updateExpression string, key, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	if err := f.failOn["UpdateItem"]; err != nil {
		return nil, err
	}
	return f.applyUpdate(tableName, updateExpression, "", key, expressionAttributeValues, expressionAttributeNames)
}

func (f *fakeDynamo) UpdateItemWithCondition(ctx context.Context, tableName, updateExpression, conditionExpression string, key, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	if err := f.failOn["UpdateItemWithCondition"]; err != nil {
		return nil, err
	}
	return f.applyUpdate(tableName, updateExpression, conditionExpression, key, expressionAttributeValues, expressionAttributeNames)
}

func (f *fakeDynamo) applyUpdate(tableName, updateExpression, conditionExpression string, key, values map[string]types.AttributeValue, names map[string]string) (map[string]types.AttributeValue, error) {
	keyStr := f.keyFor(tableName, key)
	item, exists := f.table(tableName)[keyStr]
	if !exists {
		if conditionExpression != "" {
			return nil, ErrConditionFailed
		}
		// DynamoDB creates the item from the key on unconditional updates
		item = copyItem(key)
	}

	if conditionExpression != "" && !f.checkCondition(item, conditionExpression) {
		return nil, ErrConditionFailed
	}

	updated := copyItem(item)
	clauses := strings.TrimPrefix(updateExpression, "SET ")
	for _, clause := range strings.Split(clauses, ", ") {
		parts := strings.SplitN(clause, " = ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("unsupported update clause: %q", clause)
		}
		attr := strings.TrimSpace(parts[0])
		if resolved, ok := names[attr]; ok {
			attr = resolved
		}
		rhs := strings.TrimSpace(parts[1])

		if strings.Contains(rhs, " + ") {
			// e.g. "uses + :one"
			addParts := strings.SplitN(rhs, " + ", 2)
			base, _ := strconv.Atoi(attrString(updated[strings.TrimSpace(addParts[0])]))
			inc, _ := strconv.Atoi(attrString(values[strings.TrimSpace(addParts[1])]))
			updated[attr] = &types.AttributeValueMemberN{Value: strconv.Itoa(base + inc)}
			continue
		}
		if strings.HasPrefix(rhs, ":") {
			updated[attr] = values[rhs]
			continue
		}
		// e.g. "uses = maxUses": copy another attribute
		updated[attr] = updated[rhs]
	}

	f.table(tableName)[keyStr] = updated
	return copyItem(updated), nil
}

func (f *fakeDynamo) checkCondition(item map[string]types.AttributeValue, condition string) bool {
	if strings.Contains(condition, " < ") {
		parts := strings.SplitN(condition, " < ", 2)
		left, _ := strconv.Atoi(attrString(item[strings.TrimSpace(parts[0])]))
		right, _ := strconv.Atoi(attrString(item[strings.TrimSpace(parts[1])]))
		return left < right
	}
	return true
}

func (f *fakeDynamo) QueryItems(ctx context.Context, tableName, keyConditionExpression string, values map[string]types.AttributeValue, names map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	if err := f.failOn["QueryItems"]; err != nil {
		return nil, err
	}
	return f.queryEquality(tableName, keyConditionExpression, values, limit)
}

func (f *fakeDynamo) QueryItemsWithIndex(ctx context.Context, tableName, indexName, keyConditionExpression string, values map[string]types.AttributeValue, names map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	if err := f.failOn["QueryItemsWithIndex"]; err != nil {
		return nil, err
	}
	return f.queryEquality(tableName, keyConditionExpression, values, limit)
}

// queryEquality resolves "attr = :val" conditions against every item
func (f *fakeDynamo) queryEquality(tableName, keyCondition string, values map[string]types.AttributeValue, limit int32) ([]map[string]types.AttributeValue, error) {
	parts := strings.SplitN(keyCondition, " = ", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("unsupported key condition: %q", keyCondition)
	}
	attr := strings.TrimSpace(parts[0])
	want := attrString(values[strings.TrimSpace(parts[1])])

	var results []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		if attrString(item[attr]) == want {
			results = append(results, copyItem(item))
			if limit > 0 && int32(len(results)) == limit {
				break
			}
		}
	}
	return results, nil
}

func (f *fakeDynamo) ScanItems(ctx context.Context, tableName string, limit int32) ([]map[string]types.AttributeValue, error) {
	if err := f.failOn["ScanItems"]; err != nil {
		return nil, err
	}
	var results []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		results = append(results, copyItem(item))
		if limit > 0 && int32(len(results)) == limit {
			break
		}
	}
	return results, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	if err := f.failOn["DeleteItem"]; err != nil {
		return err
	}
	delete(f.table(tableName), f.keyFor(tableName, key))
	return nil
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	dup := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		dup[k] = v
	}
	return dup
}
