package services

import (
	"context"
	"testing"

	"wingman_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	calls [][3]string
}

func (n *recordingNotifier) NotifyMatch(userA, userB, matchID string) {
	n.calls = append(n.calls, [3]string{userA, userB, matchID})
}

func newSwipeService(db *fakeDynamo) (*SwipeService, *recordingNotifier) {
	notifier := &recordingNotifier{}
	return &SwipeService{
		Dynamo:      db,
		Delegations: newDelegationService(db),
		Notifier:    notifier,
	}, notifier
}

func delegate(t *testing.T, s *SwipeService, ownerID, delegateID string) {
	t.Helper()
	_, err := s.Delegations.UpsertDelegation(context.Background(), ownerID, delegateID)
	require.NoError(t, err)
}

func TestRecordSwipe_RejectsSelfSwipeVariants(t *testing.T) {
	db := newFakeDynamo()
	s, _ := newSwipeService(db)

	// Delegate acting for themself
	_, err := s.RecordSwipe(context.Background(), "alice", "alice", "dave", models.SwipeDirectionRight, "")
	assert.ErrorIs(t, err, ErrSelfSwipe)

	// Owner turning up as their own candidate
	_, err = s.RecordSwipe(context.Background(), "alice", "bob", "alice", models.SwipeDirectionRight, "")
	assert.ErrorIs(t, err, ErrOwnerIsTarget)

	// Delegate turning up as the owner's candidate
	_, err = s.RecordSwipe(context.Background(), "alice", "bob", "bob", models.SwipeDirectionRight, "")
	assert.ErrorIs(t, err, ErrDelegateIsTarget)

	// Nothing was written
	assert.Equal(t, 0, db.itemCount(models.SwipesTable))
}

func TestRecordSwipe_RejectsInvalidDirection(t *testing.T) {
	db := newFakeDynamo()
	s, _ := newSwipeService(db)

	_, err := s.RecordSwipe(context.Background(), "alice", "bob", "dave", "up", "")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestRecordSwipe_RequiresActiveDelegation(t *testing.T) {
	db := newFakeDynamo()
	s, _ := newSwipeService(db)

	_, err := s.RecordSwipe(context.Background(), "alice", "bob", "dave", models.SwipeDirectionRight, "")
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, 0, db.itemCount(models.SwipesTable))
}

func TestRecordSwipe_RevokedDelegationIsNotAuthorized(t *testing.T) {
	db := newFakeDynamo()
	s, _ := newSwipeService(db)
	delegate(t, s, "alice", "bob")

	list, err := s.Delegations.ListDelegations(context.Background(), "alice")
	require.NoError(t, err)
	require.NoError(t, s.Delegations.RevokeDelegation(context.Background(), list.Delegates[0].DelegationID, "alice"))

	_, err = s.RecordSwipe(context.Background(), "alice", "bob", "dave", models.SwipeDirectionRight, "")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestRecordSwipe_LeftSwipeNeverMatches(t *testing.T) {
	db := newFakeDynamo()
	s, _ := newSwipeService(db)
	delegate(t, s, "alice", "bob")
	delegate(t, s, "dave", "erin")

	// dave's side already liked alice
	_, err := s.RecordSwipe(context.Background(), "dave", "erin", "alice", models.SwipeDirectionRight, "")
	require.NoError(t, err)

	result, err := s.RecordSwipe(context.Background(), "alice", "bob", "dave", models.SwipeDirectionLeft, "")
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Equal(t, 0, db.itemCount(models.MatchesTable))
}

func TestRecordSwipe_DuplicatePairIsSoftSuccess(t *testing.T) {
	db := newFakeDynamo()
	s, _ := newSwipeService(db)
	delegate(t, s, "alice", "bob")
	delegate(t, s, "alice", "carol")

	first, err := s.RecordSwipe(context.Background(), "alice", "bob", "dave", models.SwipeDirectionRight, "coffee")
	require.NoError(t, err)
	assert.False(t, first.AlreadySwiped)

	// A different delegate repeats the same (owner, target) pair
	second, err := s.RecordSwipe(context.Background(), "alice", "carol", "dave", models.SwipeDirectionLeft, "")
	require.NoError(t, err)
	assert.True(t, second.AlreadySwiped)

	// The ledger still holds exactly one decision for the pair
	assert.Equal(t, 1, db.itemCount(models.SwipesTable))
}

func TestRecordSwipe_ReciprocalRightSwipesMatchOnce(t *testing.T) {
	db := newFakeDynamo()
	s, notifier := newSwipeService(db)
	delegate(t, s, "alice", "bob")
	delegate(t, s, "dave", "erin")

	result, err := s.RecordSwipe(context.Background(), "alice", "bob", "dave", models.SwipeDirectionRight, "")
	require.NoError(t, err)
	assert.False(t, result.Matched)

	result, err = s.RecordSwipe(context.Background(), "dave", "erin", "alice", models.SwipeDirectionRight, "")
	require.NoError(t, err)
	assert.True(t, result.Matched)

	require.Equal(t, 1, db.itemCount(models.MatchesTable))

	// Canonical ordering of the pair key
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, "alice", notifier.calls[0][0])
	assert.Equal(t, "dave", notifier.calls[0][1])

	// Re-deriving the same pair is a no-op
	repeat, err := s.RecordSwipe(context.Background(), "dave", "erin", "alice", models.SwipeDirectionRight, "")
	require.NoError(t, err)
	assert.True(t, repeat.AlreadySwiped)
	assert.Equal(t, 1, db.itemCount(models.MatchesTable))
	assert.Len(t, notifier.calls, 1)
}

func TestRecordSwipe_MatchRaceLoserStillReportsMatched(t *testing.T) {
	db := newFakeDynamo()
	s, notifier := newSwipeService(db)
	delegate(t, s, "alice", "bob")
	delegate(t, s, "dave", "erin")

	_, err := s.RecordSwipe(context.Background(), "dave", "erin", "alice", models.SwipeDirectionRight, "")
	require.NoError(t, err)

	// The concurrent reciprocal swipe already materialized the pair
	db.mustPut(models.MatchesTable, models.Match{UserA: "alice", UserB: "dave", MatchID: "existing"})

	result, err := s.RecordSwipe(context.Background(), "alice", "bob", "dave", models.SwipeDirectionRight, "")
	require.NoError(t, err)
	assert.True(t, result.Matched)

	// The duplicate insert was swallowed, not surfaced, and the winner's
	// notification stands alone
	assert.Equal(t, 1, db.itemCount(models.MatchesTable))
	assert.Empty(t, notifier.calls)
}

func TestGetSwipedTargets(t *testing.T) {
	db := newFakeDynamo()
	s, _ := newSwipeService(db)
	delegate(t, s, "alice", "bob")

	_, err := s.RecordSwipe(context.Background(), "alice", "bob", "dave", models.SwipeDirectionRight, "")
	require.NoError(t, err)
	_, err = s.RecordSwipe(context.Background(), "alice", "bob", "erin", models.SwipeDirectionLeft, "")
	require.NoError(t, err)

	swiped, err := s.GetSwipedTargets(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, swiped["dave"])
	assert.True(t, swiped["erin"])
	assert.False(t, swiped["frank"])
}

func TestGetRightSwipeTags(t *testing.T) {
	db := newFakeDynamo()
	s, _ := newSwipeService(db)
	delegate(t, s, "alice", "bob")

	_, err := s.RecordSwipe(context.Background(), "alice", "bob", "dave", models.SwipeDirectionRight, "coffee date")
	require.NoError(t, err)
	_, err = s.RecordSwipe(context.Background(), "alice", "bob", "erin", models.SwipeDirectionLeft, "nope")
	require.NoError(t, err)

	tags, err := s.GetRightSwipeTags(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "coffee date", tags["dave"])
	_, hasLeft := tags["erin"]
	assert.False(t, hasLeft)
}
