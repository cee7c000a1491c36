package services

import (
	"context"
	"testing"

	"wingman_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(db *fakeDynamo) *ProfileService {
	return &ProfileService{Dynamo: db, Photos: &PhotoService{Dynamo: db}}
}

func TestResolveOrCreateProfile_CreatesOnFirstSight(t *testing.T) {
	db := newFakeDynamo()
	ps := newProfileService(db)

	profile, err := ps.ResolveOrCreateProfile(context.Background(), "user-1", "ab1234@scarletmail.rutgers.edu")
	require.NoError(t, err)

	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, "ab1234", profile.NetID)
	assert.Equal(t, "ab1234@scarletmail.rutgers.edu", profile.Email)
	assert.False(t, profile.IsComplete())
	assert.Equal(t, 1, db.itemCount(models.ProfilesTable))
}

func TestResolveOrCreateProfile_LowercasesHandle(t *testing.T) {
	db := newFakeDynamo()
	ps := newProfileService(db)

	profile, err := ps.ResolveOrCreateProfile(context.Background(), "user-1", "AB1234@Rutgers.EDU")
	require.NoError(t, err)
	assert.Equal(t, "ab1234", profile.NetID)
}

func TestResolveOrCreateProfile_NetIDConflict(t *testing.T) {
	db := newFakeDynamo()
	ps := newProfileService(db)

	first, err := ps.ResolveOrCreateProfile(context.Background(), "user-1", "ab1234@rutgers.edu")
	require.NoError(t, err)

	// Same netid arrives under a different auth identity, e.g. an alias
	_, err = ps.ResolveOrCreateProfile(context.Background(), "user-2", "AB1234@rutgers.edu")
	assert.ErrorIs(t, err, ErrNetIDTaken)

	// The first row is untouched and no second row exists
	assert.Equal(t, 1, db.itemCount(models.ProfilesTable))
	stored, _, err := ps.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.NetID, stored.NetID)
}

func TestResolveOrCreateProfile_RepeatKeepsFilledFields(t *testing.T) {
	db := newFakeDynamo()
	ps := newProfileService(db)

	_, err := ps.ResolveOrCreateProfile(context.Background(), "user-1", "ab1234@rutgers.edu")
	require.NoError(t, err)

	_, err = ps.UpdateProfile(context.Background(), "user-1", ProfileUpdate{
		Name: "Alice", Age: 21, Year: "Junior", Major: "CS", Gender: "Woman", LookingFor: "Everyone",
	})
	require.NoError(t, err)

	profile, err := ps.ResolveOrCreateProfile(context.Background(), "user-1", "ab1234@rutgers.edu")
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.Name)
	assert.True(t, profile.IsComplete())
}

func TestResolveOrCreateProfile_EmailChangeKeepsFilledFields(t *testing.T) {
	db := newFakeDynamo()
	ps := newProfileService(db)

	_, err := ps.ResolveOrCreateProfile(context.Background(), "user-1", "alice@rutgers.edu")
	require.NoError(t, err)
	_, err = ps.UpdateProfile(context.Background(), "user-1", ProfileUpdate{
		Name: "Alice", Age: 21, Year: "Junior", Major: "CS", Gender: "Woman", LookingFor: "Everyone",
	})
	require.NoError(t, err)

	// Same principal signs in with a changed email local part
	profile, err := ps.ResolveOrCreateProfile(context.Background(), "user-1", "alice.b@rutgers.edu")
	require.NoError(t, err)

	assert.Equal(t, "Alice", profile.Name)
	assert.Equal(t, 21, profile.Age)
	assert.Equal(t, "alice.b", profile.NetID)
	assert.Equal(t, "alice.b@rutgers.edu", profile.Email)
	assert.Equal(t, 1, db.itemCount(models.ProfilesTable))
}

func TestUpdateProfile_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		update ProfileUpdate
	}{
		{"missing name", ProfileUpdate{Age: 21, Year: "Junior", Major: "CS", Gender: "Man", LookingFor: "Everyone"}},
		{"age too low", ProfileUpdate{Name: "Bob", Age: 16, Year: "Junior", Major: "CS", Gender: "Man", LookingFor: "Everyone"}},
		{"age too high", ProfileUpdate{Name: "Bob", Age: 100, Year: "Junior", Major: "CS", Gender: "Man", LookingFor: "Everyone"}},
		{"bad year", ProfileUpdate{Name: "Bob", Age: 21, Year: "Fifth", Major: "CS", Gender: "Man", LookingFor: "Everyone"}},
		{"missing major", ProfileUpdate{Name: "Bob", Age: 21, Year: "Junior", Gender: "Man", LookingFor: "Everyone"}},
	}

	db := newFakeDynamo()
	ps := newProfileService(db)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ps.UpdateProfile(context.Background(), "user-1", tc.update)
			assert.Error(t, err)
		})
	}
}

func TestUpdateProfile_AppliesEdit(t *testing.T) {
	db := newFakeDynamo()
	ps := newProfileService(db)

	_, err := ps.ResolveOrCreateProfile(context.Background(), "user-1", "ab1234@rutgers.edu")
	require.NoError(t, err)

	profile, err := ps.UpdateProfile(context.Background(), "user-1", ProfileUpdate{
		Name: "Alice", Age: 22, Year: "Senior", Major: "Statistics", Gender: "Woman", LookingFor: "Men",
		PersonalityAnswer: "Night owl",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", profile.Name)
	assert.Equal(t, 22, profile.Age)
	assert.Equal(t, "Senior", profile.Year)
	assert.Equal(t, "ab1234", profile.NetID)
}

func TestGetProfile_NotFound(t *testing.T) {
	db := newFakeDynamo()
	ps := newProfileService(db)

	_, _, err := ps.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
