package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"wingman_server/models"
)

// SeedService populates demo data for local development: a handful of
// complete profiles with placeholder photos, plus two delegations that let
// the caller start swiping immediately.
type SeedService struct {
	Profiles    *ProfileService
	Photos      *PhotoService
	Delegations *DelegationService
}

type demoProfile struct {
	Name              string
	Age               int
	Year              string
	Major             string
	Gender            string
	LookingFor        string
	PersonalityAnswer string
}

var demoProfiles = []demoProfile{
	{"Jordan Lee", 21, "Junior", "Computer Science", "Man", "Everyone", "Night owl"},
	{"Morgan Kim", 20, "Sophomore", "Biology", "Woman", "Men", "Early bird"},
	{"Taylor Patel", 22, "Senior", "Psychology", "Non-binary", "Everyone", "Ambivert"},
	{"Casey Williams", 19, "Freshman", "Economics", "Man", "Women", "Extrovert"},
	{"Riley Nguyen", 21, "Junior", "Math", "Woman", "Everyone", "Introvert"},
	{"Avery Chen", 23, "Graduate", "Statistics", "Man", "Everyone", "Night owl"},
	{"Quinn Santos", 20, "Sophomore", "Art & Design", "Woman", "Women", "Early bird"},
	{"Blake Okonjo", 22, "Senior", "History", "Man", "Women", "Extrovert"},
}

// SeedResult summarizes what a seed run created
type SeedResult struct {
	Created      int      `json:"created"`
	DelegatedFor []string `json:"delegatedFor"`
	Errors       []string `json:"errors,omitempty"`
}

// SeedDemoData creates the demo profiles and makes callerID a delegate for
// the first two of them. Safe to run repeatedly: everything is an upsert.
func (s *SeedService) SeedDemoData(ctx context.Context, callerID string) (*SeedResult, error) {
	result := &SeedResult{}

	var ownerIDs []string
	for _, demo := range demoProfiles {
		netid := "demo_" + strings.ReplaceAll(strings.ToLower(demo.Name), " ", "_")
		userID := "seed-" + netid
		email := netid + "@scarletmail.rutgers.edu"

		if _, err := s.Profiles.ResolveOrCreateProfile(ctx, userID, email); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", netid, err))
			continue
		}
		update := ProfileUpdate{
			Name:              demo.Name,
			Age:               demo.Age,
			Year:              demo.Year,
			Major:             demo.Major,
			Gender:            demo.Gender,
			LookingFor:        demo.LookingFor,
			PersonalityAnswer: demo.PersonalityAnswer,
		}
		if _, err := s.Profiles.UpdateProfile(ctx, userID, update); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("profile %s: %v", netid, err))
			continue
		}

		for pos := 0; pos < models.MaxPhotoSlots; pos++ {
			path := fmt.Sprintf("seed/placeholder-%d.jpg", pos)
			if _, err := s.Photos.SavePhoto(ctx, userID, pos, path, ""); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("photo %s/%d: %v", netid, pos, err))
			}
		}

		ownerIDs = append(ownerIDs, userID)
		result.Created++
	}

	// Caller becomes a delegate for the first two demo owners
	for i, ownerID := range ownerIDs {
		if i >= 2 {
			break
		}
		if _, err := s.Delegations.UpsertDelegation(ctx, ownerID, callerID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("delegation for %s: %v", ownerID, err))
			continue
		}
		result.DelegatedFor = append(result.DelegatedFor, ownerID)
	}

	log.Printf("Seeded %d demo profiles, %d delegations for %s", result.Created, len(result.DelegatedFor), callerID)
	return result, nil
}
