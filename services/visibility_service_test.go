package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
)

func TestListVisibleInvestorsUnionsGlobalAndGranted(t *testing.T) {
	steps := []*queryStep{
		{
			kind: kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `investor_profiles` WHERE " +
				"\\(status = \\? AND delete_at IS NULL\\) AND " +
				"\\(visible_to_ventures = \\? OR user_id IN \\(SELECT `investor_id` FROM `visibility_grants` WHERE venture_id = \\?\\)\\)"),
			args:    []driver.Value{"approved", true, int64(7)},
			columns: []string{"profile_id", "user_id", "status", "visible_to_ventures"},
			rows: [][]driver.Value{
				{int64(2), int64(8), "approved", int64(1)},
				{int64(5), int64(9), "approved", int64(0)},
			},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `users`"),
			args:    []driver.Value{int64(8), int64(9)},
			columns: []string{"user_id", "email"},
			rows: [][]driver.Value{
				{int64(8), "a@example.com"},
				{int64(9), "b@example.com"},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewVisibilityService(db)
	profiles, err := svc.ListVisibleInvestors(7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 visible investors, got %d", len(profiles))
	}
	// The second row is hidden globally but holds a grant for this venture.
	if profiles[1].VisibleToVentures {
		t.Fatal("expected granted investor to remain globally hidden")
	}
	if profiles[0].Owner.Email != "a@example.com" || profiles[1].Owner.Email != "b@example.com" {
		t.Fatalf("owner preload mismatch: %+v", profiles)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
