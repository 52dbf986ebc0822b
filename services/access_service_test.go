package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"venture-marketplace-api/models"
)

func documentLoadSteps(ventureOwner int64, ventureStatus string) []*queryStep {
	return []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `pitch_documents`"),
			args:    []driver.Value{int64(12)},
			columns: []string{"document_id", "venture_id"},
			rows:    [][]driver.Value{{int64(12), int64(7)}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `ventures`"),
			args:    []driver.Value{int64(7)},
			columns: []string{"venture_id", "user_id", "status"},
			rows:    [][]driver.Value{{int64(7), ventureOwner, ventureStatus}},
		},
	}
}

func TestCheckAccessDefaultAllowsInvestor(t *testing.T) {
	steps := append(documentLoadSteps(3, "approved"), &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile("SELECT .* FROM `access_grants`"),
		args:    []driver.Value{int64(12), int64(8)},
		columns: []string{"grant_id", "document_id", "investor_id", "active"},
		rows:    [][]driver.Value{},
	})

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAccessService(db)
	investor := &models.User{UserID: 8, RoleID: models.RoleInvestor}
	ok, err := svc.CheckAccess(12, investor)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !ok {
		t.Fatal("expected default-allow for investor without grant row")
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCheckAccessDeniesRevokedInvestor(t *testing.T) {
	steps := append(documentLoadSteps(3, "approved"), &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile("SELECT .* FROM `access_grants`"),
		args:    []driver.Value{int64(12), int64(8)},
		columns: []string{"grant_id", "document_id", "investor_id", "active"},
		rows:    [][]driver.Value{{int64(5), int64(12), int64(8), int64(0)}},
	})

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAccessService(db)
	investor := &models.User{UserID: 8, RoleID: models.RoleInvestor}
	ok, err := svc.CheckAccess(12, investor)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if ok {
		t.Fatal("expected revoked grant to deny access")
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCheckAccessDeniesUnapprovedVenture(t *testing.T) {
	steps := documentLoadSteps(3, "submitted")

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAccessService(db)
	investor := &models.User{UserID: 8, RoleID: models.RoleInvestor}
	ok, err := svc.CheckAccess(12, investor)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if ok {
		t.Fatal("expected no implicit access before venture approval")
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCheckAccessAllowsOwner(t *testing.T) {
	steps := documentLoadSteps(3, "draft")

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAccessService(db)
	owner := &models.User{UserID: 3, RoleID: models.RoleVenture}
	ok, err := svc.CheckAccess(12, owner)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !ok {
		t.Fatal("expected owner to pass regardless of venture status")
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestGrantReactivatesRevokedRow(t *testing.T) {
	steps := append(documentLoadSteps(3, "approved"),
		&queryStep{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `access_grants`.*ON DUPLICATE KEY UPDATE"),
			anyArgs: true,
			result:  scriptedResult{lastInsertID: 5, rowsAffected: 2},
		},
		&queryStep{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `access_grants`"),
			args:    []driver.Value{int64(12), int64(8)},
			columns: []string{"grant_id", "document_id", "investor_id", "active", "granted_by"},
			rows:    [][]driver.Value{{int64(5), int64(12), int64(8), int64(1), int64(3)}},
		},
	)

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAccessService(db)
	owner := &models.User{UserID: 3, RoleID: models.RoleVenture}
	grant, err := svc.Grant(12, 8, owner)
	if err != nil {
		t.Fatalf("grant failed: %v", err)
	}
	if !grant.Active {
		t.Fatal("expected grant to be active after upsert")
	}
	if grant.GrantID != 5 {
		t.Fatalf("expected the existing row to be reused, got grant_id %d", grant.GrantID)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestGrantRejectsNonOwner(t *testing.T) {
	steps := documentLoadSteps(3, "approved")

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAccessService(db)
	stranger := &models.User{UserID: 42, RoleID: models.RoleVenture}
	_, err := svc.Grant(12, 8, stranger)
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRevokeWithoutActiveGrantFails(t *testing.T) {
	steps := append(documentLoadSteps(3, "approved"), &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile("SELECT .* FROM `access_grants`.*FOR UPDATE"),
		args:    []driver.Value{int64(12), int64(8), true},
		columns: []string{"grant_id", "document_id", "investor_id", "active"},
		rows:    [][]driver.Value{},
	})

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAccessService(db)
	owner := &models.User{UserID: 3, RoleID: models.RoleVenture}
	err := svc.Revoke(12, 8, owner)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRecordEventDeniesRevokedInvestor(t *testing.T) {
	steps := append(documentLoadSteps(3, "approved"), &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile("SELECT .* FROM `access_grants`"),
		args:    []driver.Value{int64(12), int64(8)},
		columns: []string{"grant_id", "document_id", "investor_id", "active"},
		rows:    [][]driver.Value{{int64(5), int64(12), int64(8), int64(0)}},
	})

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAccessService(db)
	investor := &models.User{UserID: 8, RoleID: models.RoleInvestor}
	_, err := svc.RecordEvent(12, investor, models.AccessEventView, EventOrigin{IPAddress: "10.0.0.1"})
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRecordEventRejectsUnknownType(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewAccessService(db)
	investor := &models.User{UserID: 8, RoleID: models.RoleInvestor}
	_, err := svc.RecordEvent(12, investor, "print", EventOrigin{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRecordEventViewConfirmsGrantAndStampsShare(t *testing.T) {
	steps := append(documentLoadSteps(3, "approved"),
		&queryStep{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `access_grants`"),
			args:    []driver.Value{int64(12), int64(8)},
			columns: []string{"grant_id", "document_id", "investor_id", "active"},
			rows:    [][]driver.Value{},
		},
		&queryStep{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `access_events`"),
			anyArgs: true,
			result:  scriptedResult{lastInsertID: 21, rowsAffected: 1},
		},
		&queryStep{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `access_grants`.*ON DUPLICATE KEY"),
			anyArgs: true,
			result:  scriptedResult{lastInsertID: 6, rowsAffected: 1},
		},
		&queryStep{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `access_shares` SET `viewed_at`=\\? WHERE document_id = \\? AND investor_id = \\? AND viewed_at IS NULL"),
			anyArgs: true,
			result:  scriptedResult{rowsAffected: 1},
		},
	)

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAccessService(db)
	investor := &models.User{UserID: 8, RoleID: models.RoleInvestor}
	event, err := svc.RecordEvent(12, investor, models.AccessEventView, EventOrigin{IPAddress: "10.0.0.1"})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if event.EventType != models.AccessEventView || event.ActorID != 8 {
		t.Fatalf("unexpected event: %+v", event)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRecordEventSecondViewLeavesShareStamped(t *testing.T) {
	steps := append(documentLoadSteps(3, "approved"),
		&queryStep{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `access_grants`"),
			args:    []driver.Value{int64(12), int64(8)},
			columns: []string{"grant_id", "document_id", "investor_id", "active"},
			rows:    [][]driver.Value{{int64(6), int64(12), int64(8), int64(1)}},
		},
		&queryStep{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `access_events`"),
			anyArgs: true,
			result:  scriptedResult{lastInsertID: 22, rowsAffected: 1},
		},
		&queryStep{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `access_grants`.*ON DUPLICATE KEY"),
			anyArgs: true,
			result:  scriptedResult{rowsAffected: 0},
		},
		// The stamped share no longer matches viewed_at IS NULL, so the
		// update touches nothing and the first stamp survives.
		&queryStep{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `access_shares` SET `viewed_at`=\\? WHERE document_id = \\? AND investor_id = \\? AND viewed_at IS NULL"),
			anyArgs: true,
			result:  scriptedResult{rowsAffected: 0},
		},
	)

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAccessService(db)
	investor := &models.User{UserID: 8, RoleID: models.RoleInvestor}
	if _, err := svc.RecordEvent(12, investor, models.AccessEventView, EventOrigin{}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestRecordEventDownloadSkipsShareStamp(t *testing.T) {
	steps := append(documentLoadSteps(3, "approved"),
		&queryStep{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `access_grants`"),
			args:    []driver.Value{int64(12), int64(8)},
			columns: []string{"grant_id", "document_id", "investor_id", "active"},
			rows:    [][]driver.Value{},
		},
		&queryStep{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `access_events`"),
			anyArgs: true,
			result:  scriptedResult{lastInsertID: 23, rowsAffected: 1},
		},
		&queryStep{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `access_grants`.*ON DUPLICATE KEY"),
			anyArgs: true,
			result:  scriptedResult{lastInsertID: 7, rowsAffected: 1},
		},
	)

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewAccessService(db)
	investor := &models.User{UserID: 8, RoleID: models.RoleInvestor}
	if _, err := svc.RecordEvent(12, investor, models.AccessEventDownload, EventOrigin{}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
