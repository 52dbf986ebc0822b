package models

import "testing"

func TestCanSubmit(t *testing.T) {
	cases := map[string]bool{
		SubjectStatusDraft:     true,
		SubjectStatusRejected:  true,
		SubjectStatusSubmitted: false,
		SubjectStatusApproved:  false,
		SubjectStatusSuspended: false,
	}
	for status, want := range cases {
		if got := CanSubmit(status); got != want {
			t.Errorf("CanSubmit(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestCanSuspendOnlyFromApproved(t *testing.T) {
	if !CanSuspend(SubjectStatusApproved) {
		t.Error("expected approved subjects to be suspendable")
	}
	for _, status := range []string{
		SubjectStatusDraft, SubjectStatusSubmitted, SubjectStatusRejected, SubjectStatusSuspended,
	} {
		if CanSuspend(status) {
			t.Errorf("expected CanSuspend(%q) to be false", status)
		}
	}
}

func TestIsEditableMatchesSubmitWindow(t *testing.T) {
	for _, status := range []string{
		SubjectStatusDraft, SubjectStatusSubmitted, SubjectStatusApproved,
		SubjectStatusRejected, SubjectStatusSuspended,
	} {
		if IsEditable(status) != CanSubmit(status) {
			t.Errorf("editable window diverges from submit window at %q", status)
		}
	}
}

func TestValidSubjectType(t *testing.T) {
	for _, valid := range []string{SubjectTypeVenture, SubjectTypeInvestorProfile, SubjectTypeMentorProfile} {
		if !ValidSubjectType(valid) {
			t.Errorf("expected %q to be a valid subject type", valid)
		}
	}
	for _, invalid := range []string{"", "user", "document", "Venture"} {
		if ValidSubjectType(invalid) {
			t.Errorf("expected %q to be rejected", invalid)
		}
	}
}
