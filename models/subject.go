package models

// Subject statuses shared by every reviewable entity.
const (
	SubjectStatusDraft     = "draft"
	SubjectStatusSubmitted = "submitted"
	SubjectStatusApproved  = "approved"
	SubjectStatusRejected  = "rejected"
	SubjectStatusSuspended = "suspended"
)

// Subject type tags stored on review_requests.subject_type.
const (
	SubjectTypeVenture         = "venture"
	SubjectTypeInvestorProfile = "investor_profile"
	SubjectTypeMentorProfile   = "mentor_profile"
)

// Reviewable is implemented by every entity that flows through the review
// workflow. The workflow engine only touches subjects through this interface
// plus a subject_type/subject_id pair on the review request row.
type Reviewable interface {
	SubjectType() string
	SubjectID() int
	OwnerID() int
	ReviewStatus() string
}

// CanSubmit reports whether a subject in the given status may start a new
// review cycle.
func CanSubmit(status string) bool {
	return status == SubjectStatusDraft || status == SubjectStatusRejected
}

// CanSuspend reports whether a subject may be suspended (admin-only, outside
// the normal submit/decide flow).
func CanSuspend(status string) bool {
	return status == SubjectStatusApproved
}

// IsEditable reports whether the subject's owned artifacts (pitch documents,
// profile fields) may still be mutated.
func IsEditable(status string) bool {
	return status == SubjectStatusDraft || status == SubjectStatusRejected
}

// ValidSubjectType reports whether t names a known reviewable entity.
func ValidSubjectType(t string) bool {
	switch t {
	case SubjectTypeVenture, SubjectTypeInvestorProfile, SubjectTypeMentorProfile:
		return true
	}
	return false
}
