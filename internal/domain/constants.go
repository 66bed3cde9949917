package domain

const (
	RoleInfluencer = "influencer"
	RoleAdvertiser = "advertiser"
)

// ApplicationStatus is the lifecycle state of a campaign application.
// PENDING -> APPROVED -> COMPLETED, with PENDING -> REJECTED as the
// alternate terminal. REJECTED and COMPLETED have no outgoing edges.
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "PENDING"
	StatusApproved  ApplicationStatus = "APPROVED"
	StatusRejected  ApplicationStatus = "REJECTED"
	StatusCompleted ApplicationStatus = "COMPLETED"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusCompleted
	}
	return false
}

const (
	NotificationApplicationReceived = "APPLICATION_RECEIVED"
	NotificationApproved            = "APPLICATION_APPROVED"
	NotificationRejected            = "APPLICATION_REJECTED"
	NotificationReviewSubmitted     = "REVIEW_SUBMITTED"
	NotificationPointsAwarded       = "POINTS_AWARDED"
)

// CategoryAll is the sentinel that disables category filtering on list queries.
const CategoryAll = "all"

var Categories = []string{
	"restaurant",
	"cafe",
	"beauty",
	"fashion",
	"electronics",
	"delivery",
	"app",
	"parenting",
	"fitness",
	"etc",
}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

func ValidRole(r string) bool {
	return r == RoleInfluencer || r == RoleAdvertiser
}
