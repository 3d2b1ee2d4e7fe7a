package opportunity

import (
	"time"

	"github.com/google/uuid"
)

// Category is the primary skill category a posting resolves to.
type Category string

const (
	CategoryMERN    Category = "mern"
	CategoryBackend Category = "backend"
	CategoryCrypto  Category = "crypto"
	CategoryRust    Category = "rust"
	CategoryMixed   Category = "mixed"
	CategoryOther   Category = "other"
)

// SourceType records which ingestion path produced a row.
type SourceType string

const (
	SourceTypeAutomated SourceType = "automated"
	SourceTypeEmail     SourceType = "email"
	SourceTypeManual    SourceType = "manual"
)

// Posting is a raw job posting as emitted by a source adapter. It has no
// identity beyond its fields and is discarded after scoring.
type Posting struct {
	Title       string
	Description string
	Source      string
	URL         string
	PostedAt    *time.Time
	Tags        []string
}

// Scored is a Posting plus the scoring result and its dedup fingerprint.
// Created once per discovery cycle, never mutated afterwards.
type Scored struct {
	Posting

	Score         int
	Category      Category
	MatchedSkills []string
	MatchReason   string
	Fingerprint   string
	SourceType    SourceType
}

// Row is a persisted opportunity as read back from the store.
type Row struct {
	ID            uuid.UUID
	Title         string
	Description   string
	Source        string
	URL           string
	Score         int
	Tags          []string
	PostedAt      *time.Time
	DiscoveredAt  time.Time
	Fingerprint   string
	SourceType    SourceType
	MatchedSkills []string
	MatchReason   string
	Category      Category
}

// ApplicationStatus is the workflow state attached to an opportunity.
type ApplicationStatus string

const (
	StatusViewed    ApplicationStatus = "viewed"
	StatusApplied   ApplicationStatus = "applied"
	StatusReplied   ApplicationStatus = "replied"
	StatusRejected  ApplicationStatus = "rejected"
	StatusArchived  ApplicationStatus = "archived"
	StatusOld       ApplicationStatus = "old"
	StatusNotUseful ApplicationStatus = "not_useful"
)

// ValidStatus reports whether s is one of the known workflow statuses.
func ValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusViewed, StatusApplied, StatusReplied, StatusRejected,
		StatusArchived, StatusOld, StatusNotUseful:
		return true
	}
	return false
}

// NonApplicable reports whether a status blocks a later "applied" transition.
func NonApplicable(s ApplicationStatus) bool {
	switch s {
	case StatusArchived, StatusOld, StatusNotUseful:
		return true
	}
	return false
}

// ApplicationMethod records how an application was submitted.
type ApplicationMethod string

const (
	MethodManual ApplicationMethod = "manual"
	MethodEmail  ApplicationMethod = "email"
	MethodAuto   ApplicationMethod = "auto"
)

// Application is the workflow record attached to a persisted opportunity.
type Application struct {
	ID            uuid.UUID
	OpportunityID uuid.UUID
	Status        ApplicationStatus
	AppliedAt     *time.Time
	ProposalText  string
	Method        ApplicationMethod
}
