// Package dto defines the JSON shapes of the public API.
package dto

import "github.com/google/uuid"

type OpportunityListItem struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Source        string    `json:"source"`
	URL           string    `json:"url"`
	Score         int       `json:"score"`
	Tags          []string  `json:"tags"`
	PostedAt      *string   `json:"postedAt"`
	DiscoveredAt  string    `json:"discoveredAt"`
	SourceType    string    `json:"sourceType"`
	MatchedSkills []string  `json:"matchedSkills"`
	MatchReason   string    `json:"matchReason"`
	Category      string    `json:"category"`

	Status       *string `json:"status"`
	AppliedAt    *string `json:"appliedAt"`
	ProposalText *string `json:"proposalText"`
	Method       *string `json:"method"`
}

type OpportunityDetail struct {
	ID            uuid.UUID           `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Source        string              `json:"source"`
	URL           string              `json:"url"`
	Score         int                 `json:"score"`
	Tags          []string            `json:"tags"`
	PostedAt      *string             `json:"postedAt"`
	DiscoveredAt  string              `json:"discoveredAt"`
	SourceType    string              `json:"sourceType"`
	MatchedSkills []string            `json:"matchedSkills"`
	MatchReason   string              `json:"matchReason"`
	Category      string              `json:"category"`
	Application   *ApplicationSummary `json:"application"`
}

type ApplicationSummary struct {
	Status       string  `json:"status"`
	AppliedAt    *string `json:"appliedAt"`
	ProposalText string  `json:"proposalText"`
	Method       string  `json:"method"`
}

type ApplyRequest struct {
	Status       string `json:"status"`
	Method       string `json:"method"`
	ProposalText string `json:"proposalText"`
}

type ApplyResponse struct {
	Status       string `json:"status"`
	ProposalText string `json:"proposalText"`
}

type ImportRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Source      string   `json:"source"`
	SourceType  string   `json:"sourceType"`
	Tags        []string `json:"tags"`
}

type EmailImportRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	From    string `json:"from"`
	URL     string `json:"url"`
}

type ImportResponse struct {
	ID            uuid.UUID `json:"id"`
	Score         int       `json:"score"`
	MatchReason   string    `json:"matchReason"`
	MatchedSkills []string  `json:"matchedSkills"`
	Category      string    `json:"category"`
}

type DiscoveryRunResponse struct {
	Discovered int `json:"discovered"`
}

type AnalyticsOverview struct {
	NewToday     int     `json:"newToday"`
	TotalApplied int     `json:"totalApplied"`
	TotalReplied int     `json:"totalReplied"`
	ResponseRate float64 `json:"responseRate"`
}

type AnalyticsFunnel struct {
	Discovered int `json:"discovered"`
	Viewed     int `json:"viewed"`
	Applied    int `json:"applied"`
	Replied    int `json:"replied"`
}

type SourceStat struct {
	Source     string `json:"source"`
	SourceType string `json:"sourceType"`
	Total      int    `json:"total"`
	AvgScore   int    `json:"avgScore"`
	Applied    int    `json:"applied"`
}

type CategoryStat struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
	AvgScore int    `json:"avgScore"`
	Applied  int    `json:"applied"`
}
