package common

import (
	"github.com/google/uuid"
)

// NewContentID generates a unique content record ID with the "content_" prefix
func NewContentID() string {
	return "content_" + uuid.New().String()
}

// NewCompetitorID generates a unique competitor record ID with the "competitor_" prefix
func NewCompetitorID() string {
	return "competitor_" + uuid.New().String()
}

// NewAnalysisID generates a unique analysis snapshot ID with the "analysis_" prefix
func NewAnalysisID() string {
	return "analysis_" + uuid.New().String()
}
