package models

import "time"

// AnalysisSource identifies which path produced a gap analysis result.
type AnalysisSource string

const (
	// AnalysisSourceLLM indicates the result came from the language-model path.
	AnalysisSourceLLM AnalysisSource = "llm"

	// AnalysisSourceHeuristic indicates the deterministic fallback produced
	// the result (LLM unavailable, timed out, or returned malformed output).
	AnalysisSourceHeuristic AnalysisSource = "heuristic"
)

// ContentGap describes a topic competitors cover that the target does not.
type ContentGap struct {
	Topic                   string `json:"topic"`
	Description             string `json:"description"`
	Relevance               string `json:"relevance"` // string-encoded score, "0".."100"
	SuggestedImplementation string `json:"suggestedImplementation"`
	CompetitorsCovering     int    `json:"competitorsCovering"`
	Actionable              bool   `json:"actionable"`
}

// CompetitiveFactor is a qualitative advantage or disadvantage of the target
// relative to the competitor set.
type CompetitiveFactor struct {
	Area        string `json:"area"`
	Description string `json:"description"`
	IsAdvantage bool   `json:"isAdvantage"`
}

// Strategy is a recommended action derived from the analysis.
type Strategy struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Implementation string `json:"implementation"`
	Priority       string `json:"priority"` // high, medium, low
	TimeFrame      string `json:"timeFrame"`
}

// GapAnalysisResult is the transient output of a gap analysis run. The input
// competitor set is always echoed back, even for degraded results.
type GapAnalysisResult struct {
	ContentGaps   []ContentGap        `json:"contentGaps"`
	KeywordGaps   []Keyword           `json:"keywordGaps"`
	Advantages    []CompetitiveFactor `json:"advantages"`
	Disadvantages []CompetitiveFactor `json:"disadvantages"`
	Strategies    []Strategy          `json:"strategies"`
	Competitors   []*CompetitorRecord `json:"competitors"`
	Source        AnalysisSource      `json:"source,omitempty"`
}

// NewEmptyGapAnalysisResult returns a result with every collection present
// and empty. Callers rely on the arrays never being nil in the wire format.
func NewEmptyGapAnalysisResult(source AnalysisSource) *GapAnalysisResult {
	return &GapAnalysisResult{
		ContentGaps:   []ContentGap{},
		KeywordGaps:   []Keyword{},
		Advantages:    []CompetitiveFactor{},
		Disadvantages: []CompetitiveFactor{},
		Strategies:    []Strategy{},
		Competitors:   []*CompetitorRecord{},
		Source:        source,
	}
}

// GapAnalysisRecord is a persisted snapshot of an analysis run. Persistence
// is optional and caller-driven; the engine itself only returns the result.
type GapAnalysisRecord struct {
	ID        string            `json:"id"` // analysis_{uuid}
	ProjectID string            `json:"project_id" badgerhold:"index"`
	TargetURL string            `json:"target_url"`
	Result    GapAnalysisResult `json:"result"`
	CreatedAt time.Time         `json:"created_at"`
}
