package metrics

// stopWords are common English function words excluded from keyword
// extraction.
var stopWords = map[string]struct{}{
	"that": {}, "this": {}, "with": {}, "from": {}, "your": {},
	"have": {}, "will": {}, "they": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "their": {}, "would": {}, "there": {},
	"about": {}, "could": {}, "should": {}, "these": {}, "those": {},
	"them": {}, "then": {}, "than": {}, "were": {}, "been": {},
	"being": {}, "into": {}, "over": {}, "some": {}, "such": {},
	"only": {}, "other": {}, "more": {}, "most": {}, "also": {},
	"after": {}, "before": {}, "because": {}, "while": {}, "during": {},
	"each": {}, "very": {}, "just": {}, "like": {}, "much": {},
}
