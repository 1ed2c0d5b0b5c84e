package retrieval

import (
	"strings"

	"loanbuddy/internal/logging"
)

// ScoreThreshold is the minimum IoU a corpus entry must exceed to be
// returned. Inclusive: a best score exactly at the threshold still falls
// back to the generic reply.
const ScoreThreshold = 0.1

// DefaultReply is returned when nothing in the corpus scores above the
// threshold, or the corpus is empty.
const DefaultReply = "I'm sorry, I didn't quite get that. You can ask me about loans, or type 'apply' to start a new application."

// Responder ranks free text against the corpus and returns the best
// response. The corpus is fixed at construction and never mutated.
type Responder struct {
	entries []Entry
	reply   string
}

// NewResponder builds a responder over the given corpus entries.
func NewResponder(entries []Entry) *Responder {
	return &Responder{entries: entries, reply: DefaultReply}
}

// Respond returns the response of the highest-IoU corpus entry, or the
// generic reply when the best score does not clear the threshold. Ties go
// to the earliest entry, since a later entry only wins with a strictly
// greater score.
func (r *Responder) Respond(input string) string {
	best, score := r.BestMatch(input)
	if best == nil {
		return r.reply
	}
	logging.RetrievalDebug("fallback matched %q with score %.3f", best.Prompt, score)
	return best.Response
}

// BestMatch returns the winning entry and its score, or nil when the
// corpus is empty or the best score is at or below the threshold.
func (r *Responder) BestMatch(input string) (*Entry, float64) {
	in := tokenSet(input)
	if len(in) == 0 {
		return nil, 0
	}

	bestScore := 0.0
	bestIdx := -1
	for i := range r.entries {
		s := iou(in, r.entries[i].tokens)
		if s > bestScore {
			bestScore = s
			bestIdx = i
		}
	}
	if bestIdx < 0 || bestScore <= ScoreThreshold {
		return nil, bestScore
	}
	return &r.entries[bestIdx], bestScore
}

// iou computes intersection-over-union of two token sets. Intersection
// counts each distinct input token at most once; union is the size of the
// combined set.
func iou(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// tokenSet lowercases and whitespace-tokenizes text into a set.
func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
