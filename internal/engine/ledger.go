package engine

import "sort"

// Ledger thresholds. A concept at ReviewThreshold misses lands on the
// required-review list; at BlockingThreshold it is additionally flagged as
// blocking in that list. Term advancement is gated at ReviewThreshold.
const (
	ReviewThreshold   = 3
	BlockingThreshold = 5
)

// ConceptMiss is one incorrectly answered, tag-bearing question from a
// graded attempt.
type ConceptMiss struct {
	ConceptTag string `json:"conceptTag"`
	QuestionID uint   `json:"questionId"`
}

// CollectConceptMisses extracts the ledger input from a grade result:
// every missed question that carries a concept tag.
func CollectConceptMisses(res GradeResult) []ConceptMiss {
	var misses []ConceptMiss
	for _, fb := range res.Feedback {
		if fb.Correct || fb.ConceptTag == nil || *fb.ConceptTag == "" {
			continue
		}
		misses = append(misses, ConceptMiss{ConceptTag: *fb.ConceptTag, QuestionID: fb.QuestionID})
	}
	return misses
}

// TallyConceptMisses counts misses per concept tag within one attempt. A
// tag tested by two questions, both missed, tallies 2; the ledger row is
// incremented once per attempt by this count.
func TallyConceptMisses(misses []ConceptMiss) map[string]int {
	tally := make(map[string]int, len(misses))
	for _, m := range misses {
		tally[m.ConceptTag]++
	}
	return tally
}

// SortedConcepts returns the tally's tags ordered by descending count,
// ties alphabetical, for stable display in messages.
func SortedConcepts(tally map[string]int) []string {
	tags := make([]string, 0, len(tally))
	for tag := range tally {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if tally[tags[i]] != tally[tags[j]] {
			return tally[tags[i]] > tally[tags[j]]
		}
		return tags[i] < tags[j]
	})
	return tags
}
