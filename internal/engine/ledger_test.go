package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectConceptMisses(t *testing.T) {
	res := GradeResult{Feedback: []QuestionFeedback{
		{QuestionID: 1, Correct: false, ConceptTag: strptr("identification")},
		{QuestionID: 2, Correct: false, ConceptTag: strptr("identification")},
		{QuestionID: 3, Correct: true, ConceptTag: strptr("identification")},
		{QuestionID: 4, Correct: false, ConceptTag: nil},
		{QuestionID: 5, Correct: false, ConceptTag: strptr("")},
	}}

	misses := CollectConceptMisses(res)

	assert.Equal(t, []ConceptMiss{
		{ConceptTag: "identification", QuestionID: 1},
		{ConceptTag: "identification", QuestionID: 2},
	}, misses)
}

func TestTallyConceptMissesCountsPerTag(t *testing.T) {
	tally := TallyConceptMisses([]ConceptMiss{
		{ConceptTag: "identification", QuestionID: 1},
		{ConceptTag: "identification", QuestionID: 2},
		{ConceptTag: "centers", QuestionID: 3},
	})

	// Two questions on the same tag missed in one attempt increment by 2.
	assert.Equal(t, map[string]int{"identification": 2, "centers": 1}, tally)
}

func TestSortedConceptsOrdersByCountThenName(t *testing.T) {
	tags := SortedConcepts(map[string]int{"b": 1, "a": 1, "c": 3})
	assert.Equal(t, []string{"c", "a", "b"}, tags)
}
