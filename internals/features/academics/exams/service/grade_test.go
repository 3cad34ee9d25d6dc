package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exammodel "github.com/Davie-07/school-management-system/internals/features/academics/exams/model"
)

func TestGradeBandEdges(t *testing.T) {
	cases := []struct {
		percentage float64
		want       string
	}{
		{100, "A"},
		{80, "A"},
		{79.9, "B"},
		{70, "B"},
		{60, "C"},
		{50, "D"},
		{49.9, "E"},
		{40, "E"},
		{39.9, "F"},
		{0, "F"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Grade(tc.percentage), "percentage %v", tc.percentage)
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, float64(80), Percentage(40, 50))
	assert.Equal(t, float64(0), Percentage(10, 0))
}

func TestUpsertResultReplacesByStudent(t *testing.T) {
	markedBy := uuid.New()
	student := uuid.New()
	now := time.Now()

	results := []exammodel.ExamResult{}
	results = UpsertResult(results, ScoreResult(student, 35, "", 100, markedBy, now))
	require.Len(t, results, 1)
	assert.Equal(t, "F", results[0].Grade)

	// re-marking the same student replaces, not appends
	results = UpsertResult(results, ScoreResult(student, 85, "improved", 100, markedBy, now))
	require.Len(t, results, 1)
	assert.Equal(t, "A", results[0].Grade)
	assert.Equal(t, float64(85), results[0].Score)

	other := uuid.New()
	results = UpsertResult(results, ScoreResult(other, 55, "", 100, markedBy, now))
	assert.Len(t, results, 2)
}

func TestUpsertResultKeepsPublicationAndMisprints(t *testing.T) {
	student := uuid.New()
	now := time.Now()

	results := []exammodel.ExamResult{{
		StudentID:   student,
		Score:       60,
		Published:   true,
		PublishedAt: &now,
		Misprints:   []exammodel.Misprint{{MisprintID: uuid.New(), Issue: "wrong score"}},
	}}

	results = UpsertResult(results, ScoreResult(student, 72, "", 100, uuid.New(), now))

	require.Len(t, results, 1)
	assert.True(t, results[0].Published)
	assert.Len(t, results[0].Misprints, 1)
	assert.Equal(t, float64(72), results[0].Score)
}

func TestPublishFlipsEveryResult(t *testing.T) {
	now := time.Now()
	results := []exammodel.ExamResult{
		{StudentID: uuid.New(), Score: 80},
		{StudentID: uuid.New(), Score: 40},
		{StudentID: uuid.New(), Score: 10},
	}

	results = Publish(results, now)

	for _, r := range results {
		assert.True(t, r.Published)
		require.NotNil(t, r.PublishedAt)
		assert.Equal(t, now, *r.PublishedAt)
	}
}

func TestRescoreRecomputesDerivedFields(t *testing.T) {
	r := exammodel.ExamResult{StudentID: uuid.New(), Score: 30, Percentage: 30, Grade: "F"}

	Rescore(&r, 75, 100)

	assert.Equal(t, float64(75), r.Score)
	assert.Equal(t, float64(75), r.Percentage)
	assert.Equal(t, "B", r.Grade)
}
