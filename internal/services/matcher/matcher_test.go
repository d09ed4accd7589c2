package matcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helper-match-engine/internal/models"
)

// stubJobSource returns a fixed job or error.
type stubJobSource struct {
	job   *models.JobRecord
	err   error
	calls int
}

func (s *stubJobSource) GetByID(_ context.Context, _ string) (*models.JobRecord, error) {
	s.calls++
	return s.job, s.err
}

// captureSink records what the matcher persists.
type captureSink struct {
	runID   string
	jobID   string
	matches []models.Match
	err     error
}

func (s *captureSink) BulkInsert(_ context.Context, runID, jobID string, matches []models.Match) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.runID = runID
	s.jobID = jobID
	s.matches = matches
	return len(matches), nil
}

func testJob() *models.JobRecord {
	return &models.JobRecord{
		ID:          "job-1",
		Title:       "Live-in helper",
		Description: "Need an experienced helper, 3+ years, for childcare and cooking",
		City:        "Singapore",
		Country:     "Singapore",
		IsActive:    true,
	}
}

func testHelper(id, name, skills, hasExperience string, years int) *models.HelperRecord {
	return &models.HelperRecord{
		ID:                  id,
		Name:                name,
		SkillsText:          skills,
		HasBeenHelperBefore: hasExperience,
		ExperienceYears:     &years,
		IsActive:            true,
	}
}

func newTestService(source JobSource, sink MatchSink) *MatcherService {
	return NewMatcherServiceWithExtractor(source, sink, NewExtractorWithClock(fixedClock()))
}

func TestFindMatches_SortedDescending(t *testing.T) {
	source := &stubJobSource{job: testJob()}
	service := newTestService(source, nil)

	helpers := []*models.HelperRecord{
		testHelper("h1", "Weak", "driving", "no", 0),
		testHelper("h2", "Strong", "childcare, cooking", "yes", 6),
		testHelper("h3", "Partial", "cooking", "yes", 6),
	}

	page, err := service.FindMatches(context.Background(), "job-1", helpers, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Matches, 3)

	assert.Equal(t, "Strong", page.Matches[0].Helper.Name)
	assert.Equal(t, "Partial", page.Matches[1].Helper.Name)
	assert.Equal(t, "Weak", page.Matches[2].Helper.Name)

	for i := 1; i < len(page.Matches); i++ {
		assert.GreaterOrEqual(t, page.Matches[i-1].Similarity, page.Matches[i].Similarity)
	}
	assert.Equal(t, 3, page.TotalMatches)
	assert.False(t, page.HasMore)
}

func TestFindMatches_StableForTies(t *testing.T) {
	source := &stubJobSource{job: testJob()}
	service := newTestService(source, nil)

	// Identical profiles score identically; input order must survive.
	helpers := []*models.HelperRecord{
		testHelper("h1", "First", "cooking", "yes", 3),
		testHelper("h2", "Second", "cooking", "yes", 3),
		testHelper("h3", "Third", "cooking", "yes", 3),
	}

	page, err := service.FindMatches(context.Background(), "job-1", helpers, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Matches, 3)

	assert.Equal(t, "First", page.Matches[0].Helper.Name)
	assert.Equal(t, "Second", page.Matches[1].Helper.Name)
	assert.Equal(t, "Third", page.Matches[2].Helper.Name)
}

func TestFindMatches_Pagination(t *testing.T) {
	source := &stubJobSource{job: testJob()}
	service := newTestService(source, nil)

	helpers := make([]*models.HelperRecord, 0, 5)
	names := []string{"A", "B", "C", "D", "E"}
	for i, name := range names {
		helpers = append(helpers, testHelper(name, name, "cooking", "yes", 6-i))
	}

	page, err := service.FindMatches(context.Background(), "job-1", helpers, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page.Matches, 2)
	assert.Equal(t, 5, page.TotalMatches)
	assert.True(t, page.HasMore)

	page, err = service.FindMatches(context.Background(), "job-1", helpers, 2, 4)
	require.NoError(t, err)
	assert.Len(t, page.Matches, 1)
	assert.Equal(t, 5, page.TotalMatches)
	assert.False(t, page.HasMore)

	// Offset past the end yields an empty page, not an error
	page, err = service.FindMatches(context.Background(), "job-1", helpers, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Matches)
	assert.Equal(t, 5, page.TotalMatches)
	assert.False(t, page.HasMore)
}

func TestFindMatches_SkipsBadHelper(t *testing.T) {
	source := &stubJobSource{job: testJob()}
	service := newTestService(source, nil)

	helpers := []*models.HelperRecord{
		testHelper("h1", "Good", "cooking", "yes", 3),
		nil,
		testHelper("h2", "Also Good", "childcare", "yes", 4),
	}

	page, err := service.FindMatches(context.Background(), "job-1", helpers, 10, 0)
	require.NoError(t, err)
	assert.Len(t, page.Matches, 2)
	assert.Equal(t, 2, page.TotalMatches)
}

func TestFindMatches_EmptyRecordStillScores(t *testing.T) {
	source := &stubJobSource{job: testJob()}
	service := newTestService(source, nil)

	// A present-but-empty record extracts with pure defaults
	page, err := service.FindMatches(context.Background(), "job-1", []*models.HelperRecord{{}}, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Matches, 1)
	assert.GreaterOrEqual(t, page.Matches[0].Similarity, 0.0)
	assert.LessOrEqual(t, page.Matches[0].Similarity, 1.0)
}

func TestFindMatches_FallbackOnLookupError(t *testing.T) {
	source := &stubJobSource{err: errors.New("connection refused")}
	service := newTestService(source, nil)

	helpers := []*models.HelperRecord{
		testHelper("h1", "Maria", "cooking, cleaning", "yes", 5),
	}

	page, err := service.FindMatches(context.Background(), "job-x", helpers, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalMatches)
	assert.Equal(t, 1, source.calls)
}

func TestFindMatches_FallbackOnMissingJob(t *testing.T) {
	source := &stubJobSource{job: nil}
	service := newTestService(source, nil)

	page, err := service.FindMatches(context.Background(), "job-x",
		[]*models.HelperRecord{testHelper("h1", "Maria", "cooking", "yes", 5)}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalMatches)
}

func TestFindMatches_StrictLookup(t *testing.T) {
	source := &stubJobSource{job: nil}
	service := newTestService(source, nil)
	service.Strict = true

	_, err := service.FindMatches(context.Background(), "job-x", nil, 10, 0)
	assert.ErrorIs(t, err, models.ErrJobNotFound)

	source = &stubJobSource{err: errors.New("connection refused")}
	service = newTestService(source, nil)
	service.Strict = true

	_, err = service.FindMatches(context.Background(), "job-x", nil, 10, 0)
	assert.EqualError(t, err, "connection refused")
}

func TestFindMatches_EmptyJobID(t *testing.T) {
	service := newTestService(&stubJobSource{job: testJob()}, nil)

	_, err := service.FindMatches(context.Background(), "", nil, 10, 0)
	assert.ErrorIs(t, err, models.ErrEmptyJobID)
}

func TestRunMatching_PersistsSortedMatches(t *testing.T) {
	source := &stubJobSource{job: testJob()}
	sink := &captureSink{}
	service := newTestService(source, sink)

	helpers := []*models.HelperRecord{
		testHelper("h1", "Weak", "driving", "no", 0),
		testHelper("h2", "Strong", "childcare, cooking", "yes", 6),
		nil,
	}

	summary, err := service.RunMatching(context.Background(), "job-1", helpers)
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, "job-1", summary.JobID)
	assert.Equal(t, 3, summary.TotalHelpers)
	assert.Equal(t, 2, summary.ScoredHelpers)
	assert.Equal(t, 1, summary.SkippedHelpers)
	assert.Equal(t, 2, summary.PersistedMatches)
	assert.False(t, summary.UsedFallbackJob)
	assert.Equal(t, summary.RunID, sink.runID)
	assert.Equal(t, "job-1", sink.jobID)

	require.Len(t, sink.matches, 2)
	assert.Equal(t, "Strong", sink.matches[0].Helper.Name)
	assert.Equal(t, summary.TopSimilarity, sink.matches[0].Similarity)
	assert.Greater(t, summary.AverageSimilarity, 0.0)
}

func TestRunMatching_ReportsFallback(t *testing.T) {
	source := &stubJobSource{job: nil}
	service := newTestService(source, &captureSink{})

	summary, err := service.RunMatching(context.Background(), "job-x",
		[]*models.HelperRecord{testHelper("h1", "Maria", "cooking", "yes", 5)})
	require.NoError(t, err)
	assert.True(t, summary.UsedFallbackJob)
}

func TestRunMatching_SinkFailure(t *testing.T) {
	source := &stubJobSource{job: testJob()}
	sink := &captureSink{err: errors.New("insert failed")}
	service := newTestService(source, sink)

	_, err := service.RunMatching(context.Background(), "job-1",
		[]*models.HelperRecord{testHelper("h1", "Maria", "cooking", "yes", 5)})
	assert.EqualError(t, err, "insert failed")
}

func TestPaginate_Clamping(t *testing.T) {
	matches := []models.Match{
		{Similarity: 0.9},
		{Similarity: 0.8},
		{Similarity: 0.7},
	}

	page := paginate(matches, -1, -5)
	assert.Len(t, page.Matches, 3)
	assert.Equal(t, 3, page.TotalMatches)
	assert.False(t, page.HasMore)

	page = paginate(matches, 1, 1)
	require.Len(t, page.Matches, 1)
	assert.InDelta(t, 0.8, page.Matches[0].Similarity, 1e-9)
	assert.True(t, page.HasMore)
}
