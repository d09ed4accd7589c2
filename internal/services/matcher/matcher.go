package matcher

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"helper-match-engine/internal/models"
	"helper-match-engine/internal/utils"
)

// defaultPageLimit is used when the caller passes a non-positive limit.
const defaultPageLimit = 10

// JobSource resolves job records for the match finder. Implementations may
// return (nil, nil) when no job exists for the id.
type JobSource interface {
	GetByID(ctx context.Context, id string) (*models.JobRecord, error)
}

// MatchSink persists computed matches for a run.
type MatchSink interface {
	BulkInsert(ctx context.Context, runID, jobID string, matches []models.Match) (int, error)
}

// MatcherService ranks helpers against a job.
type MatcherService struct {
	jobs      JobSource
	sink      MatchSink
	extractor *Extractor

	// Strict makes a failed or empty job lookup a hard error instead of
	// falling back to a synthetic default job. The fallback is legacy
	// behavior kept as the default; see DESIGN.md.
	Strict bool
}

// NewMatcherService creates a matcher service over the given job source.
// The sink may be nil when matches are not persisted.
func NewMatcherService(jobs JobSource, sink MatchSink) *MatcherService {
	return &MatcherService{
		jobs:      jobs,
		sink:      sink,
		extractor: NewExtractor(),
	}
}

// NewMatcherServiceWithExtractor creates a matcher service with a custom
// extractor, for tests that pin the clock.
func NewMatcherServiceWithExtractor(jobs JobSource, sink MatchSink, extractor *Extractor) *MatcherService {
	return &MatcherService{
		jobs:      jobs,
		sink:      sink,
		extractor: extractor,
	}
}

// FindMatches resolves the job, scores every helper against it and returns
// one page of the ranked result. A failure on a single helper skips that
// helper only.
func (m *MatcherService) FindMatches(ctx context.Context, jobID string, helpers []*models.HelperRecord, limit, offset int) (*models.MatchPage, error) {
	job, _, err := m.resolveJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	scored, skipped := m.scoreHelpers(job, helpers)

	utils.GetLogger().Info("Scored helpers for job",
		zap.String("job_id", jobID),
		zap.Int("helpers", len(helpers)),
		zap.Int("scored", len(scored)),
		zap.Int("skipped", skipped),
	)

	return paginate(scored, limit, offset), nil
}

// RunMatching scores every helper against the job, persists the full ranked
// result through the sink and returns a run summary.
func (m *MatcherService) RunMatching(ctx context.Context, jobID string, helpers []*models.HelperRecord) (*models.MatchRunSummary, error) {
	startTime := time.Now()

	job, usedFallback, err := m.resolveJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	scored, skipped := m.scoreHelpers(job, helpers)

	summary := &models.MatchRunSummary{
		RunID:           uuid.NewString(),
		JobID:           jobID,
		TotalHelpers:    len(helpers),
		ScoredHelpers:   len(scored),
		SkippedHelpers:  skipped,
		UsedFallbackJob: usedFallback,
	}

	if len(scored) > 0 {
		summary.TopSimilarity = scored[0].Similarity
		total := 0.0
		for _, match := range scored {
			total += match.Similarity
		}
		summary.AverageSimilarity = total / float64(len(scored))
	}

	if m.sink != nil {
		persisted, err := m.sink.BulkInsert(ctx, summary.RunID, jobID, scored)
		if err != nil {
			return nil, err
		}
		summary.PersistedMatches = persisted
	}

	summary.ProcessingTime = time.Since(startTime)
	summary.ProcessingTimeMs = summary.ProcessingTime.Milliseconds()

	utils.GetLogger().Info("Matching run complete",
		zap.String("run_id", summary.RunID),
		zap.String("job_id", jobID),
		zap.Int("scored", summary.ScoredHelpers),
		zap.Int("persisted", summary.PersistedMatches),
		zap.Duration("processing_time", summary.ProcessingTime),
	)

	return summary, nil
}

// resolveJob looks up the job and reports whether the fallback was used.
func (m *MatcherService) resolveJob(ctx context.Context, jobID string) (*models.JobRecord, bool, error) {
	if jobID == "" {
		return nil, false, models.ErrEmptyJobID
	}

	if m.jobs != nil {
		job, err := m.jobs.GetByID(ctx, jobID)
		if err == nil && job != nil {
			return job, false, nil
		}
		if err != nil {
			if m.Strict {
				return nil, false, err
			}
			utils.GetLogger().Warn("Job lookup failed, degrading to default job",
				zap.String("job_id", jobID),
				zap.Error(err),
			)
		} else {
			if m.Strict {
				return nil, false, models.ErrJobNotFound
			}
			utils.GetLogger().Warn("Job not found, degrading to default job",
				zap.String("job_id", jobID),
			)
		}
	} else if m.Strict {
		return nil, false, models.ErrJobNotFound
	}

	return defaultJob(jobID), true, nil
}

// scoreHelpers extracts job features once and scores every helper,
// skipping records that cannot be processed. The returned slice is sorted
// by similarity descending; ties keep input order.
func (m *MatcherService) scoreHelpers(job *models.JobRecord, helpers []*models.HelperRecord) ([]models.Match, int) {
	jobFeatures := m.extractor.ExtractJobFeatures(job)

	scored := make([]models.Match, 0, len(helpers))
	skipped := 0
	for i, helper := range helpers {
		match, err := m.scoreHelper(jobFeatures, helper)
		if err != nil {
			skipped++
			utils.GetLogger().Warn("Skipping helper",
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		scored = append(scored, match)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	return scored, skipped
}

// scoreHelper builds the match record for one helper.
func (m *MatcherService) scoreHelper(job JobFeatures, helper *models.HelperRecord) (models.Match, error) {
	if helper == nil {
		return models.Match{}, models.ErrNilHelperRecord
	}

	features := m.extractor.ExtractHelperFeatures(helper)

	return models.Match{
		Helper:       helper.ToSummary(),
		Similarity:   CalculateSimilarity(job, features),
		MatchReasons: MatchReasons(job, features),
	}, nil
}

// paginate slices the sorted matches into one page.
func paginate(matches []models.Match, limit, offset int) *models.MatchPage {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	total := len(matches)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &models.MatchPage{
		Matches:      matches[start:end],
		TotalMatches: total,
		HasMore:      offset+limit < total,
	}
}

// defaultJob is the synthetic record substituted when the job lookup
// degrades. Kept for parity with the legacy behavior.
func defaultJob(jobID string) *models.JobRecord {
	return &models.JobRecord{
		ID:             jobID,
		Title:          "Domestic helper",
		Description:    "Looking for a helper for general housework, cooking and cleaning",
		City:           "Singapore",
		Country:        "Singapore",
		SalaryCurrency: "sgd",
		Urgency:        string(models.UrgencyFlexible),
		IsActive:       true,
	}
}
