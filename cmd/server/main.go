// Package main provides the HTTP API server for the helper match engine.
// It exposes job/helper ingestion and the match-finding endpoints used by
// the marketplace frontend.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/cors"

	"helper-match-engine/internal/config"
	"helper-match-engine/internal/models"
	"helper-match-engine/internal/services/database"
	"helper-match-engine/internal/services/matcher"
	"helper-match-engine/internal/utils"
)

// Server holds all dependencies
type Server struct {
	db         *database.DB
	jobRepo    *database.JobRepository
	helperRepo *database.HelperRepository
	matchRepo  *database.MatchRepository
	matcher    *matcher.MatcherService
	config     *config.Config
	validate   *validator.Validate

	// demo-mode stores used when no database is reachable
	demoJobs    *memoryJobStore
	demoHelpers *memoryHelperStore
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func main() {
	// Initialize logger first
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load config from environment: %v", err)
		cfg = &config.Config{DefaultMatchLimit: 10, Port: "8080", Stage: "dev", LogLevel: "info"}
	}

	if err := utils.InitLogger(cfg.LogLevel, cfg.Stage); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Server will run in demo mode with sample data")
	}

	server := &Server{
		db:       db,
		config:   cfg,
		validate: validator.New(),
	}

	if db != nil {
		server.jobRepo = database.NewJobRepository(db)
		server.helperRepo = database.NewHelperRepository(db)
		server.matchRepo = database.NewMatchRepository(db)
		server.matcher = matcher.NewMatcherService(server.jobRepo, server.matchRepo)
	} else {
		server.demoJobs = newMemoryJobStore(sampleJobs())
		server.demoHelpers = newMemoryHelperStore(sampleHelpers())
		server.matcher = matcher.NewMatcherService(server.demoJobs, nil)
	}

	// Setup routes
	mux := http.NewServeMux()

	mux.HandleFunc("/health", server.healthHandler)
	mux.HandleFunc("/api/health", server.healthHandler)

	mux.HandleFunc("/api/jobs", server.jobsHandler)
	mux.HandleFunc("/api/helpers", server.helpersHandler)

	// Compute a ranked match page for a job
	mux.HandleFunc("/api/matches", server.matchesHandler)

	// Run matching for a job and persist the result
	mux.HandleFunc("/api/matches/run", server.runMatchingHandler)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)

	log.Printf("Helper Match Engine API Server")
	log.Printf("Listening on http://localhost:%s", cfg.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Port)

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "disconnected"
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err == nil {
			dbStatus = "connected"
		}
	}

	data := map[string]interface{}{
		"status":    "healthy",
		"database":  dbStatus,
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}
	if s.helperRepo != nil && dbStatus == "connected" {
		if count, err := s.helperRepo.CountActive(r.Context()); err == nil {
			data["active_helpers"] = count
		}
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Helper Match Engine API is running",
		Data:    data,
	})
}

func (s *Server) jobsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listJobs(w, r)
	case http.MethodPost:
		s.createJob(w, r)
	case http.MethodDelete:
		s.deactivateJob(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) deactivateJob(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "id is required"})
		return
	}
	if s.jobRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Not available in demo mode"})
		return
	}

	if err := s.jobRepo.Deactivate(r.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if err == models.ErrJobNotFound {
			status = http.StatusNotFound
		}
		writeJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Job deactivated"})
}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	var jobs []*models.JobRecord
	var err error

	if s.jobRepo != nil {
		jobs, err = s.jobRepo.GetAllActive(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
			return
		}
	} else {
		jobs = s.demoJobs.All()
	}

	summaries := make([]models.JobSummary, 0, len(jobs))
	for _, job := range jobs {
		summaries = append(summaries, job.ToSummary())
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: summaries})
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var req models.JobCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}
	if err := models.ValidateJobCreate(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	var id string
	var err error
	if s.jobRepo != nil {
		id, err = s.jobRepo.Create(r.Context(), &req)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
			return
		}
	} else {
		id = uuid.NewString()
		s.demoJobs.Add(req.ToRecord(id, time.Now().UTC()))
	}

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Job created",
		Data:    map[string]string{"id": id},
	})
}

func (s *Server) helpersHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listHelpers(w, r)
	case http.MethodPost:
		s.createHelper(w, r)
	case http.MethodDelete:
		s.deactivateHelper(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) deactivateHelper(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "id is required"})
		return
	}
	if s.helperRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Not available in demo mode"})
		return
	}

	if err := s.helperRepo.Deactivate(r.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if err == models.ErrHelperNotFound {
			status = http.StatusNotFound
		}
		writeJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Helper deactivated"})
}

func (s *Server) listHelpers(w http.ResponseWriter, r *http.Request) {
	helpers, err := s.activeHelpers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	summaries := make([]models.HelperSummary, 0, len(helpers))
	for _, helper := range helpers {
		summaries = append(summaries, helper.ToSummary())
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: summaries})
}

func (s *Server) createHelper(w http.ResponseWriter, r *http.Request) {
	var req models.HelperCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}
	if err := models.ValidateHelperCreate(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	var id string
	var err error
	if s.helperRepo != nil {
		id, err = s.helperRepo.Create(r.Context(), &req)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
			return
		}
	} else {
		id = uuid.NewString()
		s.demoHelpers.Add(req.ToRecord(id, time.Now().UTC()))
	}

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Helper created",
		Data:    map[string]string{"id": id},
	})
}

func (s *Server) matchesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
	case http.MethodDelete:
		s.deleteStoredMatches(w, r)
		return
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobID := r.URL.Query().Get("job_id")
	if jobID == "" {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "job_id is required"})
		return
	}

	limit := queryInt(r, "limit", s.config.DefaultMatchLimit)
	offset := queryInt(r, "offset", 0)

	// stored=true returns the persisted result of the last matching run
	// instead of recomputing.
	if r.URL.Query().Get("stored") == "true" {
		if s.matchRepo == nil {
			writeJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Not available in demo mode"})
			return
		}
		rows, err := s.matchRepo.GetByJobID(r.Context(), jobID, limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, Response{Success: true, Data: rows})
		return
	}

	helpers, err := s.activeHelpers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	page, err := s.matcher.FindMatches(r.Context(), jobID, helpers, limit, offset)
	if err != nil {
		status := http.StatusInternalServerError
		if err == models.ErrJobNotFound || err == models.ErrEmptyJobID {
			status = http.StatusNotFound
		}
		writeJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: page})
}

func (s *Server) deleteStoredMatches(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("job_id")
	if jobID == "" {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "job_id is required"})
		return
	}
	if s.matchRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Not available in demo mode"})
		return
	}

	deleted, err := s.matchRepo.DeleteByJobID(r.Context(), jobID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stored matches deleted",
		Data:    map[string]int64{"deleted": deleted},
	})
}

func (s *Server) runMatchingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.JobID == "" {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "job_id is required"})
		return
	}

	helpers, err := s.activeHelpers(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	summary, err := s.matcher.RunMatching(r.Context(), req.JobID, helpers)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Matching run complete",
		Data:    summary,
	})
}

// activeHelpers loads the helper pool for a match call.
func (s *Server) activeHelpers(ctx context.Context) ([]*models.HelperRecord, error) {
	if s.helperRepo != nil {
		return s.helperRepo.GetAllActive(ctx)
	}
	return s.demoHelpers.All(), nil
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// memoryJobStore backs demo mode when no database is reachable. Handlers
// run on separate goroutines, so all access goes through the mutex.
type memoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]*models.JobRecord
	ids  []string
}

func newMemoryJobStore(jobs []*models.JobRecord) *memoryJobStore {
	store := &memoryJobStore{jobs: make(map[string]*models.JobRecord)}
	for _, job := range jobs {
		store.Add(job)
	}
	return store
}

func (s *memoryJobStore) Add(job *models.JobRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; !exists {
		s.ids = append(s.ids, job.ID)
	}
	s.jobs[job.ID] = job
}

func (s *memoryJobStore) All() []*models.JobRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*models.JobRecord, 0, len(s.ids))
	for _, id := range s.ids {
		jobs = append(jobs, s.jobs[id])
	}
	return jobs
}

// GetByID satisfies the matcher's job source.
func (s *memoryJobStore) GetByID(_ context.Context, id string) (*models.JobRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobs[id], nil
}

// memoryHelperStore backs demo mode for helper profiles.
type memoryHelperStore struct {
	mu      sync.RWMutex
	helpers []*models.HelperRecord
}

func newMemoryHelperStore(helpers []*models.HelperRecord) *memoryHelperStore {
	return &memoryHelperStore{helpers: helpers}
}

func (s *memoryHelperStore) Add(helper *models.HelperRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.helpers = append(s.helpers, helper)
}

// All returns a snapshot so callers never iterate a slice that a
// concurrent Add may grow.
func (s *memoryHelperStore) All() []*models.HelperRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	helpers := make([]*models.HelperRecord, len(s.helpers))
	copy(helpers, s.helpers)
	return helpers
}

func sampleJobs() []*models.JobRecord {
	two := 2
	one := 1
	six := 6
	salary := 650.0

	return []*models.JobRecord{
		{
			ID:                 "job-demo-1",
			Title:              "Live-in helper for young family",
			Description:        "Need an experienced helper, 3+ years, for childcare and cooking",
			City:               "Singapore",
			Country:            "Singapore",
			ChildrenCount:      &two,
			WorkingDays:        &six,
			RestDays:           &one,
			SalaryAmount:       &salary,
			SalaryCurrency:     "SGD",
			Urgency:            "within_month",
			ReligionPreference: "",
			IsActive:           true,
		},
		{
			ID:          "job-demo-2",
			Title:       "Part-time cleaner",
			Description: "No experience required, cleaning and laundry twice a week",
			City:        "Kuala Lumpur",
			Country:     "Malaysia",
			Urgency:     "flexible",
			IsActive:    true,
		},
	}
}

func sampleHelpers() []*models.HelperRecord {
	six := 6
	two := 2
	full := 95
	half := 60

	return []*models.HelperRecord{
		{
			ID:                  "helper-demo-1",
			Name:                "Maria Santos",
			DateOfBirth:         "1992-04-15",
			Nationality:         "Philippines",
			Religion:            "Catholic",
			BirthCity:           "Singapore",
			SkillsText:          "Childcare, cooking, cleaning",
			HasBeenHelperBefore: "yes",
			ExperienceYears:     &six,
			ProfileCompleteness: &full,
			IsActive:            true,
			IsVerified:          true,
		},
		{
			ID:                  "helper-demo-2",
			Name:                "Siti Rahayu",
			DateOfBirth:         "1998-11-02",
			Nationality:         "Indonesia",
			Religion:            "Muslim",
			BirthCity:           "Jakarta",
			SkillsText:          "Cooking, laundry, ironing",
			HasBeenHelperBefore: "yes",
			ExperienceYears:     &two,
			ProfileCompleteness: &half,
			IsActive:            true,
		},
		{
			ID:                  "helper-demo-3",
			Name:                "Lin Wei",
			Nationality:         "China",
			SkillsText:          "Elderly care, housekeeping",
			HasBeenHelperBefore: "no",
			IsActive:            true,
		},
	}
}
