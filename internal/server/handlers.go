package server

import (
	"encoding/json"
	"net/http"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/google/uuid"

	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/persistence"
	"github.com/jonathan/health-check/internal/pipeline"
	"github.com/jonathan/health-check/internal/types"
)

// CatalogResponse represents the response for /catalog
type CatalogResponse struct {
	Name       string           `json:"name"`
	Kind       catalog.Kind     `json:"kind"`
	Categories []types.Category `json:"categories"`
	Questions  []types.Question `json:"questions"`
}

// StoredAssessmentResponse represents the response for /assessments/{id}
type StoredAssessmentResponse struct {
	ID             string          `json:"id"`
	Catalog        string          `json:"catalog"`
	RespondentHash string          `json:"respondent_hash,omitempty"`
	CreatedAt      string          `json:"created_at"`
	Source         string          `json:"source"`
	Answers        json.RawMessage `json:"answers"`
	Result         json.RawMessage `json:"result"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"catalog":   s.catalog.Name(),
		"questions": s.catalog.Len(),
	})
}

// handleCatalog returns the two-axis questionnaire
func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, catalogResponse(s.catalog))
}

// handleDimensionalCatalog returns the four-axis questionnaire
func (s *Server) handleDimensionalCatalog(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, catalogResponse(s.dimensional))
}

func catalogResponse(cat *catalog.Catalog) CatalogResponse {
	return CatalogResponse{
		Name:       cat.Name(),
		Kind:       cat.Kind(),
		Categories: cat.Categories(),
		Questions:  cat.Questions(),
	}
}

// decodeAssessment reads and validates an assessment request body
func (s *Server) decodeAssessment(r *http.Request) (*types.AssessmentRequest, error) {
	var req types.AssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return &req, nil
}

// notPersisted marks a result whose caller asked for storage the server does not have
func (s *Server) notPersisted(req *types.AssessmentRequest, res *pipeline.RunResult) {
	if req.Persist && s.persister == nil {
		res.Outcome = &persistence.Outcome{
			Success: false,
			Message: "Persistence is not configured",
			Target:  persistence.TargetNone,
		}
	}
}

func (s *Server) runOptions(req *types.AssessmentRequest) pipeline.RunOptions {
	return pipeline.RunOptions{
		Catalog:       s.catalog,
		Request:       req,
		Scoring:       s.scoring,
		Persister:     s.persister,
		RespondentKey: s.respondentKey,
	}
}

// handleCreateAssessment scores answers and optionally persists the result
func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeAssessment(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	res, err := pipeline.RunAssessment(r.Context(), s.runOptions(req))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.metrics.ObserveAssessment(res.Result)
	s.notPersisted(req, res)

	s.jsonResponse(w, http.StatusOK, res)
}

// handleAssessmentStream scores answers and streams progress via SSE
func (s *Server) handleAssessmentStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeAssessment(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger := s.logger.Session("stream")
	opts := s.runOptions(req)
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteStep(event); err != nil {
			logger.Error("write-step", err)
		}
	}

	res, err := pipeline.RunAssessment(r.Context(), opts)
	if err != nil {
		if werr := sse.WriteError(err.Error()); werr != nil {
			logger.Error("write-error", werr)
		}
		return
	}
	s.metrics.ObserveAssessment(res.Result)
	s.notPersisted(req, res)
	if err := sse.WriteResult(res); err != nil {
		logger.Error("write-result", err)
	}
}

// handleGetAssessment returns a stored assessment from PostgreSQL or the local file
func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid assessment ID format")
		return
	}

	if s.store == nil && s.local == nil {
		err := &ErrUnavailable{Feature: "assessment storage"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if s.store != nil {
		a, err := s.store.GetAssessment(r.Context(), id)
		if err != nil {
			s.logger.Error("get-assessment", err, lager.Data{"id": idStr})
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		if a != nil {
			s.jsonResponse(w, http.StatusOK, StoredAssessmentResponse{
				ID:             a.ID.String(),
				Catalog:        a.Catalog,
				RespondentHash: a.RespondentHash,
				CreatedAt:      a.CreatedAt.Format(time.RFC3339),
				Source:         "postgres",
				Answers:        a.Answers,
				Result:         a.Result,
			})
			return
		}
	}

	if s.local != nil {
		rec, err := s.local.Get(r.Context(), id)
		if err != nil {
			s.logger.Error("get-local-record", err, lager.Data{"id": idStr})
			s.errorResponse(w, http.StatusInternalServerError, "Local store error: "+err.Error())
			return
		}
		if rec != nil {
			resp, err := storedFromRecord(rec)
			if err != nil {
				s.errorResponse(w, http.StatusInternalServerError, err.Error())
				return
			}
			s.jsonResponse(w, http.StatusOK, resp)
			return
		}
	}

	notFound := &ErrNotFound{Resource: "assessment", ID: idStr}
	s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
}

func storedFromRecord(rec *persistence.Record) (*StoredAssessmentResponse, error) {
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return nil, err
	}
	result, err := json.Marshal(rec.Result)
	if err != nil {
		return nil, err
	}
	return &StoredAssessmentResponse{
		ID:             rec.ID.String(),
		Catalog:        rec.Catalog,
		RespondentHash: rec.RespondentHash,
		CreatedAt:      rec.CreatedAt.Format(time.RFC3339),
		Source:         "local",
		Answers:        answers,
		Result:         result,
	}, nil
}

// handleCreateProfile computes the four-axis vector and matches a profile
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req types.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := pipeline.CheckAnswers(s.dimensional, req.Answers); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result := pipeline.EvaluateProfile(s.dimensional, req.Answers, s.profiles)
	s.metrics.ObserveProfile(result)

	s.jsonResponse(w, http.StatusOK, result)
}
