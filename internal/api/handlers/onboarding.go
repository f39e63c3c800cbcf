package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rehearse-io/rehearse-server/internal/api/middleware"
	"github.com/rehearse-io/rehearse-server/internal/api/response"
	"github.com/rehearse-io/rehearse-server/internal/config"
	"github.com/rehearse-io/rehearse-server/internal/domain"
	"github.com/rehearse-io/rehearse-server/internal/service"
)

type OnboardingHandler struct {
	onboardingService *service.OnboardingService
	cfg               *config.Config
}

func NewOnboardingHandler(onboardingService *service.OnboardingService, cfg *config.Config) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingService: onboardingService,
		cfg:               cfg,
	}
}

type ArtifactResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	FileName   string    `json:"fileName"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type ArtifactDownloadResponse struct {
	ArtifactResponse
	DownloadURL string `json:"downloadUrl"`
}

func toArtifactResponse(a *domain.OnboardingArtifact) ArtifactResponse {
	return ArtifactResponse{
		ID:         a.ID.String(),
		Kind:       string(a.Kind),
		FileName:   a.FileName,
		UploadedAt: a.CreatedAt,
	}
}

// Upload accepts a multipart form with a single "file" field. The part
// handle is closed on every exit path and the body streams straight to the
// object store, so an aborted upload cannot leak a descriptor.
func (h *OnboardingHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Err(w, http.StatusUnauthorized, "No token provided")
		return
	}

	kind := domain.ArtifactKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		response.Err(w, http.StatusBadRequest, "Unknown artifact kind")
		return
	}

	// Slack covers multipart framing so a file exactly at the cap still
	// reaches the service's authoritative size check.
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes+64<<10)

	file, header, err := r.FormFile("file")
	if err != nil {
		// The body limit trips inside FormFile for oversized uploads.
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			response.Err(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		response.Err(w, http.StatusBadRequest, "A 'file' form field is required")
		return
	}
	defer file.Close()

	artifact, err := h.onboardingService.UploadArtifact(r.Context(), userID, kind, service.ArtifactUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedFileType):
			response.Err(w, http.StatusUnsupportedMediaType, "Unsupported file type")
		case errors.Is(err, domain.ErrFileTooLarge):
			response.Err(w, http.StatusRequestEntityTooLarge, "File too large")
		default:
			log.Printf("ERROR [handlers.Upload] %v", err)
			response.Err(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	response.JSON(w, http.StatusCreated, map[string]ArtifactResponse{
		"artifact": toArtifactResponse(artifact),
	})
}

func (h *OnboardingHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Err(w, http.StatusUnauthorized, "No token provided")
		return
	}

	status, err := h.onboardingService.Status(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [handlers.Status] %v", err)
		response.Err(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.JSON(w, http.StatusOK, status)
}

func (h *OnboardingHandler) ListArtifacts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Err(w, http.StatusUnauthorized, "No token provided")
		return
	}

	downloads, err := h.onboardingService.ListArtifacts(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [handlers.ListArtifacts] %v", err)
		response.Err(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	artifacts := make([]ArtifactDownloadResponse, 0, len(downloads))
	for _, d := range downloads {
		artifacts = append(artifacts, ArtifactDownloadResponse{
			ArtifactResponse: toArtifactResponse(d.Artifact),
			DownloadURL:      d.DownloadURL,
		})
	}

	response.JSON(w, http.StatusOK, map[string][]ArtifactDownloadResponse{
		"artifacts": artifacts,
	})
}
