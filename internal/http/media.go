package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"ascenda-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 25 << 20

func (s *Server) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	s.upload(w, r, services.BucketUsers)
}

func (s *Server) UploadCourseMedia(w http.ResponseWriter, r *http.Request) {
	s.upload(w, r, services.BucketCourses)
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request, bucket string) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	asset, url, err := s.Registry.Media.Save(r.Context(), bucket, contentType, header.Filename, CurrentUserID(r), io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"asset": asset, "url": url})
}

func (s *Server) MediaContent(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetId")
	file, asset, err := s.Registry.Media.Open(r.Context(), assetID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer file.Close()
	w.Header().Set("Content-Type", asset.ContentType)
	if asset.SizeBytes > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(asset.SizeBytes, 10))
	}
	_, _ = io.Copy(w, file)
}

func (s *Server) DeleteMediaAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetId")
	if err := s.Registry.Media.Delete(r.Context(), assetID); err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
