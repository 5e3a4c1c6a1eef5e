// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/setlist/cliparse"
	"github.com/danielhkuo/setlist/media"
	"github.com/danielhkuo/setlist/middleware"
	"github.com/danielhkuo/setlist/models"
)

// StaticPrefix is where the router serves the image directory.
const StaticPrefix = "/static/imgs/"

type MediaHandler struct {
	library *media.Library
	cfg     cliparse.Config
}

func NewMediaHandler(lib *media.Library, cfg cliparse.Config) *MediaHandler {
	return &MediaHandler{library: lib, cfg: cfg}
}

// Upload handles POST /upload
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	limit := "File exceeds the " + humanize.Bytes(uint64(h.cfg.MaxUploadBytes)) + " limit"
	if r.ContentLength > h.cfg.MaxUploadBytes {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, limit)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, limit)
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	name, size, err := h.library.Save(header.Filename, file)
	if errors.Is(err, media.ErrInvalidFilename) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid file name")
		return
	}
	if err != nil {
		slog.Error("failed to save upload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save file")
		return
	}

	slog.Info("image uploaded", "filename", name, "size", humanize.Bytes(uint64(size)))

	middleware.JSONResponse(w, http.StatusCreated, models.UploadResponse{
		Filename: name,
		URL:      StaticPrefix + name,
	})
}

// AllImages handles GET /images
func (h *MediaHandler) AllImages(w http.ResponseWriter, r *http.Request) {
	names, err := h.library.List()
	if err != nil {
		slog.Error("failed to list images", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list images")
		return
	}

	urls := make([]string, 0, len(names))
	for _, n := range names {
		urls = append(urls, StaticPrefix+n)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ImagesResponse{URLs: urls})
}

// RandomImage handles GET /images/random
func (h *MediaHandler) RandomImage(w http.ResponseWriter, r *http.Request) {
	name, err := h.library.Random()
	if errors.Is(err, media.ErrEmpty) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No images uploaded yet")
		return
	}
	if err != nil {
		slog.Error("failed to pick image", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list images")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ImageResponse{URL: StaticPrefix + name})
}
