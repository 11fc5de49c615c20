package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"profilebot/internal/app"
	"profilebot/internal/chat"
	"profilebot/internal/document"
	"profilebot/internal/httputil"
	"profilebot/internal/queue"
	"profilebot/internal/store"
)

type chatRequest struct {
	SessionID string         `json:"session_id"`
	Message   string         `json:"message" validate:"required,max=4000"`
	History   []chat.Message `json:"history" validate:"omitempty,max=50"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	// The corpus is rebuilt from disk on every start; per-file failures are
	// recorded, never fatal.
	corpus := deps.Registry.ProcessAll(context.Background())
	deps.Log.Info("document corpus ready", "documents", len(corpus))

	r := httputil.NewRouter(deps.Log)

	r.Post("/api/chat", chatHandler(deps))
	r.Post("/api/documents/upload", uploadHandler(deps))
	r.Get("/api/documents", listDocumentsHandler(deps))
	r.Get("/api/documents/search", searchHandler(deps))
	r.Get("/api/documents/stats", statsHandler(deps))
	r.Get("/api/analytics/summary", analyticsHandler(deps))
	r.Get("/api/contacts", contactsHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("server listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func chatHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		if req.SessionID == "" {
			req.SessionID = uuid.New().String()
		}

		reply, err := deps.Chat.Respond(r.Context(), req.SessionID, req.Message, req.History)
		if err != nil {
			httputil.Fail(deps.Log, w, "chat failed", err, http.StatusBadGateway)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"session_id": req.SessionID,
			"reply":      reply,
		})
	}
}

func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}
		// Chunked uploads carry no Content-Length; cap the body itself so
		// multipart parsing can't buffer past the limit.
		r.Body = http.MaxBytesReader(w, r.Body, maxFileSize)

		file, header, err := r.FormFile("file")
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), err, http.StatusBadRequest)
				return
			}
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		filename := filepath.Base(header.Filename)
		if _, ok := document.FileTypeFromExt(filepath.Ext(filename)); !ok {
			httputil.Fail(deps.Log, w,
				fmt.Sprintf("unsupported file type %q (allowed: pdf, docx, txt, md, json)", filepath.Ext(filename)),
				nil, http.StatusBadRequest)
			return
		}

		path := filepath.Join(deps.Registry.Dir(), filename)
		if err := saveUpload(path, file); err != nil {
			httputil.Fail(deps.Log, w, "failed to save file", err, http.StatusInternalServerError)
			return
		}

		rec, err := deps.Registry.ProcessOne(ctx, path)
		if err != nil {
			status := http.StatusUnprocessableEntity
			var unsupported *document.UnsupportedTypeError
			if errors.As(err, &unsupported) || errors.Is(err, document.ErrNotFound) {
				status = http.StatusBadRequest
			}
			httputil.Fail(deps.Log, w, fmt.Sprintf("failed to process document: %v", err), err, status)
			return
		}

		if err := deps.Store.SaveDocumentMeta(ctx, store.DocumentMeta{
			Filename:    rec.Filename,
			Path:        path,
			FileType:    string(rec.FileType),
			Summary:     rec.Summary,
			Keywords:    rec.Keywords,
			ContentHash: rec.ContentHash,
		}); err != nil {
			deps.Log.Error("failed to save document metadata", "filename", rec.Filename, "err", err)
		}
		publishEvent(ctx, deps, store.Event{
			Type: store.EventDocumentUploaded,
			Data: map[string]any{"filename": rec.Filename, "file_type": string(rec.FileType)},
		})

		httputil.WriteJSON(w, http.StatusCreated, map[string]any{
			"filename":       rec.Filename,
			"file_type":      rec.FileType,
			"content_length": rec.ContentLength,
			"summary":        rec.Summary,
			"keywords":       rec.Keywords,
		})
	}
}

func saveUpload(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return err
	}
	return dst.Close()
}

func listDocumentsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"documents": deps.Registry.All(),
		})
	}
}

func searchHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			httputil.Fail(deps.Log, w, "query parameter q is required", nil, http.StatusBadRequest)
			return
		}
		results := deps.Registry.Search(query)
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"query":   query,
			"results": results,
		})
	}
}

func statsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, deps.Registry.Stats())
	}
}

func analyticsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 7
		if raw := r.URL.Query().Get("days"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				httputil.Fail(deps.Log, w, "days must be a positive integer", err, http.StatusBadRequest)
				return
			}
			days = parsed
		}
		summary, err := deps.Store.AnalyticsSummary(r.Context(), days)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to load analytics", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, summary)
	}
}

func contactsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				httputil.Fail(deps.Log, w, "limit must be a positive integer", err, http.StatusBadRequest)
				return
			}
			limit = parsed
		}
		contacts, err := deps.Store.RecentContacts(r.Context(), limit)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to load contacts", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
	}
}

func publishEvent(ctx context.Context, deps app.Deps, e store.Event) {
	body, err := json.Marshal(e)
	if err != nil {
		deps.Log.Error("failed to marshal analytics event", "type", e.Type, "err", err)
		return
	}
	task := queue.Task{Type: queue.TaskTypeEvent, Payload: body, NotBefore: time.Now()}
	if err := queue.EnqueueWithRetry(ctx, deps.Queue, task, 3, 200*time.Millisecond); err != nil {
		deps.Log.Error("failed to publish analytics event", "type", e.Type, "err", err)
	}
}
