package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
	"github.com/MrSnakeDoc/appdeck/internal/httpserver/deps"
)

type appsResponse struct {
	Apps []domain.App `json:"apps"`
}

type appResponse struct {
	App domain.App `json:"app"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ListApps returns every app. Query parameters q, type, tags, pinned and
// sort narrow and order the listing; without them the stored order is kept.
func ListApps(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, order, issues := parseListQuery(r)
		if len(issues) > 0 {
			writeError(w, http.StatusBadRequest, "Invalid query", "VALIDATION_ERROR", issues)
			return
		}

		apps, err := d.Store.List(r.Context())
		if err != nil {
			writeStoreError(w, d.Logger, err, "Failed to fetch apps", "FETCH_ERROR")
			return
		}

		writeJSON(w, http.StatusOK, appsResponse{Apps: domain.Query(apps, filter, order, d.SortLocale)})
	}
}

func parseListQuery(r *http.Request) (domain.Filter, domain.SortOrder, []domain.Issue) {
	q := r.URL.Query()
	var issues []domain.Issue

	filter := domain.Filter{Text: strings.TrimSpace(q.Get("q"))}

	typ, ok := domain.ParseTypeFilter(q.Get("type"))
	if !ok {
		issues = append(issues, domain.Issue{Field: "type", Message: "must be one of all, web, local"})
	}
	filter.Type = typ

	for _, tag := range strings.Split(q.Get("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			filter.Tags = append(filter.Tags, tag)
		}
	}

	switch strings.ToLower(q.Get("pinned")) {
	case "", "false", "0":
	case "true", "1":
		filter.PinnedOnly = true
	default:
		issues = append(issues, domain.Issue{Field: "pinned", Message: "must be true or false"})
	}

	order, ok := domain.ParseSortOrder(q.Get("sort"))
	if !ok {
		issues = append(issues, domain.Issue{Field: "sort", Message: "must be one of pinned, name, updated"})
	}

	return filter, order, issues
}

// GetApp returns one app by id.
func GetApp(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app, err := d.Store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, d.Logger, err, "Failed to fetch app", "FETCH_ERROR")
			return
		}
		writeJSON(w, http.StatusOK, appResponse{App: app})
	}
}

// CreateApp validates the body and appends a new app.
func CreateApp(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in domain.CreateInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeBadBody(w, err)
			return
		}

		app, err := d.Store.Create(r.Context(), in)
		if err != nil {
			writeStoreError(w, d.Logger, err, "Failed to create app", "CREATE_ERROR")
			return
		}
		writeJSON(w, http.StatusCreated, appResponse{App: app})
	}
}

// UpdateApp applies a partial update. Absent fields are left unchanged,
// explicit nulls clear them.
func UpdateApp(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in domain.UpdateInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeBadBody(w, err)
			return
		}

		app, err := d.Store.Update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			writeStoreError(w, d.Logger, err, "Failed to update app", "UPDATE_ERROR")
			return
		}
		writeJSON(w, http.StatusOK, appResponse{App: app})
	}
}

// DeleteApp removes an app. Unknown ids answer 404.
func DeleteApp(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := d.Store.Delete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, d.Logger, err, "Failed to delete app", "DELETE_ERROR")
			return
		}
		if !removed {
			writeError(w, http.StatusNotFound, "App not found", "NOT_FOUND", nil)
			return
		}
		writeJSON(w, http.StatusOK, successResponse{Success: true})
	}
}

// Tags returns the distinct tags in ascending order.
func Tags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := d.Store.Tags(r.Context())
		if err != nil {
			writeStoreError(w, d.Logger, err, "Failed to fetch tags", "FETCH_ERROR")
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Tags []string `json:"tags"`
		}{Tags: tags})
	}
}
