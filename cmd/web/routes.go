package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/AdamBeresnev/movie-kombat/internal/bracket"
	"github.com/AdamBeresnev/movie-kombat/internal/httputil"
	"github.com/AdamBeresnev/movie-kombat/internal/metrics"
	"github.com/AdamBeresnev/movie-kombat/internal/middleware"
	"github.com/AdamBeresnev/movie-kombat/internal/movie"
	"github.com/AdamBeresnev/movie-kombat/internal/service"
	"github.com/AdamBeresnev/movie-kombat/internal/store"
	"github.com/AdamBeresnev/movie-kombat/internal/utils"
	"github.com/AdamBeresnev/movie-kombat/views"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type app struct {
	sessionManager *scs.SessionManager
	metrics        *metrics.Metrics
	candidates     *service.CandidateService
	movies         *service.MovieService
	tournaments    *service.TournamentService
}

func newApp(db *sqlx.DB, sessionManager *scs.SessionManager, client *movie.Client, m *metrics.Metrics) *app {
	candidateStore := store.NewCandidateStore(db)
	candidates := service.NewCandidateService(db, candidateStore)

	return &app{
		sessionManager: sessionManager,
		metrics:        m,
		candidates:     candidates,
		movies:         service.NewMovieService(db, client, store.NewSettingsStore(db), candidates, m),
		tournaments:    service.NewTournamentService(db, store.NewTournamentStore(db), candidateStore, m),
	}
}

func newRouter(a *app) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Handle("/metrics", a.metrics.Handler())

	// Serve static files
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Group(func(r chi.Router) {
		r.Use(a.sessionManager.LoadAndSave)
		r.Use(middleware.LoadList(a.sessionManager))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			listID := mustListID(r)

			entries, err := a.candidates.List(r.Context(), listID)
			if err != nil {
				httputil.InternalServerError(w, "Failed to get candidates", err)
				return
			}

			hasKey, err := a.movies.HasAPIKey(r.Context(), listID)
			if err != nil {
				httputil.InternalServerError(w, "Failed to get api key", err)
				return
			}

			_, err = a.tournaments.Get(r.Context(), listID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				httputil.InternalServerError(w, "Failed to get tournament", err)
				return
			}

			views.Render(w, r, views.Index(views.IndexData{
				Candidates:      entries,
				HasAPIKey:       hasKey,
				TournamentReady: err == nil,
			}))
		})

		r.Get("/search", func(w http.ResponseWriter, r *http.Request) {
			results, err := a.movies.Search(r.Context(), mustListID(r), r.URL.Query().Get("q"))
			if err != nil {
				movieError(w, "Search failed", err)
				return
			}
			views.Render(w, r, views.SearchResults(results))
		})

		r.Post("/candidates", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, "Invalid form data", err)
				return
			}
			listID := mustListID(r)

			imdbID := utils.StringOrNil(r.Form.Get("imdb_id"))
			title := utils.StringOrNil(r.Form.Get("title"))

			var err error
			switch {
			case imdbID != nil:
				_, _, err = a.movies.AddByID(r.Context(), listID, *imdbID)
			case title != nil:
				_, _, err = a.movies.AddByTitle(r.Context(), listID, *title)
			default:
				httputil.BadRequest(w, "Provide an imdb_id or a title", nil)
				return
			}
			if err != nil {
				movieError(w, "Failed to add movie", err)
				return
			}

			renderCandidates(a, w, r, listID)
		})

		r.Delete("/candidates/{id}", func(w http.ResponseWriter, r *http.Request) {
			listID := mustListID(r)
			// chi matches on the raw path, so escaped IDs arrive still escaped
			entryID, err := url.PathUnescape(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid candidate ID", err)
				return
			}
			if err := a.candidates.Remove(r.Context(), listID, entryID); err != nil {
				httputil.InternalServerError(w, "Failed to remove candidate", err)
				return
			}
			renderCandidates(a, w, r, listID)
		})

		r.Post("/settings/api-key", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, "Invalid form data", err)
				return
			}
			listID := mustListID(r)

			if err := a.movies.SetAPIKey(r.Context(), listID, r.Form.Get("api_key")); err != nil {
				httputil.InternalServerError(w, "Failed to save api key", err)
				return
			}

			hasKey, err := a.movies.HasAPIKey(r.Context(), listID)
			if err != nil {
				httputil.InternalServerError(w, "Failed to get api key", err)
				return
			}
			views.Render(w, r, views.APIKeyStatus(hasKey))
		})

		r.Post("/tournament", func(w http.ResponseWriter, r *http.Request) {
			if _, err := a.tournaments.Start(r.Context(), mustListID(r)); err != nil {
				if errors.Is(err, bracket.ErrNotEnoughEntries) {
					httputil.BadRequest(w, "Add at least 2 movies to start a tournament", err)
					return
				}
				httputil.InternalServerError(w, "Failed to start tournament", err)
				return
			}
			w.Header().Set("HX-Redirect", "/tournament")
			w.WriteHeader(http.StatusOK)
		})

		r.Get("/tournament", func(w http.ResponseWriter, r *http.Request) {
			t, err := a.tournaments.Get(r.Context(), mustListID(r))
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					http.Redirect(w, r, "/", http.StatusFound)
					return
				}
				httputil.InternalServerError(w, "Failed to get tournament", err)
				return
			}
			views.Render(w, r, views.TournamentPage(views.PrepareTournamentData(t)))
		})

		r.Post("/tournament/choose", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, "Invalid form data", err)
				return
			}
			entryID := strings.TrimSpace(r.Form.Get("entry_id"))
			if entryID == "" {
				httputil.BadRequest(w, "Missing entry_id", nil)
				return
			}

			if _, err := a.tournaments.Choose(r.Context(), mustListID(r), entryID); err != nil {
				switch {
				case errors.Is(err, sql.ErrNoRows):
					httputil.NotFound(w, "Tournament not found", err)
				case errors.Is(err, bracket.ErrNotInMatch), errors.Is(err, bracket.ErrTournamentCompleted):
					httputil.BadRequest(w, err.Error(), err)
				default:
					httputil.InternalServerError(w, "Failed to choose winner", err)
				}
				return
			}
			w.Header().Set("HX-Redirect", "/tournament")
			w.WriteHeader(http.StatusOK)
		})

		r.Post("/tournament/reset", func(w http.ResponseWriter, r *http.Request) {
			if err := a.tournaments.Reset(r.Context(), mustListID(r)); err != nil {
				httputil.InternalServerError(w, "Failed to reset tournament", err)
				return
			}
			w.Header().Set("HX-Redirect", "/")
			w.WriteHeader(http.StatusOK)
		})
	})

	return r
}

// mustListID is only called behind middleware.LoadList.
func mustListID(r *http.Request) uuid.UUID {
	listID, ok := middleware.GetListIDFromContext(r.Context())
	if !ok {
		panic("list ID missing from request context")
	}
	return listID
}

func renderCandidates(a *app, w http.ResponseWriter, r *http.Request, listID uuid.UUID) {
	entries, err := a.candidates.List(r.Context(), listID)
	if err != nil {
		httputil.InternalServerError(w, "Failed to get candidates", err)
		return
	}
	views.Render(w, r, views.CandidateList(entries))
}

func movieError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, movie.ErrMissingAPIKey):
		httputil.BadRequest(w, "Set an OMDb API key first", err)
	case errors.Is(err, movie.ErrInvalidAPIKey):
		httputil.BadRequest(w, "The OMDb API key was rejected", err)
	case errors.Is(err, movie.ErrNotFound):
		httputil.NotFound(w, "Movie not found", err)
	case errors.Is(err, movie.ErrTooManyResults):
		httputil.BadRequest(w, "Too many results, try a longer search", err)
	case errors.Is(err, movie.ErrUpstream):
		httputil.BadGateway(w, "The movie database is not responding", err)
	case errors.Is(err, context.DeadlineExceeded):
		httputil.BadGateway(w, msg, err)
	case errors.Is(err, bracket.ErrInvalidEntry):
		httputil.BadRequest(w, "That movie cannot be added", err)
	default:
		httputil.InternalServerError(w, msg, err)
	}
}
