package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/swelljoe/wthr-dashboard/internal/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	sessionCookie = "wthr_session"
	sessionMaxAge = 365 * 24 * time.Hour
)

// Database defines the interface for database operations needed by handlers
type Database interface {
	Ping() error
}

// Handlers holds dependencies for HTTP handlers
type Handlers struct {
	db        Database
	sessions  *dashboard.Sessions
	templates *template.Template
}

// New creates a new Handlers instance. database may be nil when running
// without persistence.
func New(database Database, sessions *dashboard.Sessions) *Handlers {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))

	return &Handlers{
		db:        database,
		sessions:  sessions,
		templates: tmpl,
	}
}

// Register attaches all routes to mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.HandleIndex)
	mux.HandleFunc("/search", h.HandleSearch)
	mux.HandleFunc("/geolocate", h.HandleGeolocate)
	mux.HandleFunc("/toggle", h.HandleToggle)
	mux.HandleFunc("/recent", h.HandleRecent)
	mux.HandleFunc("/api/state", h.HandleState)
	mux.HandleFunc("/health", h.HandleHealth)
}

// sessionID returns the caller's session id and whether the browser already
// presented it. Without a valid cookie a new id is issued when issue is
// set; otherwise the id is empty.
func sessionID(w http.ResponseWriter, r *http.Request, issue bool) (string, bool) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value, true
		}
	}
	if !issue {
		return "", false
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, false
}

// controller returns the caller's dashboard for a state-changing action,
// creating the session on first use.
func (h *Handlers) controller(w http.ResponseWriter, r *http.Request) *dashboard.Controller {
	id, _ := sessionID(w, r, true)
	return h.sessions.Get(r.Context(), id)
}

// state returns the caller's dashboard state for a read. A browser without
// a session sees the idle dashboard and no session is created for it.
func (h *Handlers) state(w http.ResponseWriter, r *http.Request, issue bool) dashboard.State {
	id, known := sessionID(w, r, issue)
	if !known {
		return dashboard.InitialState(nil)
	}
	return h.sessions.Get(r.Context(), id).State()
}

// HandleIndex handles the main page
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, "GET, HEAD")
		return
	}

	view := dashboard.Render(h.state(w, r, r.Method == http.MethodGet))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "index.html", view); err != nil {
		log.Printf("Error executing template: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleSearch runs a city-name search
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	h.controller(w, r).SubmitCityName(r.Context(), r.FormValue("city"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleGeolocate runs a search by the coordinates the browser reported
func (h *Handlers) HandleGeolocate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	h.controller(w, r).RequestGeolocation(r.Context(), formLocator(r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleToggle switches the temperature unit
func (h *Handlers) HandleToggle(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	h.controller(w, r).ToggleUnit()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleRecent searches for a city picked from the recent list
func (h *Handlers) HandleRecent(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	h.controller(w, r).SelectRecentCity(r.Context(), r.FormValue("city"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleState returns the current view as JSON
func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	data, err := json.Marshal(dashboard.Render(h.state(w, r, false)))
	if err != nil {
		log.Printf("JSON encode error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		log.Printf("Response write error: %v", err)
	}
}

// HandleHealth handles health check endpoint
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ok"
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status = "degraded"
		}
	} else {
		status = "no_database"
	}

	w.Write([]byte(`{"status":"` + status + `"}`))
}

// formLocator reads the coordinates posted by the page script. The script
// posts an "error" field instead when the browser refused or failed.
func formLocator(r *http.Request) dashboard.Locator {
	return dashboard.LocatorFunc(func(context.Context) (float64, float64, error) {
		if msg := r.FormValue("error"); msg != "" {
			return 0, 0, errors.New(msg)
		}
		lat, err := strconv.ParseFloat(r.FormValue("lat"), 64)
		if err != nil || lat < -90 || lat > 90 {
			return 0, 0, fmt.Errorf("invalid latitude %q", r.FormValue("lat"))
		}
		lon, err := strconv.ParseFloat(r.FormValue("lon"), 64)
		if err != nil || lon < -180 || lon > 180 {
			return 0, 0, fmt.Errorf("invalid longitude %q", r.FormValue("lon"))
		}
		return lat, lon, nil
	})
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return false
	}
	return true
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}
