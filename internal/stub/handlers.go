package stub

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clinicdesk/clinic-queue/internal/appointment"
)

const minLoginPasswordLength = 8

type createAppointmentRequest struct {
	FullName      string    `json:"fullName"`
	ContactNumber string    `json:"contactNumber"`
	VisitType     string    `json:"visitType"`
	ScheduledFor  time.Time `json:"scheduledFor"`
	VisitReason   string    `json:"visitReason"`
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func listAppointmentsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.List())
	}
}

func createAppointmentHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Could not parse the booking request.")
			return
		}

		fullName := strings.TrimSpace(req.FullName)
		if fullName == "" {
			writeDetail(w, http.StatusUnprocessableEntity, "Full name is required.")
			return
		}
		visitType := appointment.VisitType(req.VisitType)
		if !visitType.Valid() {
			writeDetail(w, http.StatusUnprocessableEntity, "Visit type must be IN_PERSON or ONLINE.")
			return
		}
		if req.ScheduledFor.IsZero() {
			writeDetail(w, http.StatusUnprocessableEntity, "A valid schedule is required.")
			return
		}
		if req.ScheduledFor.UTC().Before(time.Now().UTC().Truncate(time.Minute)) {
			writeDetail(w, http.StatusBadRequest, "Selected schedule is in the past.")
			return
		}

		created := store.Create(appointment.CreateInput{
			FullName:      fullName,
			ContactNumber: strings.TrimSpace(req.ContactNumber),
			VisitType:     visitType,
			ScheduledFor:  req.ScheduledFor,
			VisitReason:   strings.TrimSpace(req.VisitReason),
		})
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateStatusHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "Appointment id must be an integer.")
			return
		}

		var req statusUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Could not parse the status update.")
			return
		}
		status := appointment.Status(req.Status)
		if !status.Valid() {
			writeDetail(w, http.StatusUnprocessableEntity, "Unknown appointment status.")
			return
		}

		updated, ok := store.UpdateStatus(id, status)
		if !ok {
			writeDetail(w, http.StatusNotFound, "Appointment not found.")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func searchAppointmentsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if len([]rune(name)) < 3 {
			writeDetail(w, http.StatusUnprocessableEntity, "Search name must be at least 3 characters.")
			return
		}
		results := store.SearchByName(name)
		if results == nil {
			results = []appointment.Appointment{}
		}
		writeJSON(w, http.StatusOK, results)
	}
}

func deleteAppointmentHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "Appointment id must be an integer.")
			return
		}
		if !store.Delete(id) {
			writeDetail(w, http.StatusNotFound, "Appointment not found.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func listStatusesHandler() http.HandlerFunc {
	statuses := make([]string, 0, len(appointment.Statuses()))
	for _, s := range appointment.Statuses() {
		statuses = append(statuses, string(s))
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, statuses)
	}
}

func adminLoginHandler(sessions *AdminSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Could not parse the login request.")
			return
		}
		if len(req.Password) < minLoginPasswordLength {
			writeDetail(w, http.StatusUnprocessableEntity, "Password must be at least 8 characters.")
			return
		}

		token, expiresAt, ok := sessions.Login(req.Password)
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Invalid admin credentials.")
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
	}
}

func adminLogoutHandler(sessions *AdminSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := sessions.Authorize(r.Header.Get("Authorization"))
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Invalid or expired admin session.")
			return
		}
		sessions.Revoke(token)
		writeJSON(w, http.StatusOK, map[string]string{"message": "Admin logged out successfully"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail emits the backend's {"detail": "..."} error convention.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
