// Package api exposes the pickup scheduler over HTTP: the public form
// endpoints the pickup website calls, and the admin surface for schedule
// config, manual triggers and team announcements.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/feds201/pickup-scheduler/internal/pickup"
	"github.com/feds201/pickup-scheduler/internal/scheduler"
	"github.com/feds201/pickup-scheduler/internal/store"
)

// Announcer dispatches a custom team announcement. Satisfied by
// notifier.Mailer.
type Announcer interface {
	SendCustomMessage(ctx context.Context, recipients []string, subject, message string) error
}

// Handlers holds the HTTP handlers and their collaborators.
type Handlers struct {
	store     store.Store
	job       *scheduler.Job
	configs   *scheduler.ConfigStore
	announcer Announcer
	startTime time.Time
}

// NewHandlers creates the handler set.
func NewHandlers(st store.Store, job *scheduler.Job, configs *scheduler.ConfigStore, announcer Announcer) *Handlers {
	return &Handlers{
		store:     st,
		job:       job,
		configs:   configs,
		announcer: announcer,
		startTime: time.Now(),
	}
}

// HealthCheck returns basic liveness info.
//
//	GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}

type submitRequest struct {
	Mode       string `json:"mode"`
	PickupDate string `json:"pickupDate"`
	Address    string `json:"address"`
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HandleSubmit accepts one pickup request from the public form. Responses
// always carry HTTP 200 with a success flag, matching what the form's
// script expects; only malformed JSON is a 400.
//
//	POST /submit
func (h *Handlers) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Mode != "submit" {
		respondJSON(w, http.StatusOK, submitResponse{Success: false, Message: "Invalid mode"})
		return
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.PickupDate))
	if err != nil {
		respondJSON(w, http.StatusOK, submitResponse{Success: false, Message: "Invalid pickup date"})
		return
	}
	address := strings.TrimSpace(req.Address)
	if address == "" {
		respondJSON(w, http.StatusOK, submitResponse{Success: false, Message: "Address is required"})
		return
	}

	if err := h.store.AppendSubmission(r.Context(), date, address); err != nil {
		respondJSON(w, http.StatusOK, submitResponse{Success: false, Message: "Could not save submission"})
		return
	}

	respondJSON(w, http.StatusOK, submitResponse{Success: true})
}

type slotResponse struct {
	Date      *string `json:"date"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
}

// HandleSlots lists the configured pickup slots for the public form's
// date picker. A missing slots table yields an empty list, not an error.
//
//	GET /slots
func (h *Handlers) HandleSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.store.ListSlots(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrTableNotFound) {
			respondJSON(w, http.StatusOK, []slotResponse{})
			return
		}
		respondError(w, http.StatusInternalServerError, "could not list slots")
		return
	}

	out := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotResponse{
			Date:      isoDate(s.Date),
			StartTime: isoTime(s.StartTime),
			EndTime:   isoTime(s.EndTime),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func isoDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func isoTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

type scheduleConfigPayload struct {
	EmailDays  []int    `json:"emailDays"`
	Recipients []string `json:"recipients"`
	EmailType  string   `json:"emailType"`
	Enabled    bool     `json:"enabled"`
}

func toPayload(cfg pickup.ScheduleConfig) scheduleConfigPayload {
	days := make([]int, 0, len(cfg.EmailDays))
	for _, d := range cfg.EmailDays {
		days = append(days, int(d))
	}
	return scheduleConfigPayload{
		EmailDays:  days,
		Recipients: cfg.Recipients,
		EmailType:  string(cfg.EmailType),
		Enabled:    cfg.Enabled,
	}
}

// GetScheduleConfig returns the current automated send configuration.
//
//	GET /api/schedule/config
func (h *Handlers) GetScheduleConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toPayload(h.configs.Current()))
}

// UpdateScheduleConfig replaces the schedule configuration wholesale.
// Weekdays are 0 (Sunday) through 6 (Saturday).
//
//	PUT /api/schedule/config
func (h *Handlers) UpdateScheduleConfig(w http.ResponseWriter, r *http.Request) {
	var req scheduleConfigPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	emailType, err := pickup.ParseEmailType(req.EmailType)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	days := make([]time.Weekday, 0, len(req.EmailDays))
	for _, d := range req.EmailDays {
		if d < 0 || d > 6 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid weekday %d", d))
			return
		}
		days = append(days, time.Weekday(d))
	}

	cfg := pickup.ScheduleConfig{
		EmailDays:  days,
		Recipients: req.Recipients,
		EmailType:  emailType,
		Enabled:    req.Enabled,
	}
	if err := h.configs.Replace(cfg); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, toPayload(h.configs.Current()))
}

// PreviewSchedule reports what the automated trigger would do right now,
// without sending anything.
//
//	GET /api/schedule/preview
func (h *Handlers) PreviewSchedule(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.job.Preview(time.Now()))
}

type runRequest struct {
	EmailType  string   `json:"emailType"`
	Recipients []string `json:"recipients"`
}

// RunReminders triggers a reminder send outside the automated schedule.
// emailType defaults to the configured one; recipients default to the
// configured list.
//
//	POST /api/reminders/run
func (h *Handlers) RunReminders(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	emailType := h.configs.Current().EmailType
	if req.EmailType != "" {
		parsed, err := pickup.ParseEmailType(req.EmailType)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		emailType = parsed
	}

	res := h.job.RunManual(r.Context(), time.Now(), emailType, req.Recipients)
	status := http.StatusOK
	if res.Outcome == scheduler.OutcomeFailed {
		status = http.StatusInternalServerError
	}
	respondJSON(w, status, res)
}

type messageRequest struct {
	Subject    string   `json:"subject"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}

// SendMessage dispatches a custom announcement email to the team.
//
//	POST /api/messages
func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	recipients := req.Recipients
	if len(recipients) == 0 {
		recipients = h.configs.Current().Recipients
	}

	if err := h.announcer.SendCustomMessage(r.Context(), recipients, req.Subject, req.Message); err != nil {
		respondError(w, http.StatusInternalServerError, "could not send message")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"recipients": len(recipients),
	})
}
