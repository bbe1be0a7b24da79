package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/inovacc/phonebook/internal/core"
	"github.com/inovacc/phonebook/internal/model"
)

// APIResponse is the envelope every action answers with
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// entry is a record as sent over the wire, without its row index
type entry struct {
	Location  string `json:"location"`
	Extension string `json:"extension"`
	Username  string `json:"username"`
}

// handleHealth returns health check status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleExec dispatches a protocol request by its action field. Reads are
// answered on GET, changes on POST. Failures are reported in the envelope
// with status 200, the way a spreadsheet script endpoint answers.
func (s *Server) handleExec(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)

		return
	}

	if err := r.ParseForm(); err != nil {
		s.jsonError(w, fmt.Sprintf("invalid request: %v", err))
		return
	}

	action := core.Action(r.Form.Get("action"))

	switch {
	case action == core.ActionRead:
		s.handleRead(w)
	case r.Method == http.MethodPost && action == core.ActionAdd:
		s.handleAdd(w, r)
	case r.Method == http.MethodPost && action == core.ActionUpdate:
		s.handleUpdate(w, r)
	case r.Method == http.MethodPost && action == core.ActionDelete:
		s.handleDelete(w, r)
	default:
		s.jsonError(w, fmt.Sprintf("unknown action %q", action))
	}
}

func (s *Server) handleRead(w http.ResponseWriter) {
	records, err := s.workbook.Records()
	if err != nil {
		s.fail(w, core.ActionRead, err)
		return
	}

	data := make([]entry, len(records))
	for i, rec := range records {
		data[i] = entry{Location: rec.Location, Extension: rec.Extension, Username: rec.Username}
	}

	s.jsonResponse(w, APIResponse{Success: true, Data: data})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	rec, err := recordFromForm(r)
	if err != nil {
		s.jsonError(w, err.Error())
		return
	}

	if err := s.workbook.Append(rec); err != nil {
		s.fail(w, core.ActionAdd, err)
		return
	}

	s.logger.Info("entry added", slog.String("username", rec.Username))
	s.jsonResponse(w, APIResponse{Success: true})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	rowIndex, err := rowIndexFromForm(r)
	if err != nil {
		s.jsonError(w, err.Error())
		return
	}

	rec, err := recordFromForm(r)
	if err != nil {
		s.jsonError(w, err.Error())
		return
	}

	if err := s.workbook.Update(rowIndex, rec); err != nil {
		s.fail(w, core.ActionUpdate, err)
		return
	}

	s.logger.Info("entry updated", slog.Int("row_index", rowIndex))
	s.jsonResponse(w, APIResponse{Success: true})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	rowIndex, err := rowIndexFromForm(r)
	if err != nil {
		s.jsonError(w, err.Error())
		return
	}

	if err := s.workbook.Delete(rowIndex); err != nil {
		s.fail(w, core.ActionDelete, err)
		return
	}

	s.logger.Info("entry deleted", slog.Int("row_index", rowIndex))
	s.jsonResponse(w, APIResponse{Success: true})
}

// fail reports a workbook error. Range errors are the caller's fault and
// are only logged at debug.
func (s *Server) fail(w http.ResponseWriter, action core.Action, err error) {
	if errors.Is(err, errRowOutOfRange) {
		s.logger.Debug("rejected request", slog.String("action", string(action)), slog.String("error", err.Error()))
	} else {
		s.logger.Error("workbook error", slog.String("action", string(action)), slog.String("error", err.Error()))
	}

	s.jsonError(w, err.Error())
}

func recordFromForm(r *http.Request) (model.Record, error) {
	rec := model.Record{
		Location:  r.Form.Get("location"),
		Extension: r.Form.Get("extension"),
		Username:  r.Form.Get("username"),
	}

	return rec, core.ValidateDraft(rec)
}

func rowIndexFromForm(r *http.Request) (int, error) {
	raw := r.Form.Get("rowIndex")
	if raw == "" {
		return 0, errors.New("rowIndex is required")
	}

	rowIndex, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid rowIndex %q", raw)
	}

	return rowIndex, nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("JSON encode error", slog.String("error", err.Error()))
	}
}

// jsonError writes a success:false envelope
func (s *Server) jsonError(w http.ResponseWriter, message string) {
	s.jsonResponse(w, APIResponse{Success: false, Error: message})
}
