package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kilianp07/tower/core/events"
	"github.com/kilianp07/tower/core/journal"
	"github.com/kilianp07/tower/core/model"
	"github.com/kilianp07/tower/core/scheduler"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// minute accepts either a JSON number or a "DAY1 07:30" string.
type minute model.Minute

func (m *minute) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := model.ParseMinute(s)
		if err != nil {
			return err
		}
		*m = minute(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("time must be minutes or \"DAY1 HH:MM\": %w", err)
	}
	*m = minute(v)
	return nil
}

type delayRequest struct {
	FlightID string `json:"flight_id" binding:"required"`
	Minutes  minute `json:"minutes"`
}

type curfewRequest struct {
	AirportID string `json:"airport_id" binding:"required"`
	Start     minute `json:"start"`
	End       minute `json:"end"`
}

type maintenanceRequest struct {
	AircraftID string `json:"aircraft_id" binding:"required"`
	Start      minute `json:"start"`
	End        minute `json:"end"`
	Location   string `json:"location,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	st := s.svc.Stats()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "flights": st.Total})
}

// fail maps engine errors: unknown ids are 404, bad input is 400.
func (s *Server) fail(c *gin.Context, err error) {
	kind := scheduler.KindOf(err)
	status := http.StatusInternalServerError
	switch {
	case strings.HasPrefix(kind, "unknown_"):
		status = http.StatusNotFound
	case kind == "invalid_interval" || kind == "invalid_scenario":
		status = http.StatusBadRequest
	case errorsIsContext(err):
		status = http.StatusServiceUnavailable
		kind = "canceled"
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, errorBody{Error: kind, Message: err.Error()})
}

func errorsIsContext(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody{Error: "bad_request", Message: err.Error()})
}

func (s *Server) listFlights(c *gin.Context) {
	var tokens []string
	if day := c.Query("day"); day != "" {
		tokens = append(tokens, day)
	}
	if st := c.Query("status"); st != "" {
		tokens = append(tokens, st)
	}
	filter, err := scheduler.ParseFilter(tokens...)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, s.svc.Flights(filter))
}

func (s *Server) getFlight(c *gin.Context) {
	v, err := s.svc.Flight(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) listAircraft(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Aircraft())
}

func (s *Server) listAirports(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Airports())
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Stats())
}

func (s *Server) report(c *gin.Context) {
	rep, ok := s.svc.LastReport()
	if !ok {
		c.JSON(http.StatusNotFound, errorBody{Error: "no_report", Message: "no disruption applied yet"})
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) journal(c *gin.Context) {
	q := journal.Query{
		Kind:     events.Kind(c.Query("kind")),
		FlightID: c.Query("flight"),
	}
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			badRequest(c, fmt.Errorf("invalid limit %q", l))
			return
		}
		q.Limit = n
	}
	recs, err := s.svc.Journal(c.Request.Context(), q)
	if err != nil {
		s.fail(c, err)
		return
	}
	if recs == nil {
		recs = []journal.Record{}
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) delay(c *gin.Context) {
	var req delayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := s.svc.Delay(c.Request.Context(), req.FlightID, model.Minute(req.Minutes))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) curfew(c *gin.Context) {
	var req curfewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := s.svc.Curfew(c.Request.Context(), req.AirportID, model.Minute(req.Start), model.Minute(req.End))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) maintenance(c *gin.Context) {
	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := s.svc.Maintenance(c.Request.Context(), req.AircraftID, model.Minute(req.Start), model.Minute(req.End), req.Location)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) recover(c *gin.Context) {
	out, err := s.svc.Recover(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
