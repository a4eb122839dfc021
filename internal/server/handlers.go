package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/zsiec/telecine/internal/errors"
	"github.com/zsiec/telecine/internal/metrics"
	"github.com/zsiec/telecine/pkg/timecode"
)

// parseRequest is the body for POST /api/v1/timecodes/parse.
type parseRequest struct {
	Timecode string `json:"timecode"`
	Rate     string `json:"rate"`
}

// convertRequest is the body for POST /api/v1/timecodes/convert.
// Start, when set, anchors the conversion at a session start timecode
// instead of the zero point.
type convertRequest struct {
	Timecode   string `json:"timecode"`
	Rate       string `json:"rate"`
	TargetRate string `json:"target_rate"`
	Start      string `json:"start,omitempty"`
}

// addRequest is the body for POST /api/v1/timecodes/add.
type addRequest struct {
	Timecode string `json:"timecode"`
	Rate     string `json:"rate"`
	Other    string `json:"other"`
}

// framesRequest is the body for add-frames and sub-frames.
type framesRequest struct {
	Timecode string `json:"timecode"`
	Rate     string `json:"rate"`
	Frames   uint64 `json:"frames"`
}

// timecodeResponse is the canonical representation returned by all
// timecode operations.
type timecodeResponse struct {
	Timecode   string   `json:"timecode"`
	Rate       string   `json:"rate"`
	DropFrame  bool     `json:"drop_frame"`
	FrameCount uint64   `json:"frame_count"`
	Hours      int      `json:"hours"`
	Minutes    int      `json:"minutes"`
	Seconds    int      `json:"seconds"`
	Frames     int      `json:"frames"`
	Warnings   []string `json:"warnings,omitempty"`
}

func newTimecodeResponse(tc timecode.Timecode, warnings []timecode.Warning) timecodeResponse {
	h, m, sec, f := tc.Components()
	resp := timecodeResponse{
		Timecode:   tc.String(),
		Rate:       tc.Rate().String(),
		DropFrame:  tc.Rate().IsDrop(),
		FrameCount: tc.FrameCount(),
		Hours:      h,
		Minutes:    m,
		Seconds:    sec,
		Frames:     f,
	}
	for _, warn := range warnings {
		resp.Warnings = append(resp.Warnings, string(warn))
	}
	return resp
}

// decodeRequest decodes a JSON body, rejecting unknown fields.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.writeError(w, r, errors.NewValidationError("Invalid request body: "+err.Error()))
		return false
	}
	return true
}

// parseTimecode resolves a rate and timecode pair from request fields.
func (s *Server) parseTimecode(text, rateName string) (timecode.Timecode, []timecode.Warning, error) {
	rt, err := timecode.ParseRate(rateName)
	if err != nil {
		return timecode.Timecode{}, nil, err
	}
	return timecode.ParseWithWarnings(text, rt)
}

// handleParse validates a timecode string against a frame rate and
// returns its canonical representation.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req parseRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	tc, warnings, err := s.parseTimecode(req.Timecode, req.Rate)
	if err != nil {
		s.handleOperationError(w, r, "parse", err)
		return
	}
	for _, warn := range warnings {
		metrics.IncrementParseWarning(string(warn))
	}

	metrics.RecordOperation("parse", tc.Rate().String(), time.Since(start).Seconds())
	_ = s.writeJSON(w, http.StatusOK, newTimecodeResponse(tc, warnings))
}

// handleConvert re-bases a timecode onto a different frame rate.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req convertRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	tc, _, err := s.parseTimecode(req.Timecode, req.Rate)
	if err != nil {
		s.handleOperationError(w, r, "convert", err)
		return
	}

	target, err := timecode.ParseRate(req.TargetRate)
	if err != nil {
		s.handleOperationError(w, r, "convert", err)
		return
	}

	var result timecode.Timecode
	if req.Start != "" {
		startTC, _, err := s.parseTimecode(req.Start, req.Rate)
		if err != nil {
			s.handleOperationError(w, r, "convert", err)
			return
		}
		result, err = tc.ConvertWithStart(target, startTC)
		if err != nil {
			s.handleOperationError(w, r, "convert", err)
			return
		}
	} else {
		result = tc.ConvertTo(target)
	}

	metrics.RecordOperation("convert", target.String(), time.Since(start).Seconds())
	_ = s.writeJSON(w, http.StatusOK, newTimecodeResponse(result, nil))
}

// handleAdd adds two timecodes running at the same frame rate.
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req addRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	tc, _, err := s.parseTimecode(req.Timecode, req.Rate)
	if err != nil {
		s.handleOperationError(w, r, "add", err)
		return
	}

	other, _, err := s.parseTimecode(req.Other, req.Rate)
	if err != nil {
		s.handleOperationError(w, r, "add", err)
		return
	}

	result, err := tc.Add(other)
	if err != nil {
		s.handleOperationError(w, r, "add", err)
		return
	}

	metrics.RecordOperation("add", tc.Rate().String(), time.Since(start).Seconds())
	_ = s.writeJSON(w, http.StatusOK, newTimecodeResponse(result, nil))
}

// handleAddFrames advances a timecode by a frame count.
func (s *Server) handleAddFrames(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req framesRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	tc, _, err := s.parseTimecode(req.Timecode, req.Rate)
	if err != nil {
		s.handleOperationError(w, r, "add_frames", err)
		return
	}

	result := tc.AddFrames(req.Frames)

	metrics.RecordOperation("add_frames", tc.Rate().String(), time.Since(start).Seconds())
	_ = s.writeJSON(w, http.StatusOK, newTimecodeResponse(result, nil))
}

// handleSubFrames rewinds a timecode by a frame count.
func (s *Server) handleSubFrames(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req framesRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	tc, _, err := s.parseTimecode(req.Timecode, req.Rate)
	if err != nil {
		s.handleOperationError(w, r, "sub_frames", err)
		return
	}

	result, err := tc.SubFrames(req.Frames)
	if err != nil {
		s.handleOperationError(w, r, "sub_frames", err)
		return
	}

	metrics.RecordOperation("sub_frames", tc.Rate().String(), time.Since(start).Seconds())
	_ = s.writeJSON(w, http.StatusOK, newTimecodeResponse(result, nil))
}

// handleOperationError records the failure and writes the mapped response.
func (s *Server) handleOperationError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	appErr := errors.FromTimecodeError(err)
	metrics.IncrementOperationError(operation, string(appErr.Type))
	s.writeError(w, r, appErr)
}
