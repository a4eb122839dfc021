package server

import (
	"encoding/json"
	"net/http"

	"github.com/zsiec/telecine/pkg/timecode"
	"github.com/zsiec/telecine/pkg/version"
)

// handleVersion handles the /version endpoint
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.GetInfo()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if err := json.NewEncoder(w).Encode(versionInfo); err != nil {
		s.logger.WithError(err).Error("Failed to encode version response")
		s.errorHandler.HandleError(w, r, err)
	}
}

// framerateInfo describes a supported frame rate.
type framerateInfo struct {
	Rate        string  `json:"rate"`
	FPS         float64 `json:"fps"`
	FrameBase   int     `json:"frame_base"`
	DropFrame   bool    `json:"drop_frame"`
	Numerator   uint64  `json:"numerator"`
	Denominator uint64  `json:"denominator"`
}

// handleFramerates lists the frame rates the engine recognizes by name.
// Integer rates outside this list are accepted as well.
func (s *Server) handleFramerates(w http.ResponseWriter, r *http.Request) {
	names := []string{"23.98", "24", "25", "29.97", "30", "47.95", "48", "50", "59.94", "60"}

	rates := make([]framerateInfo, 0, len(names))
	for _, name := range names {
		rt, err := timecode.ParseRate(name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		num, den := rt.Fraction()
		rates = append(rates, framerateInfo{
			Rate:        rt.String(),
			FPS:         rt.FPS(),
			FrameBase:   rt.FrameBase(),
			DropFrame:   rt.IsDrop(),
			Numerator:   num,
			Denominator: den,
		})
	}

	_ = s.writeJSON(w, http.StatusOK, struct {
		Framerates []framerateInfo `json:"framerates"`
	}{Framerates: rates})
}

// writeJSON is a helper to write JSON responses
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// writeError is a helper to write error responses
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.errorHandler.HandleError(w, r, err)
}
