package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hamed0406/pinglight/internal/config"
)

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	sig, ok := s.Signals.Latest(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, sig)
}

// configView is what the API exposes; secrets stay out.
type configView struct {
	PingAddress            string `json:"pingAddress"`
	PollingIntervalSeconds int    `json:"pollingIntervalSeconds"`
	PingCount              int    `json:"pingCount"`
}

func viewOf(c config.Config) configView {
	return configView{
		PingAddress:            c.PingAddress,
		PollingIntervalSeconds: c.PollingIntervalSeconds,
		PingCount:              c.PingCount,
	}
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewOf(s.Poller.Config()))
}

// flexInt accepts 60 as well as "60"; host frameworks send either.
type flexInt struct {
	set bool
	v   int
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(b), `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%s is not an integer", b)
	}
	f.set, f.v = true, n
	return nil
}

type configPayload struct {
	PingAddress            *string `json:"pingAddress"`
	PollingIntervalSeconds flexInt `json:"pollingIntervalSeconds"`
	PingCount              flexInt `json:"pingCount"`
}

func (p configPayload) apply(c config.Config) config.Config {
	if p.PingAddress != nil {
		c.PingAddress = strings.TrimSpace(*p.PingAddress)
	}
	if p.PollingIntervalSeconds.set {
		c.PollingIntervalSeconds = p.PollingIntervalSeconds.v
	}
	if p.PingCount.set {
		c.PingCount = p.PingCount.v
	}
	return c
}

type applyResponse struct {
	Valid  bool       `json:"valid"`
	Error  string     `json:"error,omitempty"`
	Config configView `json:"config"`
}

// handlePutConfig merges the payload into the running config. Invalid input
// is rejected with 422; valid input is installed and probed once, and the
// probe outcome is reported as "valid".
func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	var p configPayload
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad payload: " + err.Error()})
		return
	}

	cur := s.Poller.Config()
	next := p.apply(cur)
	if err := next.Validate(); err != nil {
		s.Logger.Warn("config_rejected", zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, applyResponse{Error: err.Error(), Config: viewOf(cur)})
		return
	}

	valid := s.Poller.ApplyConfig(r.Context(), next)
	s.Logger.Info("config_applied_via_api",
		zap.String("address", next.PingAddress),
		zap.Bool("valid", valid),
	)
	writeJSON(w, http.StatusOK, applyResponse{Valid: valid, Config: viewOf(next)})
}
