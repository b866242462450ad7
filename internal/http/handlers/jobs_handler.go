package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"parkfleet/internal/jobs"
)

// Ad-hoc jobs run detached from the request: the trigger returns 202 and the
// job's own logging reports the outcome.
const adHocJobTimeout = 10 * time.Minute

// NewSubmitApplicationHandler returns POST /internal/jobs/applications.
func NewSubmitApplicationHandler(j *jobs.Jobs, logger *zap.Logger) http.HandlerFunc {
	type request struct {
		Platform      string `json:"platform"`
		ApplicationID int64  `json:"application_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Platform == "" || req.ApplicationID <= 0 {
			writeError(w, http.StatusBadRequest, "platform and application_id are required")
			return
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), adHocJobTimeout)
			defer cancel()
			if err := j.SubmitApplication(ctx, req.Platform, req.ApplicationID); err != nil {
				logger.Error("job application submission failed",
					zap.String("platform", req.Platform),
					zap.Int64("application_id", req.ApplicationID),
					zap.Error(err),
				)
			}
		}()

		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}

// NewWeeklyReportHandler returns POST /internal/jobs/weekly-report, the
// manual counterpart of the forced weekly pull. It may overlap the scheduled
// run; that is intentional.
func NewWeeklyReportHandler(j *jobs.Jobs, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), adHocJobTimeout)
			defer cancel()
			if err := j.DownloadWeeklyReports(ctx); err != nil {
				logger.Error("manual weekly report pull failed", zap.Error(err))
			}
		}()

		writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}
