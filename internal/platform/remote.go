package platform

import (
	"context"
	"encoding/json"

	"parkfleet/internal/models"
	"parkfleet/internal/status"
)

// Caller exchanges one named operation with an automation endpoint.
// *Session is the production implementation.
type Caller interface {
	Call(ctx context.Context, op string, params interface{}) (json.RawMessage, error)
}

// Remote drives one platform's synchronizer through its automation session,
// dispatching operations by name.
type Remote struct {
	name    string
	session Caller
}

// NewRemote returns a synchronizer for the named platform.
func NewRemote(name string, session Caller) *Remote {
	return &Remote{name: name, session: session}
}

// Name identifies the platform.
func (r *Remote) Name() string { return r.name }

// statusPayload is the wire shape of a driver-status snapshot: sets of
// [first name, second name] pairs per status category.
type statusPayload struct {
	Online     [][]string `json:"online"`
	WithClient [][]string `json:"with_client"`
}

// DriverStatus fetches the platform's live driver snapshot.
func (r *Remote) DriverStatus(ctx context.Context) (*status.Report, error) {
	raw, err := r.session.Call(ctx, "get_driver_status", nil)
	if err != nil {
		return nil, opError(r.name, "get_driver_status", err)
	}

	var payload statusPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, opError(r.name, "get_driver_status", err)
	}

	report := status.NewReport(r.name)
	for _, pair := range payload.Online {
		if len(pair) == 2 {
			report.MarkOnline(status.DriverKey{FirstName: pair[0], SecondName: pair[1]})
		}
	}
	for _, pair := range payload.WithClient {
		if len(pair) == 2 {
			report.MarkWithClient(status.DriverKey{FirstName: pair[0], SecondName: pair[1]})
		}
	}
	return report, nil
}

// Synchronize runs the platform's roster/vehicle/earnings sync.
func (r *Remote) Synchronize(ctx context.Context) error {
	_, err := r.session.Call(ctx, "synchronize", nil)
	return opError(r.name, "synchronize", err)
}

// DownloadWeeklyReport pulls the platform's weekly earnings report.
func (r *Remote) DownloadWeeklyReport(ctx context.Context) error {
	_, err := r.session.Call(ctx, "download_weekly_report", nil)
	return opError(r.name, "download_weekly_report", err)
}

// DownloadDailyReport pulls the previous day's report.
func (r *Remote) DownloadDailyReport(ctx context.Context) error {
	_, err := r.session.Call(ctx, "download_daily_report", nil)
	return opError(r.name, "download_daily_report", err)
}

// AddDriver submits a job application to the platform.
func (r *Remote) AddDriver(ctx context.Context, candidate *models.JobApplication) error {
	params := map[string]string{
		"first_name":   candidate.FirstName,
		"second_name":  candidate.SecondName,
		"email":        candidate.Email,
		"phone_number": candidate.PhoneNumber,
	}
	_, err := r.session.Call(ctx, "add_driver", params)
	return opError(r.name, "add_driver", err)
}

// ReportSummary composes the platform's weekly earnings digest text.
func (r *Remote) ReportSummary(ctx context.Context) (string, error) {
	raw, err := r.session.Call(ctx, "get_report", nil)
	if err != nil {
		return "", opError(r.name, "get_report", err)
	}
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", opError(r.name, "get_report", err)
	}
	return payload.Text, nil
}

// RentDistance asks the tracking provider to compute and record rent
// distance for the fleet.
func (r *Remote) RentDistance(ctx context.Context) error {
	_, err := r.session.Call(ctx, "get_rent_distance", nil)
	return opError(r.name, "get_rent_distance", err)
}
