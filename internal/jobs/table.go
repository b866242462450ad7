package jobs

import "parkfleet/internal/scheduler"

// Nominal cadences, kept as spec strings so the whole schedule reads in one
// place.
const (
	statusSyncSchedule  = "@every 2m"
	dataSyncSchedule    = "@every 1h"
	weeklyForceSchedule = "0 5 * * *"
	dailyReportSchedule = "0 5 * * *"
	rentSchedule        = "0 * * * *"
	digestSchedule      = "0 6 * * 1"
)

// Table is the declarative schedule evaluated by the generic scheduler.
//
// download_weekly_report_force deliberately runs unlocked: it always runs,
// may overlap a manual trigger, and can therefore race a locked job on the
// same automation session. Known overlap window, kept from the original
// design.
func (j *Jobs) Table() []scheduler.JobSpec {
	return []scheduler.JobSpec{
		{Name: "update_driver_status", Schedule: statusSyncSchedule, Locked: true, Run: j.UpdateDriverStatus},
		{Name: "update_driver_data", Schedule: dataSyncSchedule, Locked: true, Run: j.UpdateDriverData},
		{Name: "download_weekly_report_force", Schedule: weeklyForceSchedule, Locked: false, Run: j.DownloadWeeklyReports},
		{Name: "download_daily_report", Schedule: dailyReportSchedule, Locked: false, Run: j.DownloadDailyReports},
		{Name: "get_rent_information", Schedule: rentSchedule, Locked: false, Run: j.RentInformation},
		{Name: "weekly_digest", Schedule: digestSchedule, Locked: false, Run: j.WeeklyDigest},
	}
}
