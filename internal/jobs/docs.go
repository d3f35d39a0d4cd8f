// Package jobs provides the background tasks of the relay and the consoles.
//
// Scheduled jobs use github.com/robfig/cron/v3; the location reporter is driven
// by the position source instead of a clock.
//
// # Available Jobs
//
// 1. SyncLedgerRetentionJob - Runs daily to delete expired sync attempts
// 2. TrackingPollJob - Fetches the public tracking view now and every 10 seconds
// 3. LocationReportingJob - Sends the driver's position on every update while online
//
// # Usage
//
// Relay jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(pruneHandler, 30*24*time.Hour, "@daily", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Tracking poll stops on an invalid token and keeps going on transient errors
// - Location updates are fire-and-forget; failures are logged
// - Failed job starts will stop any already running jobs
package jobs
