// Package jobs runs the periodic housekeeping of the ordering service on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. MenuRefreshJob - refetches the menu so the cache rarely goes stale
// 2. SessionReaperJob - evicts sessions idle past their TTL
//
// # Usage
//
//	jobManager := jobs.NewJobManager(resolver, registry, jobs.Schedules{
//		MenuRefresh: "@every 5m",
//		SessionReap: "@every 1m",
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh is logged and the cached menu keeps serving. Failed job
// starts stop the jobs already running.
package jobs
