// Package topicapi exposes a string-payload broadcast.Bus over HTTP.
//
//	GET  /healthz          liveness, or readiness against WithMaxBacklog
//	GET  /stats            worker pool statistics and listeners per topic
//	GET  /topics           known topic names
//	POST /topics/{topic}   publish the request body to topic, 202 Accepted
//
// Publishing is asynchronous when the Bus runs on a worker pool: a 202 means
// the deliveries were queued, not that listeners have run.
package topicapi
