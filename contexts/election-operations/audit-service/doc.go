// Package audit exposes the read surface over the shared append-only audit
// trail. Writers append through their own sinks; this service only queries.
package audit
