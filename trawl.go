// Package trawl provides a polite, resilient web crawler core: a URL
// frontier with deduplication and domain scoping, a fetch pipeline with
// retry, backoff, and proxy rotation, a politeness layer (robots.txt
// compliance and per-domain rate limiting), and a bounded worker pool
// that ties them together.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., http/,
// robotstxt/, sqlite/).
package trawl
