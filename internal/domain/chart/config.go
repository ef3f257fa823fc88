package chart

import "time"

// Config holds runtime knobs for the chart service.
type Config struct {
	CacheTTL      time.Duration
	ListLimit     int
	ArchivePrefix string
}
