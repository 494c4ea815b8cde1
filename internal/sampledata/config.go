package sampledata

import "time"

// Config holds configuration for a sample-data run.
type Config struct {
	OutDir    string        // Directory receiving both CSV files
	Rows      int           // Number of participation rows to generate
	Seed      uint64        // Seed of the deterministic generator
	BaseURL   string        // Optional service URL to verify against
	Workers   int           // Concurrent verification requests
	Timeout   time.Duration // HTTP request timeout
	Verbose   bool          // Enable verbose logging
	MainFile  string        // Participation table file name
	CoordFile string        // Coordinate table file name
}

// Result describes a generated dataset. The counts are what the service
// should report for an unfiltered overview once it has loaded the files.
type Result struct {
	MainPath   string `json:"main_path"`
	CoordsPath string `json:"coords_path"`
	Rows       int    `json:"rows"`
	Athletes   int    `json:"unique_athletes"`
	Countries  int    `json:"participating_countries"`
	Medals     int    `json:"medals"`
}

// Stats holds verification statistics.
type Stats struct {
	Probes    int
	Succeeded int
	Failed    int
	StartTime time.Time
	Duration  time.Duration
}
