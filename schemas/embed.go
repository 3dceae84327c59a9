// Package schemas holds the JSON Schemas for the documents the CLI emits.
package schemas

import _ "embed"

// ExperienceReportFile is the schema file name relative to this directory.
const ExperienceReportFile = "experience_report.schema.json"

// ExperienceReport is the schema for experience.Report.
//
//go:embed experience_report.schema.json
var ExperienceReport []byte
