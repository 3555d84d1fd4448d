// Package schemas embeds the JSON Schema documents that describe the
// importer's output records.
package schemas

import _ "embed"

// ParsedResumeFile is the file name of the parsed resume schema
const ParsedResumeFile = "parsed_resume.schema.json"

// ParsedResume is the JSON Schema for a parsed resume record
//
//go:embed parsed_resume.schema.json
var ParsedResume string
