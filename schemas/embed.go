// Package schemas embeds the JSON Schemas describing the analyzer's output.
package schemas

import _ "embed"

// ResumeProfile is the draft-07 schema for a serialized ResumeProfile
//
//go:embed resume_profile.schema.json
var ResumeProfile string

// ResumeProfileFile is the schema's file name within this directory
const ResumeProfileFile = "resume_profile.schema.json"
