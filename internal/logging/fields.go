// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldBackup     = "backup"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldFormat          = "format"
	FieldJobs            = "jobs"
	FieldDefaultLanguage = "default_language"
	FieldDetectLanguage  = "detect_language"
	FieldFiles           = "files"

	// Render statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesErrored    = "files_errored"
	FieldBlocks          = "blocks"
	FieldCodeBlocks      = "code_blocks"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
