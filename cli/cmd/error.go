package cmd

import "github.com/ardnew/extlookup/lookup"

// Command errors share [lookup.Error] so that their attributes reach the log
// and [errors.Is] matches them like the library sentinels.
var (
	ErrNoTarget     = lookup.NewError("lookup target not configured")
	ErrLookup       = lookup.NewError("lookup failed")
	ErrListFiles    = lookup.NewError("list data files")
	ErrListKeys     = lookup.NewError("list keys")
	ErrWriteOutput  = lookup.NewError("write output")
	ErrJSONMarshal  = lookup.NewError("marshal JSON")
	ErrYAMLMarshal  = lookup.NewError("marshal YAML")
	ErrWriteConfig  = lookup.NewError("write configuration file")
	ErrFileExists   = lookup.NewError("file exists (use --force to overwrite)")
	ErrOutputFormat = lookup.NewError("unknown output format")
)
