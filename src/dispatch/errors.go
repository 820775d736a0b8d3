package dispatch

import "errors"

// Stage failures. Every one of these is fatal: the loop stops at the first
// failing stage, partial progress stays as-is, and the process exits 1.
var (
	ErrDispatchFailure      = errors.New("workflow dispatch failed")
	ErrRunResolutionTimeout = errors.New("no matching run appeared within the polling budget")
	ErrRemoteRunFailure     = errors.New("remote run finished unsuccessfully")
	ErrDownloadFailure      = errors.New("artifact download failed")
	ErrDeleteFailure        = errors.New("artifact delete failed")
)
