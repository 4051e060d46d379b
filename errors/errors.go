package errors

import (
	stderrors "errors"
	"fmt"
)

// Generic errors

var FileCreateErrorTpl = "failed to create file %s: %w"
var FileOpenErrorTpl = "failed to open %s: %w"
var FileStatErrorTpl = "failed to stat %s: %w"
var FileReadErrorTpl = "failed to read %s: %w"
var FileWriteErrorTpl = "failed to write %s: %w"
var FileRemoveErrorTpl = "failed to remove %s: %w"
var FileMoveErrorTpl = "failed to move file from %s to %s: %w"
var FileCopyErrorTpl = "failed to copy file from %s to %s: %w"

// Request errors

var RequestFailedErrorTpl = "request to %s failed: %w"
var RequestCopyFailedErrorTpl = "failed to copy data to %s: %w"

// System package errors

var SystemUpdateErrorTpl = "failed to update system package manager: %w"
var SystemPackageInstallErrorTpl = "failed to install package(s): %w"
var SystemCleanErrorTpl = "failed to clean system package manager: %w"

// Trust store errors

var TrustStoreUpdateErrorTpl = "failed to update CA certificates: %w"
var TrustAnchorInstallErrorTpl = "failed to install trust anchor %s to %s: %w"

// Bundle error kinds, usable with errors.Is.

var (
	ErrSourceUnavailable = stderrors.New("source unavailable")
	ErrWriteFailure      = stderrors.New("write failure")
	ErrMalformedPEM      = stderrors.New("malformed PEM")
	ErrExpired           = stderrors.New("certificate expired")
)

// BundleError carries the kind of a bundle failure together with the path
// that caused it.
type BundleError struct {
	Kind error
	Path string
	Err  error
}

func (e *BundleError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Path, e.Err)
}

func (e *BundleError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func SourceUnavailable(path string, err error) error {
	return &BundleError{Kind: ErrSourceUnavailable, Path: path, Err: err}
}

func WriteFailure(path string, err error) error {
	return &BundleError{Kind: ErrWriteFailure, Path: path, Err: err}
}

func MalformedPEM(path string, err error) error {
	return &BundleError{Kind: ErrMalformedPEM, Path: path, Err: err}
}

func Expired(path string, err error) error {
	return &BundleError{Kind: ErrExpired, Path: path, Err: err}
}

type UnsupportedOSError struct {
	Vendor  string
	Version string
}

func (e *UnsupportedOSError) Error() string {
	return fmt.Sprintf("unsupported os %s %s", e.Vendor, e.Version)
}

type AlreadyExistsError struct {
	Name string
	Path string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists at %s, use --force to replace it", e.Name, e.Path)
}
