package livenumber

import "errors"

// ErrMissingElement indicates that New was called without a host field.
var ErrMissingElement = errors.New("livenumber: no element given")

// ErrMissingLocale indicates that no locale was configured.
var ErrMissingLocale = errors.New("livenumber: no locale defined")

// ErrInvalidRange is returned by ReplaceAt for out of range positions
var ErrInvalidRange = errors.New("livenumber: invalid start or end position")

// ErrNotANumber marks text that cannot be read as a number.
var ErrNotANumber = errors.New("livenumber: not a number")

// ErrUnknownInputType is returned when an input type name cannot be parsed
var ErrUnknownInputType = errors.New("livenumber: unknown input type")

// ErrUnsupportedFormat is returned for config files with an unknown extension.
var ErrUnsupportedFormat = errors.New("livenumber: unsupported file format")
