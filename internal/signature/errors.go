package signature

import "codeberg.org/mutker/hwprint/internal/errors"

const (
	ErrReadDatabase       = errors.ErrorCode("signature_read_database_failed")
	ErrParseDatabase      = errors.ErrorCode("signature_parse_database_failed")
	ErrUnsupportedVersion = errors.ErrorCode("signature_unsupported_version")
	ErrUnknownFamily      = errors.ErrorCode("signature_unknown_family")
	ErrCyclicFamily       = errors.ErrorCode("signature_cyclic_family")
	ErrEmptyFamily        = errors.ErrorCode("signature_empty_family")
)
