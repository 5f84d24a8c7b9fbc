package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Input errors
	NoInputError
	AmbiguousInputError
	UnknownSourceError
	UnsupportedSourceError
	SourceMismatchError
	UnknownRankError
	UnknownOperationError

	// Transport errors
	HTTPRequestError
	HTTPStatusError
	UnexpectedResponseError
	RateLimitError

	// Archive errors
	ArchiveConnectionError
	ArchiveSchemaError
	ArchiveWriteError
	UnknownArchiveError

	// Output errors
	OutputFormatError
)
