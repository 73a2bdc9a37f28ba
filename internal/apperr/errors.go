// Package apperr defines the failure codes shared by the image pipeline.
// Each constructor returns a go-pkg-utils structured error carrying its code
// and HTTP status, so handlers branch on the error value and never on
// message text.
package apperr

import (
	"errors"
	"net/http"

	pkgerrors "github.com/kerimovok/go-pkg-utils/errors"
)

// Failure codes for every error the pipeline can surface.
const (
	CodePayloadTooLarge     = "PAYLOAD_TOO_LARGE"
	CodeInvalidImage        = "INVALID_IMAGE"
	CodeCorruptImage        = "CORRUPT_IMAGE"
	CodeDecodeFailure       = "DECODE_FAILURE"
	CodeUnsupportedFormat   = "UNSUPPORTED_FORMAT"
	CodeStorageWriteFailure = "STORAGE_WRITE_FAILURE"
	CodePersistenceFailure  = "PERSISTENCE_FAILURE"
	CodeNotFound            = "NOT_FOUND"
	CodeDeletionFailed      = "DELETION_FAILED"
)

// PayloadTooLarge rejects a payload exceeding the configured size limit.
func PayloadTooLarge(message string) *pkgerrors.Error {
	return pkgerrors.NewError(pkgerrors.ErrorTypeValidation, CodePayloadTooLarge, message).
		WithHTTPStatus(http.StatusRequestEntityTooLarge)
}

// InvalidImage rejects bytes no decoder recognizes as an image.
func InvalidImage(message string) *pkgerrors.Error {
	return pkgerrors.BadRequestError(CodeInvalidImage, message)
}

// CorruptImage rejects a recognized container with a broken structure.
func CorruptImage(message string) *pkgerrors.Error {
	return pkgerrors.BadRequestError(CodeCorruptImage, message)
}

// DecodeFailure reports a full decode failing after the verify pass succeeded.
func DecodeFailure(message string) *pkgerrors.Error {
	return pkgerrors.BadRequestError(CodeDecodeFailure, message)
}

// UnsupportedFormat rejects a well-formed image outside the allowed set.
func UnsupportedFormat(message string) *pkgerrors.Error {
	return pkgerrors.NewError(pkgerrors.ErrorTypeValidation, CodeUnsupportedFormat, message).
		WithHTTPStatus(http.StatusUnsupportedMediaType)
}

// StorageWriteFailure reports a failed file encode or disk write.
func StorageWriteFailure(message string) *pkgerrors.Error {
	return pkgerrors.InternalError(CodeStorageWriteFailure, message)
}

// PersistenceFailure reports a failed metadata insert.
func PersistenceFailure(message string) *pkgerrors.Error {
	return pkgerrors.InternalError(CodePersistenceFailure, message)
}

// NotFound reports a lookup or delete miss.
func NotFound(message string) *pkgerrors.Error {
	return pkgerrors.NotFoundError(CodeNotFound, message)
}

// DeletionFailed reports a deletion that rolled back.
func DeletionFailed(message string) *pkgerrors.Error {
	return pkgerrors.InternalError(CodeDeletionFailed, message)
}

// CodeOf extracts the failure code from err, or "" for untyped errors.
func CodeOf(err error) string {
	var e *pkgerrors.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HTTPStatus returns the status carried by err; untyped errors map to 500.
func HTTPStatus(err error) int {
	return pkgerrors.GetHTTPStatus(err)
}
