package request

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"
)

// ParseMultipart reads a multipart/form-data body into r.MultipartForm.
func ParseMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to parse multipart form: %w", err)) // nolint:wrapcheck
	}

	return nil
}

// FormFile returns the uploaded file of field, or nils when none was sent.
// The caller closes a returned file.
func FormFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}

	if err != nil {
		return nil, nil, failure.BadRequest(fmt.Errorf("failed to read %s: %w", field, err)) // nolint:wrapcheck
	}

	return file, header, nil
}

func FormBool(r *http.Request, field string) *bool {
	return shared.ConvertStringToBool(r.FormValue(field))
}

// FormInt returns zero for a missing or malformed value; validation rejects it afterwards.
func FormInt(r *http.Request, field string) int {
	value, err := shared.ConvertStringToInt(r.FormValue(field))
	if err != nil {
		return 0
	}

	return value
}
