package myhttp

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	formcodec "github.com/go-playground/form/v4"

	"github.com/mediakasir/apotekpos/lib/myerrors"
)

var formDecoder = formcodec.NewDecoder()

// Bind fills dst from a JSON body or from url-encoded form values,
// depending on the Content-Type of the request. A request without a body
// binds the query parameters.
func Bind(r *http.Request, dst interface{}) error {
	contentType := r.Header.Get("Content-Type")
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return myerrors.NewUnsupportedMediaTypeError(err)
		}
		contentType = mediaType
	}

	switch contentType {
	case "application/json":
		err := json.NewDecoder(r.Body).Decode(dst)
		if err != nil {
			return myerrors.NewInvalidInputError(fmt.Errorf("error parsing json body: %s", err))
		}
		return nil

	case "", "application/x-www-form-urlencoded", "multipart/form-data":
		err := r.ParseForm()
		if err != nil {
			return myerrors.NewInvalidInputError(err)
		}
		err = formDecoder.Decode(dst, r.Form)
		if err != nil {
			return myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %s", err))
		}
		return nil

	default:
		return myerrors.NewUnsupportedMediaTypeError(fmt.Errorf("content-type %s not supported", contentType))
	}
}
