package dawmark

import (
	"net/http"

	"github.com/simonhull/dawmark/internal/convert"
)

// ConversionStatusError is an alias to convert.StatusError. It is returned
// for non-2xx replies from the conversion service. Converters written
// outside this package may return it too: retries stop unless Temporary
// reports true (5xx, 408 and 429).
type ConversionStatusError = convert.StatusError

// ConverterOption configures the HTTP converter returned by NewConverter.
type ConverterOption = convert.Option

// NewConverter returns a Converter that calls the conversion service at
// baseURL.
//
//	ex := dawmark.New(dawmark.WithConverter(
//	    dawmark.NewConverter("https://convert.example.com",
//	        dawmark.WithConverterAPIKey(key)),
//	))
func NewConverter(baseURL string, opts ...ConverterOption) Converter {
	return convert.New(baseURL, opts...)
}

// WithConverterAPIKey sends key as a bearer token with each request.
func WithConverterAPIKey(key string) ConverterOption {
	return convert.WithAPIKey(key)
}

// WithConverterHTTPClient replaces the converter's *http.Client.
func WithConverterHTTPClient(hc *http.Client) ConverterOption {
	return convert.WithHTTPClient(hc)
}

// WithConverterUserAgent sets the User-Agent header of conversion requests.
func WithConverterUserAgent(ua string) ConverterOption {
	return convert.WithUserAgent(ua)
}
