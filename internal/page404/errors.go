package page404

import "errors"

var (
	// ErrURLsNotDetected means the begin event carried no URL mappings.
	ErrURLsNotDetected = errors.New("URLs not detected, unable to add a 404 page")

	// ErrIndexNotFound means the render plan has no index.html mapping.
	ErrIndexNotFound = errors.New("unable to find the URL mapping for the index page")

	// ErrReservedURL means another mapping already renders 404.html.
	ErrReservedURL = errors.New("404.html is reserved")

	// ErrContentType means page404Content did not resolve to a string.
	ErrContentType = errors.New("page404Content must be a string")

	// ErrAbsoluteLinksRequired means useHostedBaseUrlForAbsoluteLinks is off.
	ErrAbsoluteLinksRequired = errors.New("absolute links are required")
)
