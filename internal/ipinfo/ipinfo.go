package ipinfo

import (
	"net"
	"net/http"
)

const forwardedForHeader = "X-Forwarded-For"

// Describe formats the client address shown on the page. The forwarded value is
// appended whenever the header is present, even if it is empty.
func Describe(remoteAddr string, header http.Header) string {
	if _, ok := header[http.CanonicalHeaderKey(forwardedForHeader)]; ok {
		return remoteAddr + " and X-Forwarded-For header value of " + header.Get(forwardedForHeader)
	}

	return remoteAddr
}

func FromRequest(r *http.Request) string {
	return Describe(remoteHost(r.RemoteAddr), r.Header)
}

func remoteHost(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}

	return host
}
