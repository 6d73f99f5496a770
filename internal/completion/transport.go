package completion

import "net/http"

// bearerTransport makes sure every request carries an Authorization header.
// The SDK omits the header for an empty key; the remote service must still
// see "Bearer " so the rejection comes from it.
type bearerTransport struct {
	credential string
	base       http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") != "" {
		return t.base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.credential)
	return t.base.RoundTrip(req)
}

// withBearer returns a copy of hc whose transport adds the bearer header.
func withBearer(hc *http.Client, credential string) *http.Client {
	out := *hc
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	out.Transport = &bearerTransport{credential: credential, base: base}
	return &out
}
