package completion

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func Test_WithBearer_SetsMissingHeader(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
	}))
	defer srv.Close()

	hc := withBearer(srv.Client(), "sk-test")

	req, _ := http.NewRequest(http.MethodGet, srv.URL, nil)
	resp, err := hc.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	req, _ = http.NewRequest(http.MethodGet, srv.URL, nil)
	req.Header.Set("Authorization", "Bearer other")
	resp, err = hc.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if len(got) != 2 || got[0] != "Bearer sk-test" || got[1] != "Bearer other" {
		t.Errorf("expected [Bearer sk-test, Bearer other], got %q", got)
	}
}

func Test_WithBearer_LeavesOriginalClientAlone(t *testing.T) {
	hc := &http.Client{}
	out := withBearer(hc, "sk-test")
	if hc.Transport != nil {
		t.Error("expected original client transport to stay nil")
	}
	if _, ok := out.Transport.(*bearerTransport); !ok {
		t.Errorf("expected bearerTransport, got %T", out.Transport)
	}
}
