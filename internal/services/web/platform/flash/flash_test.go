package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meninasdigitais/eventos/internal/services/web/platform/requestmeta"
)

func TestWriteThenReadAndClear(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/events/e1/enroll", nil)
	writeRR := httptest.NewRecorder()
	Write(writeRR, req, Success("events.notice.enrolled", "Oficina de Robótica"), requestmeta.SchemePolicy{})

	cookie, err := http.ParseSetCookie(writeRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	next := httptest.NewRequest(http.MethodGet, "/events/e1", nil)
	next.AddCookie(cookie)

	readRR := httptest.NewRecorder()
	notice, ok := ReadAndClear(readRR, next, requestmeta.SchemePolicy{})
	if !ok {
		t.Fatalf("ReadAndClear() ok = false")
	}
	want := Notice{Kind: KindSuccess, Key: "events.notice.enrolled", Arg: "Oficina de Robótica"}
	if notice != want {
		t.Fatalf("notice = %+v, want %+v", notice, want)
	}
	cleared, err := http.ParseSetCookie(readRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie(clear) error = %v", err)
	}
	if cleared.MaxAge >= 0 {
		t.Fatalf("clear MaxAge = %d, want negative", cleared.MaxAge)
	}
}

func TestWriteSkipsInvalidNotice(t *testing.T) {
	t.Parallel()

	for _, notice := range []Notice{
		{Kind: KindSuccess},
		{Kind: "shout", Key: "events.notice.enrolled"},
	} {
		rr := httptest.NewRecorder()
		Write(rr, httptest.NewRequest(http.MethodGet, "/", nil), notice, requestmeta.SchemePolicy{})
		if got := rr.Header().Get("Set-Cookie"); got != "" {
			t.Fatalf("Set-Cookie = %q for %+v, want empty", got, notice)
		}
	}
}

func TestReadAndClearRejectsGarbage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "%%%not-base64"})
	if _, ok := ReadAndClear(httptest.NewRecorder(), req, requestmeta.SchemePolicy{}); ok {
		t.Fatalf("expected garbage cookie to be rejected")
	}
	if _, ok := ReadAndClear(nil, nil, requestmeta.SchemePolicy{}); ok {
		t.Fatalf("expected nil request to have no notice")
	}
}
