package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/tickergate/tickergate/internal/factory"
	"github.com/tickergate/tickergate/internal/testutil"
	"github.com/tickergate/tickergate/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() {
		require.NoError(t, app.Close())
	})

	router := web.NewRouter(web.RouterConfig{
		Logger:      testutil.NopLogger(),
		AuthService: app.AuthService,
		SessionGate: app.SessionGate,
		Ticker:      app.Ticker,
		Hub:         app.Hub,
		StaticDir:   "", // No static files in tests
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// signup creates an account through the form flow, leaving the gate open
func (ts *webTestServer) signup(email, password string) {
	ts.t.Helper()
	form := url.Values{
		"email":            {email},
		"password":         {password},
		"password_confirm": {password},
	}
	rr := ts.post("/auth/signup", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after signup")
}

// waitForPrice blocks until the ticker has a live reading
func (ts *webTestServer) waitForPrice() {
	ts.t.Helper()
	require.Eventually(ts.t, func() bool {
		return ts.app.Ticker.Snapshot().Live
	}, 2*time.Second, 10*time.Millisecond, "Expected a live price snapshot")
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected not to find element matching %q, but found one", selector)
	}
}

// assertContainsText asserts that an element matching the selector contains the given text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	found := false
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(s.Text(), text) {
			found = true
		}
	})
	if !found {
		t.Errorf("Expected element %q to contain text %q", selector, text)
	}
}
