package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHomeShowsLoginTabByDefault(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#auth-card")
	assertContainsElement(t, doc, "form#login-form[action='/auth/login']")
	assertNotContainsElement(t, doc, "#signup-form")
	assertContainsElement(t, doc, "#tab-login.active")
}

func TestHomeShowsSignupTab(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/?tab=signup")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "form#signup-form[action='/auth/signup']")
	assertNotContainsElement(t, doc, "#login-form")
	assertContainsElement(t, doc, "#tab-signup.active")
}

func TestSignup(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{
		"email":            {"alice@example.com"},
		"password":         {"hunter2"},
		"password_confirm": {"hunter2"},
	}
	rr := ts.post("/auth/signup", form)

	// Should redirect to home
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	// Follow redirect and check we're signed in
	rr = ts.followRedirect(rr)
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#whoami", "alice@example.com")
	assertContainsElement(t, doc, "#price-card")
	assertContainsText(t, doc, "#flash", "Welcome, alice@example.com!")
	assertNotContainsElement(t, doc, "#auth-card")
}

func TestSignupNormalizesEmail(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{
		"email":            {"  Alice@Example.COM "},
		"password":         {"hunter2"},
		"password_confirm": {"hunter2"},
	}
	rr := ts.post("/auth/signup", form)
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, "#whoami", "alice@example.com")
}

func TestSignupShortPassword(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{
		"email":            {"alice@example.com"},
		"password":         {"abc"},
		"password_confirm": {"abc"},
	}
	rr := ts.post("/auth/signup", form)

	// Re-renders the signup tab inline
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#signup-error", "Password must be at least 6 characters.")
	// The entered email is preserved
	email, _ := doc.Find("#signup-email").Attr("value")
	assert.Equal(t, "alice@example.com", email)
}

func TestSignupPasswordMismatch(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{
		"email":            {"alice@example.com"},
		"password":         {"hunter2"},
		"password_confirm": {"hunter3"},
	}
	rr := ts.post("/auth/signup", form)

	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#signup-error", "Passwords do not match.")
}

func TestSignupMissingFields(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/auth/signup", url.Values{"email": {""}, "password": {""}})

	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#signup-error", "Email and password are required.")
}

func TestSignupDuplicateAccount(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signup("alice@example.com", "hunter2")

	form := url.Values{
		"email":            {"ALICE@example.com"},
		"password":         {"different1"},
		"password_confirm": {"different1"},
	}
	rr := ts.post("/auth/signup", form)

	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#signup-error", "Account already exists. Try logging in.")
}

func TestLogin(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signup("alice@example.com", "hunter2")

	// Log out, then back in
	rr := ts.post("/auth/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	form := url.Values{
		"email":    {"alice@example.com"},
		"password": {"hunter2"},
	}
	rr = ts.post("/auth/login", form)
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, "#whoami", "alice@example.com")
	assertContainsText(t, doc, "#flash", "Welcome back, alice@example.com!")
}

func TestLoginUnknownAccount(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{
		"email":    {"nobody@example.com"},
		"password": {"hunter2"},
	}
	rr := ts.post("/auth/login", form)

	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#login-error", "No account found for this email.")
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signup("alice@example.com", "hunter2")
	_ = ts.post("/auth/logout", nil)

	form := url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong-password"},
	}
	rr := ts.post("/auth/login", form)

	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#login-error", "Incorrect password.")
	// The entered email is preserved
	email, _ := doc.Find("#login-email").Attr("value")
	assert.Equal(t, "alice@example.com", email)
}

func TestLogout(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signup("alice@example.com", "hunter2")

	rr := ts.post("/auth/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsElement(t, doc, "#auth-card")
	assertNotContainsElement(t, doc, "#price-card")
	assertContainsText(t, doc, "#flash", "You have been logged out")
}

func TestDashboardShowsPrices(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signup("alice@example.com", "hunter2")
	ts.waitForPrice()

	rr := ts.get("/")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#eth-price-usd", "$2,000.00")
	assertContainsText(t, doc, "#eth-price-inr", "₹1,66,000.00")
	assertContainsElement(t, doc, "#countdown")
}

func TestEventsRequireAuth(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/events")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}
