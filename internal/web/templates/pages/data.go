package pages

import (
	"github.com/tickergate/tickergate/internal/services/price"
	"github.com/tickergate/tickergate/internal/web/templates/layout"
)

// Tab names for the auth card
const (
	TabLogin  = "login"
	TabSignup = "signup"
)

// HomeData is the data for the home page. When Email is set the dashboard is
// shown; otherwise the auth card with the selected tab.
type HomeData struct {
	layout.PageData
	Tab         string
	LoginEmail  string
	SignupEmail string
	LoginError  string
	SignupError string
	Snapshot    price.Snapshot
}
