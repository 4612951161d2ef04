package layout

// FlashMessage is a one-shot notification shown at the top of the next page
type FlashMessage struct {
	Type    string // "success", "error" or "info"
	Message string
}

// PageData is the common data every page needs
type PageData struct {
	Title string
	// Email is the authenticated account, or "" when signed out
	Email string
	Flash *FlashMessage
}
