package payment

// Currency is the single store currency.
const Currency = "usd"

// LineItem is one row on the hosted checkout page. UnitAmount is in
// minor units (cents).
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type SessionRequest struct {
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	// Optional; prefills the hosted page.
	CustomerEmail string
}

// Session is the opaque handle the client redirects with.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}

type stripeSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
