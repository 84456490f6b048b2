package models

// StockSnapshot is the canonical point-in-time market-data record for one
// ticker. It is immutable once fetched: every numeric field is either a
// finite value or nil, never a zero standing in for "missing". Nil fields
// render as "not informed" downstream.
type StockSnapshot struct {
	Ticker            string       `json:"ticker"`
	CompanyName       string       `json:"companyName"`
	Sector            *string      `json:"sector"`
	Price             *float64     `json:"price"`
	Variation         *float64     `json:"variation"` // fractional, 0.0123 = 1.23%
	MarketCap         *float64     `json:"marketCap"`
	SharesOutstanding *float64     `json:"sharesOutstanding"`
	FreeCashFlowTTM   *float64     `json:"freeCashFlowTTM"`
	TotalDebt         *float64     `json:"totalDebt"`
	TotalCash         *float64     `json:"totalCash"`
	EstimatedWACC     float64      `json:"estimatedWACC"` // provider-side placeholder, not computed
	Indicators        Indicators   `json:"indicators"`
	History           []PricePoint `json:"history"` // chronological ascending
}

// Indicators holds the headline valuation multiples for the snapshot.
type Indicators struct {
	PriceToEarnings *float64 `json:"priceToEarnings"`
	PriceToBook     *float64 `json:"priceToBook"`
	DividendYield   *float64 `json:"dividendYield"`
}

// PricePoint is one historical close, with the date already rendered in
// the display locale's day/month form (e.g. "05/08").
type PricePoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// ChatMessage is one entry in the session transcript. The transcript is
// append-only; the only mutation the UI performs is swapping the
// "thinking" placeholder for the final bot message by ID.
type ChatMessage struct {
	ID     int64  `json:"id"`
	Sender string `json:"sender"` // "user" or "bot"
	Text   string `json:"text"`
}

// Persona is the user-selected risk profile. It is chosen explicitly per
// message and never inferred.
type Persona string

const (
	PersonaConservative Persona = "conservative"
	PersonaRealistic    Persona = "realistic"
	PersonaOptimistic   Persona = "optimistic"
)

// Valid reports whether p is one of the three known personas.
func (p Persona) Valid() bool {
	switch p {
	case PersonaConservative, PersonaRealistic, PersonaOptimistic:
		return true
	}
	return false
}

// Methodology identifies the valuation approach encoded into the prompt.
type Methodology string

const (
	MethodologyDividendDiscount   Methodology = "ddm"
	MethodologyDiscountedCashFlow Methodology = "dcf"
)

// ValuationRequest is the ephemeral payload for one chat submission. It is
// owned by the request/response cycle and discarded afterwards.
type ValuationRequest struct {
	Message   string         `json:"message" validate:"required"`
	History   []ChatMessage  `json:"history"`
	StockData *StockSnapshot `json:"stockData"`
	Persona   Persona        `json:"persona" validate:"required,oneof=conservative realistic optimistic"`
	PDFText   string         `json:"pdfText,omitempty"`
}

// ValuationResponse carries the relayed LLM analysis back to the caller.
type ValuationResponse struct {
	Message string `json:"message"`
}
