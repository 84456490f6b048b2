package brapi

// QuoteResponse is the top-level envelope returned by the quote endpoint.
type QuoteResponse struct {
	Results     []QuoteResult `json:"results"`
	RequestedAt string        `json:"requestedAt"`
	Took        string        `json:"took"`
}

// QuoteResult is one quoted security. Numeric fields are pointers: the
// provider freely omits fields per symbol and absent must stay
// distinguishable from zero.
type QuoteResult struct {
	Symbol                     string            `json:"symbol"`
	ShortName                  string            `json:"shortName"`
	LongName                   string            `json:"longName"`
	Currency                   string            `json:"currency"`
	RegularMarketPrice         *float64          `json:"regularMarketPrice"`
	RegularMarketChangePercent *float64          `json:"regularMarketChangePercent"`
	RegularMarketTime          string            `json:"regularMarketTime"`
	MarketCap                  *float64          `json:"marketCap"`
	PriceEarnings              *float64          `json:"priceEarnings"`
	EarningsPerShare           *float64          `json:"earningsPerShare"`
	HistoricalDataPrice        []HistoricalPrice `json:"historicalDataPrice"`
	SummaryProfile             *SummaryProfile   `json:"summaryProfile"`
	DefaultKeyStatistics       *KeyStatistics    `json:"defaultKeyStatistics"`
	FinancialData              *FinancialData    `json:"financialData"`
}

// HistoricalPrice is one OHLC sample. Date is a unix timestamp (seconds).
type HistoricalPrice struct {
	Date     int64    `json:"date"`
	Open     *float64 `json:"open"`
	High     *float64 `json:"high"`
	Low      *float64 `json:"low"`
	Close    *float64 `json:"close"`
	Volume   *int64   `json:"volume"`
	AdjClose *float64 `json:"adjustedClose"`
}

// SummaryProfile carries the issuer classification module.
type SummaryProfile struct {
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
	Website  string `json:"website"`
}

// KeyStatistics carries the defaultKeyStatistics module.
type KeyStatistics struct {
	PriceToBook       *float64 `json:"priceToBook"`
	DividendYield     *float64 `json:"dividendYield"` // fractional (0.08 = 8%)
	SharesOutstanding *float64 `json:"sharesOutstanding"`
	Beta              *float64 `json:"beta"`
}

// FinancialData carries the financialData module.
type FinancialData struct {
	FreeCashflow        *float64 `json:"freeCashflow"`
	OperatingCashflow   *float64 `json:"operatingCashflow"`
	TotalDebt           *float64 `json:"totalDebt"`
	TotalCash           *float64 `json:"totalCash"`
	ReturnOnEquity      *float64 `json:"returnOnEquity"`
	EbitdaMargins       *float64 `json:"ebitdaMargins"`
	WeightedAverageCost *float64 `json:"weightedAverageCostOfCapital"`
}

// ErrorResponse is the provider's error envelope.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
