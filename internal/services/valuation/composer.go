package valuation

import (
	"fmt"
	"strings"

	"github.com/valora-ai/valora/internal/interfaces"
	"github.com/valora-ai/valora/internal/models"
)

// notInformed is the placeholder rendered for every absent snapshot
// field. The model must never see a raw null.
const notInformed = "not informed"

// Disclaimer is the fixed closing sentence required in every analysis.
const Disclaimer = "This analysis is for educational purposes only and does not constitute investment advice."

// resultsTableHeader is the mandatory shape of the final results table.
const resultsTableHeader = "| Fair Price | Current Market Price | Upside/Downside potential |"

const (
	documentSectionBegin = "--- BEGIN FINANCIAL DOCUMENT EXCERPT ---"
	documentSectionEnd   = "--- END FINANCIAL DOCUMENT EXCERPT ---"
)

// personaFraming describes each investor profile in the role framing.
var personaFraming = map[models.Persona]string{
	models.PersonaConservative: "a conservative investor who prioritizes capital preservation and demands a wide margin of safety",
	models.PersonaRealistic:    "a pragmatic investor who balances growth expectations against downside risk",
	models.PersonaOptimistic:   "a growth-oriented investor comfortable with higher valuations backed by strong fundamentals",
}

// Compose assembles the valuation instruction document sent to the LLM.
// It is a pure string builder: nil snapshot fields degrade to the
// "not informed" placeholder and never cause an error.
func Compose(snapshot *models.StockSnapshot, persona models.Persona, assumptions Assumptions, methodology models.Methodology, doc *interfaces.ExtractedText) string {
	var b strings.Builder

	writeRoleFraming(&b, persona)
	writeContextBlock(&b, snapshot)
	writeDocumentSection(&b, doc)
	writeAssumptions(&b, assumptions, methodology)
	writeMethodologySteps(&b, methodology)
	writeOutputShape(&b)

	return b.String()
}

func writeRoleFraming(b *strings.Builder, persona models.Persona) {
	framing, ok := personaFraming[persona]
	if !ok {
		framing = personaFraming[models.PersonaRealistic]
	}
	fmt.Fprintf(b, "You are a senior equity valuation analyst covering companies listed on B3, the Brazilian stock exchange. ")
	fmt.Fprintf(b, "Tailor your analysis to %s. ", framing)
	b.WriteString("Write the full analysis in clear language, showing every calculation step.\n\n")
}

func writeContextBlock(b *strings.Builder, snapshot *models.StockSnapshot) {
	b.WriteString("## Company data\n\n")
	if snapshot == nil {
		b.WriteString("No market data is available for this company.\n\n")
		return
	}

	fmt.Fprintf(b, "- Ticker: %s\n", orNotInformedStr(snapshot.Ticker))
	fmt.Fprintf(b, "- Company name: %s\n", orNotInformedStr(snapshot.CompanyName))
	fmt.Fprintf(b, "- Sector: %s\n", orNotInformedPtr(snapshot.Sector))
	fmt.Fprintf(b, "- Current market price: %s\n", fmtMoney(snapshot.Price))
	fmt.Fprintf(b, "- Daily variation: %s\n", fmtPercent(snapshot.Variation))
	fmt.Fprintf(b, "- Market capitalization: %s\n", fmtMoney(snapshot.MarketCap))
	fmt.Fprintf(b, "- Shares outstanding: %s\n", fmtNumber(snapshot.SharesOutstanding))
	fmt.Fprintf(b, "- Free cash flow (trailing twelve months): %s\n", fmtMoney(snapshot.FreeCashFlowTTM))
	fmt.Fprintf(b, "- Total debt: %s\n", fmtMoney(snapshot.TotalDebt))
	fmt.Fprintf(b, "- Total cash: %s\n", fmtMoney(snapshot.TotalCash))
	fmt.Fprintf(b, "- Estimated WACC (provider placeholder): %.2f%%\n", snapshot.EstimatedWACC*100)
	fmt.Fprintf(b, "- Price/Earnings: %s\n", fmtNumber(snapshot.Indicators.PriceToEarnings))
	fmt.Fprintf(b, "- Price/Book: %s\n", fmtNumber(snapshot.Indicators.PriceToBook))
	fmt.Fprintf(b, "- Dividend yield: %s\n", fmtPercent(snapshot.Indicators.DividendYield))
	fmt.Fprintf(b, "- Recent closing prices (oldest to newest): %s\n", fmtHistory(snapshot.History))
	b.WriteString("\n")
}

func writeDocumentSection(b *strings.Builder, doc *interfaces.ExtractedText) {
	if doc == nil || strings.TrimSpace(doc.Text) == "" {
		return
	}

	b.WriteString("## Financial statement excerpt\n\n")
	b.WriteString("The user attached a financial statement. Treat the excerpt below as the primary source of truth for accounting figures: ")
	b.WriteString("when it conflicts with the market data above, prefer the document's numbers and explicitly state the justification for the override in your analysis.\n")
	if doc.Truncated {
		b.WriteString("Note: the excerpt was truncated and may be partial.\n")
	}
	b.WriteString("\n")
	b.WriteString(documentSectionBegin)
	b.WriteString("\n")
	b.WriteString(doc.Text)
	b.WriteString("\n")
	b.WriteString(documentSectionEnd)
	b.WriteString("\n\n")
}

func writeAssumptions(b *strings.Builder, a Assumptions, methodology models.Methodology) {
	c := MarketConstants()

	b.WriteString("## Valuation assumptions\n\n")
	fmt.Fprintf(b, "- Risk-free rate: %.1f%%\n", c.RiskFreeRate*100)
	fmt.Fprintf(b, "- Market risk premium: %.1f%%\n", c.MarketRiskPremium*100)
	fmt.Fprintf(b, "- Beta: %.1f (use a lower beta if the sector is clearly low-volatility, such as regulated utilities, and say so)\n", c.DefaultBeta)
	fmt.Fprintf(b, "- Statutory tax rate: %.0f%% (fallback only; derive the effective rate from the attached document when possible)\n", c.TaxRate*100)

	switch methodology {
	case models.MethodologyDividendDiscount:
		fmt.Fprintf(b, "- Perpetual dividend growth rate: %.1f%%\n", a.DividendGrowth*100)
	default:
		fmt.Fprintf(b, "- Discount rate: %.1f%%\n", a.DiscountRate*100)
		fmt.Fprintf(b, "- Free cash flow growth schedule (years 1-5): %s\n", fmtSchedule(a.GrowthSchedule()))
		fmt.Fprintf(b, "- Perpetuity growth rate: %.1f%%\n", c.PerpetuityGrowth*100)
	}
	b.WriteString("\n")
}

func writeMethodologySteps(b *strings.Builder, methodology models.Methodology) {
	b.WriteString("## Required steps\n\n")
	b.WriteString("Follow every step below, in order, showing the intermediate numbers:\n\n")

	if methodology == models.MethodologyDividendDiscount {
		b.WriteString("1. Compute the cost of equity with CAPM: risk-free rate + beta x market risk premium.\n")
		b.WriteString("2. Use the perpetual dividend growth rate given in the assumptions above.\n")
		b.WriteString("3. Compute the trailing dividend per share as current market price x dividend yield.\n")
		b.WriteString("4. Project the dividend one year forward using the growth rate.\n")
		b.WriteString("5. Apply the Gordon growth formula (projected dividend / (cost of equity - growth rate)) to obtain the fair price per share.\n")
	} else {
		b.WriteString("1. Validate and reconcile the data sources, noting any figure you had to override from the attached document.\n")
		b.WriteString("2. Project free cash flow for the next 5 years applying the year-by-year growth schedule above.\n")
		b.WriteString("3. Compute the after-tax cost of debt as interest expense from the attached document divided by total debt, adjusted by the tax rate; if no document was provided, state the assumption you used instead.\n")
		b.WriteString("4. Compute the weighted average cost of capital from the equity and debt weights implied by market capitalization and total debt.\n")
		b.WriteString("5. Discount the projected cash flows and the terminal value (perpetuity growth) to present value.\n")
		b.WriteString("6. Subtract net debt (total debt minus total cash) from the enterprise value.\n")
		b.WriteString("7. Divide the resulting equity value by shares outstanding to obtain the fair price per share.\n")
	}
	b.WriteString("\n")
}

func writeOutputShape(b *strings.Builder) {
	b.WriteString("## Required output\n\n")
	b.WriteString("End the analysis with a results table in exactly this shape:\n\n")
	b.WriteString(resultsTableHeader)
	b.WriteString("\n|---|---|---|\n\n")
	b.WriteString("Follow the table with a short conclusion, and close with this exact sentence:\n")
	b.WriteString(Disclaimer)
	b.WriteString("\n")
}

func orNotInformedStr(s string) string {
	if strings.TrimSpace(s) == "" {
		return notInformed
	}
	return s
}

func orNotInformedPtr(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return notInformed
	}
	return *s
}

func fmtMoney(v *float64) string {
	if v == nil {
		return notInformed
	}
	return fmt.Sprintf("R$ %.2f", *v)
}

func fmtNumber(v *float64) string {
	if v == nil {
		return notInformed
	}
	return fmt.Sprintf("%.2f", *v)
}

func fmtPercent(v *float64) string {
	if v == nil {
		return notInformed
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

func fmtSchedule(rates []float64) string {
	parts := make([]string, len(rates))
	for i, r := range rates {
		parts[i] = fmt.Sprintf("%.1f%%", r*100)
	}
	return strings.Join(parts, ", ")
}

func fmtHistory(points []models.PricePoint) string {
	if len(points) == 0 {
		return notInformed
	}
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%s R$ %.2f", p.Date, p.Close)
	}
	return strings.Join(parts, "; ")
}
