// Package prompt builds the natural-language prompts sent to completion
// backends. Template selection is pure: the same inputs always produce the
// same prompt, and no network or randomness is involved.
package prompt

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	domain "github.com/karimhaddad/estate-scout/pkg/types"
)

// ExpertSystemRole is the system role used for property and trend analysis.
const ExpertSystemRole = `You are a sophisticated AI real estate expert specializing in the United Arab Emirates (UAE) market. Your goal is to provide insightful, data-driven analysis of property information.
When discussing prices or financial aspects, always use Emirati Dirhams (AED) and specify amounts clearly (e.g., AED 1.5 Million, AED 500,000).
Provide comprehensive analysis that includes:
- Market context: briefly touch upon relevant UAE market trends if applicable.
- Value assessment: go beyond just listing features; explain their significance in the UAE context.
- Potential considerations: highlight any unique opportunities or potential drawbacks for a buyer or investor in the UAE.
- Clarity and conciseness: while being thorough, ensure your response is easy to understand.
- Formatting: use clear paragraphs. For lists or recommendations, use bullet points or numbered lists where appropriate. Do not start your response with any special characters like backslashes unless it is part of standard markdown like a bullet point. Avoid unnecessary leading or trailing whitespace.`

// SummarizerSystemRole is the system role used for article summarization.
const SummarizerSystemRole = `Act as a real estate market analyst. Provide a clear, concise, and professional summary (150-200 words) of the article below. Emphasize key statistics, price trends, and future outlook. Highlight relevant figures (e.g., percentages, price changes, volumes) to support insights. Format key statistics (e.g., percentages, prices, transaction volumes) in bold using Markdown (e.g., **25%**, **$500,000**). Do not include internal reasoning or commentary. Present only the final summary, as if writing for a market report.`

// GreetingSystemRole is the short friendly role selected when chat input is a
// greeting.
const GreetingSystemRole = `You are a friendly UAE real estate assistant. Reply to the greeting warmly in one or two sentences and invite the user to ask about UAE properties, prices, or market trends. Do not produce any analysis.`

// AnalystSystemRole is the structured role selected for substantive chat
// queries.
const AnalystSystemRole = `You are a UAE real estate market analyst. Answer the user's question with exactly these sections in this order:
1. **Market Overview** - a short paragraph of current market context.
2. **Key Trends** - bullet points with concrete statistics.
3. **Regulatory Impact** - any relevant regulation or policy effects.
4. **Emerging Areas** - neighbourhoods or segments worth watching.
5. **Outlook** - a single closing sentence.
Keep the whole answer under 250 words. Wrap every numeric figure (prices, percentages, counts) in bold markdown, e.g. **4.2%** or **AED 1.5 Million**.`

// greetingKeywords is the fixed prefix set for the chat greeting classifier.
var greetingKeywords = []string{
	"hi",
	"hello",
	"hey",
	"salam",
	"greetings",
	"good morning",
	"good afternoon",
	"good evening",
}

// IsGreeting classifies chat input as a greeting by prefix matching against a
// fixed keyword set. Matching is case-insensitive and ignores surrounding
// whitespace.
func IsGreeting(input string) bool {
	s := strings.ToLower(strings.TrimSpace(input))
	for _, kw := range greetingKeywords {
		if s == kw || strings.HasPrefix(s, kw+" ") || strings.HasPrefix(s, kw+",") || strings.HasPrefix(s, kw+"!") {
			return true
		}
	}
	return false
}

// ChatSystemRole returns the system role for a chat turn based on the
// greeting classifier.
func ChatSystemRole(input string) string {
	if IsGreeting(input) {
		return GreetingSystemRole
	}
	return AnalystSystemRole
}

var emptyResultsTmpl = template.Must(template.New("empty").Parse(
	`As a real estate expert, you were asked to analyze properties in {{.City}} matching the following criteria:
- Property Category: {{.Category}}
- Property Type: {{.Type}}
- Maximum Price: AED {{.MaxPrice}} Million

However, no properties from the provided list strictly matched all these criteria.

Please provide a brief statement confirming that no properties matched these exact specifications. You may also offer general advice for finding a {{.Type}} in {{.City}} within this price range, or suggest broadening the search criteria.
Keep your response concise and helpful.
`))

var propertyAnalysisTmpl = template.Must(template.New("analysis").Parse(
	`As a real estate expert, analyze these specific properties found in {{.City}} that match the user's criteria:

User Criteria:
- Property Category: {{.Category}}
- Property Type: {{.Type}}
- Maximum Price: AED {{.MaxPrice}} Million

Matching Properties:
{{.Listings}}

INSTRUCTIONS:
1. Your analysis should ONLY focus on the properties listed above in the "Matching Properties" section.
2. Provide a brief analysis with these sections. Use clear paragraphs and bullet points for lists:
   - **Property Overview:** list basic facts about each property from the "Matching Properties" list. If there are several, label them "a. Property 1:", "b. Property 2:", and so on.
   - **Best Value Analysis:** based on the provided data for these specific properties, explain which offers the best value and why. Consider price, size, and features.
   - **Quick Recommendations:** provide actionable recommendations related to these specific properties.
3. When mentioning any monetary values in your analysis, use the format 'AED X.X Million' (e.g., AED 2.5 Million).

Keep your response concise and focused on these properties only. Ensure the output is well-formatted for readability.
Do not invent or list properties that are not in the "Matching Properties" section.
`))

var trendAnalysisTmpl = template.Must(template.New("trend").Parse(
	`As a real estate expert, analyze the following price trend data for {{.City}}:

**Price Trend Data for {{.City}}:**
Current Average Price: {{.CurrentPrice}} (as of {{.CurrentDate}})

Historical Prices:
{{.Historical}}

Please provide your analysis in a well-structured format. Use clear paragraphs and bullet points where appropriate:
1. **Overall Trend Summary:** briefly describe the general price trend (increasing, decreasing, stable) based on the provided current and historical data.
2. **Key Observations:** highlight any significant changes or points of interest from the historical data compared to the current price.
3. **Market Sentiment:** based on these trends, what could be the general market sentiment for apartments in {{.City}} (buyer's market, seller's market, stable)?
4. **Advice for Buyers/Sellers:** offer brief advice for potential buyers or sellers in {{.City}} based on these trends.

Keep your response concise and ensure good visual structure. Focus only on the provided price trend data for {{.City}}.
`))

type criteriaData struct {
	City     string
	Category string
	Type     string
	MaxPrice string
	Listings string
}

// PropertyAnalysis builds the listing-analysis prompt. With an empty listing
// set it selects the no-match template, which embeds only the query criteria
// and never any listing data.
func PropertyAnalysis(q domain.ListingQuery, listings []domain.NormalizedListing) string {
	data := criteriaData{
		City:     q.City,
		Category: string(q.Category),
		Type:     string(q.Type),
		MaxPrice: formatMillions(q.MaxPriceMillions),
	}

	var sb strings.Builder
	if len(listings) == 0 {
		if err := emptyResultsTmpl.Execute(&sb, data); err != nil {
			panic(fmt.Sprintf("executing empty-results template: %v", err))
		}
		return sb.String()
	}

	data.Listings = serializeListings(listings)
	if err := propertyAnalysisTmpl.Execute(&sb, data); err != nil {
		panic(fmt.Sprintf("executing property-analysis template: %v", err))
	}
	return sb.String()
}

// TrendAnalysis builds the city price-trend prompt from a trend record.
func TrendAnalysis(trend domain.TrendData) string {
	var hist strings.Builder
	for _, p := range trend.Historical {
		fmt.Fprintf(&hist, "- %s: %s\n", p.Period, p.PricePerSqft)
	}
	historical := strings.TrimRight(hist.String(), "\n")
	if historical == "" {
		historical = "No historical data available"
	}

	currentPrice := trend.CurrentPrice
	if currentPrice == "" {
		currentPrice = "N/A"
	}
	currentDate := trend.CurrentPriceDate
	if currentDate == "" {
		currentDate = "N/A"
	}

	var sb strings.Builder
	err := trendAnalysisTmpl.Execute(&sb, map[string]string{
		"City":         trend.City,
		"CurrentPrice": currentPrice,
		"CurrentDate":  currentDate,
		"Historical":   historical,
	})
	if err != nil {
		panic(fmt.Sprintf("executing trend-analysis template: %v", err))
	}
	return sb.String()
}

// serializeListings renders each listing in a compact numbered form for
// embedding in a prompt. Attribute order is sorted so the prompt is
// deterministic for identical input.
func serializeListings(listings []domain.NormalizedListing) string {
	var sb strings.Builder
	for i, l := range listings {
		desc := l.Description
		if desc == "" {
			desc = "No description available."
		}
		fmt.Fprintf(&sb, "Property %d: %s\n", i+1, desc)
		if l.Price != nil {
			fmt.Fprintf(&sb, "Price: AED %s Million\n", formatMillions(*l.Price/1_000_000))
		}

		keys := make([]string, 0, len(l.Attributes))
		for k := range l.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s: %s\n", k, l.Attributes[k])
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatMillions prints a millions figure without trailing zeros, e.g.
// 2.5 -> "2.5", 3 -> "3".
func formatMillions(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
