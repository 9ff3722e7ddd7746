package concepts

import "sort"

// conceptAliases maps each macro-financial concept to the normalized surface
// forms that should resolve to it. Aliases are matched as substrings of a
// normalized node name, so they must themselves be lowercase and
// space-separated. The matcher is deliberately permissive: noisy extracted
// names like "US CPI (YoY)" should still land on a concept.
var conceptAliases = map[string][]string{
	"bank_lending": {
		"bank lending", "bank credit", "loan growth", "credit growth",
		"lending standards", "credit conditions",
	},
	"bond_yield": {
		"bond yield", "bond yields", "treasury yield", "treasury yields",
		"long rates", "10 year", "10y yield", "term premium",
	},
	"consumer_spending": {
		"consumer spending", "consumption", "retail sales",
		"household spending", "consumer demand",
	},
	"corporate_earnings": {
		"corporate earnings", "earnings", "corporate profits",
		"profit margins", "eps",
	},
	"credit_spread": {
		"credit spread", "credit spreads", "high yield spread",
		"corporate spreads", "spread widening",
	},
	"discount_rate": {
		"discount rate", "discount rates", "discount factor",
		"cost of capital", "wacc",
	},
	"dollar": {
		"dollar", "usd", "dxy", "greenback", "dollar index",
	},
	"equity_valuation": {
		"equity valuation", "equity valuations", "stock valuation",
		"stock market", "equity prices", "equity multiples", "p e multiple",
	},
	"gdp_growth": {
		"gdp", "economic growth", "output growth", "economic activity",
	},
	"housing": {
		"housing", "home prices", "house prices", "mortgage", "real estate",
		"residential construction",
	},
	"inflation": {
		"inflation", "cpi", "pce", "price level", "price pressures",
		"core prices",
	},
	"liquidity": {
		"liquidity", "money supply", "m2", "quantitative easing", "qe",
		"balance sheet runoff", "reserves",
	},
	"oil_price": {
		"oil price", "oil prices", "crude", "wti", "brent", "energy prices",
	},
	"policy_rate": {
		"policy rate", "fed funds", "federal funds", "interest rate",
		"interest rates", "rate hike", "rate hikes", "rate cut", "rate cuts",
		"fomc", "base rate",
	},
	"recession_risk": {
		"recession", "downturn", "contraction", "hard landing",
	},
	"risk_appetite": {
		"risk appetite", "risk sentiment", "risk on", "risk off", "vix",
		"volatility",
	},
	"supply_chain": {
		"supply chain", "supply chains", "shipping costs", "freight",
		"input costs", "supply disruption",
	},
	"tech_valuation": {
		"tech valuation", "tech valuations", "tech stocks", "growth stocks",
		"nasdaq",
	},
	"unemployment": {
		"unemployment", "jobless", "labor market", "payrolls", "layoffs",
	},
	"wage_growth": {
		"wage growth", "wages", "labor costs", "pay growth",
	},
}

// conceptIDs holds the taxonomy keys in sorted order so every scan of the
// taxonomy is deterministic.
var conceptIDs []string

func init() {
	conceptIDs = make([]string, 0, len(conceptAliases))
	for id := range conceptAliases {
		conceptIDs = append(conceptIDs, id)
	}
	sort.Strings(conceptIDs)
}
