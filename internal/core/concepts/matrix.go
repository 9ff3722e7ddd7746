package concepts

// MatrixEntry is a curated prior for a known cause-effect concept pair.
// Multiplier amplifies the scored strength of matching edges, Polarity
// encodes the expected direction, and PathLabel names the transmission
// channel for reasoning tags.
type MatrixEntry struct {
	Multiplier float64
	Polarity   float64
	PathLabel  string
}

type conceptPair struct {
	head string
	tail string
}

// reasoningMatrix encodes standard macro transmission channels. Pairs not
// listed here fall back to a neutral 1.0 multiplier.
var reasoningMatrix = map[conceptPair]MatrixEntry{
	{"policy_rate", "discount_rate"}:            {1.3, 1, "policy_to_discount_channel"},
	{"policy_rate", "bond_yield"}:               {1.3, 1, "rates_transmission"},
	{"policy_rate", "inflation"}:                {1.15, -1, "monetary_tightening"},
	{"policy_rate", "bank_lending"}:             {1.2, -1, "credit_channel"},
	{"policy_rate", "housing"}:                  {1.15, -1, "mortgage_channel"},
	{"policy_rate", "dollar"}:                   {1.2, 1, "rate_differential"},
	{"discount_rate", "equity_valuation"}:       {1.25, -1, "dcf_repricing"},
	{"discount_rate", "tech_valuation"}:         {1.3, -1, "duration_sensitivity"},
	{"bond_yield", "discount_rate"}:             {1.25, 1, "risk_free_anchor"},
	{"bond_yield", "equity_valuation"}:          {1.2, -1, "equity_risk_premium"},
	{"bond_yield", "housing"}:                   {1.15, -1, "mortgage_rates"},
	{"inflation", "policy_rate"}:                {1.3, 1, "reaction_function"},
	{"inflation", "bond_yield"}:                 {1.2, 1, "inflation_premium"},
	{"inflation", "consumer_spending"}:          {1.1, -1, "real_income_squeeze"},
	{"inflation", "wage_growth"}:                {1.1, 1, "cost_of_living_pressure"},
	{"oil_price", "inflation"}:                  {1.25, 1, "energy_passthrough"},
	{"oil_price", "consumer_spending"}:          {1.1, -1, "fuel_cost_drag"},
	{"supply_chain", "inflation"}:               {1.2, 1, "input_cost_passthrough"},
	{"dollar", "inflation"}:                     {1.1, -1, "import_price_channel"},
	{"dollar", "corporate_earnings"}:            {1.1, -1, "translation_headwind"},
	{"liquidity", "risk_appetite"}:              {1.2, 1, "liquidity_tide"},
	{"liquidity", "equity_valuation"}:           {1.15, 1, "flow_support"},
	{"risk_appetite", "credit_spread"}:          {1.15, -1, "risk_compression"},
	{"risk_appetite", "equity_valuation"}:       {1.15, 1, "sentiment_bid"},
	{"credit_spread", "bank_lending"}:           {1.1, -1, "funding_cost_drag"},
	{"bank_lending", "gdp_growth"}:              {1.15, 1, "credit_impulse"},
	{"consumer_spending", "gdp_growth"}:         {1.2, 1, "demand_engine"},
	{"consumer_spending", "corporate_earnings"}: {1.15, 1, "topline_demand"},
	{"unemployment", "consumer_spending"}:       {1.15, -1, "income_channel"},
	{"unemployment", "wage_growth"}:             {1.1, -1, "labor_slack"},
	{"wage_growth", "inflation"}:                {1.15, 1, "wage_price_loop"},
	{"wage_growth", "corporate_earnings"}:       {1.05, -1, "margin_squeeze"},
	{"gdp_growth", "corporate_earnings"}:        {1.2, 1, "cycle_beta"},
	{"gdp_growth", "unemployment"}:              {1.15, -1, "okun_effect"},
	{"corporate_earnings", "equity_valuation"}:  {1.2, 1, "earnings_driver"},
	{"recession_risk", "risk_appetite"}:         {1.2, -1, "flight_to_safety"},
	{"recession_risk", "corporate_earnings"}:    {1.15, -1, "demand_destruction"},
	{"housing", "consumer_spending"}:            {1.1, 1, "housing_wealth_effect"},
	{"equity_valuation", "consumer_spending"}:   {1.05, 1, "equity_wealth_effect"},
}

// BestMatrixEntry scans every (head concept, tail concept) pair and returns
// the matrix entry with the largest multiplier. Both inputs must be sorted;
// ties then resolve to the first pair in lexicographic order, keeping the
// lookup deterministic.
func BestMatrixEntry(headConcepts, tailConcepts []string) (MatrixEntry, bool) {
	var best MatrixEntry
	found := false
	for _, head := range headConcepts {
		for _, tail := range tailConcepts {
			entry, ok := reasoningMatrix[conceptPair{head, tail}]
			if !ok {
				continue
			}
			if !found || entry.Multiplier > best.Multiplier {
				best = entry
				found = true
			}
		}
	}
	return best, found
}
