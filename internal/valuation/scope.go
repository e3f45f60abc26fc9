package valuation

// Scope selects either every portfolio or a single one.
type Scope struct {
	portfolioID string
	single      bool
}

// AllPortfolios returns the scope covering every record.
func AllPortfolios() Scope { return Scope{} }

// SinglePortfolio returns the scope restricted to one portfolio.
func SinglePortfolio(id string) Scope { return Scope{portfolioID: id, single: true} }

// ScopeFor returns SinglePortfolio(*id) or AllPortfolios when id is nil or empty.
func ScopeFor(id *string) Scope {
	if id == nil || *id == "" {
		return AllPortfolios()
	}
	return SinglePortfolio(*id)
}

// IsAll reports whether the scope covers every portfolio.
func (s Scope) IsAll() bool { return !s.single }

// PortfolioID returns the selected portfolio, if any.
func (s Scope) PortfolioID() (string, bool) { return s.portfolioID, s.single }

// String returns "all" or "portfolio:<id>".
func (s Scope) String() string {
	if !s.single {
		return "all"
	}
	return "portfolio:" + s.portfolioID
}

func (s Scope) includes(portfolioID *string) bool {
	if !s.single {
		return true
	}
	return portfolioID != nil && *portfolioID == s.portfolioID
}

// FilterScope returns the instances and balances that fall inside scope.
// The returned slices are fresh copies; an unknown portfolio yields empty results.
func FilterScope(instances []AssetInstance, balances []AccountBalance, scope Scope) ([]AssetInstance, []AccountBalance) {
	outInstances := make([]AssetInstance, 0, len(instances))
	for _, inst := range instances {
		if scope.includes(inst.PortfolioID) {
			outInstances = append(outInstances, inst)
		}
	}

	outBalances := make([]AccountBalance, 0, len(balances))
	for _, b := range balances {
		if scope.includes(b.PortfolioID) {
			outBalances = append(outBalances, b)
		}
	}
	return outInstances, outBalances
}
