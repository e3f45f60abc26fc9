package valuation

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// CategoryKind tags a category as a real asset category or a cash-only pseudo category.
type CategoryKind int

const (
	KindReal CategoryKind = iota
	KindCashPseudo
)

func (k CategoryKind) String() string {
	if k == KindCashPseudo {
		return "cash"
	}
	return "real"
}

// Category is either Real(name), which can be drilled into, or
// CashPseudo(name), which only ever holds account balances.
type Category struct {
	name string
	kind CategoryKind
}

// Real returns a drillable asset category.
func Real(name string) Category { return Category{name: name, kind: KindReal} }

// CashPseudo returns a category that only aggregates cash balances.
func CashPseudo(name string) Category { return Category{name: name, kind: KindCashPseudo} }

func (c Category) Name() string       { return c.name }
func (c Category) Kind() CategoryKind { return c.kind }

// Drillable reports whether selecting the category opens a type view.
func (c Category) Drillable() bool { return c.kind == KindReal }

// CashPolicy assigns each account kind's cash balance to a category.
type CashPolicy struct {
	name   string
	assign map[AccountKind]Category
}

// NewCashPolicy builds a policy. Kinds missing from assign fall back to
// SeparateCashPolicy's assignment.
func NewCashPolicy(name string, assign map[AccountKind]Category) CashPolicy {
	full := make(map[AccountKind]Category, len(AccountKinds))
	for _, k := range AccountKinds {
		if c, ok := assign[k]; ok && c.name != "" {
			full[k] = c
			continue
		}
		full[k] = separateAssignments[k]
	}
	return CashPolicy{name: name, assign: full}
}

// Name returns the policy name.
func (p CashPolicy) Name() string { return p.name }

// CategoryFor returns the category a balance of kind merges into.
func (p CashPolicy) CategoryFor(kind AccountKind) Category {
	if c, ok := p.assign[kind]; ok {
		return c
	}
	if c, ok := separateAssignments[kind]; ok {
		return c
	}
	return Real(OtherCategory)
}

// String lists the assignments in a fixed order, e.g. "separate[bank=Bank Accounts(cash) ...]".
func (p CashPolicy) String() string {
	parts := make([]string, 0, len(AccountKinds))
	for _, k := range AccountKinds {
		c := p.CategoryFor(k)
		parts = append(parts, fmt.Sprintf("%s=%s(%s)", k, c.name, c.kind))
	}
	return p.name + "[" + strings.Join(parts, " ") + "]"
}

var separateAssignments = map[AccountKind]Category{
	AccountBank:   CashPseudo("Bank Accounts"),
	AccountDemat:  CashPseudo("Demat Cash"),
	AccountCrypto: Real("Crypto"),
}

var (
	// SeparateCashPolicy shows bank and demat cash as their own non-drillable categories.
	SeparateCashPolicy = NewCashPolicy("separate", separateAssignments)

	// MergedCashPolicy folds cash into the asset category it funds.
	MergedCashPolicy = NewCashPolicy("merged", map[AccountKind]Category{
		AccountBank:   Real("Fixed Income"),
		AccountDemat:  Real("Equity"),
		AccountCrypto: Real("Crypto"),
	})
)

// PolicyByName returns one of the built-in policies.
func PolicyByName(name string) (CashPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "separate":
		return SeparateCashPolicy, true
	case "merged":
		return MergedCashPolicy, true
	}
	return CashPolicy{}, false
}

type policyEntry struct {
	Category string `toml:"category"`
	CashOnly bool   `toml:"cash_only"`
}

type policyFile struct {
	Name     string                 `toml:"name"`
	Accounts map[string]policyEntry `toml:"accounts"`
}

// ParseCashPolicy reads a policy table in TOML:
//
//	name = "household"
//	[accounts.bank]
//	category = "Fixed Income"
//	cash_only = false
func ParseCashPolicy(r io.Reader) (CashPolicy, error) {
	var f policyFile
	if err := toml.NewDecoder(r).Decode(&f); err != nil {
		return CashPolicy{}, fmt.Errorf("decoding cash policy: %w", err)
	}

	kinds := make([]string, 0, len(f.Accounts))
	for k := range f.Accounts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	assign := make(map[AccountKind]Category, len(kinds))
	for _, k := range kinds {
		kind := AccountKind(strings.ToLower(k))
		if !kind.Valid() {
			return CashPolicy{}, fmt.Errorf("cash policy: unknown account kind %q", k)
		}
		entry := f.Accounts[k]
		name := strings.TrimSpace(entry.Category)
		if name == "" {
			return CashPolicy{}, fmt.Errorf("cash policy: account kind %q has no category", k)
		}
		if entry.CashOnly {
			assign[kind] = CashPseudo(name)
		} else {
			assign[kind] = Real(name)
		}
	}

	name := f.Name
	if name == "" {
		name = "custom"
	}
	return NewCashPolicy(name, assign), nil
}

// LoadCashPolicy reads a TOML policy table from path.
func LoadCashPolicy(path string) (CashPolicy, error) {
	f, err := os.Open(path)
	if err != nil {
		return CashPolicy{}, fmt.Errorf("opening cash policy: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseCashPolicy(f)
}
