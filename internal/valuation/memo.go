package valuation

import (
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

// Fingerprint hashes every field of in that affects Run's output.
func Fingerprint(in Inputs) uint64 {
	d := xxhash.New()
	w := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.WriteString("\x1f")
	}
	dec := func(v decimal.Decimal) { w(v.String()) }
	opt := func(s *string) {
		if s == nil {
			w("-")
			return
		}
		w("+" + *s)
	}

	w(in.Scope.String())
	w(string(in.displayCurrency()))
	w(in.policy().String())
	w(string(in.Sort))
	dec(in.Rate.Value())
	w(strconv.FormatInt(in.Rate.AsOf().UnixNano(), 10))

	w("instances:" + strconv.Itoa(len(in.Instances)))
	for _, inst := range in.Instances {
		w(inst.ID)
		w(inst.Symbol)
		w(inst.Name)
		w(inst.AssetType)
		w(string(inst.Currency))
		dec(inst.Quantity)
		dec(inst.PurchasePrice)
		dec(inst.CurrentPrice)
		dec(inst.TotalInvested)
		dec(inst.CurrentValue)
		if inst.Account != nil {
			w("+" + string(inst.Account.Kind))
			w(inst.Account.ID)
		} else {
			w("-")
		}
		opt(inst.PortfolioID)
		w(strconv.FormatBool(inst.UpdateFailed))
		w(inst.Error)
		if inst.LastUpdate != nil {
			w(strconv.FormatInt(inst.LastUpdate.UnixNano(), 10))
		} else {
			w("-")
		}
	}

	w("balances:" + strconv.Itoa(len(in.Balances)))
	for _, b := range in.Balances {
		w(b.AccountID)
		w(string(b.Kind))
		w(b.Name)
		dec(b.Balance)
		w(string(b.Currency))
		w(strconv.FormatBool(b.IsActive))
		opt(b.PortfolioID)
	}

	defs := in.Taxonomy.Defs()
	w("taxonomy:" + strconv.Itoa(len(defs)))
	for _, t := range defs {
		w(t.Name)
		w(t.Category)
		w(t.DisplayLabel)
	}
	return d.Sum64()
}

// Memo caches Run results by fingerprint, evicting the oldest entry once
// full. It is safe for concurrent use.
type Memo struct {
	mu      sync.Mutex
	max     int
	entries map[uint64]*Result
	order   []uint64
}

// NewMemo returns a memo holding at most max results. max <= 0 disables caching.
func NewMemo(max int) *Memo {
	return &Memo{max: max, entries: make(map[uint64]*Result)}
}

// Run returns the cached result for in, computing it on a miss. hit reports
// whether the result came from the cache.
func (m *Memo) Run(in Inputs) (res *Result, hit bool, err error) {
	if m == nil || m.max <= 0 {
		res, err = Run(in)
		return res, false, err
	}

	key := Fingerprint(in)
	m.mu.Lock()
	if r, ok := m.entries[key]; ok {
		m.mu.Unlock()
		return r, true, nil
	}
	m.mu.Unlock()

	res, err = Run(in)
	if err != nil {
		return nil, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok {
		m.entries[key] = res
		m.order = append(m.order, key)
		for len(m.order) > m.max {
			delete(m.entries, m.order[0])
			m.order = m.order[1:]
		}
	}
	return res, false, nil
}

// Len returns the number of cached results.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
