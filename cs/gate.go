package cs

// Gate is a named list of polynomials, each required to evaluate to zero at
// every row where the gate's selector is enabled. A gate with a nil
// selector is checked at every row.
type Gate struct {
	Name     string
	Selector *Selector
	Polys    []Expression
}

// LookupPair binds an input expression to the table column its evaluations
// must be found in.
type LookupPair struct {
	Input Expression
	Table Column
}

// Lookup is a named lookup argument. At every row where the selector is
// enabled, the tuple of evaluated inputs must equal some loaded row of the
// table columns.
type Lookup struct {
	Name     string
	Selector Selector
	Pairs    []LookupPair
}
