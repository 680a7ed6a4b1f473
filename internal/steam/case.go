package steam

import "fmt"

// Case is a supported input pair. Cases are declared in dispatch priority
// order; Classify returns the first one whose two properties are set.
type Case int

const (
	CasePT Case = iota
	CasePx
	CasePv
	CasePh
	CasePs
	CaseTx
	CaseTv
	CaseTh
	CaseTs
	CaseXV
	CaseXH
	CaseXS
	CaseVH
	CaseVS
	CaseHS
	numCases
)

var casePairs = [numCases][2]Property{
	CasePT: {Pressure, Temperature},
	CasePx: {Pressure, Quality},
	CasePv: {Pressure, Volume},
	CasePh: {Pressure, Enthalpy},
	CasePs: {Pressure, Entropy},
	CaseTx: {Temperature, Quality},
	CaseTv: {Temperature, Volume},
	CaseTh: {Temperature, Enthalpy},
	CaseTs: {Temperature, Entropy},
	CaseXV: {Quality, Volume},
	CaseXH: {Quality, Enthalpy},
	CaseXS: {Quality, Entropy},
	CaseVH: {Volume, Enthalpy},
	CaseVS: {Volume, Entropy},
	CaseHS: {Enthalpy, Entropy},
}

// Cases returns every case in priority order.
func Cases() []Case {
	out := make([]Case, numCases)
	for i := range out {
		out[i] = Case(i)
	}
	return out
}

// Pair returns the two properties that define the case.
func (c Case) Pair() (Property, Property) {
	return casePairs[c][0], casePairs[c][1]
}

// String returns the pair tag, e.g. "Px" or "hs".
func (c Case) String() string {
	if c < 0 || c >= numCases {
		return fmt.Sprintf("Case(%d)", int(c))
	}
	a, b := c.Pair()
	return a.String() + b.String()
}

func (c Case) uses(p Property) bool {
	a, b := c.Pair()
	return p == a || p == b
}

// Classify picks the case for a set of known properties, indexed by
// Property.
func Classify(known [numProperties]bool) (Case, error) {
	for c := Case(0); c < numCases; c++ {
		a, b := c.Pair()
		if known[a] && known[b] {
			return c, nil
		}
	}
	var have []Property
	for p, ok := range known {
		if ok {
			have = append(have, Property(p))
		}
	}
	return 0, &InsufficientInputError{Known: have}
}
