package labeling

// Subject carries the fields the failure rules inspect, already derived by
// the normalizer.
type Subject struct {
	Occupation    string
	SourceOfFunds string
	IDVerified    bool
	CrossBorder   bool
}

// Rule is one row of the failure rule table. Every set condition must hold
// for the rule to match; zero-valued fields match anything.
type Rule struct {
	Name               string
	Reason             string
	RequireUnverified  bool
	RequireCrossBorder bool
	Occupation         string
	SourceOfFunds      string
}

func (r Rule) matches(s Subject) bool {
	if r.RequireUnverified && s.IDVerified {
		return false
	}
	if r.RequireCrossBorder && !s.CrossBorder {
		return false
	}
	if r.Occupation != "" && r.Occupation != s.Occupation {
		return false
	}
	if r.SourceOfFunds != "" && r.SourceOfFunds != s.SourceOfFunds {
		return false
	}
	return true
}

// DefaultRules returns the fixed business rule set. Order is the priority
// order: the first matching rule decides the outcome and supplies the reason.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:              "unverified_cash",
			Reason:            "unverified sender funding with cash",
			RequireUnverified: true,
			SourceOfFunds:     "Cash",
		},
		{
			Name:               "cross_border_cash",
			Reason:             "cross-border transfer funded with cash",
			RequireCrossBorder: true,
			SourceOfFunds:      "Cash",
		},
		{
			Name:              "unverified_worker",
			Reason:            "unverified manual worker",
			RequireUnverified: true,
			Occupation:        "worker",
		},
	}
}

// Labeler assigns ground-truth failure labels by scanning a rule table in
// priority order. It is deterministic: a subject always produces the same
// label and reason.
type Labeler struct {
	rules []Rule
}

func NewLabeler(rules []Rule) *Labeler {
	return &Labeler{rules: rules}
}

// Label returns whether the payment fails and the name and reason of the
// rule that fired. No rule matching means the payment succeeds.
func (l *Labeler) Label(s Subject) (failed bool, rule string, reason string) {
	for _, r := range l.rules {
		if r.matches(s) {
			return true, r.Name, r.Reason
		}
	}
	return false, "", ""
}
