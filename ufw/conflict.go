package ufw

type RejectedRule struct {
	Rule   Rule
	Reason string
}

const ReasonPortInUse = "port already in use"

// Resolve partitions freshly parsed candidates into an accepted subset and
// the rejected remainder. A candidate is rejected when its identity key
// conflicts with an existing rule or with an earlier accepted candidate of
// the same submission; the first occurrence wins and the rest of the line
// still goes through.
func Resolve(existing, candidates []Rule) (accepted []Rule, rejected []RejectedRule) {
	for _, cand := range candidates {
		if conflictsWith(existing, cand) || conflictsWith(accepted, cand) {
			rejected = append(rejected, RejectedRule{Rule: cand, Reason: ReasonPortInUse})
			continue
		}
		accepted = append(accepted, cand)
	}
	return accepted, rejected
}

func conflictsWith(rules []Rule, cand Rule) bool {
	for _, r := range rules {
		if r.Conflicts(cand) {
			return true
		}
	}
	return false
}
