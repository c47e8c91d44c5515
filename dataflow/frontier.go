package dataflow

import "github.com/joeycumines/go-differential/version"

// combineTwoFrontiers is the shared "both inputs of a binary operator"
// frontier rule used by concat and join: the output frontier is the meet
// (union, minimized) of the two input frontiers - a version is closed on
// the combined frontier only once every element of both input frontiers is
// past it, which for an asymmetric pair of frontiers means the combined
// frontier can still hold back on the side that is further behind (e.g.
// meet({2}, {3}) == {2}: a delta newly arriving on the {2} side can still
// pair against history still open on the {3} side at version 2, so 2 is
// not yet closed downstream).
//
// A side that has not yet reported any frontier contributes no constraint
// (as if it were the empty antichain, which is the identity element for
// this meet): the combined result is simply the other side's frontier.
// This is what lets an iterate subgraph's feedback path - silent until the
// loop body has produced its first round - bootstrap from the ingress
// side's frontier alone, rather than deadlock waiting for a message that
// will never arrive before the loop itself starts running.
//
// A side that has reported the empty (terminal) antichain is, dually,
// never a further constraint: the combined result is the other side's
// frontier, since "closed on this input" is trivially always true once
// it's terminally empty.
func combineTwoFrontiers(seenA bool, a version.Antichain, seenB bool, b version.Antichain) (version.Antichain, bool) {
	switch {
	case !seenA && !seenB:
		return version.Antichain{}, false
	case seenA && !seenB:
		return a, true
	case !seenA && seenB:
		return b, true
	case a.IsEmpty():
		return b, true
	case b.IsEmpty():
		return a, true
	default:
		return version.Meet(a, b), true
	}
}
