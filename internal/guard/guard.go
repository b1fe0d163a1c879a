package guard

import (
	"strings"

	"jobmarket-go/internal/session"
)

// Route is an app navigation path, for example "(auth)/login" or "(tabs)".
type Route string

// Navigation areas.
const (
	SegmentAuth = "(auth)"
	SegmentTabs = "(tabs)"
	SegmentJob  = "(job)"
)

// Well-known redirect targets.
const (
	RouteLogin      Route = "(auth)/login"
	RouteOnboarding Route = "(auth)/onboarding"
	RouteTabs       Route = "(tabs)"
)

// Segment returns the navigation area the route belongs to.
func (r Route) Segment() string {
	if i := strings.IndexByte(string(r), '/'); i >= 0 {
		return string(r)[:i]
	}
	return string(r)
}

// Action is what the host should do with the current route.
type Action int

const (
	// Hold makes no navigation decision; the session is still resolving.
	Hold Action = iota
	// Allow keeps the current route.
	Allow
	// Redirect replaces the current navigation entry with Target, so
	// back-navigation cannot return to a disallowed screen.
	Redirect
)

func (a Action) String() string {
	switch a {
	case Hold:
		return "hold"
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	}
	return "unknown"
}

// Decision is the guard's verdict for one (route, session) pair. Target is
// set only for Redirect.
type Decision struct {
	Action Action
	Target Route
}

func allow() Decision            { return Decision{Action: Allow} }
func redirect(to Route) Decision { return Decision{Action: Redirect, Target: to} }

// Decide maps the current route and session snapshot to a navigation
// decision. It is a pure function; the host re-invokes it whenever the
// route or the session changes. Precedence is fixed: unauthenticated wins
// over incomplete onboarding, which wins over the tabs and job-area
// allowance.
func Decide(current Route, snap session.Snapshot) Decision {
	if snap.Loading {
		return Decision{Action: Hold}
	}

	if snap.User == nil {
		if current.Segment() != SegmentAuth {
			return redirect(RouteLogin)
		}
		return allow()
	}

	if !snap.User.OnboardingCompleted {
		if current != RouteOnboarding {
			return redirect(RouteOnboarding)
		}
		return allow()
	}

	if current.Segment() == SegmentJob {
		return allow()
	}
	if current.Segment() != SegmentTabs {
		return redirect(RouteTabs)
	}
	return allow()
}
