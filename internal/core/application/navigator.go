package application

import (
	"context"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Route names of the built-in table.
const (
	RouteOnboarding  = "onboarding"
	RouteAccountList = "account-list"
	RouteAccount     = "account"
	RouteSend        = "send"
	RouteAddressBook = "address-book"
	RouteSettings    = "settings"
)

// Paths of the built-in table.
const (
	PathOnboarding  = "/onboarding"
	PathAccountList = "/accounts"
	PathAccount     = "/account/:address"
	PathSend        = "/account/:address/send"
	PathAddressBook = "/contacts"
	PathSettings    = "/settings"
)

// Params are the values bound to the pattern segments of a resolved route.
type Params map[string]string

// NavContext gives route hooks read access to the application state.
type NavContext struct {
	Ctx       context.Context
	WalletSvc WalletService
	Params    Params
}

// Hook is evaluated while a route resolves. Returning a non-empty path
// short-circuits the resolution into a redirect.
type Hook func(nav NavContext) (redirect string, err error)

// Route is one entry of the navigation table.
type Route struct {
	Name    string
	Pattern string
	// OnEnter runs when the route is entered from a different route.
	OnEnter Hook
	// OnParamsChange runs when the same route re-resolves with different
	// params.
	OnParamsChange Hook
	// accountScoped routes are subject to the zero-accounts guard.
	accountScoped bool
}

// Transition is the outcome of resolving a path.
type Transition struct {
	// Route and Params are set on a render.
	Route  *Route
	Params Params
	// RedirectTo is the target path of a redirect, empty on a render.
	RedirectTo string
}

// IsRedirect reports whether the transition is a redirect.
func (t Transition) IsRedirect() bool {
	return len(t.RedirectTo) > 0
}

func render(route *Route, params Params) Transition {
	return Transition{Route: route, Params: params}
}

func redirect(path string) Transition {
	return Transition{RedirectTo: path}
}

// Navigator resolves paths against an explicit route table, evaluating
// guards and route hooks. It keeps track of the current route to tell
// entering apart from a params-only change.
type Navigator struct {
	walletSvc WalletService
	routes    []*Route

	lock          *sync.Mutex
	currentRoute  string
	currentParams Params
}

// NewNavigator is a constructor function for Navigator with the built-in
// route table.
func NewNavigator(walletSvc WalletService) *Navigator {
	n := &Navigator{
		walletSvc: walletSvc,
		lock:      &sync.Mutex{},
	}
	n.routes = []*Route{
		{Name: RouteOnboarding, Pattern: PathOnboarding},
		{Name: RouteAccountList, Pattern: PathAccountList, accountScoped: true},
		withAccountParam(&Route{
			Name:          RouteAccount,
			Pattern:       PathAccount,
			OnEnter:       selectAndRefresh,
			accountScoped: true,
		}),
		withAccountParam(&Route{
			Name:          RouteSend,
			Pattern:       PathSend,
			OnEnter:       selectAndRefresh,
			accountScoped: true,
		}),
		{Name: RouteAddressBook, Pattern: PathAddressBook},
		{Name: RouteSettings, Pattern: PathSettings},
	}
	// bare variants redirecting to the selected account, one per
	// account-parameterized route
	n.routes = append(n.routes,
		bareVariant(RouteAccount, "/account", PathAccount),
		bareVariant(RouteSend, "/send", PathSend),
	)

	return n
}

// Resolve matches the path against the route table and evaluates the guard
// and the route hooks. The returned transition is either a render of the
// matched route or a redirect the caller must resolve again.
func (n *Navigator) Resolve(ctx context.Context, path string) (Transition, error) {
	route, params := n.match(path)
	if route == nil {
		return redirect(PathAccountList), nil
	}

	// the zero-accounts guard runs before any route hook
	if route.accountScoped {
		accounts, err := n.walletSvc.ListAccounts(ctx)
		if err != nil {
			return Transition{}, err
		}
		if len(accounts) == 0 {
			log.WithField("path", path).Debug("no accounts, redirecting to onboarding")
			return redirect(PathOnboarding), nil
		}
	}

	nav := NavContext{Ctx: ctx, WalletSvc: n.walletSvc, Params: params}

	hook := route.OnEnter
	n.lock.Lock()
	if n.currentRoute == route.Name {
		hook = nil
		if route.OnParamsChange != nil && !sameParams(n.currentParams, params) {
			hook = route.OnParamsChange
		}
	}
	n.lock.Unlock()

	if hook != nil {
		target, err := hook(nav)
		if err != nil {
			return Transition{}, err
		}
		if len(target) > 0 {
			return redirect(target), nil
		}
	}

	n.lock.Lock()
	n.currentRoute = route.Name
	n.currentParams = params
	n.lock.Unlock()

	return render(route, params), nil
}

// ResolveToRender follows redirects until a route renders. A cycle or an
// overly long chain resolves to the account list.
func (n *Navigator) ResolveToRender(ctx context.Context, path string) (Transition, error) {
	const maxRedirects = 8
	for i := 0; i < maxRedirects; i++ {
		t, err := n.Resolve(ctx, path)
		if err != nil {
			return Transition{}, err
		}
		if !t.IsRedirect() {
			return t, nil
		}
		path = t.RedirectTo
	}
	return n.Resolve(ctx, PathAccountList)
}

func (n *Navigator) match(path string) (*Route, Params) {
	for _, route := range n.routes {
		if params, ok := matchPattern(route.Pattern, path); ok {
			return route, params
		}
	}
	return nil, nil
}

func matchPattern(pattern, path string) (Params, bool) {
	patternSegs := splitPath(pattern)
	pathSegs := splitPath(path)
	if len(patternSegs) != len(pathSegs) {
		return nil, false
	}

	params := Params{}
	for i, seg := range patternSegs {
		if strings.HasPrefix(seg, ":") {
			params[seg[1:]] = pathSegs[i]
			continue
		}
		if seg != pathSegs[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if len(trimmed) <= 0 {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func sameParams(a, b Params) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// withAccountParam wires the shared params-change behavior of every
// account-parameterized route: a changed address segment selects the new
// account and kicks a refresh, same as entering the route.
func withAccountParam(route *Route) *Route {
	route.OnParamsChange = route.OnEnter
	return route
}

// bareVariant builds the parameterless companion of an account route,
// redirecting to the full path with the selected account substituted in.
func bareVariant(name, barePath, fullPattern string) *Route {
	return &Route{
		Name:          name + "-bare",
		Pattern:       barePath,
		accountScoped: true,
		OnEnter: func(nav NavContext) (string, error) {
			selected, err := nav.WalletSvc.SelectedAccount(nav.Ctx)
			if err != nil {
				return "", err
			}
			if selected == nil {
				return PathAccountList, nil
			}
			return strings.Replace(fullPattern, ":address", selected.Address, 1), nil
		},
	}
}

// selectAndRefresh is the OnEnter hook of account-parameterized routes.
func selectAndRefresh(nav NavContext) (string, error) {
	address := nav.Params["address"]
	if err := nav.WalletSvc.SelectAccount(nav.Ctx, address); err != nil {
		return "", err
	}
	if err := nav.WalletSvc.RefreshAccount(nav.Ctx, address); err != nil {
		// refresh failures stay observable on the account, navigation
		// still lands on the page
		log.WithError(err).WithField("address", address).Warn("account refresh failed")
	}
	return "", nil
}
