package domain

import "strings"

// RouteKind is the outcome of classifying a request path.
type RouteKind string

const (
	RoutePublic    RouteKind = "public"
	RouteProtected RouteKind = "protected"
	RouteUnmatched RouteKind = "unmatched"
)

// PartitionRule declares one partition's slice of the URL space: the path
// prefixes it protects, its login page, and the landing page a successful
// login redirects to.
type PartitionRule struct {
	Role        Role
	Prefixes    []string
	LoginPage   string
	LandingPage string
}

// RouteTable resolves request paths to partitions. Rules are evaluated in
// declaration order; the first partition whose prefix list matches wins, so
// an admin-view path nested under a customer prefix is still admin-protected.
type RouteTable struct {
	rules  []PartitionRule
	public []string
}

// Classification is the result of RouteTable.Classify.
type Classification struct {
	Kind RouteKind
	Role Role // set only when Kind == RouteProtected
}

// publicPrefixes are reachable without a session under every partition:
// signup and login endpoints, static assets, and operational probes.
var publicPrefixes = []string{
	"/req/signup",
	"/req/adminsignup",
	"/req/staffsignup",
	"/login",
	"/adminlogin",
	"/stafflogin",
	"/logout",
	"/css",
	"/js",
	"/images",
	"/health",
	"/metrics",
}

// DefaultRouteTable mirrors the declared filter-chain ordering: admin rules
// first, then user, then staff.
func DefaultRouteTable() *RouteTable {
	return &RouteTable{
		public: publicPrefixes,
		rules: []PartitionRule{
			{
				Role: RoleAdmin,
				Prefixes: []string{
					"/admin",
					"/adminadd",
					"/adminaddlunch",
					"/adminadddinner",
					"/adminadddesserts",
					"/adminadddrink",
					"/adminaddgallery",
					"/customerinterfaceorderfood/adminvieworderfood",
					"/customerinterface/adminviewtablereservations",
					"/customerfeedback/adminviewfeedback",
				},
				LoginPage:   "/adminlogin",
				LandingPage: "/admin",
			},
			{
				Role: RoleUser,
				Prefixes: []string{
					"/index",
					"/customerinterface",
					"/customerfeedback",
					"/customerviewmenu",
					"/customerinterfaceorderfood",
					"/customerpayment",
				},
				LoginPage:   "/login",
				LandingPage: "/index",
			},
			{
				Role: RoleStaff,
				Prefixes: []string{
					"/staffdashboard",
				},
				LoginPage:   "/stafflogin",
				LandingPage: "/staffdashboard/staff",
			},
		},
	}
}

// Rules returns the partition rules in evaluation order.
func (t *RouteTable) Rules() []PartitionRule {
	return t.rules
}

// Rule returns the rule for a partition.
func (t *RouteTable) Rule(role Role) (PartitionRule, bool) {
	for _, r := range t.rules {
		if r.Role == role {
			return r, true
		}
	}
	return PartitionRule{}, false
}

// Classify maps a request path to exactly one of public, protected (with the
// owning partition), or unmatched. Unmatched paths are rejected by the gate.
func (t *RouteTable) Classify(path string) Classification {
	for _, p := range t.public {
		if matchPrefix(path, p) {
			return Classification{Kind: RoutePublic}
		}
	}
	for _, rule := range t.rules {
		for _, p := range rule.Prefixes {
			if matchPrefix(path, p) {
				return Classification{Kind: RouteProtected, Role: rule.Role}
			}
		}
	}
	return Classification{Kind: RouteUnmatched}
}

// matchPrefix matches path against a declared prefix on segment boundaries:
// "/admin" covers "/admin" and "/admin/orders" but not "/administrator".
func matchPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}
