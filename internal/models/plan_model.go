package models

// Plan is a subscription tier. The catalog is fixed at process start and
// plans are only referenced by ID from user documents, never persisted.
type Plan struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Responses  int64  `json:"responses"`
	PriceCents int64  `json:"priceCents"`
}

// Plan IDs stored in user documents.
const (
	PlanFree     = "free"
	PlanPro      = "pro"
	PlanBusiness = "business"
)

var planCatalog = map[string]Plan{
	PlanFree:     {ID: PlanFree, Name: "Free Tier", Responses: 50, PriceCents: 0},
	PlanPro:      {ID: PlanPro, Name: "Pro Plan", Responses: 300, PriceCents: 499},
	PlanBusiness: {ID: PlanBusiness, Name: "Business Plan", Responses: 2000, PriceCents: 1599},
}

// PlanByID looks up a plan in the catalog.
func PlanByID(id string) (Plan, bool) {
	plan, ok := planCatalog[id]
	return plan, ok
}

// FreePlan returns the tier new users are created on.
func FreePlan() Plan {
	return planCatalog[PlanFree]
}
