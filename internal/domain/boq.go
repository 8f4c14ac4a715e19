package domain

import "time"

// BOQ line item categories. The taxonomy is fixed; groupings absent
// from an estimate simply do not appear in the category summary.
const (
	CategoryConcreteFoundation = "Concrete & Foundation"
	CategoryStructuralElements = "Structural Elements"
	CategoryFinishesMaterials  = "Finishes & Materials"
)

// BOQItem is one priced line of a bill of quantities.
// TotalPrice = Quantity * UnitPrice holds exactly; no rounding happens
// inside the estimator.
type BOQItem struct {
	Category    string  `json:"category"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"` // m², m³, ton, piece, liter
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// BOQ is the single live cost estimate for a project (boqs table).
// Unlike designs it is updated in place: at most one row per project.
type BOQ struct {
	ID        int       `json:"id" db:"id"`
	ProjectID int       `json:"projectId" db:"project_id"`
	Items     []BOQItem `json:"items" db:"items"` // JSONB
	TotalCost float64   `json:"totalCost" db:"total_cost"` // EGP
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
