package service

import (
	"dorry-backend/internal/domain"
)

// MaterialPrice is one entry of the price table.
type MaterialPrice struct {
	PricePerUnit float64
	Unit         string
}

// PriceTable maps material keys to unit prices. It is injected into
// the estimator at construction and never mutated afterwards, so tests
// can substitute their own price sets.
type PriceTable map[string]MaterialPrice

// DefaultPriceTable returns the built-in Egyptian market price table
// (EGP). In production these would come from a maintained feed; the
// static table is the only required source.
func DefaultPriceTable() PriceTable {
	return PriceTable{
		// Concrete & Foundation
		"regular_concrete":    {PricePerUnit: 1200, Unit: "m³"},
		"reinforced_concrete": {PricePerUnit: 2500, Unit: "m³"},
		"foundation_concrete": {PricePerUnit: 2200, Unit: "m³"},

		// Structural Elements
		"steel_reinforcement": {PricePerUnit: 20000, Unit: "ton"},
		"concrete_blocks":     {PricePerUnit: 35, Unit: "piece"},
		"red_brick":           {PricePerUnit: 2.5, Unit: "piece"},
		"cement":              {PricePerUnit: 1500, Unit: "ton"},

		// Finishes & Materials
		"ceramic_tiles":    {PricePerUnit: 150, Unit: "m²"},
		"porcelain_tiles":  {PricePerUnit: 350, Unit: "m²"},
		"marble":           {PricePerUnit: 1200, Unit: "m²"},
		"granite":          {PricePerUnit: 1500, Unit: "m²"},
		"paint":            {PricePerUnit: 120, Unit: "liter"},
		"gypsum_board":     {PricePerUnit: 180, Unit: "m²"},
		"wooden_doors":     {PricePerUnit: 3500, Unit: "piece"},
		"aluminum_windows": {PricePerUnit: 2800, Unit: "m²"},

		// Plumbing & Electrical
		"water_pipes":        {PricePerUnit: 75, Unit: "meter"},
		"drainage_pipes":     {PricePerUnit: 120, Unit: "meter"},
		"electrical_wiring":  {PricePerUnit: 25, Unit: "meter"},
		"electrical_outlets": {PricePerUnit: 65, Unit: "piece"},
		"light_fixtures":     {PricePerUnit: 350, Unit: "piece"},
		"water_heater":       {PricePerUnit: 4500, Unit: "piece"},
		"toilet":             {PricePerUnit: 2200, Unit: "piece"},
		"sink":               {PricePerUnit: 1800, Unit: "piece"},
	}
}

// Estimator derives a bill of quantities from a room layout using
// fixed geometric proxies.
type Estimator struct {
	prices PriceTable
}

// NewEstimator builds an estimator over the given price table.
// Overrides replace matching entries of the base table.
func NewEstimator(prices PriceTable) *Estimator {
	return &Estimator{prices: prices}
}

// MaterialPrice looks up a material. Unknown keys degrade to a
// zero-priced "unknown" entry rather than failing: a zero-cost line on
// the estimate beats aborting the whole BOQ.
func (e *Estimator) MaterialPrice(material string) MaterialPrice {
	if p, ok := e.prices[material]; ok {
		return p
	}
	return MaterialPrice{PricePerUnit: 0, Unit: "unknown"}
}

// GenerateBOQ derives the fixed line items from the layout geometry.
// Deterministic: the same (rooms, totalArea) always yields the same
// items in the same order.
func (e *Estimator) GenerateBOQ(rooms []domain.Room, totalArea float64) []domain.BOQItem {
	items := make([]domain.BOQItem, 0, 8)

	line := func(category, name, description, material string, quantity float64) {
		p := e.MaterialPrice(material)
		items = append(items, domain.BOQItem{
			Category:    category,
			Name:        name,
			Description: description,
			Unit:        p.Unit,
			Quantity:    quantity,
			UnitPrice:   p.PricePerUnit,
			TotalPrice:  p.PricePerUnit * quantity,
		})
	}

	// Foundation: 30cm slab over the built area.
	foundationVolume := totalArea * 0.3
	line(domain.CategoryConcreteFoundation, "Foundation Concrete",
		"Reinforced concrete for building foundation", "foundation_concrete", foundationVolume)

	// Columns and beams.
	structuralVolume := totalArea * 0.2
	line(domain.CategoryStructuralElements, "Structural Concrete",
		"Reinforced concrete for columns and beams", "reinforced_concrete", structuralVolume)

	// Steel at 10% of total concrete volume, in tons.
	steelQuantity := (foundationVolume + structuralVolume) * 0.1
	line(domain.CategoryStructuralElements, "Steel Reinforcement",
		"Steel bars for concrete reinforcement", "steel_reinforcement", steelQuantity)

	// Wall area estimated as 3x floor area, 50 bricks per m².
	wallArea := totalArea * 3
	line(domain.CategoryStructuralElements, "Brick Walls",
		"Red brick walls with mortar", "red_brick", wallArea*50)

	line(domain.CategoryFinishesMaterials, "Ceramic Floor Tiles",
		"Ceramic tiles for flooring", "ceramic_tiles", totalArea)

	// 0.25 liters of paint per m² of wall.
	line(domain.CategoryFinishesMaterials, "Wall Paint",
		"Interior wall paint", "paint", wallArea*0.25)

	// Never price zero fixtures: a layout without a bathroom still
	// gets one toilet line.
	bathroomCount := 0
	for _, room := range rooms {
		if room.Type == domain.RoomTypeBathroom {
			bathroomCount++
		}
	}
	if bathroomCount == 0 {
		bathroomCount = 1
	}

	line(domain.CategoryFinishesMaterials, "Toilet Fixtures",
		"Complete toilet fixtures", "toilet", float64(bathroomCount))

	// +1 sink for the kitchen.
	line(domain.CategoryFinishesMaterials, "Sink Fixtures",
		"Bathroom and kitchen sinks", "sink", float64(bathroomCount+1))

	return items
}

// TotalCost sums line totals exactly; rounding is a display concern.
func (e *Estimator) TotalCost(items []domain.BOQItem) float64 {
	var total float64
	for _, item := range items {
		total += item.TotalPrice
	}
	return total
}

// GroupByCategory accumulates line totals per category. Categories
// with no contributing items are absent from the result.
func (e *Estimator) GroupByCategory(items []domain.BOQItem) map[string]float64 {
	categories := make(map[string]float64)
	for _, item := range items {
		categories[item.Category] += item.TotalPrice
	}
	return categories
}
