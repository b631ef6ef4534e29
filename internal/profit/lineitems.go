package profit

import "github.com/shopspring/decimal"

// LineItem is one row of the financial summary table.
type LineItem struct {
	Concept string
	Value   decimal.Decimal
}

const (
	ConceptPurchase  = "Compra de pollos"
	ConceptFeed      = "Alimento"
	ConceptSlaughter = "Sacrificio"
	ConceptExtra     = "Gasto Extra"
	ConceptTotalCost = "Total Costos"
	ConceptRevenue   = "Ingresos por venta"
	ConceptNetProfit = "Ganancia neta"
)

// LineItems returns the summary rows in their fixed display order.
func (r Result) LineItems() []LineItem {
	return []LineItem{
		{Concept: ConceptPurchase, Value: r.CostChickens},
		{Concept: ConceptFeed, Value: r.CostFeed},
		{Concept: ConceptSlaughter, Value: r.CostSlaughter},
		{Concept: ConceptExtra, Value: r.ExtraExpense},
		{Concept: ConceptTotalCost, Value: r.TotalCost},
		{Concept: ConceptRevenue, Value: r.TotalRevenue},
		{Concept: ConceptNetProfit, Value: r.NetProfit},
	}
}

// Parameter is one labelled input value, as shown in exports.
type Parameter struct {
	Name  string
	Value decimal.Decimal
}

// Parameters returns the inputs with their display labels. Mortality is
// expressed as a percentage.
func (in Input) Parameters() []Parameter {
	return []Parameter{
		{Name: "Pollos Comprados", Value: decimal.NewFromInt(in.ChickensPurchased)},
		{Name: "Precio por Pollo (COP)", Value: in.PricePerChicken},
		{Name: "Bultos de Alimento", Value: decimal.NewFromInt(in.FeedBags)},
		{Name: "Costo por Bulto (COP)", Value: in.PricePerBag},
		{Name: "Peso Promedio por Pollo (lbs)", Value: in.AvgWeightLbs},
		{Name: "Precio por Libra (COP)", Value: in.PricePerLb},
		{Name: "Tasa de Mortalidad (%)", Value: in.MortalityPercent()},
		{Name: "Costo Sacrificio por Pollo (COP)", Value: in.SlaughterCostPerBird},
		{Name: "Gasto Extra / Eventualidad (COP)", Value: in.ExtraExpense},
	}
}
