package cell

import "github.com/shopspring/decimal"

const (
	LabelCapacity    = "Capacity (Ah)"
	LabelGravimetric = "Gravimetric Energy Density (Wh/kg)"
	LabelVolumetric  = "Volumetric Energy Density (Wh/l)"
)

// Metric is one displayable output value.
type Metric struct {
	Label string  `json:"label" csv:"metric"`
	Value float64 `json:"value" csv:"value"`
	Text  string  `json:"text" csv:"-"`
}

// Metrics lists the result in chart order with values fixed to two decimals.
func Metrics(r Result) []Metric {
	return []Metric{
		{Label: LabelCapacity, Value: r.CapacityAh, Text: Fixed2(r.CapacityAh)},
		{Label: LabelGravimetric, Value: r.GravimetricWhKg, Text: Fixed2(r.GravimetricWhKg)},
		{Label: LabelVolumetric, Value: r.VolumetricWhL, Text: Fixed2(r.VolumetricWhL)},
	}
}

func Fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
