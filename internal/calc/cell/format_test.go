package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsOrderAndLabels(t *testing.T) {
	m := Metrics(Result{CapacityAh: 9.72, GravimetricWhKg: 489.179, VolumetricWhL: 0})

	assert.Len(t, m, 3)
	assert.Equal(t, "Capacity (Ah)", m[0].Label)
	assert.Equal(t, "Gravimetric Energy Density (Wh/kg)", m[1].Label)
	assert.Equal(t, "Volumetric Energy Density (Wh/l)", m[2].Label)
	assert.Equal(t, []string{"9.72", "489.18", "0.00"}, []string{m[0].Text, m[1].Text, m[2].Text})
	assert.Equal(t, 489.179, m[1].Value)
}

func TestFixed2(t *testing.T) {
	for in, want := range map[float64]string{
		0:         "0.00",
		1:         "1.00",
		2.345678:  "2.35",
		1234.5:    "1234.50",
		0.0049:    "0.00",
		915.27535: "915.28",
	} {
		assert.Equal(t, want, Fixed2(in), "%v", in)
	}
}
