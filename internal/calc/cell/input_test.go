package cell

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultInputIsValid(t *testing.T) {
	require.NoError(t, DefaultInput().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Input)
		wantErr string
	}{
		{"negative areal capacity", func(in *Input) { in.ArealCapacity = -1 }, "areal_capacity must be >= 0"},
		{"cam percent over 100", func(in *Input) { in.CAMWtPercent = 100.5 }, "cam_wt_percent must be <= 100"},
		{"porosity over 100", func(in *Input) { in.PorositySep = 101 }, "porosity_sep must be <= 100"},
		{"zero layers", func(in *Input) { in.CellLayers = 0 }, "cell_layers must be >= 1"},
		{"negative area", func(in *Input) { in.SingleLayerArea = -54 }, "single_layer_area must be >= 0"},
		{"nan voltage", func(in *Input) { in.CellVoltage = math.NaN() }, "cell_voltage must be a finite number"},
		{"infinite capacity", func(in *Input) { in.ArealCapacity = math.Inf(1) }, "areal_capacity must be a finite number"},
		{"infinite porosity", func(in *Input) { in.PorositySep = math.Inf(-1) }, "porosity_sep must be a finite number"},
		{"huge but finite", func(in *Input) { in.ArealCapacity = 1e308 }, ""},
		{"cam percent at zero", func(in *Input) { in.CAMWtPercent = 0 }, ""},
		{"percent at bound", func(in *Input) { in.CeramicWtSep = 100 }, ""},
		{"zero thicknesses", func(in *Input) { in.LayerThickness, in.MatThickness, in.LiFoilThickness = 0, 0, 0 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DefaultInput()
			tt.mutate(&in)
			err := in.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	in := DefaultInput()
	in.ArealCapacity = -1
	in.PolymerWtSep = 120
	err := in.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "areal_capacity")
	assert.Contains(t, err.Error(), "polymer_wt_sep")
}
