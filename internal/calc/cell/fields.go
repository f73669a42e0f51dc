package cell

import (
	"fmt"
	"math"
)

// Field describes one input parameter as the input form presents it.
type Field struct {
	Name  string
	Group string
	Label string
	Unit  string
}

var fields = []Field{
	{"areal_capacity", "Cathode", "Areal Capacity", "mAh/cm²"},
	{"cam_mass_loading", "Cathode", "CAM Mass Loading", "mg/cm²"},
	{"cam_wt_percent", "Cathode", "CAM Weight Percentage", "%"},
	{"layer_thickness", "Cathode", "Layer Thickness", "µm"},
	{"mat_thickness", "Anode", "Mat Thickness", "µm"},
	{"li_foil_thickness", "Anode", "Li Foil Thickness", "µm"},
	{"polymer_wt_sep", "Separator", "Polymer Weight", "%"},
	{"li_salt_wt_sep", "Separator", "Li Salt Weight", "%"},
	{"ceramic_wt_sep", "Separator", "Ceramic Weight", "%"},
	{"thickness_sep", "Separator", "Thickness", "µm"},
	{"porosity_sep", "Separator", "Porosity", "%"},
	{"cell_layers", "Pouch Cell", "Cell Layers", ""},
	{"cell_voltage", "Pouch Cell", "Cell Voltage", "V"},
	{"single_layer_area", "Pouch Cell", "Single Layer Area", "cm²"},
}

// Fields returns the input parameters in form order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

func (in *Input) ref(name string) *float64 {
	switch name {
	case "areal_capacity":
		return &in.ArealCapacity
	case "cam_mass_loading":
		return &in.CAMMassLoading
	case "cam_wt_percent":
		return &in.CAMWtPercent
	case "layer_thickness":
		return &in.LayerThickness
	case "mat_thickness":
		return &in.MatThickness
	case "li_foil_thickness":
		return &in.LiFoilThickness
	case "polymer_wt_sep":
		return &in.PolymerWtSep
	case "li_salt_wt_sep":
		return &in.LiSaltWtSep
	case "ceramic_wt_sep":
		return &in.CeramicWtSep
	case "thickness_sep":
		return &in.ThicknessSep
	case "porosity_sep":
		return &in.PorositySep
	case "cell_voltage":
		return &in.CellVoltage
	case "single_layer_area":
		return &in.SingleLayerArea
	}
	return nil
}

// Get returns the value of the named parameter.
func (in Input) Get(name string) (float64, bool) {
	if name == "cell_layers" {
		return float64(in.CellLayers), true
	}
	p := in.ref(name)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Set assigns the named parameter. cell_layers only accepts whole numbers.
func (in *Input) Set(name string, v float64) error {
	if name == "cell_layers" {
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return fmt.Errorf("cell_layers must be a whole number, got %v", v)
		}
		in.CellLayers = int(v)
		return nil
	}
	p := in.ref(name)
	if p == nil {
		return fmt.Errorf("unknown parameter %q", name)
	}
	*p = v
	return nil
}
