package cell

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// MaterialConstants is the fixed material table used by Calculate.
// Densities are g/cm³, loadings mg/cm², thickness μm.
type MaterialConstants struct {
	PolymerDensity           float64 `json:"polymer_density" yaml:"polymer_density"`
	LiSaltDensity            float64 `json:"li_salt_density" yaml:"li_salt_density"`
	CeramicDensity           float64 `json:"ceramic_density" yaml:"ceramic_density"`
	LiDensity                float64 `json:"li_density" yaml:"li_density"`
	LiquidElectrolyteDensity float64 `json:"liquid_electrolyte_density" yaml:"liquid_electrolyte_density"`
	ElectrolyteMgPerMAh      float64 `json:"electrolyte_mg_per_mah" yaml:"electrolyte_mg_per_mah"`
	AlFoilLoading            float64 `json:"al_foil_loading" yaml:"al_foil_loading"`
	AlLaminatePouchLoading   float64 `json:"al_laminate_pouch_loading" yaml:"al_laminate_pouch_loading"`
	AlTabLoading             float64 `json:"al_tab_loading" yaml:"al_tab_loading"`
	NiTabLoading             float64 `json:"ni_tab_loading" yaml:"ni_tab_loading"`
	DischargedMatLoading     float64 `json:"discharged_mat_loading" yaml:"discharged_mat_loading"`
	LaminatePouchThicknessUM float64 `json:"cell_laminate_pouch_thickness" yaml:"cell_laminate_pouch_thickness"`
}

func DefaultConstants() MaterialConstants {
	return MaterialConstants{
		PolymerDensity:           1.7,
		LiSaltDensity:            1.33,
		CeramicDensity:           5.61,
		LiDensity:                0.534,
		LiquidElectrolyteDensity: 1.2,
		ElectrolyteMgPerMAh:      1.38,
		AlFoilLoading:            2.89,
		AlLaminatePouchLoading:   58.0,
		AlTabLoading:             8.75,
		NiTabLoading:             30.0,
		DischargedMatLoading:     2.982816,
		LaminatePouchThicknessUM: 88.0,
	}
}

// LoadConstants reads a YAML file and overlays it on DefaultConstants.
// Keys missing from the file keep their default value.
func LoadConstants(path string) (MaterialConstants, error) {
	f, err := os.Open(path)
	if err != nil {
		return MaterialConstants{}, fmt.Errorf("open constants: %w", err)
	}
	defer f.Close()
	return DecodeConstants(f)
}

func DecodeConstants(r io.Reader) (MaterialConstants, error) {
	c := DefaultConstants()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return MaterialConstants{}, fmt.Errorf("parse constants: %w", err)
	}
	if err := c.check(); err != nil {
		return MaterialConstants{}, err
	}
	return c, nil
}

func (c MaterialConstants) check() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"polymer_density", c.PolymerDensity},
		{"li_salt_density", c.LiSaltDensity},
		{"ceramic_density", c.CeramicDensity},
		{"li_density", c.LiDensity},
		{"electrolyte_mg_per_mah", c.ElectrolyteMgPerMAh},
		{"al_foil_loading", c.AlFoilLoading},
		{"al_laminate_pouch_loading", c.AlLaminatePouchLoading},
		{"al_tab_loading", c.AlTabLoading},
		{"ni_tab_loading", c.NiTabLoading},
		{"discharged_mat_loading", c.DischargedMatLoading},
		{"cell_laminate_pouch_thickness", c.LaminatePouchThicknessUM},
	}
	for _, p := range positive {
		if !(p.v > 0) {
			return fmt.Errorf("constant %s must be positive, got %v", p.name, p.v)
		}
	}
	// not used by the pipeline, only carried in the table
	if !(c.LiquidElectrolyteDensity >= 0) {
		return fmt.Errorf("constant liquid_electrolyte_density must not be negative, got %v", c.LiquidElectrolyteDensity)
	}
	return nil
}
