package cell

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Input struct {
	ArealCapacity   float64 `json:"areal_capacity" validate:"finite,gte=0"`         // mAh/cm²
	CAMMassLoading  float64 `json:"cam_mass_loading" validate:"finite,gte=0"`       // mg/cm² per side
	CAMWtPercent    float64 `json:"cam_wt_percent" validate:"finite,gte=0,lte=100"` // %
	LayerThickness  float64 `json:"layer_thickness" validate:"finite,gte=0"`        // μm per side
	MatThickness    float64 `json:"mat_thickness" validate:"finite,gte=0"`          // μm
	LiFoilThickness float64 `json:"li_foil_thickness" validate:"finite,gte=0"`      // μm
	PolymerWtSep    float64 `json:"polymer_wt_sep" validate:"finite,gte=0,lte=100"` // %
	LiSaltWtSep     float64 `json:"li_salt_wt_sep" validate:"finite,gte=0,lte=100"` // %
	CeramicWtSep    float64 `json:"ceramic_wt_sep" validate:"finite,gte=0,lte=100"` // %
	ThicknessSep    float64 `json:"thickness_sep" validate:"finite,gte=0"`          // μm
	PorositySep     float64 `json:"porosity_sep" validate:"finite,gte=0,lte=100"`   // %
	CellLayers      int     `json:"cell_layers" validate:"gte=1"`                   // count
	CellVoltage     float64 `json:"cell_voltage" validate:"finite,gte=0"`           // V
	SingleLayerArea float64 `json:"single_layer_area" validate:"finite,gte=0"`      // cm²
}

// DefaultInput is the reference 15-layer, 54 cm² cell.
func DefaultInput() Input {
	return Input{
		ArealCapacity:   6.0,
		CAMMassLoading:  27.0,
		CAMWtPercent:    93.0,
		LayerThickness:  100.0,
		MatThickness:    60.0,
		LiFoilThickness: 30.0,
		PolymerWtSep:    100.0,
		LiSaltWtSep:     0.0,
		CeramicWtSep:    0.0,
		ThicknessSep:    15.0,
		PorositySep:     45.0,
		CellLayers:      15,
		CellVoltage:     3.85,
		SingleLayerArea: 54.0,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate applies the range checks of the input form: every field finite
// and non-negative, percentages at most 100, at least one layer.
func (in Input) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "finite":
			msgs = append(msgs, fmt.Sprintf("%s must be a finite number", fe.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid input: %s", strings.Join(msgs, "; "))
}
