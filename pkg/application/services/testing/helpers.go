package testing

import (
	"github.com/vsinha/ejector/pkg/domain/entities"
)

// APIGravity returns a pointer for optional oil API gravity fields
func APIGravity(v float64) *float64 {
	return &v
}

// GasMotive builds a motive gas stream
func GasMotive(name string, mmscfd, psi float64) entities.StreamRecord {
	return entities.StreamRecord{
		Name:     name,
		Role:     entities.Motive,
		Kind:     entities.Gas,
		Flow:     mmscfd,
		Pressure: psi,
	}
}

// WaterSuction builds a suction water stream
func WaterSuction(name string, bpd float64) entities.StreamRecord {
	return entities.StreamRecord{
		Name:     name,
		Role:     entities.Suction,
		Kind:     entities.Water,
		Flow:     bpd,
		Pressure: 50,
	}
}

// OilStream builds an oil stream in the given role; api may be nil
func OilStream(name string, role entities.StreamRole, bpd float64, api *float64) entities.StreamRecord {
	return entities.StreamRecord{
		Name:       name,
		Role:       role,
		Kind:       entities.Oil,
		Flow:       bpd,
		Pressure:   150,
		APIGravity: api,
	}
}

// BuildGasWaterScenario is the two-stream case: 10 MMSCFD gas at 300 psi
// driving 1000 BPD of water, discharging at 200 psi
func BuildGasWaterScenario() entities.SizingInput {
	return entities.SizingInput{
		Streams: []entities.StreamRecord{
			GasMotive("MOTIVE_GAS", 10, 300),
			WaterSuction("SUCTION_WATER", 1000),
		},
		DischargePressure: entities.DefaultDischargePressure,
	}
}

// BuildMixedScenario has every fluid kind plus streams that are not yet specified
func BuildMixedScenario() entities.SizingInput {
	return entities.SizingInput{
		Streams: []entities.StreamRecord{
			GasMotive("HP_GAS", 12, 900),
			OilStream("HP_OIL", entities.Motive, 2500, APIGravity(32)),
			OilStream("LP_OIL", entities.Suction, 800, nil),
			WaterSuction("PRODUCED_WATER", 1500),
			GasMotive("SPARE_GAS", 0, 900),
			WaterSuction("DRAIN", -20),
		},
		DischargePressure: 350,
	}
}
