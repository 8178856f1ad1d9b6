package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vsinha/ejector/pkg/application/services"
	"github.com/vsinha/ejector/pkg/domain/entities"
	"github.com/vsinha/ejector/pkg/interfaces/cli/output"
)

func main() {
	ctx := context.Background()

	api := 35.0
	input := entities.SizingInput{
		Streams: []entities.StreamRecord{
			{Name: "HP_GAS", Role: entities.Motive, Kind: entities.Gas, Flow: 10, Pressure: 300},
			{Name: "PRODUCED_WATER", Role: entities.Suction, Kind: entities.Water, Flow: 1000, Pressure: 45},
			{Name: "LP_OIL", Role: entities.Suction, Kind: entities.Oil, Flow: 500, Pressure: 60, APIGravity: &api},
			{Name: "SPARE", Role: entities.Suction, Kind: entities.Water, Flow: 0, Pressure: 45},
		},
		DischargePressure: entities.DefaultDischargePressure,
	}

	fmt.Println("🛢️  Sizing a three-stream ejector...")

	sizer := services.NewSizingService(nil)
	result, err := sizer.SizeEjector(ctx, input)
	if errors.Is(err, entities.ErrInsufficientInput) {
		output.Warn(output.Config{})
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := output.Generate(result, output.Config{Format: "text", Verbose: true}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("📈 Chart points (flow, velocity, throat diameter):")
	for _, p := range result.ChartSeries {
		fmt.Printf("  %10.2f  %6.2f ft/s  %.4f in\n", p.Flow, p.Velocity, p.ThroatDiameter)
	}
}
