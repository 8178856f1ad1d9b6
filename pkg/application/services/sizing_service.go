package services

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/vsinha/ejector/pkg/application/dto"
	"github.com/vsinha/ejector/pkg/domain/entities"
	domainservices "github.com/vsinha/ejector/pkg/domain/services"
)

// SizingService aggregates declared streams and sizes the ejector throat and
// mixing chamber. It holds no mutable state and is safe for concurrent use.
type SizingService struct {
	assumptions entities.Assumptions
	logger      *zap.SugaredLogger
}

// NewSizingService creates a sizing service with the default assumptions
func NewSizingService(logger *zap.SugaredLogger) *SizingService {
	svc, _ := NewSizingServiceWithAssumptions(entities.DefaultAssumptions(), logger)
	return svc
}

// NewSizingServiceWithAssumptions creates a sizing service with custom assumptions
func NewSizingServiceWithAssumptions(assumptions entities.Assumptions, logger *zap.SugaredLogger) (*SizingService, error) {
	if err := assumptions.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sizing assumptions: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SizingService{
		assumptions: assumptions,
		logger:      logger,
	}, nil
}

// Assumptions returns the constants this service sizes with
func (s *SizingService) Assumptions() entities.Assumptions {
	return s.assumptions
}

// SizeEjector runs one sizing pass. Streams with flow <= 0 are skipped. When no
// stream remains, or the remaining streams sum to zero mass flow, it returns
// entities.ErrInsufficientInput and no result.
func (s *SizingService) SizeEjector(ctx context.Context, input entities.SizingInput) (*dto.SizingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a := s.assumptions
	contributions := make([]dto.StreamContribution, 0, len(input.Streams))
	excluded := make([]string, 0)
	densities := make([]float64, 0, len(input.Streams))
	massFlows := make([]float64, 0, len(input.Streams))

	for _, stream := range input.Streams {
		if !stream.IsSpecified() {
			s.logger.Debugw("excluding stream without positive flow",
				"stream", stream.Name, "flow", stream.Flow, "unit", stream.FlowUnit())
			excluded = append(excluded, stream.Name)
			continue
		}

		rho := domainservices.EstimateDensity(stream.Kind, stream.Pressure, stream.APIGravity, a)
		massFlow := domainservices.MassFlowRate(stream.Kind, stream.Flow, rho, a)

		densities = append(densities, rho)
		massFlows = append(massFlows, massFlow)
		contributions = append(contributions, dto.StreamContribution{
			Name:     stream.Name,
			Role:     stream.Role,
			Kind:     stream.Kind,
			Flow:     stream.Flow,
			FlowUnit: stream.FlowUnit(),
			Density:  rho,
			MassFlow: massFlow,
		})
	}

	totalMassFlow := floats.Sum(massFlows)
	if totalMassFlow == 0 || len(densities) == 0 {
		s.logger.Infow("insufficient input for sizing",
			"streams", len(input.Streams), "excluded", len(excluded))
		return nil, entities.ErrInsufficientInput
	}

	averageDensity := stat.Mean(densities, nil)
	massFlowPerSecond := totalMassFlow / a.SecondsPerDay
	throatArea := massFlowPerSecond / (averageDensity * a.AssumedVelocity)
	throatDiameter := 2 * math.Sqrt(throatArea/math.Pi) * entities.InchesPerFoot
	mixingDiameter := entities.MixingChamberRatio * throatDiameter

	// Velocity and diameter come from aggregates, so every point carries the same values
	chart := make([]dto.ChartPoint, len(contributions))
	for i, c := range contributions {
		chart[i] = dto.ChartPoint{
			Flow:           c.Flow,
			Velocity:       a.AssumedVelocity,
			ThroatDiameter: throatDiameter,
		}
	}

	s.logger.Infow("ejector sized",
		"included", len(contributions),
		"excluded", len(excluded),
		"total_mass_flow_lbm_day", totalMassFlow,
		"average_density_lb_ft3", averageDensity,
		"throat_diameter_in", throatDiameter,
		"mixing_chamber_diameter_in", mixingDiameter,
	)

	return &dto.SizingResult{
		TotalMassFlow:         totalMassFlow,
		AverageDensity:        averageDensity,
		AssumedVelocity:       a.AssumedVelocity,
		ThroatArea:            throatArea,
		ThroatDiameter:        throatDiameter,
		MixingChamberDiameter: mixingDiameter,
		DischargePressure:     input.DischargePressure,
		Streams:               contributions,
		ExcludedStreams:       excluded,
		ChartSeries:           chart,
	}, nil
}
