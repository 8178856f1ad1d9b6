package events

import (
	"github.com/vsinha/ejector/pkg/application/dto"
	"github.com/vsinha/ejector/pkg/domain/entities"
)

// Session event types
const (
	StreamAddedEvent   = "stream.added"
	StreamUpdatedEvent = "stream.updated"
	StreamRemovedEvent = "stream.removed"

	DischargeChangedEvent = "discharge.changed"

	EjectorSizedEvent       = "ejector.sized"
	SizingInsufficientEvent = "sizing.insufficient"
	SizingUndefinedEvent    = "sizing.undefined"
)

// FormChangeEvents are the events that alter the sizing input
var FormChangeEvents = []string{
	StreamAddedEvent,
	StreamUpdatedEvent,
	StreamRemovedEvent,
	DischargeChangedEvent,
}

// DischargeSubject is the subject used for discharge pressure changes
const DischargeSubject = "discharge"

type StreamAdded struct {
	Stream entities.StreamRecord `json:"stream"`
}

type StreamUpdated struct {
	Old entities.StreamRecord `json:"old"`
	New entities.StreamRecord `json:"new"`
}

type StreamRemoved struct {
	Stream entities.StreamRecord `json:"stream"`
}

type DischargeChanged struct {
	Old float64 `json:"old"`
	New float64 `json:"new"`
}

type EjectorSized struct {
	ThroatDiameter        float64 `json:"throat_diameter"`
	MixingChamberDiameter float64 `json:"mixing_chamber_diameter"`
	Included              int     `json:"included"`
	Excluded              int     `json:"excluded"`
}

type SizingInsufficient struct {
	Streams int `json:"streams"`
}

type SizingUndefined struct {
	AverageDensity float64 `json:"average_density"`
	Included       int     `json:"included"`
}

func NewStreamAddedEvent(stream entities.StreamRecord) Event {
	return NewEvent(StreamAddedEvent, stream.Name, StreamAdded{Stream: stream})
}

func NewStreamUpdatedEvent(old, updated entities.StreamRecord) Event {
	return NewEvent(StreamUpdatedEvent, updated.Name, StreamUpdated{Old: old, New: updated})
}

func NewStreamRemovedEvent(stream entities.StreamRecord) Event {
	return NewEvent(StreamRemovedEvent, stream.Name, StreamRemoved{Stream: stream})
}

func NewDischargeChangedEvent(old, updated float64) Event {
	return NewEvent(DischargeChangedEvent, DischargeSubject, DischargeChanged{Old: old, New: updated})
}

func NewEjectorSizedEvent(result *dto.SizingResult) Event {
	return NewEvent(EjectorSizedEvent, "ejector", EjectorSized{
		ThroatDiameter:        result.ThroatDiameter,
		MixingChamberDiameter: result.MixingChamberDiameter,
		Included:              result.IncludedCount(),
		Excluded:              len(result.ExcludedStreams),
	})
}

func NewSizingInsufficientEvent(streams int) Event {
	return NewEvent(SizingInsufficientEvent, "ejector", SizingInsufficient{Streams: streams})
}

func NewSizingUndefinedEvent(result *dto.SizingResult) Event {
	return NewEvent(SizingUndefinedEvent, "ejector", SizingUndefined{
		AverageDensity: result.AverageDensity,
		Included:       result.IncludedCount(),
	})
}
