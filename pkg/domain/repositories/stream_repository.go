package repositories

import "github.com/vsinha/ejector/pkg/domain/entities"

// StreamRepository provides access to the declared process streams of one ejector case
type StreamRepository interface {
	GetStreams() ([]*entities.StreamRecord, error)
	GetStreamsByRole(role entities.StreamRole) ([]*entities.StreamRecord, error)
	GetStream(name string) (*entities.StreamRecord, error)
	LoadStreams(streams []*entities.StreamRecord) error
	AddStream(stream entities.StreamRecord) error
	UpdateStream(stream entities.StreamRecord) (entities.StreamRecord, error)
	RemoveStream(name string) (entities.StreamRecord, error)
	Count() int
	SizingInput(dischargePressure float64) entities.SizingInput
}
