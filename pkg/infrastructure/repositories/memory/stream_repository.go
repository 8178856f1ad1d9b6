package memory

import (
	"fmt"

	"github.com/vsinha/ejector/pkg/domain/entities"
	"github.com/vsinha/ejector/pkg/domain/repositories"
)

// StreamRepository provides in-memory, declaration-ordered stream storage
type StreamRepository struct {
	streams    []entities.StreamRecord
	streamsMap map[string]int
	roleCounts map[entities.StreamRole]int
	maxPerRole int
}

// NewStreamRepository creates a new in-memory stream repository
func NewStreamRepository(expectedStreams int) *StreamRepository {
	return &StreamRepository{
		streams:    make([]entities.StreamRecord, 0, expectedStreams),
		streamsMap: make(map[string]int, expectedStreams),
		roleCounts: make(map[entities.StreamRole]int, 2),
		maxPerRole: entities.MaxStreamsPerRole,
	}
}

// Verify interface compliance
var _ repositories.StreamRepository = (*StreamRepository)(nil)

// LoadStreams loads streams into the repository, keeping declaration order
func (r *StreamRepository) LoadStreams(streams []*entities.StreamRecord) error {
	for _, stream := range streams {
		if err := r.AddStream(*stream); err != nil {
			return err
		}
	}
	return nil
}

// AddStream appends a stream. Names must be unique and each role holds at most
// MaxStreamsPerRole streams.
func (r *StreamRepository) AddStream(stream entities.StreamRecord) error {
	if _, exists := r.streamsMap[stream.Name]; exists {
		return fmt.Errorf("duplicate stream name: %s", stream.Name)
	}
	if r.roleCounts[stream.Role] >= r.maxPerRole {
		return fmt.Errorf("at most %d %s streams are allowed", r.maxPerRole, stream.Role)
	}

	r.streamsMap[stream.Name] = len(r.streams)
	r.streams = append(r.streams, stream)
	r.roleCounts[stream.Role]++
	return nil
}

// UpdateStream replaces a stream in place, keeping its position. The role
// may change if the new role has room.
func (r *StreamRepository) UpdateStream(stream entities.StreamRecord) (entities.StreamRecord, error) {
	index, exists := r.streamsMap[stream.Name]
	if !exists {
		return entities.StreamRecord{}, fmt.Errorf("stream not found: %s", stream.Name)
	}

	old := r.streams[index]
	if old.Role != stream.Role && r.roleCounts[stream.Role] >= r.maxPerRole {
		return entities.StreamRecord{}, fmt.Errorf("at most %d %s streams are allowed", r.maxPerRole, stream.Role)
	}

	r.roleCounts[old.Role]--
	r.roleCounts[stream.Role]++
	r.streams[index] = stream
	return old, nil
}

// RemoveStream deletes a stream and returns it
func (r *StreamRepository) RemoveStream(name string) (entities.StreamRecord, error) {
	index, exists := r.streamsMap[name]
	if !exists {
		return entities.StreamRecord{}, fmt.Errorf("stream not found: %s", name)
	}

	removed := r.streams[index]
	r.streams = append(r.streams[:index], r.streams[index+1:]...)
	delete(r.streamsMap, name)
	for i := index; i < len(r.streams); i++ {
		r.streamsMap[r.streams[i].Name] = i
	}
	r.roleCounts[removed.Role]--
	return removed, nil
}

// GetStream returns a stream by name
func (r *StreamRepository) GetStream(name string) (*entities.StreamRecord, error) {
	index, exists := r.streamsMap[name]
	if !exists {
		return nil, fmt.Errorf("stream not found: %s", name)
	}
	return &r.streams[index], nil
}

// GetStreams returns all streams in declaration order
func (r *StreamRepository) GetStreams() ([]*entities.StreamRecord, error) {
	streams := make([]*entities.StreamRecord, 0, len(r.streams))
	for i := range r.streams {
		streams = append(streams, &r.streams[i])
	}
	return streams, nil
}

// GetStreamsByRole returns the motive or suction streams in declaration order
func (r *StreamRepository) GetStreamsByRole(role entities.StreamRole) ([]*entities.StreamRecord, error) {
	var streams []*entities.StreamRecord
	for i := range r.streams {
		if r.streams[i].Role == role {
			streams = append(streams, &r.streams[i])
		}
	}
	return streams, nil
}

// SizingInput snapshots the streams into an input for the sizer
func (r *StreamRepository) SizingInput(dischargePressure float64) entities.SizingInput {
	snapshot := make([]entities.StreamRecord, len(r.streams))
	copy(snapshot, r.streams)
	return entities.SizingInput{
		Streams:           snapshot,
		DischargePressure: dischargePressure,
	}
}

// Count returns the number of stored streams
func (r *StreamRepository) Count() int {
	return len(r.streams)
}
