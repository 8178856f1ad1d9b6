package memory

import (
	"fmt"
	"testing"

	"github.com/vsinha/ejector/pkg/domain/entities"
)

func createTestStreams() []*entities.StreamRecord {
	api := 28.0
	return []*entities.StreamRecord{
		{Name: "M1", Role: entities.Motive, Kind: entities.Gas, Flow: 10, Pressure: 300},
		{Name: "S1", Role: entities.Suction, Kind: entities.Water, Flow: 1000},
		{Name: "S2", Role: entities.Suction, Kind: entities.Oil, Flow: 400, APIGravity: &api},
	}
}

func TestStreamRepository_LoadAndGet(t *testing.T) {
	repo := NewStreamRepository(3)
	if err := repo.LoadStreams(createTestStreams()); err != nil {
		t.Fatalf("LoadStreams failed: %v", err)
	}

	if repo.Count() != 3 {
		t.Errorf("Expected 3 streams, got %d", repo.Count())
	}

	stream, err := repo.GetStream("S2")
	if err != nil {
		t.Fatalf("GetStream failed: %v", err)
	}
	if stream.Kind != entities.Oil || *stream.APIGravity != 28 {
		t.Errorf("Unexpected stream: %+v", stream)
	}

	if _, err := repo.GetStream("NOPE"); err == nil || err.Error() != "stream not found: NOPE" {
		t.Errorf("Expected not found error, got %v", err)
	}

	all, _ := repo.GetStreams()
	for i, name := range []string{"M1", "S1", "S2"} {
		if all[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, all[i].Name)
		}
	}

	suction, _ := repo.GetStreamsByRole(entities.Suction)
	if len(suction) != 2 {
		t.Errorf("Expected 2 suction streams, got %d", len(suction))
	}
}

func TestStreamRepository_Limits(t *testing.T) {
	repo := NewStreamRepository(6)
	for i := 0; i < entities.MaxStreamsPerRole; i++ {
		err := repo.AddStream(entities.StreamRecord{
			Name: fmt.Sprintf("M%d", i), Role: entities.Motive, Kind: entities.Gas, Flow: 1, Pressure: 100,
		})
		if err != nil {
			t.Fatalf("AddStream %d failed: %v", i, err)
		}
	}

	err := repo.AddStream(entities.StreamRecord{Name: "M_EXTRA", Role: entities.Motive, Kind: entities.Gas, Flow: 1})
	if err == nil || err.Error() != "at most 5 Motive streams are allowed" {
		t.Errorf("Expected role limit error, got %v", err)
	}

	err = repo.AddStream(entities.StreamRecord{Name: "M0", Role: entities.Suction, Kind: entities.Water, Flow: 1})
	if err == nil || err.Error() != "duplicate stream name: M0" {
		t.Errorf("Expected duplicate error, got %v", err)
	}
}

func TestStreamRepository_SizingInputIsSnapshot(t *testing.T) {
	repo := NewStreamRepository(3)
	if err := repo.LoadStreams(createTestStreams()); err != nil {
		t.Fatalf("LoadStreams failed: %v", err)
	}

	input := repo.SizingInput(250)
	if input.DischargePressure != 250 || len(input.Streams) != 3 {
		t.Fatalf("Unexpected input: %+v", input)
	}

	input.Streams[0].Flow = 999
	stored, _ := repo.GetStream("M1")
	if stored.Flow != 10 {
		t.Errorf("Mutating the snapshot changed the repository: %v", stored.Flow)
	}
}

func TestStreamRepository_UpdateStream(t *testing.T) {
	repo := NewStreamRepository(3)
	if err := repo.LoadStreams(createTestStreams()); err != nil {
		t.Fatalf("LoadStreams failed: %v", err)
	}

	updated := entities.StreamRecord{Name: "M1", Role: entities.Motive, Kind: entities.Gas, Flow: 15, Pressure: 500}
	old, err := repo.UpdateStream(updated)
	if err != nil {
		t.Fatalf("UpdateStream failed: %v", err)
	}
	if old.Flow != 10 {
		t.Errorf("Expected previous flow 10, got %v", old.Flow)
	}

	streams, _ := repo.GetStreams()
	if streams[0].Name != "M1" || streams[0].Flow != 15 {
		t.Errorf("Expected M1 updated in place, got %+v", streams[0])
	}

	_, err = repo.UpdateStream(entities.StreamRecord{Name: "NOPE", Role: entities.Motive, Kind: entities.Gas})
	if err == nil || err.Error() != "stream not found: NOPE" {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestStreamRepository_UpdateStreamRoleLimit(t *testing.T) {
	repo := NewStreamRepository(6)
	for i := 0; i < entities.MaxStreamsPerRole; i++ {
		repo.AddStream(entities.StreamRecord{Name: fmt.Sprintf("M%d", i), Role: entities.Motive, Kind: entities.Gas, Flow: 1})
	}
	repo.AddStream(entities.StreamRecord{Name: "S0", Role: entities.Suction, Kind: entities.Water, Flow: 1})

	_, err := repo.UpdateStream(entities.StreamRecord{Name: "S0", Role: entities.Motive, Kind: entities.Water, Flow: 1})
	if err == nil || err.Error() != "at most 5 Motive streams are allowed" {
		t.Errorf("Expected role limit error, got %v", err)
	}

	// Moving a motive stream to suction frees a motive slot
	if _, err := repo.UpdateStream(entities.StreamRecord{Name: "M0", Role: entities.Suction, Kind: entities.Water, Flow: 1}); err != nil {
		t.Fatalf("UpdateStream failed: %v", err)
	}
	if err := repo.AddStream(entities.StreamRecord{Name: "M5", Role: entities.Motive, Kind: entities.Gas, Flow: 1}); err != nil {
		t.Errorf("Expected a free motive slot, got %v", err)
	}
}

func TestStreamRepository_RemoveStream(t *testing.T) {
	repo := NewStreamRepository(3)
	if err := repo.LoadStreams(createTestStreams()); err != nil {
		t.Fatalf("LoadStreams failed: %v", err)
	}

	removed, err := repo.RemoveStream("M1")
	if err != nil {
		t.Fatalf("RemoveStream failed: %v", err)
	}
	if removed.Name != "M1" || repo.Count() != 2 {
		t.Errorf("Expected M1 removed leaving 2 streams, got %s and %d", removed.Name, repo.Count())
	}

	// Remaining streams stay addressable after the shift
	streams, _ := repo.GetStreams()
	for _, s := range streams {
		got, err := repo.GetStream(s.Name)
		if err != nil || got.Name != s.Name {
			t.Errorf("Lookup of %s broken after removal: %v", s.Name, err)
		}
	}

	if _, err := repo.RemoveStream("M1"); err == nil {
		t.Error("Expected error removing a missing stream")
	}
}
