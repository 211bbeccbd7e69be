package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/entity"
)

func TestSceneMembership(t *testing.T) {
	s := NewScene(WithName("sandbox"))
	if s.Name() != "sandbox" {
		t.Fatalf("Name() = %q", s.Name())
	}

	s.AddEntity(1)
	s.AddEntity(2)
	s.AddEntity(3)
	s.AddEntity(2)

	if s.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", s.Count())
	}
	if got := s.Entities(); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("Entities() = %v, want [1 2 3]", got)
	}

	s.Remove(2)
	s.Remove(9)
	if s.Contains(2) || !s.Contains(3) {
		t.Errorf("membership after remove wrong: %v", s.Entities())
	}
	if got := s.Entities(); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("Entities() = %v, want [1 3]", got)
	}

	s.Remove(1)
	if got := s.Entities(); len(got) != 1 || got[0] != 3 {
		t.Errorf("Entities() = %v, want [3]", got)
	}
	if s.Mutations() != 7 {
		t.Errorf("Mutations() = %d, want 7", s.Mutations())
	}
}

func TestSceneEntitiesIsACopy(t *testing.T) {
	s := NewScene()
	s.AddEntity(entity.Entity(4))
	list := s.Entities()
	list[0] = 99
	if !s.Contains(4) || s.Entities()[0] != 4 {
		t.Error("mutating the returned slice changed the scene")
	}
}
