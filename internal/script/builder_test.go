// SPDX-License-Identifier: MPL-2.0

package script

import (
	"testing"
)

func TestBuilder_StableWithinPhase(t *testing.T) {
	t.Parallel()

	s := NewBuilder().
		Add(NewCommand(PhaseSave, "save")).
		Add(NewCommand(PhaseFiles, "b")).
		Add(NewCommand(PhaseProject, "p")).
		Add(NewCommand(PhaseFiles, "a")).
		Build()

	want := []string{"p", "b", "a", "save"}
	got := s.Lines()
	if len(got) != len(want) {
		t.Fatalf("Lines() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Lines()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScript_RenderEmpty(t *testing.T) {
	t.Parallel()

	if got := NewBuilder().Build().Render(); got != Banner+"\n" {
		t.Errorf("Render() = %q", got)
	}
}

func TestPhase_String(t *testing.T) {
	t.Parallel()

	if PhaseArchive.String() != "archive" {
		t.Errorf("PhaseArchive.String() = %q", PhaseArchive.String())
	}
	if Phase(99).String() != "phase(99)" {
		t.Errorf("Phase(99).String() = %q", Phase(99).String())
	}
}
