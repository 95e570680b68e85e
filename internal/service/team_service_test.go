package service

import (
	"errors"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/repository"
	"roleplay_coach_backend/internal/util"
	"testing"
)

func newTeamFixture(t *testing.T) *TeamService {
	t.Helper()
	return NewTeamService(repository.NewTeamRepository(testDB(t)))
}

func TestTeamCreateMakesCaptain(t *testing.T) {
	svc := newTeamFixture(t)

	team, err := svc.Create(1, TeamRequest{Name: "Los Cerradores"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if team.CaptainID != 1 {
		t.Fatalf("expected captain 1, got %d", team.CaptainID)
	}
	if !team.Public || team.MaxMembers != 10 {
		t.Fatalf("unexpected defaults: public=%v max=%d", team.Public, team.MaxMembers)
	}

	members, err := svc.GetMembers(team.ID)
	if err != nil {
		t.Fatalf("GetMembers: %v", err)
	}
	if len(members) != 1 || members[0].Role != model.TeamRoleCaptain {
		t.Fatalf("creator should be the first member as captain: %+v", members)
	}
}

func TestTeamJoinAndDuplicates(t *testing.T) {
	svc := newTeamFixture(t)
	team, _ := svc.Create(1, TeamRequest{Name: "Equipo"})

	if err := svc.Join(2, team.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := svc.Join(2, team.ID); !errors.Is(err, util.ErrAlreadyTeamMember) {
		t.Fatalf("expected ErrAlreadyTeamMember, got %v", err)
	}
	if err := svc.Join(3, 9999); !errors.Is(err, util.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestTeamJoinPrivate(t *testing.T) {
	svc := newTeamFixture(t)
	private := false
	team, _ := svc.Create(1, TeamRequest{Name: "Cerrado", Public: &private})

	if err := svc.Join(2, team.ID); !errors.Is(err, util.ErrTeamPrivate) {
		t.Fatalf("expected ErrTeamPrivate, got %v", err)
	}
}

func TestTeamJoinEnforcesMemberCap(t *testing.T) {
	svc := newTeamFixture(t)
	team, _ := svc.Create(1, TeamRequest{Name: "Mini", MaxMembers: 2})

	if err := svc.Join(2, team.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := svc.Join(3, team.ID); !errors.Is(err, util.ErrTeamFull) {
		t.Fatalf("expected ErrTeamFull, got %v", err)
	}
}

func TestTeamLeave(t *testing.T) {
	svc := newTeamFixture(t)
	team, _ := svc.Create(1, TeamRequest{Name: "Equipo"})
	if err := svc.Join(2, team.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}

	if err := svc.Leave(1, team.ID); !errors.Is(err, util.ErrCaptainCannotLeave) {
		t.Fatalf("captain leave should fail, got %v", err)
	}
	if err := svc.Leave(2, team.ID); err != nil {
		t.Fatalf("member Leave: %v", err)
	}
	if err := svc.Leave(2, team.ID); !errors.Is(err, util.ErrNotTeamMember) {
		t.Fatalf("expected ErrNotTeamMember after leaving, got %v", err)
	}
}

func TestTeamDeleteCaptainOnly(t *testing.T) {
	svc := newTeamFixture(t)
	team, _ := svc.Create(1, TeamRequest{Name: "Equipo"})
	if err := svc.Join(2, team.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}

	if err := svc.Delete(2, team.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if err := svc.Delete(1, team.ID); err != nil {
		t.Fatalf("captain Delete: %v", err)
	}
	if _, err := svc.GetMembers(team.ID); !errors.Is(err, util.ErrTeamNotFound) {
		t.Fatalf("deleted team should be gone, got %v", err)
	}
}
