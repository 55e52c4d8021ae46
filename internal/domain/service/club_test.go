package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
)

func newClubFixture() (*ClubService, *MembershipService, *fakeClubStorage, *fakeUserStorage, *fakeMembershipStorage) {
	clubs := newFakeClubStorage()
	users := newFakeUserStorage()
	memberships := newFakeMembershipStorage()
	return NewClubService(clubs, users, memberships),
		NewMembershipService(memberships, clubs),
		clubs, users, memberships
}

func validClubInput() ClubInput {
	return ClubInput{
		Name:        "Atlas Hikers",
		Description: "Weekend hiking trips across the High Atlas mountains.",
		Category:    "sustainable",
		City:        "Marrakech",
	}
}

func TestClubCreatePromotesMember(t *testing.T) {
	clubSvc, membershipSvc, _, users, _ := newClubFixture()

	creator, err := users.Create(context.Background(), &entity.User{Role: entity.RoleMember})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	club, err := clubSvc.Create(context.Background(), creator, validClubInput())
	if err != nil {
		t.Fatalf("create club: %v", err)
	}
	if club.ManagerID != creator.ID {
		t.Errorf("manager = %d, want %d", club.ManagerID, creator.ID)
	}

	stored, err := users.Get(context.Background(), creator.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if stored.Role != entity.RoleClubManager {
		t.Errorf("role = %s, want club_manager", stored.Role)
	}

	// Creator is auto-joined, so joining again must report membership.
	if _, err = membershipSvc.Join(context.Background(), creator, club.ID); !errors.Is(err, errorz.ErrAlreadyMember) {
		t.Errorf("creator join: got %v, want ErrAlreadyMember", err)
	}
}

func TestClubCreateKeepsAdminRole(t *testing.T) {
	clubSvc, _, _, users, _ := newClubFixture()

	admin, err := users.Create(context.Background(), &entity.User{Role: entity.RoleAdmin})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err = clubSvc.Create(context.Background(), admin, validClubInput()); err != nil {
		t.Fatalf("create club: %v", err)
	}

	stored, _ := users.Get(context.Background(), admin.ID)
	if stored.Role != entity.RoleAdmin {
		t.Errorf("role = %s, admin must not be demoted", stored.Role)
	}
}

func TestClubCreateValidation(t *testing.T) {
	clubSvc, _, _, _, _ := newClubFixture()
	creator := &entity.User{Role: entity.RoleMember}

	cases := []struct {
		name   string
		mutate func(*ClubInput)
	}{
		{"short name", func(i *ClubInput) { i.Name = "At" }},
		{"short description", func(i *ClubInput) { i.Description = "hikes" }},
		{"bad category", func(i *ClubInput) { i.Category = "gambling" }},
		{"missing city", func(i *ClubInput) { i.City = "" }},
	}
	for _, tc := range cases {
		input := validClubInput()
		tc.mutate(&input)
		if _, err := clubSvc.Create(context.Background(), creator, input); !errorz.IsValidation(err) {
			t.Errorf("%s: got %v, want validation error", tc.name, err)
		}
	}
}

func TestClubUpdateOwnership(t *testing.T) {
	clubSvc, _, _, users, _ := newClubFixture()

	owner, _ := users.Create(context.Background(), &entity.User{Role: entity.RoleClubManager})
	other, _ := users.Create(context.Background(), &entity.User{Role: entity.RoleClubManager})
	member, _ := users.Create(context.Background(), &entity.User{Role: entity.RoleMember})

	club, err := clubSvc.Create(context.Background(), owner, validClubInput())
	if err != nil {
		t.Fatalf("create club: %v", err)
	}

	input := validClubInput()
	input.Name = "Atlas Trail Runners"

	if _, err = clubSvc.Update(context.Background(), member, club.ID, input); !errors.Is(err, errorz.ErrForbidden) {
		t.Errorf("member update: got %v, want ErrForbidden", err)
	}
	if _, err = clubSvc.Update(context.Background(), other, club.ID, input); !errors.Is(err, errorz.ErrForbidden) {
		t.Errorf("other manager update: got %v, want ErrForbidden", err)
	}
	updated, err := clubSvc.Update(context.Background(), owner, club.ID, input)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Name != "Atlas Trail Runners" {
		t.Errorf("name = %q after update", updated.Name)
	}
}

func TestClubDeleteRequiresAdmin(t *testing.T) {
	clubSvc, _, _, users, _ := newClubFixture()

	owner, _ := users.Create(context.Background(), &entity.User{Role: entity.RoleClubManager})
	admin, _ := users.Create(context.Background(), &entity.User{Role: entity.RoleAdmin})

	club, err := clubSvc.Create(context.Background(), owner, validClubInput())
	if err != nil {
		t.Fatalf("create club: %v", err)
	}

	if err = clubSvc.Delete(context.Background(), owner, club.ID); !errors.Is(err, errorz.ErrForbidden) {
		t.Errorf("manager delete: got %v, want ErrForbidden", err)
	}
	if err = clubSvc.Delete(context.Background(), admin, club.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestJoinAndLeave(t *testing.T) {
	clubSvc, membershipSvc, _, users, memberships := newClubFixture()

	owner, _ := users.Create(context.Background(), &entity.User{Role: entity.RoleClubManager})
	member, _ := users.Create(context.Background(), &entity.User{Role: entity.RoleMember})

	club, err := clubSvc.Create(context.Background(), owner, validClubInput())
	if err != nil {
		t.Fatalf("create club: %v", err)
	}

	membership, err := membershipSvc.Join(context.Background(), member, club.ID)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if membership.Status != entity.MembershipActive {
		t.Fatalf("status = %s, want active", membership.Status)
	}

	if _, err = membershipSvc.Join(context.Background(), member, club.ID); !errors.Is(err, errorz.ErrAlreadyMember) {
		t.Fatalf("double join: got %v, want ErrAlreadyMember", err)
	}

	count, _ := membershipSvc.CountActiveByClubID(context.Background(), club.ID)
	if count != 2 {
		t.Fatalf("active members = %d, want 2 (owner and member)", count)
	}

	if err = membershipSvc.Leave(context.Background(), member, club.ID); err != nil {
		t.Fatalf("leave: %v", err)
	}
	count, _ = membershipSvc.CountActiveByClubID(context.Background(), club.ID)
	if count != 1 {
		t.Fatalf("active members after leave = %d, want 1", count)
	}

	// The row survives the leave; rejoining flips it back.
	stored, err := memberships.GetByUserAndClub(context.Background(), member.ID, club.ID)
	if err != nil {
		t.Fatalf("membership row must survive leaving: %v", err)
	}
	if stored.Status != entity.MembershipLeft {
		t.Fatalf("status after leave = %s, want left", stored.Status)
	}

	rejoined, err := membershipSvc.Join(context.Background(), member, club.ID)
	if err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if rejoined.ID != stored.ID {
		t.Fatal("rejoin must reactivate the existing membership, not create a new one")
	}
	if rejoined.Status != entity.MembershipActive {
		t.Fatalf("status after rejoin = %s, want active", rejoined.Status)
	}
}

func TestJoinUnknownClub(t *testing.T) {
	_, membershipSvc, _, _, _ := newClubFixture()
	member := &entity.User{Role: entity.RoleMember}

	if _, err := membershipSvc.Join(context.Background(), member, "missing"); !errors.Is(err, errorz.ErrNotFound) {
		t.Fatalf("join missing club: got %v, want ErrNotFound", err)
	}
}

func TestLeaveWithoutMembership(t *testing.T) {
	clubSvc, membershipSvc, _, users, _ := newClubFixture()

	owner, _ := users.Create(context.Background(), &entity.User{Role: entity.RoleClubManager})
	member, _ := users.Create(context.Background(), &entity.User{Role: entity.RoleMember})

	club, err := clubSvc.Create(context.Background(), owner, validClubInput())
	if err != nil {
		t.Fatalf("create club: %v", err)
	}
	if err = membershipSvc.Leave(context.Background(), member, club.ID); !errors.Is(err, errorz.ErrNotFound) {
		t.Fatalf("leave without membership: got %v, want ErrNotFound", err)
	}
}
