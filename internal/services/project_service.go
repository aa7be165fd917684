package services

import (
	"errors"
	"time"

	"taskboard-api/internal/cache"
	"taskboard-api/internal/models"
	"taskboard-api/internal/repository"

	"gorm.io/gorm"
)

// membershipTTL bounds how long a cached membership answer is trusted.
const membershipTTL = 30 * time.Second

type memberKey struct {
	ProjectID uint
	UserID    uint
}

// ProjectService manages projects, their member sets and the manager
// invariant: a set manager is always a member.
type ProjectService struct {
	projects   repository.ProjectRepository
	users      repository.UserRepository
	membership cache.Cache[memberKey, bool]
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects repository.ProjectRepository, users repository.UserRepository) *ProjectService {
	return &ProjectService{
		projects: projects,
		users:    users,
		membership: cache.NewSimpleCache[memberKey, bool](cache.Options{
			ConcurrencySafe: true,
		}),
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	ManagerID   *uint
	MemberIDs   []uint
}

// Create creates a project. The manager, when given, is added to the
// member set so the invariant holds from the start.
func (s *ProjectService) Create(input CreateProjectInput) (*models.Project, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	memberIDs := append([]uint(nil), input.MemberIDs...)
	if input.ManagerID != nil {
		if _, err := s.users.FindByID(*input.ManagerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		memberIDs = append(memberIDs, *input.ManagerID)
	}

	members, err := s.users.FindByIDs(dedupe(memberIDs))
	if err != nil {
		return nil, err
	}
	if len(members) != len(dedupe(memberIDs)) {
		return nil, ErrUserNotFound
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		ManagerID:   input.ManagerID,
		Members:     members,
	}
	if err := s.projects.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get returns a project with its members.
func (s *ProjectService) Get(projectID uint) (*models.Project, error) {
	project, err := s.projects.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// ListForUser returns the projects the user is a member of.
func (s *ProjectService) ListForUser(userID uint) ([]models.Project, error) {
	return s.projects.ListForUser(userID)
}

// Members returns a project's member users.
func (s *ProjectService) Members(projectID uint) ([]models.User, error) {
	if _, err := s.Get(projectID); err != nil {
		return nil, err
	}
	return s.projects.Members(projectID)
}

// IsMember reports whether the user belongs to the project. Answers
// are cached briefly; member changes invalidate the affected key.
func (s *ProjectService) IsMember(projectID, userID uint) (bool, error) {
	key := memberKey{ProjectID: projectID, UserID: userID}
	if ok, hit := s.membership.Get(key); hit {
		return ok, nil
	}
	ok, err := s.projects.IsMember(projectID, userID)
	if err != nil {
		return false, err
	}
	s.membership.Set(key, ok, membershipTTL)
	return ok, nil
}

// InviteMembers adds the named users to the project. The actor must be
// the manager or an existing member.
func (s *ProjectService) InviteMembers(projectID, actorID uint, usernames []string) error {
	project, err := s.Get(projectID)
	if err != nil {
		return err
	}
	if !s.isManagerOrMember(project, actorID) {
		return ErrNotProjectMember
	}

	for _, username := range usernames {
		user, err := s.users.FindByUsername(username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := s.projects.AddMember(projectID, user.ID); err != nil {
			return err
		}
		s.membership.Delete(memberKey{ProjectID: projectID, UserID: user.ID})
	}
	return nil
}

// SetManager makes the given user the project manager. The actor must
// be a member; the new manager is added to the member set to keep the
// invariant.
func (s *ProjectService) SetManager(projectID, actorID, managerID uint) (*models.User, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}
	if !s.isManagerOrMember(project, actorID) {
		return nil, ErrNotProjectMember
	}

	manager, err := s.users.FindByID(managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	isMember, err := s.projects.IsMember(projectID, managerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		if err := s.projects.AddMember(projectID, managerID); err != nil {
			return nil, err
		}
		s.membership.Delete(memberKey{ProjectID: projectID, UserID: managerID})
	}

	project.ManagerID = &manager.ID
	if err := s.projects.Save(project); err != nil {
		return nil, err
	}
	return manager, nil
}

// KickMember removes a member from the project. Only the manager may
// kick, and the manager cannot be kicked.
func (s *ProjectService) KickMember(projectID, actorID, memberID uint) (*models.User, error) {
	project, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}
	if project.ManagerID == nil || *project.ManagerID != actorID {
		return nil, ErrNotProjectManager
	}
	if *project.ManagerID == memberID {
		return nil, ErrCannotKickManager
	}

	member, err := s.users.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.projects.RemoveMember(projectID, memberID); err != nil {
		return nil, err
	}
	s.membership.Delete(memberKey{ProjectID: projectID, UserID: memberID})
	return member, nil
}

// Delete removes the project and everything it owns. Manager only.
func (s *ProjectService) Delete(projectID, actorID uint) error {
	project, err := s.Get(projectID)
	if err != nil {
		return err
	}
	if project.ManagerID == nil || *project.ManagerID != actorID {
		return ErrNotProjectManager
	}
	if err := s.projects.Delete(projectID); err != nil {
		return err
	}
	s.membership.Clear()
	return nil
}

func (s *ProjectService) isManagerOrMember(project *models.Project, userID uint) bool {
	if project.ManagerID != nil && *project.ManagerID == userID {
		return true
	}
	ok, err := s.IsMember(project.ID, userID)
	return err == nil && ok
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
