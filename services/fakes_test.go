package services

import (
	"context"
	"io"
	"sort"

	"github.com/Olzhas-T/contest-system/models"
	"github.com/Olzhas-T/contest-system/repositories"
	"github.com/Olzhas-T/contest-system/storage"
)

// fixture — общее состояние фейковых репозиториев в памяти.
type fixture struct {
	users        map[int]*models.User
	competitions map[int]*models.Competition
	teams        map[int]*models.Team
	participants map[int]*models.Participant
	sites        map[int]*models.Site
	notifs       []*models.Notification

	roles       map[int]models.RoleSet
	coordinated map[int][]int

	nextTeamID        int
	nextParticipantID int
	nextUserID        int
}

func newFixture() *fixture {
	return &fixture{
		users:             make(map[int]*models.User),
		competitions:      make(map[int]*models.Competition),
		teams:             make(map[int]*models.Team),
		participants:      make(map[int]*models.Participant),
		sites:             make(map[int]*models.Site),
		roles:             make(map[int]models.RoleSet),
		coordinated:       make(map[int][]int),
		nextTeamID:        1,
		nextParticipantID: 1,
		nextUserID:        1,
	}
}

func (f *fixture) addUser(u *models.User) *models.User {
	if u.ID == 0 {
		u.ID = f.nextUserID
	}
	if u.ID >= f.nextUserID {
		f.nextUserID = u.ID + 1
	}
	f.users[u.ID] = u
	return u
}

func (f *fixture) addTeam(t *models.Team) *models.Team {
	if t.ID == 0 {
		t.ID = f.nextTeamID
	}
	if t.ID >= f.nextTeamID {
		f.nextTeamID = t.ID + 1
	}
	f.teams[t.ID] = t
	return t
}

func (f *fixture) addParticipant(p *models.Participant) *models.Participant {
	if p.ID == 0 {
		p.ID = f.nextParticipantID
	}
	if p.ID >= f.nextParticipantID {
		f.nextParticipantID = p.ID + 1
	}
	f.participants[p.ID] = p
	return p
}

func (f *fixture) teamMembers(teamID int) []*models.Participant {
	var members []*models.Participant
	for _, p := range f.participants {
		if p.TeamID == teamID {
			members = append(members, p)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members
}

// --- UserRepository ---

type fakeUserRepo struct{ f *fixture }

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.f.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	r.f.addUser(user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, ok := r.f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetRoles(ctx context.Context, userID, competitionID int) (models.RoleSet, error) {
	rs, ok := r.f.roles[userID]
	if !ok {
		return models.NewRoleSet(), nil
	}
	return rs, nil
}

func (r *fakeUserRepo) ListEmailsByIDs(ctx context.Context, ids []int) ([]string, error) {
	var emails []string
	for _, id := range ids {
		if u, ok := r.f.users[id]; ok {
			emails = append(emails, u.Email)
		}
	}
	return emails, nil
}

// --- CompetitionRepository ---

type fakeCompetitionRepo struct{ f *fixture }

func (r *fakeCompetitionRepo) GetByID(ctx context.Context, id int) (*models.Competition, error) {
	c, ok := r.f.competitions[id]
	if !ok {
		return nil, repositories.ErrCompetitionNotFound
	}
	return c, nil
}

func (r *fakeCompetitionRepo) GetByCode(ctx context.Context, code string) (*models.Competition, error) {
	for _, c := range r.f.competitions {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, repositories.ErrCompetitionNotFound
}

func (r *fakeCompetitionRepo) ListIDs(ctx context.Context) ([]int, error) {
	var ids []int
	for id := range r.f.competitions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// --- TeamRepository ---

type fakeTeamRepo struct{ f *fixture }

func (r *fakeTeamRepo) Create(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	r.f.addTeam(team)
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	t, ok := r.f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return t, nil
}

func (r *fakeTeamRepo) GetByMember(ctx context.Context, userID, competitionID int) (*models.Team, error) {
	for _, p := range r.f.participants {
		if p.UserID == userID && p.CompetitionID == competitionID {
			if t, ok := r.f.teams[p.TeamID]; ok {
				return t, nil
			}
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) ListPendingByCoach(ctx context.Context, competitionID, coachID int) ([]*models.Team, error) {
	var teams []*models.Team
	for _, t := range r.f.teams {
		if t.CompetitionID == competitionID && t.CoachID == coachID && t.Status == models.TeamStatusPending {
			teams = append(teams, t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (r *fakeTeamRepo) ListWithPendingRequests(ctx context.Context, competitionID int) ([]*models.Team, error) {
	var teams []*models.Team
	for _, t := range r.f.teams {
		if t.CompetitionID == competitionID && (t.PendingName != nil || t.PendingSiteID != nil) {
			teams = append(teams, t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (r *fakeTeamRepo) UpdateSize(ctx context.Context, exec repositories.SQLExecutor, id, size int) error {
	t, ok := r.f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.Size = size
	return nil
}

func (r *fakeTeamRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.TeamStatus) error {
	t, ok := r.f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.Status = status
	return nil
}

func (r *fakeTeamRepo) UpdateStatusBatch(ctx context.Context, exec repositories.SQLExecutor, ids []int, status models.TeamStatus) error {
	for _, id := range ids {
		if _, ok := r.f.teams[id]; !ok {
			return repositories.ErrTeamNotFound
		}
	}
	for _, id := range ids {
		r.f.teams[id].Status = status
	}
	return nil
}

func (r *fakeTeamRepo) GetStatuses(ctx context.Context, ids []int) (map[int]models.TeamStatus, error) {
	statuses := make(map[int]models.TeamStatus)
	for _, id := range ids {
		if t, ok := r.f.teams[id]; ok {
			statuses[id] = t.Status
		}
	}
	return statuses, nil
}

func (r *fakeTeamRepo) CountOwnedByCoach(ctx context.Context, coachID, competitionID int, ids []int) (int, error) {
	count := 0
	for _, id := range ids {
		if t, ok := r.f.teams[id]; ok && t.CoachID == coachID && t.CompetitionID == competitionID {
			count++
		}
	}
	return count, nil
}

func (r *fakeTeamRepo) SetPendingName(ctx context.Context, id int, name string) error {
	t, ok := r.f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.PendingName = &name
	return nil
}

func (r *fakeTeamRepo) CommitPendingName(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	t, ok := r.f.teams[id]
	if !ok || t.PendingName == nil {
		return repositories.ErrTeamNotFound
	}
	t.Name = *t.PendingName
	t.PendingName = nil
	return nil
}

func (r *fakeTeamRepo) ClearPendingName(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	t, ok := r.f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.PendingName = nil
	return nil
}

func (r *fakeTeamRepo) SetPendingSite(ctx context.Context, id, siteID int) error {
	t, ok := r.f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.PendingSiteID = &siteID
	return nil
}

func (r *fakeTeamRepo) CommitPendingSite(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	t, ok := r.f.teams[id]
	if !ok || t.PendingSiteID == nil {
		return repositories.ErrTeamNotFound
	}
	t.SiteID = *t.PendingSiteID
	t.PendingSiteID = nil
	t.Seat = nil
	return nil
}

func (r *fakeTeamRepo) ClearPendingSite(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	t, ok := r.f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.PendingSiteID = nil
	return nil
}

func (r *fakeTeamRepo) UpdateSeat(ctx context.Context, teamID, siteID int, seat string) error {
	t, ok := r.f.teams[teamID]
	if !ok || t.SiteID != siteID {
		return repositories.ErrTeamNotAtSite
	}
	t.Seat = &seat
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(ctx context.Context, id int, key *string) error {
	t, ok := r.f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.LogoKey = key
	return nil
}

func (r *fakeTeamRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	if _, ok := r.f.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.f.teams, id)
	return nil
}

// --- ParticipantRepository ---

type fakeParticipantRepo struct{ f *fixture }

func (r *fakeParticipantRepo) Create(ctx context.Context, exec repositories.SQLExecutor, p *models.Participant) error {
	for _, existing := range r.f.participants {
		if existing.UserID == p.UserID && existing.CompetitionID == p.CompetitionID {
			return repositories.ErrParticipantConflict
		}
	}
	r.f.addParticipant(p)
	return nil
}

func (r *fakeParticipantRepo) GetByUserAndCompetition(ctx context.Context, userID, competitionID int) (*models.Participant, error) {
	for _, p := range r.f.participants {
		if p.UserID == userID && p.CompetitionID == competitionID {
			return p, nil
		}
	}
	return nil, repositories.ErrParticipantNotFound
}

func (r *fakeParticipantRepo) ListByTeamIDs(ctx context.Context, teamIDs []int) (map[int][]*models.Participant, error) {
	result := make(map[int][]*models.Participant)
	for _, teamID := range teamIDs {
		if members := r.f.teamMembers(teamID); len(members) > 0 {
			result[teamID] = members
		}
	}
	return result, nil
}

func (r *fakeParticipantRepo) UpdateTeam(ctx context.Context, exec repositories.SQLExecutor, participantID, teamID int) error {
	p, ok := r.f.participants[participantID]
	if !ok {
		return repositories.ErrParticipantNotFound
	}
	p.TeamID = teamID
	return nil
}

func (r *fakeParticipantRepo) ReassignTeam(ctx context.Context, exec repositories.SQLExecutor, teamID int, participantIDs []int) error {
	for _, id := range participantIDs {
		p, ok := r.f.participants[id]
		if !ok {
			return repositories.ErrParticipantNotFound
		}
		p.TeamID = teamID
	}
	return nil
}

func (r *fakeParticipantRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	if _, ok := r.f.participants[id]; !ok {
		return repositories.ErrParticipantNotFound
	}
	delete(r.f.participants, id)
	return nil
}

// --- SiteRepository ---

type fakeSiteRepo struct{ f *fixture }

func (r *fakeSiteRepo) GetByID(ctx context.Context, id int) (*models.Site, error) {
	s, ok := r.f.sites[id]
	if !ok {
		return nil, repositories.ErrSiteNotFound
	}
	return s, nil
}

func (r *fakeSiteRepo) ListCoordinatedIDs(ctx context.Context, userID, competitionID int) ([]int, error) {
	return r.f.coordinated[userID], nil
}

// --- NotificationRepository ---

type fakeNotifRepo struct{ f *fixture }

func (r *fakeNotifRepo) Create(ctx context.Context, exec repositories.SQLExecutor, n *models.Notification) error {
	n.ID = len(r.f.notifs) + 1
	r.f.notifs = append(r.f.notifs, n)
	return nil
}

func (r *fakeNotifRepo) ListByUser(ctx context.Context, userID, competitionID int) ([]*models.Notification, error) {
	var result []*models.Notification
	for _, n := range r.f.notifs {
		if n.CompetitionID == competitionID && n.UserID != nil && *n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (r *fakeNotifRepo) DeleteByTeamID(ctx context.Context, exec repositories.SQLExecutor, teamID int) error {
	kept := r.f.notifs[:0]
	for _, n := range r.f.notifs {
		if n.TeamID == nil || *n.TeamID != teamID {
			kept = append(kept, n)
		}
	}
	r.f.notifs = kept
	return nil
}

// --- NotificationSink ---

type fakeSink struct {
	withdrawals   []WithdrawalNote
	nameRequests  []NameChangeNote
	nameResolved  []NameChangeNote
	siteRequests  []SiteChangeNote
	siteResolved  []SiteChangeNote
	seatsAssigned []SeatNote
	reminders     []ReminderNote
}

func (s *fakeSink) TeamWithdrawn(ctx context.Context, note WithdrawalNote) {
	s.withdrawals = append(s.withdrawals, note)
}

func (s *fakeSink) NameChangeRequested(ctx context.Context, note NameChangeNote) {
	s.nameRequests = append(s.nameRequests, note)
}

func (s *fakeSink) NameChangeResolved(ctx context.Context, note NameChangeNote) {
	s.nameResolved = append(s.nameResolved, note)
}

func (s *fakeSink) SiteChangeRequested(ctx context.Context, note SiteChangeNote) {
	s.siteRequests = append(s.siteRequests, note)
}

func (s *fakeSink) SiteChangeResolved(ctx context.Context, note SiteChangeNote) {
	s.siteResolved = append(s.siteResolved, note)
}

func (s *fakeSink) SeatAssigned(ctx context.Context, note SeatNote) {
	s.seatsAssigned = append(s.seatsAssigned, note)
}

func (s *fakeSink) ApprovalReminder(ctx context.Context, note ReminderNote) {
	s.reminders = append(s.reminders, note)
}

// --- FileUploader ---

type fakeUploader struct {
	uploaded map[string][]byte
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if u.uploaded == nil {
		u.uploaded = make(map[string][]byte)
	}
	u.uploaded[key] = data
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	delete(u.uploaded, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}
