package testing

import (
	"context"
	"sync"
	"time"

	"github.com/z3r0n3br4instorm/duothan-onboarding/storage"
)

// In-memory implementations of the storage interfaces. They reproduce
// the conditional-insert semantics of the DynamoDB stores so the
// uniqueness races can be exercised without a running database. Setting
// Err makes every call fail with it, for driving the boundary error
// translation.

type FakeTeamCodeStorage struct {
	mu    sync.Mutex
	Items map[string]*storage.TeamCode
	Err   error
}

func NewFakeTeamCodeStorage() *FakeTeamCodeStorage {
	return &FakeTeamCodeStorage{Items: make(map[string]*storage.TeamCode)}
}

func (s *FakeTeamCodeStorage) Get(_ context.Context, code string) (*storage.TeamCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	tc, ok := s.Items[code]
	if !ok {
		return nil, storage.ErrCodeNotFound
	}
	copied := *tc
	return &copied, nil
}

func (s *FakeTeamCodeStorage) GetAll(_ context.Context) ([]*storage.TeamCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	codes := make([]*storage.TeamCode, 0, len(s.Items))
	for _, tc := range s.Items {
		copied := *tc
		codes = append(codes, &copied)
	}
	return codes, nil
}

func (s *FakeTeamCodeStorage) Create(_ context.Context, teamCode *storage.TeamCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[teamCode.Code]; ok {
		return storage.ErrItemAlreadyExists
	}
	if teamCode.CreatedAt.IsZero() {
		teamCode.CreatedAt = time.Now().UTC()
	}
	copied := *teamCode
	s.Items[teamCode.Code] = &copied
	return nil
}

func (s *FakeTeamCodeStorage) AttachTeam(_ context.Context, code string, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	tc, ok := s.Items[code]
	if !ok {
		return storage.ErrCodeNotFound
	}
	tc.TeamID = &teamID
	return nil
}

type FakeTeamStorage struct {
	mu    sync.Mutex
	Items map[string]*storage.Team
	Err   error
}

func NewFakeTeamStorage() *FakeTeamStorage {
	return &FakeTeamStorage{Items: make(map[string]*storage.Team)}
}

func (s *FakeTeamStorage) GetByName(_ context.Context, nameKey string) (*storage.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	team, ok := s.Items[nameKey]
	if !ok {
		return nil, storage.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (s *FakeTeamStorage) GetAll(_ context.Context) ([]*storage.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	teams := make([]*storage.Team, 0, len(s.Items))
	for _, team := range s.Items {
		copied := *team
		teams = append(teams, &copied)
	}
	return teams, nil
}

func (s *FakeTeamStorage) Create(_ context.Context, team *storage.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[team.NameKey]; ok {
		return storage.ErrItemAlreadyExists
	}
	copied := *team
	s.Items[team.NameKey] = &copied
	return nil
}

func (s *FakeTeamStorage) FindByEmail(_ context.Context, emailKey string) (*storage.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, team := range s.Items {
		if team.EmailKey == emailKey {
			copied := *team
			return &copied, nil
		}
	}
	return nil, nil
}

type FakeSessionStorage struct {
	mu    sync.Mutex
	Items map[string]*storage.OnboardingSession
	Err   error
}

func NewFakeSessionStorage() *FakeSessionStorage {
	return &FakeSessionStorage{Items: make(map[string]*storage.OnboardingSession)}
}

func (s *FakeSessionStorage) Get(_ context.Context, teamCode string) (*storage.OnboardingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	session, ok := s.Items[teamCode]
	if !ok {
		return nil, storage.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *FakeSessionStorage) Create(_ context.Context, session *storage.OnboardingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[session.TeamCode]; ok {
		return storage.ErrItemAlreadyExists
	}
	copied := *session
	s.Items[session.TeamCode] = &copied
	return nil
}

func (s *FakeSessionStorage) Update(_ context.Context, session *storage.OnboardingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	copied := *session
	s.Items[session.TeamCode] = &copied
	return nil
}

func (s *FakeSessionStorage) Delete(_ context.Context, teamCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.Items, teamCode)
	return nil
}

type FakeSubmissionStorage struct {
	mu    sync.Mutex
	Items map[string]*storage.Submission
	Err   error
}

func NewFakeSubmissionStorage() *FakeSubmissionStorage {
	return &FakeSubmissionStorage{Items: make(map[string]*storage.Submission)}
}

func (s *FakeSubmissionStorage) Get(_ context.Context, teamCode string, includeFileContent bool) (*storage.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	submission, ok := s.Items[teamCode]
	if !ok {
		return nil, storage.ErrSubmissionNotFound
	}
	copied := *submission
	if !includeFileContent {
		copied.Files = nil
	}
	return &copied, nil
}

func (s *FakeSubmissionStorage) Create(_ context.Context, submission *storage.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[submission.TeamCode]; ok {
		return storage.ErrItemAlreadyExists
	}
	copied := *submission
	s.Items[submission.TeamCode] = &copied
	return nil
}

func (s *FakeSubmissionStorage) Exists(_ context.Context, teamCode string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	_, ok := s.Items[teamCode]
	return ok, nil
}

// FakeHealthStorage reports a fixed latency, or the configured error.
type FakeHealthStorage struct {
	Err     error
	Latency time.Duration
}

func (s *FakeHealthStorage) Ping(_ context.Context) (time.Duration, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Latency, nil
}
