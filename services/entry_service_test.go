package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarzhanov/fishing-live/models"
	"github.com/sarzhanov/fishing-live/repositories"
)

type mockHourlyRepo struct {
	entries map[int]*models.HourlyEntry
	nextID  int
}

func newMockHourlyRepo() *mockHourlyRepo {
	return &mockHourlyRepo{entries: make(map[int]*models.HourlyEntry)}
}

func (m *mockHourlyRepo) Create(_ context.Context, entry *models.HourlyEntry) error {
	m.nextID++
	entry.ID = m.nextID
	copied := *entry
	m.entries[entry.ID] = &copied
	return nil
}

func (m *mockHourlyRepo) GetByID(_ context.Context, id int) (*models.HourlyEntry, error) {
	entry, ok := m.entries[id]
	if !ok {
		return nil, repositories.ErrHourlyEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (m *mockHourlyRepo) Update(_ context.Context, entry *models.HourlyEntry) error {
	stored, ok := m.entries[entry.ID]
	if !ok {
		return repositories.ErrHourlyEntryNotFound
	}
	stored.FishCount = entry.FishCount
	stored.Weight = entry.Weight
	stored.Status = entry.Status
	return nil
}

func (m *mockHourlyRepo) UpdateStatus(_ context.Context, id int, status models.EntryStatus) error {
	stored, ok := m.entries[id]
	if !ok {
		return repositories.ErrHourlyEntryNotFound
	}
	stored.Status = status
	return nil
}

func (m *mockHourlyRepo) List(_ context.Context) ([]models.HourlyEntry, error) {
	out := make([]models.HourlyEntry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (m *mockHourlyRepo) ListByCompetitorAndHour(_ context.Context, competitorID, hour int) ([]models.HourlyEntry, error) {
	out := make([]models.HourlyEntry, 0)
	for _, e := range m.entries {
		if e.CompetitorID == competitorID && e.Hour == hour {
			out = append(out, *e)
		}
	}
	return out, nil
}

type mockBigCatchRepo struct {
	entries map[int]*models.BigCatchEntry // keyed by competitor id
	nextID  int
}

func newMockBigCatchRepo() *mockBigCatchRepo {
	return &mockBigCatchRepo{entries: make(map[int]*models.BigCatchEntry)}
}

func (m *mockBigCatchRepo) Upsert(_ context.Context, entry *models.BigCatchEntry) error {
	if existing, ok := m.entries[entry.CompetitorID]; ok {
		entry.ID = existing.ID
	} else {
		m.nextID++
		entry.ID = m.nextID
	}
	copied := *entry
	m.entries[entry.CompetitorID] = &copied
	return nil
}

func (m *mockBigCatchRepo) GetByCompetitor(_ context.Context, competitorID int) (*models.BigCatchEntry, error) {
	entry, ok := m.entries[competitorID]
	if !ok {
		return nil, repositories.ErrBigCatchNotFound
	}
	copied := *entry
	return &copied, nil
}

func (m *mockBigCatchRepo) UpdateStatus(_ context.Context, id int, status models.EntryStatus) error {
	for _, e := range m.entries {
		if e.ID == id {
			e.Status = status
			return nil
		}
	}
	return repositories.ErrBigCatchNotFound
}

func (m *mockBigCatchRepo) List(_ context.Context) ([]models.BigCatchEntry, error) {
	out := make([]models.BigCatchEntry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, *e)
	}
	return out, nil
}

type mockCompetitorRepo struct {
	competitors map[int]*models.Competitor
}

func (m *mockCompetitorRepo) Create(_ context.Context, c *models.Competitor) error { return nil }
func (m *mockCompetitorRepo) Update(_ context.Context, c *models.Competitor) error { return nil }
func (m *mockCompetitorRepo) Delete(_ context.Context, id int) error               { return nil }
func (m *mockCompetitorRepo) HasEntries(_ context.Context, id int) (bool, error)   { return false, nil }

func (m *mockCompetitorRepo) GetByID(_ context.Context, id int) (*models.Competitor, error) {
	c, ok := m.competitors[id]
	if !ok {
		return nil, repositories.ErrCompetitorNotFound
	}
	return c, nil
}

func (m *mockCompetitorRepo) List(_ context.Context) ([]models.Competitor, error) {
	out := make([]models.Competitor, 0, len(m.competitors))
	for _, c := range m.competitors {
		out = append(out, *c)
	}
	return out, nil
}

type mockSettingsRepo struct {
	settings *models.Settings
}

func (m *mockSettingsRepo) Get(_ context.Context) (*models.Settings, error) {
	if m.settings == nil {
		return nil, repositories.ErrSettingsNotFound
	}
	return m.settings, nil
}

func (m *mockSettingsRepo) Update(_ context.Context, s *models.Settings) error {
	m.settings = s
	return nil
}

type mockNotifier struct {
	hourly   int
	bigCatch int
}

func (m *mockNotifier) NotifyHourlyEntries(_ context.Context) error { m.hourly++; return nil }
func (m *mockNotifier) NotifyBigCatches(_ context.Context) error    { m.bigCatch++; return nil }

func newEntryServiceFixture() (EntryService, *mockHourlyRepo, *mockBigCatchRepo, *mockNotifier) {
	hourlyRepo := newMockHourlyRepo()
	bigCatchRepo := newMockBigCatchRepo()
	competitorRepo := &mockCompetitorRepo{competitors: map[int]*models.Competitor{
		1: {ID: 1, Sector: "A", Box: 1, Status: models.CompetitorActive},
		2: {ID: 2, Sector: "B", Box: 1, Status: models.CompetitorInactive},
	}}
	settingsRepo := &mockSettingsRepo{settings: &models.Settings{ID: 1, HoursTotal: 7}}
	notifier := &mockNotifier{}
	svc := NewEntryService(hourlyRepo, bigCatchRepo, competitorRepo, settingsRepo, notifier)
	return svc, hourlyRepo, bigCatchRepo, notifier
}

func TestCreateHourlyEntry(t *testing.T) {
	svc, _, _, notifier := newEntryServiceFixture()

	entry, err := svc.CreateHourlyEntry(context.Background(), 10, HourlyEntryInput{
		CompetitorID: 1, Hour: 3, FishCount: 2, Weight: 1.5,
	})
	require.NoError(t, err)
	assert.Equal(t, models.EntryDraft, entry.Status)
	assert.Equal(t, 10, entry.JudgeID)
	assert.Equal(t, 1, notifier.hourly)
}

func TestCreateHourlyEntryValidation(t *testing.T) {
	svc, _, _, _ := newEntryServiceFixture()
	ctx := context.Background()

	cases := []struct {
		name  string
		input HourlyEntryInput
		want  error
	}{
		{"negative fish count", HourlyEntryInput{CompetitorID: 1, Hour: 1, FishCount: -1}, ErrValidationFailed},
		{"hour above rounds", HourlyEntryInput{CompetitorID: 1, Hour: 8}, ErrInvalidHour},
		{"unknown competitor", HourlyEntryInput{CompetitorID: 99, Hour: 1}, ErrCompetitorNotFound},
		{"inactive competitor", HourlyEntryInput{CompetitorID: 2, Hour: 1}, ErrCompetitorInactive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateHourlyEntry(ctx, 10, tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestHourlyEntryLifecycle(t *testing.T) {
	svc, _, _, _ := newEntryServiceFixture()
	ctx := context.Background()

	entry, err := svc.CreateHourlyEntry(ctx, 10, HourlyEntryInput{CompetitorID: 1, Hour: 1, FishCount: 1, Weight: 1})
	require.NoError(t, err)

	// Судья не может заблокировать черновик напрямую.
	_, err = svc.LockHourlyEntry(ctx, entry.ID, models.RoleJudge, false)
	assert.ErrorIs(t, err, ErrAdminLockRequired)

	entry, err = svc.SubmitHourlyEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EntrySubmitted, entry.Status)

	entry, err = svc.LockHourlyEntry(ctx, entry.ID, models.RoleJudge, false)
	require.NoError(t, err)
	assert.Equal(t, models.EntryLockedJudge, entry.Status)

	// Terminal statuses reject any further transition.
	_, err = svc.SubmitHourlyEntry(ctx, entry.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	_, err = svc.CorrectHourlyEntry(ctx, entry.ID, HourlyEntryInput{CompetitorID: 1, Hour: 1, FishCount: 5})
	assert.ErrorIs(t, err, ErrEntryLocked)
}

func TestJudgeCannotLockDraft(t *testing.T) {
	svc, _, _, _ := newEntryServiceFixture()
	ctx := context.Background()

	entry, err := svc.CreateHourlyEntry(ctx, 10, HourlyEntryInput{CompetitorID: 1, Hour: 1, FishCount: 1})
	require.NoError(t, err)

	_, err = svc.LockHourlyEntry(ctx, entry.ID, models.RoleJudge, false)
	assert.ErrorIs(t, err, ErrAdminLockRequired)

	_, err = svc.LockHourlyEntry(ctx, entry.ID, models.RoleJudge, true)
	assert.ErrorIs(t, err, ErrOfflineReconcileRequired)

	// Статус не изменился: сущность остаётся черновиком.
	stored, err := svc.ListHourlyEntries(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, models.EntryDraft, stored[0].Status)

	bc, err := svc.RecordBigCatch(ctx, 10, BigCatchInput{CompetitorID: 1, Weight: 2.0})
	require.NoError(t, err)
	_, err = svc.LockBigCatch(ctx, bc.CompetitorID, models.RoleJudge, true)
	assert.ErrorIs(t, err, ErrOfflineReconcileRequired)
}

func TestAdminLocksDraftDirectly(t *testing.T) {
	svc, _, _, _ := newEntryServiceFixture()
	ctx := context.Background()

	entry, err := svc.CreateHourlyEntry(ctx, 10, HourlyEntryInput{CompetitorID: 1, Hour: 1})
	require.NoError(t, err)

	entry, err = svc.LockHourlyEntry(ctx, entry.ID, models.RoleAdmin, true)
	require.NoError(t, err)
	assert.Equal(t, models.EntryOfflineAdmin, entry.Status)
}

func TestCorrectHourlyEntry(t *testing.T) {
	svc, hourlyRepo, _, _ := newEntryServiceFixture()
	ctx := context.Background()

	entry, err := svc.CreateHourlyEntry(ctx, 10, HourlyEntryInput{CompetitorID: 1, Hour: 1, FishCount: 1, Weight: 1})
	require.NoError(t, err)

	corrected, err := svc.CorrectHourlyEntry(ctx, entry.ID, HourlyEntryInput{CompetitorID: 1, Hour: 1, FishCount: 3, Weight: 2.5})
	require.NoError(t, err)
	assert.Equal(t, 3, corrected.FishCount)

	stored, err := hourlyRepo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.FishCount)
	assert.Equal(t, 2.5, stored.Weight)
}

func TestBigCatchLifecycle(t *testing.T) {
	svc, _, _, notifier := newEntryServiceFixture()
	ctx := context.Background()

	entry, err := svc.RecordBigCatch(ctx, 10, BigCatchInput{CompetitorID: 1, Weight: 3.2})
	require.NoError(t, err)
	assert.Equal(t, models.EntryDraft, entry.Status)

	// Re-recording before locking replaces the provisional value.
	entry, err = svc.RecordBigCatch(ctx, 10, BigCatchInput{CompetitorID: 1, Weight: 4.1})
	require.NoError(t, err)
	assert.Equal(t, 4.1, entry.Weight)

	_, err = svc.SubmitBigCatch(ctx, 1)
	require.NoError(t, err)
	entry, err = svc.LockBigCatch(ctx, 1, models.RoleAdmin, false)
	require.NoError(t, err)
	assert.Equal(t, models.EntryLockedAdmin, entry.Status)

	_, err = svc.RecordBigCatch(ctx, 10, BigCatchInput{CompetitorID: 1, Weight: 9.9})
	assert.ErrorIs(t, err, ErrEntryLocked)
	assert.Equal(t, 4, notifier.bigCatch)
}

func TestBigCatchZeroWeightRejected(t *testing.T) {
	svc, _, _, _ := newEntryServiceFixture()
	_, err := svc.RecordBigCatch(context.Background(), 10, BigCatchInput{CompetitorID: 1, Weight: 0})
	assert.ErrorIs(t, err, ErrValidationFailed)
}
