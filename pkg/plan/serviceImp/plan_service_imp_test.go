package serviceImp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"prodplan/database/dbtest"
	"prodplan/entities"
	goalRepoImp "prodplan/pkg/goal/repositoryImp"
	planRepoImp "prodplan/pkg/plan/repositoryImp"
	"prodplan/pkg/plan/service"
	refRepoImp "prodplan/pkg/reference/repositoryImp"
)

type fixture struct {
	db     *gorm.DB
	svc    service.PlanService
	emp    []entities.Employee
	art    []entities.Article
	groups []entities.MachineGroup
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	f := &fixture{
		db:     db,
		svc:    NewPlanService(db, planRepoImp.New(db), goalRepoImp.New(db), refRepoImp.New(db), 0),
		emp:    []entities.Employee{{Number: "1", Name: "Anna"}, {Number: "2", Name: "Bo"}},
		art:    []entities.Article{{Name: "Axel"}, {Name: "Bult"}},
		groups: []entities.MachineGroup{{Name: "Svarv"}, {Name: "Fräs"}, {Name: "Borr"}, {Name: "Slip"}, {Name: "Tvätt"}},
	}
	require.NoError(t, db.Create(&f.emp).Error)
	require.NoError(t, db.Create(&f.art).Error)
	require.NoError(t, db.Create(&f.groups).Error)
	return f
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) assign(t *testing.T, emp int, date string, art, group int, goal int) *entities.PlanItem {
	t.Helper()
	p, err := f.svc.Create(context.Background(), service.CreateInput{
		EmployeeID:     f.emp[emp].ID,
		Date:           date,
		ArticleID:      ptr(f.art[art].ID),
		MachineGroupID: ptr(f.groups[group].ID),
		Goal:           goal,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) clear(t *testing.T, emp int, date string) *entities.PlanItem {
	t.Helper()
	p, err := f.svc.Create(context.Background(), service.CreateInput{EmployeeID: f.emp[emp].ID, Date: date})
	require.NoError(t, err)
	return p
}

func (f *fixture) day(t *testing.T, emp int, date string) []entities.PlanItem {
	t.Helper()
	var out []entities.PlanItem
	require.NoError(t, f.db.Where("employee_id = ? AND date = ?", f.emp[emp].ID, date).Order("id").Find(&out).Error)
	return out
}

func TestCreateAssignmentHydratesAndDefaults(t *testing.T) {
	f := newFixture(t)
	p := f.assign(t, 0, "2026-01-08", 0, 0, 50)

	require.NotZero(t, p.ID)
	require.Equal(t, entities.StatusPlanned, p.Status)
	require.Equal(t, "Anna", p.Employee.Name)
	require.Equal(t, "Axel", p.Article.Name)
	require.Equal(t, "Svarv", p.MachineGroup.Name)
	require.Zero(t, p.QuantityDone)
}

func TestEffectiveCarriesForwardAndStopsAtVoid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	active := f.assign(t, 0, "2026-01-08", 0, 0, 50)
	f.clear(t, 0, "2026-01-10")

	got, err := f.svc.Effective(ctx, "2026-01-12")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = f.svc.Effective(ctx, "2026-01-09")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, active.ID, got[0].ID)
	require.Equal(t, "Svarv", got[0].MachineGroup.Name)

	got, err = f.svc.Effective(ctx, "2026-01-07")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestEffectiveReturnsAllItemsOfLatestDayPerEmployee(t *testing.T) {
	f := newFixture(t)
	f.assign(t, 0, "2026-01-05", 0, 0, 10)
	f.assign(t, 0, "2026-01-06", 0, 1, 20)
	f.assign(t, 0, "2026-01-06", 1, 2, 30)
	f.assign(t, 1, "2026-01-02", 1, 3, 40)
	f.assign(t, 1, "2026-01-09", 1, 4, 40)

	got, err := f.svc.Effective(context.Background(), "2026-01-07")
	require.NoError(t, err)
	require.Len(t, got, 3)

	perEmp := map[uint][]string{}
	for _, p := range got {
		require.Equal(t, p.EmployeeID, p.Employee.ID)
		perEmp[p.EmployeeID] = append(perEmp[p.EmployeeID], p.Date)
	}
	require.Equal(t, []string{"2026-01-06", "2026-01-06"}, perEmp[f.emp[0].ID])
	require.Equal(t, []string{"2026-01-02"}, perEmp[f.emp[1].ID])
}

func TestEffectiveRejectsBadDate(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Effective(context.Background(), "12/01/2026")
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestCapacityRejectsFifthJob(t *testing.T) {
	f := newFixture(t)
	for g := 0; g < 4; g++ {
		f.assign(t, 0, "2026-01-08", 0, g, 10)
	}
	before := f.day(t, 0, "2026-01-08")

	_, err := f.svc.Create(context.Background(), service.CreateInput{
		EmployeeID:     f.emp[0].ID,
		Date:           "2026-01-08",
		ArticleID:      ptr(f.art[1].ID),
		MachineGroupID: ptr(f.groups[4].ID),
		Goal:           99,
	})
	require.ErrorIs(t, err, service.ErrCapacityExceeded)
	require.EqualError(t, err, "Max 4 jobs per day allowed.")
	require.Equal(t, before, f.day(t, 0, "2026-01-08"))

	goal, err := f.svc.DefaultGoal(context.Background(), f.art[1].ID, f.groups[4].ID)
	require.NoError(t, err)
	require.Zero(t, goal)

	// other days and employees are unaffected
	f.assign(t, 0, "2026-01-09", 0, 0, 10)
	f.assign(t, 1, "2026-01-08", 0, 0, 10)
}

func TestCapacityFollowsConfiguredLimit(t *testing.T) {
	f := newFixture(t)
	f.svc = NewPlanService(f.db, planRepoImp.New(f.db), goalRepoImp.New(f.db), refRepoImp.New(f.db), 1)
	f.assign(t, 0, "2026-01-08", 0, 0, 10)
	_, err := f.svc.Create(context.Background(), service.CreateInput{
		EmployeeID: f.emp[0].ID, Date: "2026-01-08", ArticleID: ptr(f.art[0].ID), MachineGroupID: ptr(f.groups[1].ID),
	})
	require.EqualError(t, err, "Max 1 jobs per day allowed.")
}

func TestClearLeavesExactlyOneVoidMarker(t *testing.T) {
	f := newFixture(t)
	f.assign(t, 0, "2026-01-08", 0, 0, 10)
	f.assign(t, 0, "2026-01-08", 0, 1, 10)
	f.clear(t, 0, "2026-01-08")
	v := f.clear(t, 0, "2026-01-08")

	day := f.day(t, 0, "2026-01-08")
	require.Len(t, day, 1)
	require.Equal(t, v.ID, day[0].ID)
	require.True(t, day[0].IsVoid())
	require.Nil(t, v.MachineGroup)
}

func TestAssignReplacesVoidMarker(t *testing.T) {
	f := newFixture(t)
	f.clear(t, 0, "2026-01-08")
	a := f.assign(t, 0, "2026-01-08", 0, 0, 10)
	b := f.assign(t, 0, "2026-01-08", 1, 1, 10)

	day := f.day(t, 0, "2026-01-08")
	require.Len(t, day, 2)
	require.Equal(t, a.ID, day[0].ID)
	require.Equal(t, b.ID, day[1].ID)
	for _, p := range day {
		require.False(t, p.IsVoid())
	}
}

func TestClearDoesNotTouchDefaultGoal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, service.CreateInput{EmployeeID: f.emp[0].ID, Date: "2026-01-08", ArticleID: ptr(f.art[0].ID), Goal: 70})
	require.NoError(t, err)

	var n int64
	require.NoError(t, f.db.Model(&entities.DefaultGoal{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestDefaultGoalTracksLastUsedGoal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	goal, err := f.svc.DefaultGoal(ctx, f.art[0].ID, f.groups[0].ID)
	require.NoError(t, err)
	require.Zero(t, goal)

	f.assign(t, 0, "2026-01-08", 0, 0, 50)
	f.assign(t, 1, "2026-01-09", 0, 0, 65)

	goal, err = f.svc.DefaultGoal(ctx, f.art[0].ID, f.groups[0].ID)
	require.NoError(t, err)
	require.Equal(t, 65, goal)

	// no article, no memo
	_, err = f.svc.Create(ctx, service.CreateInput{EmployeeID: f.emp[0].ID, Date: "2026-01-10", MachineGroupID: ptr(f.groups[2].ID), Goal: 5})
	require.NoError(t, err)
	var n int64
	require.NoError(t, f.db.Model(&entities.DefaultGoal{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestCreateValidatesInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cases := map[string]service.CreateInput{
		"bad date":        {EmployeeID: f.emp[0].ID, Date: "2026-13-01"},
		"missing date":    {EmployeeID: f.emp[0].ID},
		"missing emp":     {Date: "2026-01-08"},
		"unknown emp":     {EmployeeID: 999, Date: "2026-01-08"},
		"unknown group":   {EmployeeID: f.emp[0].ID, Date: "2026-01-08", MachineGroupID: ptr(uint(999))},
		"unknown article": {EmployeeID: f.emp[0].ID, Date: "2026-01-08", ArticleID: ptr(uint(999)), MachineGroupID: ptr(f.groups[0].ID)},
		"negative goal":   {EmployeeID: f.emp[0].ID, Date: "2026-01-08", Goal: -1},
		"bad status":      {EmployeeID: f.emp[0].ID, Date: "2026-01-08", Status: "paused"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, in)
			require.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.assign(t, 0, "2026-01-08", 0, 0, 50)

	got, err := f.svc.Update(ctx, p.ID, service.PlanItemPatch{
		QuantityDone: ptr(12),
		Status:       ptr(entities.StatusActive),
	})
	require.NoError(t, err)
	require.Equal(t, 12, got.QuantityDone)
	require.Equal(t, entities.StatusActive, got.Status)
	require.Equal(t, 50, got.Goal)
	require.Equal(t, "Axel", got.Article.Name)
	require.Equal(t, "2026-01-08", got.Date)
	require.Nil(t, got.Comment)

	got, err = f.svc.Update(ctx, p.ID, service.PlanItemPatch{
		MachineGroupID: ptr(f.groups[3].ID),
		Comment:        ptr("Byte av verktyg"),
	})
	require.NoError(t, err)
	require.Equal(t, "Slip", got.MachineGroup.Name)
	require.Equal(t, 12, got.QuantityDone)
	require.Equal(t, "Byte av verktyg", *got.Comment)
}

func TestUpdateSkipsDayRules(t *testing.T) {
	f := newFixture(t)
	for g := 0; g < 4; g++ {
		f.assign(t, 0, "2026-01-08", 0, g, 10)
	}
	other := f.assign(t, 0, "2026-01-09", 0, 4, 10)

	_, err := f.svc.Update(context.Background(), other.ID, service.PlanItemPatch{Date: ptr("2026-01-08")})
	require.NoError(t, err)
	require.Len(t, f.day(t, 0, "2026-01-08"), 5)
}

func TestUpdateErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Update(ctx, 404, service.PlanItemPatch{Goal: ptr(1)})
	require.ErrorIs(t, err, service.ErrNotFound)

	p := f.assign(t, 0, "2026-01-08", 0, 0, 50)
	_, err = f.svc.Update(ctx, p.ID, service.PlanItemPatch{QuantityDone: ptr(-3)})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = f.svc.Update(ctx, p.ID, service.PlanItemPatch{Status: ptr(entities.TaskStatus("later"))})
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.assign(t, 0, "2026-01-08", 0, 0, 50)

	require.NoError(t, f.svc.Delete(ctx, p.ID))
	require.Empty(t, f.day(t, 0, "2026-01-08"))
	require.ErrorIs(t, f.svc.Delete(ctx, p.ID), service.ErrNotFound)
}
