package event

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/labchat/labchat-server/internal/errdef"
	"github.com/labchat/labchat-server/pkg/calendar"
	"github.com/labchat/labchat-server/pkg/lookup"
	"github.com/labchat/labchat-server/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.Lab{},
		&model.Member{},
		&model.EventType{},
		&model.EventStatus{},
		&model.Instrument{},
		&model.Event{},
		&model.EventAssignment{},
	)
	require.NoError(t, err)

	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	statuses := lookup.NewService(log, lookup.NewRepository(db))
	return NewService(log, NewRepository(db), statuses), db
}

func seedLab(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&model.Lab{ID: 1, Name: "biolab"}).Error)
	require.NoError(t, db.Create(&model.Member{ID: 1, DisplayName: "Ada"}).Error)
	require.NoError(t, db.Create(&model.Member{ID: 2, DisplayName: "Grace"}).Error)
	require.NoError(t, db.Create(&model.EventType{ID: 1, Name: "Meeting", Color: "#10B981", LabID: 1}).Error)
	require.NoError(t, db.Create(&model.EventStatus{ID: 1, Name: "In Progress", LabID: 1}).Error)
	require.NoError(t, db.Create(&model.EventStatus{ID: 2, Name: "Done", LabID: 1}).Error)
}

func newEvent(title string, start, end time.Time) *model.Event {
	labID := uint(1)
	typeID := uint(1)
	return &model.Event{
		Title:      title,
		StartDate:  start,
		EndDate:    end,
		TypeID:     &typeID,
		AssignerID: 1,
		LabID:      &labID,
	}
}

// rrule truncates to whole seconds, so fixtures stay at second precision
var noon = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	event := newEvent("Standup", noon, noon.Add(time.Hour))
	event.Assignments = []model.EventAssignment{{MemberID: 2}, {MemberID: 1}}

	err := service.Create(ctx, event, "In Progress")

	require.NoError(t, err)
	require.NotZero(t, event.ID)

	got, err := service.FindById(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup", got.Title)
	require.NotNil(t, got.Status)
	assert.Equal(t, "In Progress", got.Status.Name)
	// submitted order survives the round trip
	require.Len(t, got.Assignments, 2)
	assert.Equal(t, uint(2), got.Assignments[0].MemberID)
	assert.Equal(t, uint(1), got.Assignments[1].MemberID)
	assert.Equal(t, "#10B981", got.Color)
}

func TestService_CreateRejectsInvertedDates(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	err := service.Create(ctx, newEvent("Backwards", noon, noon.Add(-time.Hour)), "")

	require.Error(t, err)
	assert.True(t, errdef.IsBadRequest(err))
}

func TestService_CreateRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	err := service.Create(ctx, newEvent("Standup", noon, noon.Add(time.Hour)), "Cancelled")

	require.Error(t, err)
	assert.True(t, errdef.IsNotFound(err))
}

func TestService_FindAll(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	require.NoError(t, service.Create(ctx, newEvent("Second", noon.Add(2*time.Hour), noon.Add(3*time.Hour)), ""))
	require.NoError(t, service.Create(ctx, newEvent("First", noon, noon.Add(time.Hour)), ""))
	require.NoError(t, service.Create(ctx, newEvent("Elsewhere", noon.AddDate(0, 2, 0), noon.AddDate(0, 2, 0).Add(time.Hour)), ""))

	events, err := service.FindAll(ctx, 1, noon.AddDate(0, 0, -1), noon.AddDate(0, 0, 1))

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "First", events[0].Title)
	assert.Equal(t, "Second", events[1].Title)
}

func TestService_FindAllRejectsInvertedRange(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	_, err := service.FindAll(ctx, 1, noon, noon.Add(-time.Hour))

	require.Error(t, err)
	assert.True(t, errdef.IsBadRequest(err))
}

func TestService_CreateSeries(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	template := newEvent("Weekly sync", noon, noon.Add(time.Hour))
	template.Assignments = []model.EventAssignment{{MemberID: 2}}

	result, err := service.CreateSeries(ctx, template, "In Progress", calendar.FrequencyWeekly, 3)

	require.NoError(t, err)
	require.Len(t, result.Created, 3)
	assert.Empty(t, result.Failed)

	for i, created := range result.Created {
		require.NotNil(t, created.SeriesID)
		assert.Equal(t, result.SeriesID, *created.SeriesID)
		assert.Equal(t, noon.AddDate(0, 0, 7*i), created.StartDate)
		assert.Equal(t, time.Hour, created.EndDate.Sub(created.StartDate))
	}

	got, err := service.FindById(ctx, result.Created[2].ID)
	require.NoError(t, err)
	require.Len(t, got.Assignments, 1)
	assert.Equal(t, uint(2), got.Assignments[0].MemberID)
}

func TestService_PreviewSeriesCreatesNothing(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	preview, err := service.PreviewSeries(ctx, newEvent("Daily", noon, noon.Add(time.Hour)), "", calendar.FrequencyDaily, 30)

	require.NoError(t, err)
	assert.Len(t, preview.Occurrences, calendar.PreviewLimit)
	assert.Equal(t, 20, preview.Remainder)

	var count int64
	require.NoError(t, db.Model(&model.Event{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestService_DeleteSeries(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	require.NoError(t, service.Create(ctx, newEvent("Loner", noon, noon.Add(time.Hour)), ""))
	result, err := service.CreateSeries(ctx, newEvent("Daily", noon, noon.Add(time.Hour)), "", calendar.FrequencyDaily, 4)
	require.NoError(t, err)

	deleted, err := service.DeleteSeries(ctx, result.SeriesID)

	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	var count int64
	require.NoError(t, db.Model(&model.Event{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = service.DeleteSeries(ctx, result.SeriesID)
	require.Error(t, err)
	assert.True(t, errdef.IsNotFound(err))
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	event := newEvent("Standup", noon, noon.Add(time.Hour))
	event.Assignments = []model.EventAssignment{{MemberID: 1}, {MemberID: 2}}
	require.NoError(t, service.Create(ctx, event, ""))

	updated := newEvent("Retro", noon.Add(time.Hour), noon.Add(2*time.Hour))
	updated.Assignments = []model.EventAssignment{{MemberID: 2}}

	got, err := service.Update(ctx, event.ID, updated, "Done")

	require.NoError(t, err)
	assert.Equal(t, "Retro", got.Title)
	require.NotNil(t, got.Status)
	assert.Equal(t, "Done", got.Status.Name)
	require.Len(t, got.Assignments, 1)
	assert.Equal(t, uint(2), got.Assignments[0].MemberID)

	// the replaced assignments are gone, not orphaned
	var count int64
	require.NoError(t, db.Model(&model.EventAssignment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestService_UpdateMissingEvent(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	_, err := service.Update(ctx, 42, newEvent("Ghost", noon, noon.Add(time.Hour)), "")

	require.Error(t, err)
	assert.True(t, errdef.IsNotFound(err))
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	event := newEvent("Standup", noon, noon.Add(time.Hour))
	require.NoError(t, service.Create(ctx, event, "In Progress"))

	got, err := service.UpdateStatus(ctx, event.ID, "Done")

	require.NoError(t, err)
	require.NotNil(t, got.Status)
	assert.Equal(t, "Done", got.Status.Name)

	_, err = service.UpdateStatus(ctx, event.ID, "Cancelled")
	require.Error(t, err)
	assert.True(t, errdef.IsNotFound(err))
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	event := newEvent("Standup", noon, noon.Add(time.Hour))
	event.Assignments = []model.EventAssignment{{MemberID: 1}}
	require.NoError(t, service.Create(ctx, event, ""))

	require.NoError(t, service.Delete(ctx, event.ID))

	_, err := service.FindById(ctx, event.ID)
	require.Error(t, err)
	assert.True(t, errdef.IsNotFound(err))

	err = service.Delete(ctx, event.ID)
	require.Error(t, err)
	assert.True(t, errdef.IsNotFound(err))
}

func TestService_CalendarViewMonth(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	require.NoError(t, service.Create(ctx, newEvent("Single", noon, noon.Add(time.Hour)), ""))
	require.NoError(t, service.Create(ctx, newEvent("Span", noon, noon.AddDate(0, 0, 2)), ""))

	page, err := service.CalendarView(ctx, 1, ViewOptions{Date: noon, View: calendar.ViewMonth})

	require.NoError(t, err)
	assert.Equal(t, calendar.ViewMonth, page.View)
	require.Len(t, page.Events, 2)
	require.Len(t, page.SingleDayEvents, 1)
	require.Len(t, page.MultiDayEvents, 1)

	bucket := page.Days[calendar.DayKey(noon)]
	assert.Len(t, bucket.Events, 1)
	assert.Len(t, bucket.MultiDayEvents, 1)
	// the span covers three grid days
	assert.Len(t, page.Days[calendar.DayKey(noon.AddDate(0, 0, 2))].MultiDayEvents, 1)
}

func TestService_CalendarViewDayFiltersToDay(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	require.NoError(t, service.Create(ctx, newEvent("Today", noon, noon.Add(time.Hour)), ""))

	page, err := service.CalendarView(ctx, 1, ViewOptions{Date: noon, View: calendar.ViewDay})
	require.NoError(t, err)
	assert.Len(t, page.Events, 1)

	page, err = service.CalendarView(ctx, 1, ViewOptions{Date: noon.AddDate(0, 0, 1), View: calendar.ViewDay})
	require.NoError(t, err)
	assert.Empty(t, page.Events)
}

func TestService_CalendarViewMemberFilter(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	assigned := newEvent("Assigned", noon, noon.Add(time.Hour))
	assigned.Assignments = []model.EventAssignment{{MemberID: 2}}
	require.NoError(t, service.Create(ctx, assigned, ""))
	require.NoError(t, service.Create(ctx, newEvent("Unassigned", noon, noon.Add(time.Hour)), ""))

	member := uint(1)
	page, err := service.CalendarView(ctx, 1, ViewOptions{
		Date:   noon,
		View:   calendar.ViewMonth,
		Filter: calendar.Filter{MemberID: &member},
	})

	// the assigner only counts while no assignments exist
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.Equal(t, "Unassigned", page.Events[0].Title)
}

func TestService_CalendarViewRejectsUnknownView(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	_, err := service.CalendarView(ctx, 1, ViewOptions{Date: noon, View: "fortnight"})

	require.Error(t, err)
	assert.True(t, errdef.IsBadRequest(err))
}

func TestService_ICS(t *testing.T) {
	ctx := context.Background()
	service, db := newTestService(t)
	seedLab(t, db)

	event := newEvent("Centrifuge run", noon, noon.Add(time.Hour))
	require.NoError(t, service.Create(ctx, event, ""))

	feed, err := service.ICS(ctx, 1, noon.AddDate(0, 0, -1), noon.AddDate(0, 0, 1))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(feed, "BEGIN:VCALENDAR"))
	assert.Contains(t, feed, "SUMMARY:Centrifuge run")
	assert.Contains(t, feed, "BEGIN:VEVENT")
}
