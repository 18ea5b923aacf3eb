package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func at(hour, minute int) *time.Time {
	t := time.Date(2025, 1, 6, hour, minute, 0, 0, ist)
	return &t
}

func TestClassify(t *testing.T) {
	c := NewClassifier(ist)

	tests := []struct {
		name      string
		in, out   *time.Time
		status    attendance.DayStatus
		credit    float64
		hours     float64
		overtime  float64
		underwork bool
	}{
		{"exactly nine hours is full", at(9, 0), at(18, 0), attendance.DayFull, 1, 9, 0, false},
		{"nine and a half hours has overtime", at(9, 0), at(18, 30), attendance.DayFull, 1, 9.5, 0.5, false},
		{"seven hours is underwork", at(10, 0), at(17, 0), attendance.DayUnderwork, 1, 7, 0, true},
		{"four hours is half", at(10, 0), at(14, 0), attendance.DayHalf, 0.5, 4, 0, false},
		{"six and a half hours is half", at(11, 0), at(17, 30), attendance.DayHalf, 0.5, 6.5, 0, false},
		{"three hours with late flag is half", at(17, 0), at(20, 0), attendance.DayHalf, 0.5, 3, 0, false},
		{"late in short day is half", at(12, 0), at(14, 0), attendance.DayHalf, 0.5, 2, 0, false},
		{"early out short day is half", at(9, 0), at(10, 0), attendance.DayHalf, 0.5, 1, 0, false},
		{"hours dominate late flag", at(11, 0), at(20, 30), attendance.DayFull, 1, 9.5, 0.5, false},
		{"checkout before checkin clamps to zero", at(18, 0), at(17, 0), attendance.DayHalf, 0.5, 0, 0, false},
		{"missing checkout", at(9, 0), nil, attendance.DayAbsent, 0, 0, 0, false},
		{"missing both", nil, nil, attendance.DayAbsent, 0, 0, 0, false},
		{"zero time is invalid", &time.Time{}, at(18, 0), attendance.DayAbsent, 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.in, tt.out)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.credit, got.DayCredit)
			assert.Equal(t, tt.hours, got.TotalHours)
			assert.Equal(t, tt.overtime, got.OvertimeHours)
			assert.Equal(t, tt.underwork, got.Underwork)
			assert.GreaterOrEqual(t, got.TotalHours, 0.0)
		})
	}
}

func TestApplyThresholds(t *testing.T) {
	tests := []struct {
		hours    float64
		lateIn   bool
		earlyOut bool
		status   attendance.DayStatus
		credit   float64
	}{
		{9, false, false, attendance.DayFull, 1},
		{7, false, false, attendance.DayUnderwork, 1},
		{4, false, false, attendance.DayHalf, 0.5},
		{3, false, false, attendance.DayAbsent, 0},
		{3, true, false, attendance.DayHalf, 0.5},
		{3, false, true, attendance.DayHalf, 0.5},
		{0, false, false, attendance.DayAbsent, 0},
		{9.5, true, true, attendance.DayFull, 1},
		{6.99, false, false, attendance.DayHalf, 0.5},
	}
	for _, tt := range tests {
		got := applyThresholds(attendance.DailyComputation{LateIn: tt.lateIn, EarlyOut: tt.earlyOut}, tt.hours)
		assert.Equal(t, tt.status, got.Status, "hours=%v late=%v early=%v", tt.hours, tt.lateIn, tt.earlyOut)
		assert.Equal(t, tt.credit, got.DayCredit)
	}
}

func TestClassify_NextDayCheckInClampsToAbsent(t *testing.T) {
	c := NewClassifier(ist)
	in := time.Date(2025, 1, 7, 10, 0, 0, 0, ist)
	out := time.Date(2025, 1, 6, 17, 0, 0, 0, ist)
	got := c.Classify(&in, &out)
	assert.Equal(t, 0.0, got.TotalHours)
	assert.Equal(t, attendance.DayAbsent, got.Status)
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier(ist)
	assert.Equal(t, c.Classify(at(9, 7), at(17, 52)), c.Classify(at(9, 7), at(17, 52)))
}

func TestClassify_RoundsToTwoDecimals(t *testing.T) {
	c := NewClassifier(ist)
	got := c.Classify(at(9, 0), at(18, 20))
	assert.Equal(t, 9.33, got.TotalHours)
	assert.Equal(t, 0.33, got.OvertimeHours)
}

func TestClassify_HourOfDayUsesOfficeZone(t *testing.T) {
	c := NewClassifier(ist)
	// 05:45 UTC is 11:15 in IST, so the check-in is late.
	in := time.Date(2025, 1, 6, 5, 45, 0, 0, time.UTC)
	out := in.Add(5 * time.Hour)
	got := c.Classify(&in, &out)
	assert.True(t, got.LateIn)
	assert.Equal(t, attendance.DayHalf, got.Status)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), got.Date)
}

func TestDateOf(t *testing.T) {
	c := NewClassifier(ist)
	// 20:00 UTC on Jan 6 is already Jan 7 in IST.
	got := c.DateOf(time.Date(2025, 1, 6, 20, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), got)
}

func TestClassifyRecords_SumsSessions(t *testing.T) {
	c := NewClassifier(ist)
	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	records := []attendance.Record{
		{CheckInTime: *at(14, 0), CheckOutTime: at(19, 0)},
		{CheckInTime: *at(8, 0), CheckOutTime: at(12, 0)},
	}

	got := c.ClassifyRecords(date, records)
	assert.Equal(t, date, got.Date)
	assert.Equal(t, 9.0, got.TotalHours)
	assert.Equal(t, attendance.DayFull, got.Status)
	assert.Equal(t, 0.0, got.OvertimeHours)
	require.NotNil(t, got.CheckIn)
	require.NotNil(t, got.CheckOut)
	assert.True(t, got.CheckIn.Equal(*at(8, 0)))
	assert.True(t, got.CheckOut.Equal(*at(19, 0)))
}

func TestClassifyRecords_FlagsFromDayBounds(t *testing.T) {
	c := NewClassifier(ist)
	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	// A short late session does not make the day late-in when the first session started early.
	got := c.ClassifyRecords(date, []attendance.Record{
		{CheckInTime: *at(9, 0), CheckOutTime: at(10, 0)},
		{CheckInTime: *at(15, 0), CheckOutTime: at(17, 30)},
	})
	assert.False(t, got.LateIn)
	assert.False(t, got.EarlyOut)
	assert.Equal(t, 3.5, got.TotalHours)
	assert.Equal(t, attendance.DayAbsent, got.Status)

	got = c.ClassifyRecords(date, []attendance.Record{
		{CheckInTime: *at(11, 30), CheckOutTime: at(13, 0)},
	})
	assert.True(t, got.LateIn)
	assert.True(t, got.EarlyOut)
	assert.Equal(t, attendance.DayHalf, got.Status)
}

func TestClassifyRecords_OpenSessionIgnoredForCheckout(t *testing.T) {
	c := NewClassifier(ist)
	records := []attendance.Record{
		{CheckInTime: *at(9, 0), CheckOutTime: at(13, 0)},
		{CheckInTime: *at(14, 0)},
	}

	got := c.ClassifyRecords(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), records)
	assert.Equal(t, 4.0, got.TotalHours)
}
