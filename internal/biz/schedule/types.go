package schedule

type CycleType string

const (
	CycleDaily   CycleType = "daily"
	CycleNDays   CycleType = "ndays"
	CycleNHours  CycleType = "nhours"
	CycleWeekly  CycleType = "weekly"
	CycleMonthly CycleType = "monthly"
)
