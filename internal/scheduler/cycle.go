package scheduler

import (
	"fmt"
	"time"

	"github.com/heiseqiubite/Mapping/internal/biz/schedule"
	"github.com/robfig/cron/v3"
)

// CycleSchedule 把周期任务的五种周期类型映射为触发计划。
// daily/weekly/monthly 按日历对齐；ndays/nhours 为纯间隔触发。
// monthly 的 day 取 29-31 时只在有该日的月份触发（标准cron日
// 字段语义），短月跳过而不是挪到别的日子。
func CycleSchedule(st *schedule.ScheduledTask) (cron.Schedule, error) {
	switch st.CycleType {
	case schedule.CycleDaily:
		return parseCron(fmt.Sprintf("%d %d * * *", st.Minute, st.Hour))
	case schedule.CycleWeekly:
		return parseCron(fmt.Sprintf("%d %d * * %d", st.Minute, st.Hour, st.Week))
	case schedule.CycleMonthly:
		return parseCron(fmt.Sprintf("%d %d %d * *", st.Minute, st.Hour, st.Day))
	case schedule.CycleNDays:
		interval := time.Duration(st.Day)*24*time.Hour +
			time.Duration(st.Hour)*time.Hour +
			time.Duration(st.Minute)*time.Minute
		return parseEvery(interval)
	case schedule.CycleNHours:
		interval := time.Duration(st.Hour)*time.Hour +
			time.Duration(st.Minute)*time.Minute
		return parseEvery(interval)
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadCycle, st.CycleType)
	}
}

func parseCron(spec string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCycle, err)
	}
	return sched, nil
}

func parseEvery(interval time.Duration) (cron.Schedule, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: non-positive interval", ErrBadCycle)
	}
	return cron.Every(interval), nil
}
