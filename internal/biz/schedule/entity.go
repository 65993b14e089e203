package schedule

import "time"

// PageMonitoringID 是平台级页面监控任务的保留调度ID
const PageMonitoringID = "page_monitoring"

// ScheduledTask 周期任务定义。项目周期任务的ID等于项目ID，
// 其余为生成的ID。
type ScheduledTask struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	Name      string
	CycleType CycleType
	Day       int
	Hour      int
	Minute    int
	Week      int

	Target     string
	Ignore     string
	Node       []string
	AllNode    bool
	Template   string
	Duplicates string
	Type       string

	State    bool
	LastTime string
	NextTime string
}

type Patch struct {
	Name     *string
	State    *bool
	LastTime *string
	NextTime *string
}

func NewPatch() *Patch {
	return &Patch{}
}

func (p *Patch) WithName(name string) *Patch {
	p.Name = &name
	return p
}

func (p *Patch) WithState(state bool) *Patch {
	p.State = &state
	return p
}

func (p *Patch) WithLastTime(t string) *Patch {
	p.LastTime = &t
	return p
}

func (p *Patch) WithNextTime(t string) *Patch {
	p.NextTime = &t
	return p
}
