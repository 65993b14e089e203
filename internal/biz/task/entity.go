package task

import (
	"errors"
	"time"
)

type Task struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	Name       string
	Status     Status
	Node       []string
	AllNode    bool
	Target     string // 展开后的目标列表，换行分隔
	Ignore     string
	Duplicates string
	Template   string
	Type       Type

	// TaskNum 创建时固定为展开后目标数量，之后不再变化
	TaskNum  int
	Progress float64

	CreatTime string
	EndTime   string
}

func (t *Task) Stop() (*Patch, error) {
	if t.Status == StatusFinished {
		return nil, errors.New("task is already finished")
	}
	t.Status = StatusStopped
	return new(Patch).WithStatus(t.Status), nil
}

func (t *Task) Finish(endTime string) *Patch {
	t.Status = StatusFinished
	t.EndTime = endTime
	return new(Patch).WithStatus(t.Status).WithEndTime(endTime)
}

type Patch struct {
	Name     *string
	Status   *Status
	Progress *float64
	EndTime  *string
}

func NewPatch() *Patch {
	return &Patch{}
}

func (p *Patch) WithName(name string) *Patch {
	p.Name = &name
	return p
}

func (p *Patch) WithStatus(status Status) *Patch {
	p.Status = &status
	return p
}

func (p *Patch) WithProgress(progress float64) *Patch {
	p.Progress = &progress
	return p
}

func (p *Patch) WithEndTime(endTime string) *Patch {
	p.EndTime = &endTime
	return p
}
