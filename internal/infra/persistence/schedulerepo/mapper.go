package schedulerepo

import (
	domain "github.com/heiseqiubite/Mapping/internal/biz/schedule"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/commonrepo"
	"gorm.io/datatypes"
)

func (s *ScheduledTaskPo) FromDomain(in *domain.ScheduledTask) *ScheduledTaskPo {
	return &ScheduledTaskPo{
		Mode: commonrepo.Mode{
			ID:        in.ID,
			CreatedAt: in.CreatedAt,
			UpdatedAt: in.UpdatedAt,
		},
		Name:       in.Name,
		CycleType:  in.CycleType,
		Day:        in.Day,
		Hour:       in.Hour,
		Minute:     in.Minute,
		Week:       in.Week,
		Target:     in.Target,
		Ignore:     in.Ignore,
		Node:       datatypes.NewJSONSlice(in.Node),
		AllNode:    in.AllNode,
		Template:   in.Template,
		Duplicates: in.Duplicates,
		Type:       in.Type,
		State:      in.State,
		LastTime:   in.LastTime,
		NextTime:   in.NextTime,
	}
}

func (s *ScheduledTaskPo) ToDomain() *domain.ScheduledTask {
	return &domain.ScheduledTask{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
		Name:       s.Name,
		CycleType:  s.CycleType,
		Day:        s.Day,
		Hour:       s.Hour,
		Minute:     s.Minute,
		Week:       s.Week,
		Target:     s.Target,
		Ignore:     s.Ignore,
		Node:       s.Node,
		AllNode:    s.AllNode,
		Template:   s.Template,
		Duplicates: s.Duplicates,
		Type:       s.Type,
		State:      s.State,
		LastTime:   s.LastTime,
		NextTime:   s.NextTime,
	}
}

func patchToMap(input *domain.Patch) map[string]any {
	var values = make(map[string]any)

	if input.Name != nil {
		values["name"] = *input.Name
	}
	if input.State != nil {
		values["state"] = *input.State
	}
	if input.LastTime != nil {
		values["last_time"] = *input.LastTime
	}
	if input.NextTime != nil {
		values["next_time"] = *input.NextTime
	}

	return values
}
