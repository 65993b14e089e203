package taskrepo

import (
	domain "github.com/heiseqiubite/Mapping/internal/biz/task"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/commonrepo"
	"gorm.io/datatypes"
)

func (t *TaskPo) FromDomain(in *domain.Task) *TaskPo {
	return &TaskPo{
		Mode: commonrepo.Mode{
			ID:        in.ID,
			CreatedAt: in.CreatedAt,
			UpdatedAt: in.UpdatedAt,
		},
		Name:       in.Name,
		Status:     in.Status,
		Node:       datatypes.NewJSONSlice(in.Node),
		AllNode:    in.AllNode,
		Target:     in.Target,
		Ignore:     in.Ignore,
		Duplicates: in.Duplicates,
		Template:   in.Template,
		Type:       in.Type,
		TaskNum:    in.TaskNum,
		Progress:   in.Progress,
		CreatTime:  in.CreatTime,
		EndTime:    in.EndTime,
	}
}

func (t *TaskPo) ToDomain() *domain.Task {
	return &domain.Task{
		ID:         t.ID,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
		Name:       t.Name,
		Status:     t.Status,
		Node:       t.Node,
		AllNode:    t.AllNode,
		Target:     t.Target,
		Ignore:     t.Ignore,
		Duplicates: t.Duplicates,
		Template:   t.Template,
		Type:       t.Type,
		TaskNum:    t.TaskNum,
		Progress:   t.Progress,
		CreatTime:  t.CreatTime,
		EndTime:    t.EndTime,
	}
}

func patchToMap(input *domain.Patch) map[string]any {
	var values = make(map[string]any)

	if input.Name != nil {
		values["name"] = *input.Name
	}
	if input.Status != nil {
		values["status"] = *input.Status
	}
	if input.Progress != nil {
		values["progress"] = *input.Progress
	}
	if input.EndTime != nil {
		values["end_time"] = *input.EndTime
	}

	return values
}
