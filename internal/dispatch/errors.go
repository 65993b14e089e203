package dispatch

import "errors"

var (
	// ErrTemplateNotFound 引用的扫描模板不存在，任务不会被创建
	ErrTemplateNotFound = errors.New("scan template not found")

	// ErrTaskNotFound 恢复下发时任务记录不存在
	ErrTaskNotFound = errors.New("task not found")

	// ErrDispatchInProgress 同一任务ID的另一次下发持有清理重填锁，
	// 本次下发放弃而不是交错执行
	ErrDispatchInProgress = errors.New("dispatch already in progress for task")
)
