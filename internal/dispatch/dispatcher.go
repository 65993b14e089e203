package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// 同一任务ID并发下发时保护"清理-重填"步骤的锁参数。
// 拿不到锁时有限重试，之后放弃本次下发。
const (
	dispatchLockTTL        = 30 * time.Second
	dispatchLockAttempts   = 3
	dispatchLockRetryDelay = 100 * time.Millisecond
)

// Dispatcher 把展开后的目标和任务载荷扇出到各节点队列
type Dispatcher struct {
	store  Store
	nodes  NodeSource
	logger *zap.Logger
}

func NewDispatcher(store Store, nodes NodeSource, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{store: store, nodes: nodes, logger: logger}
}

// Dispatch 下发一个任务。非恢复下发先清理该任务ID的全部临时键并
// 重填目标队列；恢复下发保留已有进度/去重状态。每个节点各收到一份
// 载荷；单个节点入队失败只记录，不中断其余扇出，也不回滚。
func (d *Dispatcher) Dispatch(ctx context.Context, payload *Payload, targets []string, explicit []string, allNode bool, resume bool) error {
	id := payload.ID

	var online []string
	if allNode {
		var err error
		online, err = d.nodes.OnlineNodes(ctx)
		if err != nil {
			return err
		}
	}
	nodes := ResolveNodes(explicit, allNode, online)

	if !resume {
		if err := d.resetEphemeral(ctx, id, targets); err != nil {
			return err
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var failed int
	for _, name := range nodes {
		if err := d.store.RPush(ctx, NodeQueueKey(name), string(data)); err != nil {
			failed++
			d.logger.Error("failed to enqueue task payload",
				zap.String("task_id", id),
				zap.String("node", name),
				zap.Error(err))
		}
	}
	if failed > 0 {
		// 部分失败不回滚，靠进度监控发现卡住的任务
		d.logger.Error("partial dispatch failure",
			zap.String("task_id", id),
			zap.Int("failed", failed),
			zap.Int("total", len(nodes)))
	}
	return nil
}

// resetEphemeral 删除上一次运行残留的临时键并写入新目标队列，
// 保证新一轮运行不会泄漏旧目标。整个步骤用任务ID粒度的锁保护，
// 拿不到锁说明同ID的另一次下发正在清理重填，本次放弃而不是交错。
func (d *Dispatcher) resetEphemeral(ctx context.Context, id string, targets []string) error {
	if err := d.acquireLock(ctx, id); err != nil {
		return err
	}
	defer func() {
		if err := d.store.Del(ctx, dispatchLockKey(id)); err != nil {
			d.logger.Warn("failed to release dispatch lock",
				zap.String("task_id", id), zap.Error(err))
		}
	}()

	keysToDelete := []string{
		tmpKey(id),
		TargetQueueKey(id),
		timeKey(id),
	}
	progressKeys, err := d.store.Keys(ctx, ProgressPattern(id))
	if err != nil {
		return err
	}
	keysToDelete = append(keysToDelete, progressKeys...)
	duplicateKeys, err := d.store.Keys(ctx, DuplicatesPattern(id))
	if err != nil {
		return err
	}
	keysToDelete = append(keysToDelete, duplicateKeys...)
	if err := d.store.Del(ctx, keysToDelete...); err != nil {
		return err
	}

	if len(targets) == 0 {
		return nil
	}
	return d.store.LPush(ctx, TargetQueueKey(id), targets...)
}

// acquireLock 获取任务ID粒度的清理重填锁，有限重试
func (d *Dispatcher) acquireLock(ctx context.Context, id string) error {
	for attempt := 0; attempt < dispatchLockAttempts; attempt++ {
		locked, err := d.store.SetNX(ctx, dispatchLockKey(id), "1", dispatchLockTTL)
		if err != nil {
			return err
		}
		if locked {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dispatchLockRetryDelay):
		}
	}
	d.logger.Warn("concurrent dispatch detected for task id, aborting reset",
		zap.String("task_id", id))
	return fmt.Errorf("%w: %s", ErrDispatchInProgress, id)
}
