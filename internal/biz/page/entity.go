package page

import (
	"context"
	"time"
)

// Monitoring 页面监控条目，page_monitoring 调度把这些URL
// 作为目标下发给节点。
type Monitoring struct {
	ID        string
	CreatedAt time.Time

	URL string
}

type Repo interface {
	ListURLs(ctx context.Context) ([]string, error)
}
