package scheduler

import "errors"

// ErrBadCycle 周期类型或参数无效，调度不会被注册也不会持久化
var ErrBadCycle = errors.New("invalid cycle type or parameters")
