package dispatch

// Redis键命名空间。progress:<id>:* 和 duplicates:<id>:* 是对外约定的
// 保留前缀，节点侧写入进度/去重标记必须使用同样的格式，否则
// 重新下发时无法正确清理。

func TargetQueueKey(id string) string {
	return "TaskInfo:" + id
}

func tmpKey(id string) string {
	return "TaskInfo:tmp:" + id
}

func timeKey(id string) string {
	return "TaskInfo:time:" + id
}

func ProgressPattern(id string) string {
	return "progress:" + id + ":*"
}

func DuplicatesPattern(id string) string {
	return "duplicates:" + id + ":*"
}

func NodeQueueKey(name string) string {
	return "NodeTask:" + name
}

func dispatchLockKey(id string) string {
	return "lock:dispatch:" + id
}
