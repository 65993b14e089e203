package dispatch

// Payload 下发到节点队列的任务载荷，JSON序列化后RPush到
// NodeTask:<节点名>。字段名是节点侧消费约定的一部分。
type Payload struct {
	ID         string                       `json:"ID"`
	TaskName   string                       `json:"TaskName"`
	Type       string                       `json:"type"`
	Ignore     string                       `json:"ignore"`
	Duplicates string                       `json:"duplicates"`
	IsStart    bool                         `json:"IsStart"` // 暂停后恢复时为true，节点侧据此续用进度
	Parameters map[string]map[string]string `json:"Parameters"`
}
