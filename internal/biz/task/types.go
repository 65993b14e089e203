package task

type Status int

const (
	StatusRunning  Status = 1
	StatusStopped  Status = 2
	StatusFinished Status = 3
)

type Type string

const (
	TypeScan    Type = "scan"
	TypeProject Type = "project"
)
