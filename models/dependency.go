package models

// TaskDependency is a directed edge: TaskID is blocked by DependsOnID.
type TaskDependency struct {
	ID             string `json:"id"`
	TaskID         string `json:"taskId"`
	DependsOnID    string `json:"dependsOnId"`
	DependencyType string `json:"dependencyType"`
}

const DependencyTypeBlocker = "BLOCKER"
