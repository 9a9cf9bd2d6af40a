package model

// Task is the persisted unit of the list: a title and a done flag.
// Nothing else survives a save/load cycle.
type Task struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// DefaultTask is what a freshly added row starts with.
func DefaultTask() Task {
	return Task{Title: "", Done: false}
}
