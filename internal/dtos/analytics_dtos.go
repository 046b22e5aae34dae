package dtos

// AnalyticsSummaryResponse aggregates a property's inspections,
// including rows archived via keep-for-analytics.
type AnalyticsSummaryResponse struct {
	TotalInspections     int            `json:"total_inspections"`
	CompletedInspections int            `json:"completed_inspections"`
	ArchivedInspections  int            `json:"archived_inspections"`
	CompletionRate       float64        `json:"completion_rate"`
	ByType               map[string]int `json:"by_type"`
	ByMonth              map[string]int `json:"by_month"`
	TotalSubtasks        int            `json:"total_subtasks"`
	CompletedSubtasks    int            `json:"completed_subtasks"`
}
