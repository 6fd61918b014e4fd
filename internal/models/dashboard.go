package models

// DashboardStats aggregates the data shown on the admin dashboard.
type DashboardStats struct {
	Users         []UserDB         `json:"users"`
	TotalRecords  int64            `json:"total_records"`
	RecordsByUnit map[string]int64 `json:"records_by_unit"`
}
