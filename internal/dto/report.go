package dto

type EquipmentTotalsDTO struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Scrapped int64 `json:"scrapped"`
}

type TeamCountDTO struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	Count    int64  `json:"count"`
}

type CategoryCountDTO struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type RequestTotalsDTO struct {
	Total      int64              `json:"total"`
	Open       int64              `json:"open"`
	Overdue    int64              `json:"overdue"`
	ByStage    map[string]int64   `json:"byStage"`
	ByType     map[string]int64   `json:"byType"`
	ByTeam     []TeamCountDTO     `json:"byTeam"`
	ByCategory []CategoryCountDTO `json:"byCategory"`
}

type ReportSummaryDTO struct {
	Range       string             `json:"range"`
	GeneratedAt string             `json:"generatedAt"`
	Equipment   EquipmentTotalsDTO `json:"equipment"`
	Requests    RequestTotalsDTO   `json:"requests"`
}
