package types

// EquipmentFilter holds the query parameters of an equipment listing.
// Empty fields do not filter.
type EquipmentFilter struct {
	Search     string
	Category   string
	Department string
	// Status is active, scrapped or all.
	Status string
}

// RequestFilter holds the query parameters of a maintenance request listing.
// Type and TeamID accept "all" as an explicit no-filter value.
type RequestFilter struct {
	EquipmentID string
	Type        string
	TeamID      string
	Stage       string
	Search      string
}
