package entities

// CountByKey is one row of a grouped count.
type CountByKey struct {
	Key   string
	Count int64
}

type EquipmentTotals struct {
	Total    int64
	Active   int64
	Scrapped int64
}
