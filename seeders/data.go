package seeders

import "gearguard/pkg/constants"

type sampleEquipment struct {
	Name, Serial, Category, Department, Owner, Location string
	PurchaseDate, WarrantyExpiry                        string
}

type sampleRequest struct {
	Type          constants.RequestType
	Subject       string
	Description   string
	ScheduledDate string
	Stage         constants.RequestStage
	Equipment     int
}

var sampleTeams = []string{"Mechanics", "Electricians", "IT Support"}

var sampleEquipments = []sampleEquipment{
	{Name: "CNC Lathe 3000", Serial: "CNC-3000-001", Category: "CNC", Department: "Production", Owner: "Dana Reyes", Location: "Hall B", PurchaseDate: "2023-04-12", WarrantyExpiry: "2026-04-12"},
	{Name: "Hydraulic Press", Serial: "HP-220-014", Category: "Presses", Department: "Production", Owner: "Marco Silva", Location: "Hall A", PurchaseDate: "2021-09-01", WarrantyExpiry: "2024-09-01"},
	{Name: "Office Printer", Serial: "PRN-77-302", Category: "Printers", Department: "Administration", Owner: "Lena Park", Location: "Floor 2", PurchaseDate: "2024-01-20", WarrantyExpiry: "2027-01-20"},
}

var sampleRequests = []sampleRequest{
	{Type: constants.RequestTypeCorrective, Subject: "Spindle vibration", Description: "Spindle vibrates above 2000 rpm.", Stage: constants.StageNew, Equipment: 0},
	{Type: constants.RequestTypePreventive, Subject: "Quarterly hydraulic check", Description: "Inspect seals and replace hydraulic oil.", ScheduledDate: "2026-01-15", Stage: constants.StageInProgress, Equipment: 1},
	{Type: constants.RequestTypeCorrective, Subject: "Paper jam", Description: "Jams on every duplex print.", Stage: constants.StageNew, Equipment: 2},
}
