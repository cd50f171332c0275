package constants

//============== ROLES ==============

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleTechnician Role = "technician"
	RoleRequester  Role = "requester"
)

// Roles lists every role in a stable order.
var Roles = []Role{RoleAdmin, RoleManager, RoleTechnician, RoleRequester}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTechnician, RoleRequester:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

//============== MAINTENANCE REQUESTS ==============

type RequestType string

const (
	RequestTypeCorrective RequestType = "corrective"
	RequestTypePreventive RequestType = "preventive"
)

var RequestTypes = []RequestType{RequestTypeCorrective, RequestTypePreventive}

func (t RequestType) IsValid() bool {
	switch t {
	case RequestTypeCorrective, RequestTypePreventive:
		return true
	}
	return false
}

func (t RequestType) String() string { return string(t) }

// RequestStage is the lifecycle state of a maintenance request.
type RequestStage string

const (
	StageNew        RequestStage = "new"
	StageInProgress RequestStage = "in_progress"
	StageRepaired   RequestStage = "repaired"
	StageScrap      RequestStage = "scrap"
)

var RequestStages = []RequestStage{StageNew, StageInProgress, StageRepaired, StageScrap}

func (s RequestStage) IsValid() bool {
	switch s {
	case StageNew, StageInProgress, StageRepaired, StageScrap:
		return true
	}
	return false
}

// IsOpen reports whether work on the request is still pending.
func (s RequestStage) IsOpen() bool {
	return s == StageNew || s == StageInProgress
}

func (s RequestStage) String() string { return string(s) }

// FilterAll disables the type/team filters on request listings.
const FilterAll = "all"

//============== EQUIPMENT ==============

// EquipmentStatus filters equipment listings by scrap state.
type EquipmentStatus string

const (
	EquipmentStatusActive   EquipmentStatus = "active"
	EquipmentStatusScrapped EquipmentStatus = "scrapped"
	EquipmentStatusAll      EquipmentStatus = "all"
)

func (s EquipmentStatus) IsValid() bool {
	switch s {
	case EquipmentStatusActive, EquipmentStatusScrapped, EquipmentStatusAll:
		return true
	}
	return false
}

// ScrapRequestReasonPrefix prefixes the equipment scrap reason set by a scrap-stage request.
const ScrapRequestReasonPrefix = "Scrap request: "

//============== QR ==============

type QRMode string

const (
	QRModeLink QRMode = "link"
	QRModeJSON QRMode = "json"
)

func (m QRMode) IsValid() bool {
	return m == QRModeLink || m == QRModeJSON
}

//============== DATES ==============

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

//============== CACHE KEYS ==============

const (
	// Format: login_attempts:<email> -> failed attempt counter
	CacheKeyLoginAttempts = "login_attempts:%s"
	// Format: lockout:<email> -> "locked" while the account is locked out
	CacheKeyLockout = "lockout:%s"
)
