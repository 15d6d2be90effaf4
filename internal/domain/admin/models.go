package admin

// Status is the lifecycle state of an admin catalog record.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Purpose codes a document type may belong to.
var PurposeCodes = []string{"POI", "POA", "SELFIE"}

// BlockingFlags are the per-rule restrictions, in display order.
var BlockingFlags = []string{
	"casinoBonusIneligible",
	"sbBonusIneligible",
	"blockCasino",
	"blockSBWagering",
	"blockWithdrawals",
	"betBuilderBonusIneligible",
	"blockBetBuilder",
}

// OptionType controls how an option is rendered.
type OptionType string

const (
	OptionToggle   OptionType = "toggle"
	OptionCheckbox OptionType = "checkbox"
)

type Purpose struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Status Status `json:"status"`
}

type DocumentType struct {
	ID           string `json:"id"`
	DocumentType string `json:"documentType"`
	Purpose      string `json:"purpose"`
	Status       Status `json:"status"`
}

// BlockingRule is a named set of restrictions. Flags holds every key in BlockingFlags.
type BlockingRule struct {
	ID     string          `json:"id"`
	Name   string          `json:"blockRules"`
	Flags  map[string]bool `json:"flags"`
	Status Status          `json:"status"`
}

type CancelReason struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
	Status Status `json:"status"`
}

// Option is a switchable notification or volunteer-upload setting.
type Option struct {
	ID      string     `json:"id"`
	Label   string     `json:"label"`
	Checked bool       `json:"checked"`
	Type    OptionType `json:"type"`
}

// Catalog is every admin section for one brand.
type Catalog struct {
	Brand            string         `json:"brand"`
	Purposes         []Purpose      `json:"purposes"`
	DocumentTypes    []DocumentType `json:"documentTypes"`
	BlockingRules    []BlockingRule `json:"blockingRules"`
	CancelReasons    []CancelReason `json:"cancelReasons"`
	Notifications    []Option       `json:"notifications"`
	VolunteerUploads []Option       `json:"volunteerUploads"`
}

// Clone returns a deep copy of c.
func (c Catalog) Clone() Catalog {
	out := c
	out.Purposes = append([]Purpose(nil), c.Purposes...)
	out.DocumentTypes = append([]DocumentType(nil), c.DocumentTypes...)
	out.CancelReasons = append([]CancelReason(nil), c.CancelReasons...)
	out.Notifications = append([]Option(nil), c.Notifications...)
	out.VolunteerUploads = append([]Option(nil), c.VolunteerUploads...)
	out.BlockingRules = make([]BlockingRule, len(c.BlockingRules))
	for i, r := range c.BlockingRules {
		r.Flags = cloneFlags(r.Flags)
		out.BlockingRules[i] = r
	}
	return out
}

// NewFlags returns a flag map with every known flag set to value.
func NewFlags(value bool) map[string]bool {
	flags := make(map[string]bool, len(BlockingFlags))
	for _, f := range BlockingFlags {
		flags[f] = value
	}
	return flags
}

func cloneFlags(in map[string]bool) map[string]bool {
	if in == nil {
		return nil
	}
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// DefaultCatalog is the catalog every brand starts from.
func DefaultCatalog(brand string) Catalog {
	return Catalog{
		Brand: brand,
		Purposes: []Purpose{
			{ID: "1", Code: "POI", Name: "Proof of Identity", Status: StatusActive},
			{ID: "2", Code: "POA", Name: "Proof of Address", Status: StatusActive},
			{ID: "3", Code: "SELFIE", Name: "Selfie", Status: StatusActive},
		},
		DocumentTypes: []DocumentType{
			{ID: "1", DocumentType: "National ID", Purpose: "POI", Status: StatusActive},
			{ID: "2", DocumentType: "Passport", Purpose: "POI", Status: StatusActive},
			{ID: "3", DocumentType: "Driver's license", Purpose: "POI", Status: StatusActive},
		},
		BlockingRules: []BlockingRule{
			{ID: "1", Name: "Supicous", Flags: NewFlags(true), Status: StatusActive},
			{ID: "2", Name: "Friendly", Flags: NewFlags(false), Status: StatusActive},
			{ID: "3", Name: "No Block", Flags: NewFlags(false), Status: StatusActive},
		},
		CancelReasons: []CancelReason{
			{ID: "1", Reason: "Duplicate Request", Status: StatusActive},
			{ID: "2", Reason: "Error in request", Status: StatusActive},
			{ID: "3", Reason: "Other", Status: StatusActive},
		},
		Notifications: []Option{
			{ID: "1", Label: "Default Notification", Checked: true, Type: OptionToggle},
			{ID: "2", Label: "Email", Type: OptionCheckbox},
			{ID: "3", Label: "Personal Message", Type: OptionCheckbox},
			{ID: "4", Label: "On-Screen Announcement", Type: OptionCheckbox},
		},
		VolunteerUploads: []Option{
			{ID: "1", Label: "Customer Volunteer Upload", Checked: true, Type: OptionToggle},
			{ID: "2", Label: "Proof of Identity", Type: OptionCheckbox},
			{ID: "3", Label: "Proof of Address", Type: OptionCheckbox},
			{ID: "4", Label: "Selfie", Type: OptionCheckbox},
		},
	}
}
