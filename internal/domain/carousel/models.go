package carousel

const (
	// LiveCount is the number of leading positions shown as currently live.
	LiveCount = 6
	// MaxPositions caps how many entries a carousel may hold.
	MaxPositions = 16
	// BackupSectionID is the id of the backup header row; dropping on it targets the end of the backup section.
	BackupSectionID = "section-backup"
)

// Section names a partition of the carousel.
type Section string

const (
	SectionLive   Section = "live"
	SectionBackup Section = "backup"
)

// Entry is a single carousel slot. Position is the dense, 1-based rank.
type Entry struct {
	ID             string `json:"id" yaml:"id"`
	Position       int    `json:"position" yaml:"position"`
	Type           string `json:"type" yaml:"type"`
	Sport          string `json:"sport" yaml:"sport"`
	League         string `json:"league" yaml:"league"`
	Event          string `json:"event" yaml:"event"`
	Period         string `json:"period" yaml:"period"`
	GradingUnits   string `json:"gradingUnits" yaml:"gradingUnits"`
	MarketType     string `json:"marketType" yaml:"marketType"`
	Header         string `json:"header" yaml:"header"`
	ExpiryDateTime string `json:"expiryDateTime" yaml:"expiryDateTime"`
	Country        string `json:"country" yaml:"country"`
	Language       string `json:"language" yaml:"language"`
	Visible        bool   `json:"visible" yaml:"visible"`
}

// Section reports which partition the entry's position falls into.
func (e Entry) Section() Section {
	if e.Position <= LiveCount {
		return SectionLive
	}
	return SectionBackup
}

// Label is the human-facing name used in notices.
func (e Entry) Label() string {
	if e.Header != "" {
		return e.Header
	}
	return e.Type
}

// NewDefaultEntry builds a blank entry the way the editor's "Add Entry" button does.
func NewDefaultEntry(id string, position int) Entry {
	return Entry{
		ID:       id,
		Position: position,
		Type:     "Single",
		Country:  "Default",
		Language: "Default",
		Visible:  true,
	}
}
