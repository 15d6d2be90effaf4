package kyc

import (
	"sort"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/kyc"
)

// docless sections contribute this placeholder document id when opened.
const doclessDocumentID domain.ID = "0"

// Draft is an editable copy of the catalog used to build one document request.
// Locked items (preselected upstream) never flip.
type Draft struct {
	Purposes      []domain.PurposeState          `json:"verificationPurposes"`
	OpenSections  map[string]bool                `json:"openSections"`
	Notification  domain.Notification            `json:"notification"`
	BlockingRules map[string]domain.BlockingRule `json:"blockingRules"`
}

// NewDraft seeds a draft from the current catalog data. A section starts open when it has
// documents and at least one of them is selected.
func NewDraft(state State) Draft {
	d := Draft{
		Purposes:      clonePurposes(state.Purposes.Data),
		OpenSections:  make(map[string]bool, len(state.Purposes.Data)),
		Notification:  cloneNotification(state.Notification.Data),
		BlockingRules: cloneRules(state.BlockingRules.Data),
	}
	for _, p := range d.Purposes {
		d.OpenSections[string(p.ID)] = len(p.Documents) > 0 && anySelected(p.Documents)
	}
	return d
}

// ToggleSectionOpen expands or collapses a section. Sections without documents cannot be
// expanded this way.
func (d *Draft) ToggleSectionOpen(sectionID domain.ID) bool {
	p := d.purpose(sectionID)
	if p == nil || len(p.Documents) == 0 {
		return false
	}
	d.ensureOpenSections()
	key := string(sectionID)
	d.OpenSections[key] = !d.OpenSections[key]
	return true
}

// SetSectionChecked selects or clears every unlocked document in a section. Checking always
// opens the section. For a section without documents the checkbox is the open flag itself.
// A section holding a locked, selected document rejects the change.
func (d *Draft) SetSectionChecked(sectionID domain.ID, checked bool) bool {
	p := d.purpose(sectionID)
	if p == nil {
		return false
	}
	for _, doc := range p.Documents {
		if doc.IsDisabled && doc.IsSelected {
			return false
		}
	}
	d.ensureOpenSections()
	key := string(sectionID)
	if len(p.Documents) == 0 {
		d.OpenSections[key] = checked
		return true
	}
	for i := range p.Documents {
		if !p.Documents[i].IsDisabled {
			p.Documents[i].IsSelected = checked
		}
	}
	if checked {
		d.OpenSections[key] = true
	}
	return true
}

// ToggleDocument flips one document unless it is locked.
func (d *Draft) ToggleDocument(sectionID, documentID domain.ID) bool {
	p := d.purpose(sectionID)
	if p == nil {
		return false
	}
	for i := range p.Documents {
		doc := &p.Documents[i]
		if doc.ID != documentID {
			continue
		}
		if doc.IsDisabled {
			return false
		}
		doc.IsSelected = !doc.IsSelected
		return true
	}
	return false
}

// SetNotificationEnabled switches the notification block and every unlocked channel with it.
func (d *Draft) SetNotificationEnabled(enabled bool) {
	d.Notification.Enabled = enabled
	for i := range d.Notification.Channels {
		if !d.Notification.Channels[i].IsDisabled {
			d.Notification.Channels[i].IsSelected = enabled
		}
	}
}

// ToggleChannel flips one unlocked channel; the block is enabled while any channel is selected.
func (d *Draft) ToggleChannel(channelID domain.ID) bool {
	found := false
	for i := range d.Notification.Channels {
		ch := &d.Notification.Channels[i]
		if ch.ID != channelID {
			continue
		}
		if ch.IsDisabled {
			return false
		}
		ch.IsSelected = !ch.IsSelected
		found = true
		break
	}
	if !found {
		return false
	}
	d.Notification.Enabled = false
	for _, ch := range d.Notification.Channels {
		if ch.IsSelected {
			d.Notification.Enabled = true
			break
		}
	}
	return true
}

// ToggleBlockingRule flips an unlocked blocking rule.
func (d *Draft) ToggleBlockingRule(key string) bool {
	rule, ok := d.BlockingRules[key]
	if !ok || rule.IsDisabled {
		return false
	}
	rule.Value = !rule.Value
	d.BlockingRules[key] = rule
	return true
}

// Request shapes the draft into the submission payload. Sections contribute their selected
// document ids; an open section without documents contributes a single placeholder id.
// Notification channels are sent only while the block is enabled. Empty parts are left out.
func (d Draft) Request() domain.Request {
	var req domain.Request

	for _, p := range d.Purposes {
		key := string(p.ID)
		var ids []domain.ID
		if len(p.Documents) == 0 {
			if d.OpenSections[key] {
				ids = []domain.ID{doclessDocumentID}
			}
		} else {
			for _, doc := range p.Documents {
				if doc.IsSelected {
					ids = append(ids, doc.ID)
				}
			}
		}
		if len(ids) == 0 {
			continue
		}
		if req.Verifies == nil {
			req.Verifies = make(map[string][]domain.ID)
		}
		req.Verifies[key] = ids
	}

	if d.Notification.Enabled {
		for _, ch := range d.Notification.Channels {
			if ch.IsSelected {
				req.Notification = append(req.Notification, ch.ID)
			}
		}
	}

	if len(d.BlockingRules) > 0 {
		req.BlockingRules = make(map[string]bool, len(d.BlockingRules))
		for key, rule := range d.BlockingRules {
			req.BlockingRules[key] = rule.Value
		}
	}
	return req
}

// SelectedSections lists the section ids that will appear in the request, sorted.
func (d Draft) SelectedSections() []string {
	req := d.Request()
	out := make([]string, 0, len(req.Verifies))
	for key := range req.Verifies {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func (d *Draft) purpose(id domain.ID) *domain.PurposeState {
	for i := range d.Purposes {
		if d.Purposes[i].ID == id {
			return &d.Purposes[i]
		}
	}
	return nil
}

func (d *Draft) ensureOpenSections() {
	if d.OpenSections == nil {
		d.OpenSections = make(map[string]bool)
	}
}

func anySelected(docs []domain.DocumentState) bool {
	for _, doc := range docs {
		if doc.IsSelected {
			return true
		}
	}
	return false
}
